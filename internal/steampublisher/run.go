package steampublisher

import "github.com/forgeworks/publisher-pipeline/internal/publisher"

// Run is the Steam family's PublishRun: the shared run fields plus
// Steam's header fields and the resolved depot id list.
type Run struct {
	publisher.RunBase
	AppID            string   `json:"appId"`
	Branch           string   `json:"branch"`
	BuildDescription string   `json:"buildDescription,omitempty"`
	Depots           []string `json:"depots"`
}

// Base satisfies publisher.HasRunBase so HistoryStore can share
// filter/sort/paginate/stats logic across all three families.
func (r Run) Base() publisher.RunBase {
	return r.RunBase
}

// SearchText satisfies publisher.HasSearchText, folding Steam's header
// fields into the history search filter alongside the shared RunBase
// fields.
func (r Run) SearchText() string {
	return r.AppID + " " + r.Branch + " " + r.BuildDescription
}

// IsSuccessful reports whether every attempted target succeeded.
func IsSuccessful(run Run) bool {
	if len(run.Results) == 0 {
		return run.Status == publisher.StatusSucceeded
	}
	for _, r := range run.Results {
		if r.Status != publisher.StatusSucceeded {
			return false
		}
	}
	return true
}

// FailedTargets returns the target keys whose result was failed.
func FailedTargets(run Run) []string {
	return targetsWithStatus(run, publisher.StatusFailed)
}

// SucceededTargets returns the target keys whose result was succeeded.
func SucceededTargets(run Run) []string {
	return targetsWithStatus(run, publisher.StatusSucceeded)
}

func targetsWithStatus(run Run, status publisher.Status) []string {
	out := make([]string, 0, len(run.Results))
	for _, r := range run.Results {
		if r.Status == status {
			out = append(out, r.TargetKey)
		}
	}
	return out
}

// TargetResult returns the result for a given target key, if present.
func TargetResult(run Run, key string) (publisher.TargetResult, bool) {
	for _, r := range run.Results {
		if r.TargetKey == key {
			return r, true
		}
	}
	return publisher.TargetResult{}, false
}
