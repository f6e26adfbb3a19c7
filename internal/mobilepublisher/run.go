package mobilepublisher

import "github.com/forgeworks/publisher-pipeline/internal/publisher"

// Run is the Mobile family's PublishRun.
type Run struct {
	publisher.RunBase
	AppVersion string `json:"appVersion"`
}

func (r Run) Base() publisher.RunBase { return r.RunBase }

// SearchText satisfies publisher.HasSearchText, folding appVersion into
// the history search filter alongside the shared RunBase fields.
func (r Run) SearchText() string { return r.AppVersion }

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

func FailedTargets(run Run) []string    { return targetsWithStatus(run, publisher.StatusFailed) }
func SucceededTargets(run Run) []string { return targetsWithStatus(run, publisher.StatusSucceeded) }

func targetsWithStatus(run Run, status publisher.Status) []string {
	out := make([]string, 0, len(run.Results))
	for _, r := range run.Results {
		if r.Status == status {
			out = append(out, r.TargetKey)
		}
	}
	return out
}

func TargetResult(run Run, key string) (publisher.TargetResult, bool) {
	for _, r := range run.Results {
		if r.TargetKey == key {
			return r, true
		}
	}
	return publisher.TargetResult{}, false
}
