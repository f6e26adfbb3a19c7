package webpublisher

import "github.com/forgeworks/publisher-pipeline/internal/publisher"

// Run is the Web family's PublishRun.
type Run struct {
	publisher.RunBase
}

func (r Run) Base() publisher.RunBase { return r.RunBase }

func IsSuccessful(run Run) bool {
	if len(run.Results) == 0 {
		return run.Status == publisher.StatusSucceeded
	}
	for _, r := range run.Results {
		if r.Status != publisher.StatusSucceeded && r.Status != publisher.StatusSkipped {
			return false
		}
	}
	return true
}

func FailedTargets(run Run) []string     { return targetsWithStatus(run, publisher.StatusFailed) }
func SucceededTargets(run Run) []string  { return targetsWithStatus(run, publisher.StatusSucceeded) }

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
