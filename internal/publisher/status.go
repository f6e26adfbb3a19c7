// Package publisher holds the small set of primitives shared by every
// publisher family (Steam, Web, Mobile): the status lattice, target/run
// shapes, JSON persistence helpers, error types, query/pagination, the
// JSONL event logger, metrics, and the default process executor. Each
// family package (steampublisher, webpublisher, mobilepublisher) owns its
// own Config/Run types and wires these primitives together the way the
// teacher wires per-bridge clients around internal/apibridge.
package publisher

// Status is the run/target-result status lattice shared by all three
// families. The family coordinators record target results only as
// succeeded or failed; DeriveOverallStatus accepts every value below.
type Status string

const (
	StatusPending    Status = "pending"
	StatusUploading  Status = "uploading"
	StatusBuilding   Status = "building"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusSkipped    Status = "skipped"
)

// DeriveOverallStatus applies the spec's §4.5 derivation rule to a run's
// target results.
func DeriveOverallStatus(results []TargetResult) Status {
	if len(results) == 0 {
		return StatusPending
	}

	allSucceededOrSkipped := true
	allPending := true
	sawUploadingOrProcessing := false
	sawCancelled := false
	sawFailed := false

	for _, r := range results {
		switch r.Status {
		case StatusSucceeded, StatusSkipped:
			allPending = false
		case StatusPending:
			allSucceededOrSkipped = false
		case StatusUploading, StatusBuilding, StatusProcessing:
			allSucceededOrSkipped = false
			allPending = false
			sawUploadingOrProcessing = true
		case StatusCancelled:
			allSucceededOrSkipped = false
			allPending = false
			sawCancelled = true
		case StatusFailed:
			allSucceededOrSkipped = false
			allPending = false
			sawFailed = true
		default:
			allSucceededOrSkipped = false
			allPending = false
		}
	}

	switch {
	case allSucceededOrSkipped:
		return StatusSucceeded
	case sawUploadingOrProcessing:
		return StatusUploading
	case sawCancelled:
		return StatusCancelled
	case sawFailed:
		return StatusFailed
	case allPending:
		return StatusPending
	default:
		return StatusFailed
	}
}
