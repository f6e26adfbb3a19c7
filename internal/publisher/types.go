package publisher

import "encoding/json"

// TargetEntry is the kind-polymorphic target shape shared by all three
// families: `{ key, kind, enabled, artifactDirectory, kindSpecificConfig }`.
// Kind selects which ArgumentBuilder/executor path handles the target;
// Key is the unique identifier within a config's target list (for Steam
// that's the depot id, since several targets can share kind "depot").
type TargetEntry struct {
	Key               string          `json:"key"`
	Kind              string          `json:"kind"`
	Enabled           bool            `json:"enabled"`
	ArtifactDirectory string          `json:"artifactDirectoryRelative"`
	KindConfig        json.RawMessage `json:"kindSpecificConfig,omitempty"`
}

// TargetResult is one target's outcome within a run, preserving the
// execution order of the run's target list.
type TargetResult struct {
	TargetKey   string         `json:"targetKey"`
	Status      Status         `json:"status"`
	StartedAt   int64          `json:"startedAt"`
	CompletedAt int64          `json:"completedAt"`
	DurationMS  int64          `json:"duration"`
	Outputs     map[string]any `json:"optionalOutputs,omitempty"`
	Error       string         `json:"error,omitempty"`
	Logs        []string       `json:"logs,omitempty"`
}

// BaseConfig carries the fields every PublishConfig has regardless of
// family. Family configs embed it anonymously so the JSON representation
// stays flat.
type BaseConfig struct {
	ProjectID        string        `json:"projectId"`
	ProjectPath      string        `json:"projectPath"`
	Targets          []TargetEntry `json:"targets"`
	UploadTimeoutMS  int64         `json:"uploadTimeout"`
	PublishRetention int           `json:"publishRetention"`
}

// RunBase carries the fields every PublishRun has regardless of family.
// Family Run types embed it anonymously; family-specific header fields
// (appId/branch/buildDescription for Steam, appVersion for Mobile) are
// added alongside it in the family package.
type RunBase struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"projectId"`
	Timestamp   int64          `json:"timestamp"`
	DurationMS  int64          `json:"duration"`
	Targets     []string       `json:"targets"`
	TriggeredBy string         `json:"triggeredBy"`
	Results     []TargetResult `json:"results"`
	Status      Status         `json:"status"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// State is the durable per-project mutable state document. It is generic
// over the family's Config type so each family's StateStore can read and
// write a typed `state.json` without re-declaring the envelope.
type State[C any] struct {
	Config        C       `json:"config"`
	LastRunID     *string `json:"lastRunId"`
	LastRunTime   *int64  `json:"lastRunTime"`
	TotalRuns     int     `json:"totalRuns"`
	IsRunning     bool    `json:"isRunning"`
	CurrentTarget *string `json:"currentTarget"`
	CreatedAt     int64   `json:"createdAt"`
	UpdatedAt     int64   `json:"updatedAt"`
}

// ValidationResult is the structured, never-thrown outcome of validate().
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Query is the HistoryStore list() filter/pagination input. All fields
// are optional; zero values mean "no filter" except Limit, where <= 0
// means "no limit".
type Query struct {
	Since       *int64
	Until       *int64
	TargetKey   string
	Status      Status
	TriggeredBy string
	Search      string
	Offset      int
	Limit       int
}

// ExecOptions are the argument-builder overrides accepted by execute().
type ExecOptions struct {
	DryRun           bool
	Targets          []string
	Branch           string
	BuildDescription string
	AppVersion       string
	TriggeredBy      string
}
