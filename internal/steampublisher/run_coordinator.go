package steampublisher

import (
	"context"
	"fmt"
	"time"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// ProgressFunc receives per-target progress messages. RunCoordinator
// never lets a callback failure affect execution: emitProgress calls the
// callback inside a recover, so a panic from it is swallowed.
type ProgressFunc func(targetKey, message string)

// RunCoordinator enforces the single-run invariant, iterates enabled
// targets, drives the Executor (or the dry-run path), and persists the
// resulting PublishRun plus updated PublishState.
type RunCoordinator struct {
	store    *StateStore
	history  *HistoryStore
	logger   publisher.EventLogger
	recorder *publisher.Recorder
}

func NewRunCoordinator(store *StateStore, history *HistoryStore, logger publisher.EventLogger, recorder *publisher.Recorder) *RunCoordinator {
	return &RunCoordinator{store: store, history: history, logger: logger, recorder: recorder}
}

func (c *RunCoordinator) log(event map[string]any) {
	if c.logger != nil {
		c.logger.Log(event)
	}
}

// Execute runs one publish. exec may be nil, in which case every
// requested target is resolved through the dry-run path regardless of
// opts.DryRun.
func (c *RunCoordinator) Execute(ctx context.Context, opts publisher.ExecOptions, exec publisher.Executor, onProgress ProgressFunc) (Run, error) {
	state, ok, err := c.store.Read()
	if err != nil {
		return Run{}, publisher.NewOperationError(publisher.FailureIO, "read state", "", "", err)
	}
	if !ok {
		return Run{}, publisher.PreconditionError("execute", fmt.Errorf("publisher namespace is not initialized"))
	}
	if state.IsRunning {
		return Run{}, publisher.ConflictError(fmt.Errorf("a Steam publish is already running for project %q", state.Config.ProjectID))
	}

	startTime := time.Now().UnixMilli()
	runID, err := publisher.NewRunID(startTime, state.Config.ProjectID)
	if err != nil {
		return Run{}, publisher.NewOperationError(publisher.FailureIO, "generate run id", "", "", err)
	}

	state.IsRunning = true
	state.UpdatedAt = startTime
	if err := c.store.WriteState(state); err != nil {
		return Run{}, publisher.NewOperationError(publisher.FailureIO, "write state", "", "", err)
	}
	if c.recorder != nil {
		c.recorder.RunStarted("steam")
	}

	requested := resolveRequestedTargets(state.Config.Targets, opts.Targets)
	results := make([]publisher.TargetResult, 0, len(requested))
	depotKeys := make([]string, 0, len(requested))

	for _, target := range requested {
		depotKeys = append(depotKeys, target.Key)
		target := target
		current := target.Key
		state.CurrentTarget = &current
		state.UpdatedAt = time.Now().UnixMilli()
		if err := c.store.WriteState(state); err != nil {
			state.IsRunning = false
			state.CurrentTarget = nil
			_ = c.store.WriteState(state)
			return Run{}, publisher.NewOperationError(publisher.FailureIO, "write state", target.Key, "", err)
		}

		emitProgress(onProgress, target.Key, fmt.Sprintf("Starting publish for depot %s", target.Key))

		argv, buildErr := BuildArgv(state.Config, target, opts)
		if buildErr != nil {
			result := publisher.TargetResult{
				TargetKey:   target.Key,
				Status:      publisher.StatusFailed,
				StartedAt:   time.Now().UnixMilli(),
				CompletedAt: time.Now().UnixMilli(),
				Error:       buildErr.Error(),
				Logs:        []string{"Error: " + buildErr.Error()},
			}
			results = append(results, result)
			emitProgress(onProgress, target.Key, fmt.Sprintf("Failed depot %s: %s", target.Key, buildErr.Error()))
			continue
		}

		var result publisher.TargetResult
		if exec == nil {
			result = dryRunResult(target, argv)
			emitProgress(onProgress, target.Key, fmt.Sprintf("(dry-run) depot %s would run: %s", target.Key, encodeArgv(argv)))
		} else {
			result = func() (r publisher.TargetResult) {
				defer func() {
					if rec := recover(); rec != nil {
						r = publisher.TargetResult{
							TargetKey:   target.Key,
							Status:      publisher.StatusFailed,
							StartedAt:   time.Now().UnixMilli(),
							CompletedAt: time.Now().UnixMilli(),
							Error:       fmt.Sprintf("%v", rec),
							Logs:        []string{fmt.Sprintf("Error: %v", rec)},
						}
					}
				}()
				timeout := time.Duration(state.Config.UploadTimeoutMS) * time.Millisecond
				return RunTarget(ctx, exec, state.Config, target, argv, timeout)
			}()
			if result.Status == publisher.StatusSucceeded {
				emitProgress(onProgress, target.Key, fmt.Sprintf("Completed depot %s", target.Key))
			} else {
				emitProgress(onProgress, target.Key, fmt.Sprintf("Failed depot %s: %s", target.Key, result.Error))
			}
		}
		results = append(results, result)
		if c.recorder != nil {
			c.recorder.TargetFinished("steam", targetKindDepot, result.Status)
		}
	}

	completedAt := time.Now().UnixMilli()
	run := Run{
		RunBase: publisher.RunBase{
			ID:          runID,
			ProjectID:   state.Config.ProjectID,
			Timestamp:   startTime,
			DurationMS:  completedAt - startTime,
			Targets:     depotKeys,
			TriggeredBy: resolveTriggeredBy(opts.TriggeredBy),
			Results:     results,
			Status:      publisher.DeriveOverallStatus(results),
		},
		AppID:            state.Config.AppID,
		Branch:           resolveBranch(state.Config, opts),
		BuildDescription: resolveDescription(state.Config, opts),
		Depots:           depotKeys,
	}

	if err := c.store.WriteRun(run); err != nil {
		state.IsRunning = false
		state.CurrentTarget = nil
		_ = c.store.WriteState(state)
		return Run{}, publisher.NewOperationError(publisher.FailureIO, "write run", "", "", err)
	}

	state.IsRunning = false
	state.CurrentTarget = nil
	state.LastRunID = &run.ID
	state.LastRunTime = &run.Timestamp
	state.TotalRuns++
	state.UpdatedAt = time.Now().UnixMilli()
	if err := c.store.WriteState(state); err != nil {
		return Run{}, publisher.NewOperationError(publisher.FailureIO, "write state", "", "", err)
	}

	if c.recorder != nil {
		c.recorder.RunFinished("steam", run.Status, run.DurationMS)
	}
	c.log(map[string]any{
		"family": "steam", "event": "run_completed", "runId": run.ID,
		"projectId": run.ProjectID, "status": string(run.Status),
	})
	publisher.AuditLog(c.store.NamespaceDir(), map[string]any{
		"family": "steam", "command": "execute", "runId": run.ID, "outcome": string(run.Status),
	})

	if state.Config.PublishRetention > 0 && c.history != nil {
		if _, err := c.history.Prune(state.Config.PublishRetention); err != nil {
			c.log(map[string]any{"family": "steam", "event": "prune_failed", "error": err.Error()})
		}
	}

	return run, nil
}

// Cancel flips isRunning off for an in-flight run. It does not
// terminate any external steamcmd process already spawned; see
// DESIGN.md for why that is intentional. Returns false if no run was
// in flight.
func (c *RunCoordinator) Cancel() (bool, error) {
	state, ok, err := c.store.Read()
	if err != nil {
		return false, publisher.NewOperationError(publisher.FailureIO, "read state", "", "", err)
	}
	if !ok {
		return false, publisher.PreconditionError("cancel", fmt.Errorf("publisher namespace is not initialized"))
	}
	if !state.IsRunning {
		return false, nil
	}
	state.IsRunning = false
	state.CurrentTarget = nil
	state.UpdatedAt = time.Now().UnixMilli()
	if err := c.store.WriteState(state); err != nil {
		return false, publisher.NewOperationError(publisher.FailureIO, "write state", "", "", err)
	}
	publisher.AuditLog(c.store.NamespaceDir(), map[string]any{"family": "steam", "command": "cancel", "outcome": "cancelled"})
	return true, nil
}

func resolveRequestedTargets(all []publisher.TargetEntry, requestedKeys []string) []publisher.TargetEntry {
	enabled := make([]publisher.TargetEntry, 0, len(all))
	for _, t := range all {
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}
	if requestedKeys == nil {
		return enabled
	}
	wanted := map[string]bool{}
	for _, k := range requestedKeys {
		wanted[k] = true
	}
	out := make([]publisher.TargetEntry, 0, len(enabled))
	for _, t := range enabled {
		if wanted[t.Key] {
			out = append(out, t)
		}
	}
	return out
}

func resolveBranch(cfg Config, opts publisher.ExecOptions) string {
	if opts.Branch != "" {
		return opts.Branch
	}
	return cfg.Branch
}

func resolveDescription(cfg Config, opts publisher.ExecOptions) string {
	if opts.BuildDescription != "" {
		return opts.BuildDescription
	}
	return cfg.BuildDescription
}

func resolveTriggeredBy(triggeredBy string) string {
	if triggeredBy == "" {
		return "manual"
	}
	return triggeredBy
}

func dryRunResult(target publisher.TargetEntry, argv []string) publisher.TargetResult {
	now := time.Now().UnixMilli()
	return publisher.TargetResult{
		TargetKey:   target.Key,
		Status:      publisher.StatusSucceeded,
		StartedAt:   now,
		CompletedAt: now,
		Logs:        []string{fmt.Sprintf("(dry-run) steamcmd %s", encodeArgv(argv))},
	}
}

func encodeArgv(argv []string) string {
	out := ""
	for i, a := range argv {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}

func emitProgress(fn ProgressFunc, targetKey, message string) {
	if fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(targetKey, message)
}
