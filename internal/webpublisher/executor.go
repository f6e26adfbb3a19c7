package webpublisher

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

var (
	urlPattern      = regexp.MustCompile(`https?://\S+`)
	deployIDPattern = regexp.MustCompile(`(?i)deploy[_\s]*id[:\s]+([\w-]+)`)
)

// RunTarget invokes exec for a web hosting target and normalizes the
// outcome, applying the opportunistic deployUrl/deployId extraction
// from spec §4.4.
func RunTarget(ctx context.Context, exec publisher.Executor, cfg Config, target publisher.TargetEntry, argv []string, timeout time.Duration) publisher.TargetResult {
	startedAt := time.Now().UnixMilli()
	result := publisher.TargetResult{TargetKey: target.Key, StartedAt: startedAt}

	var logs []string
	execResult, err := exec.Run(ctx, publisher.ExecRequest{
		Program: ProgramForKind(target.Kind),
		Args:    argv,
		Dir:     cfg.ProjectPath,
		Timeout: timeout,
		OnLine:  func(line string) { logs = append(logs, line) },
	})
	completedAt := time.Now().UnixMilli()
	result.CompletedAt = completedAt
	result.DurationMS = completedAt - startedAt
	result.Logs = logs

	if err != nil {
		result.Status = publisher.StatusFailed
		result.Error = err.Error()
		return result
	}
	if execResult.ExitCode != 0 {
		result.Status = publisher.StatusFailed
		result.Error = strings.TrimSpace(execResult.Stderr)
		if result.Error == "" {
			result.Error = strings.TrimSpace(execResult.Stdout)
		}
		return result
	}

	result.Status = publisher.StatusSucceeded
	outputs := map[string]any{}
	combined := execResult.Stdout + "\n" + execResult.Stderr
	if m := urlPattern.FindString(combined); m != "" {
		outputs["deployUrl"] = m
	}
	if m := deployIDPattern.FindStringSubmatch(combined); len(m) == 2 {
		outputs["deployId"] = m[1]
	}
	if len(outputs) > 0 {
		result.Outputs = outputs
	}
	return result
}
