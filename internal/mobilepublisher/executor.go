package mobilepublisher

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

var (
	versionCodePattern = regexp.MustCompile(`(?i)version\s*code[:\s]+(\d+)`)
	buildNumberPattern = regexp.MustCompile(`(?i)build\s*(?:number|version)[:\s]+([\d.]+)`)
)

// RunTarget invokes exec for a mobile store target and normalizes the
// outcome, applying the opportunistic versionCode/buildNumber
// extraction from spec §4.4.
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
	switch target.Kind {
	case KindGooglePlay:
		if m := versionCodePattern.FindStringSubmatch(combined); len(m) == 2 {
			outputs["versionCode"] = m[1]
		}
	case KindAppStore:
		if m := buildNumberPattern.FindStringSubmatch(combined); len(m) == 2 {
			outputs["buildNumber"] = m[1]
		}
	}
	if len(outputs) > 0 {
		result.Outputs = outputs
	}
	return result
}
