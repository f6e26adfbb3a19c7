package steampublisher

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

var (
	manifestIDPattern     = regexp.MustCompile(`(?i)manifest\s+id[:\s]+(\d+)`)
	bytesUploadedPattern  = regexp.MustCompile(`(?i)([\d,]+)\s*bytes?`)
	steamBenignExitCode   = 7
	defaultSteamCmdBinary = "steamcmd"
)

// RunTarget invokes exec against the depot target's argv and normalizes
// the outcome to a TargetResult, applying the opportunistic manifest
// id / bytes-uploaded extraction from spec §4.4. Exit codes 0 and 7
// (steamcmd's benign "nothing changed" exit) both count as success.
func RunTarget(ctx context.Context, exec publisher.Executor, cfg Config, target publisher.TargetEntry, argv []string, timeout time.Duration) publisher.TargetResult {
	startedAt := nowMS()
	result := publisher.TargetResult{TargetKey: target.Key, StartedAt: startedAt}

	binary := cfg.SteamCmdPath
	if binary == "" {
		binary = defaultSteamCmdBinary
	}

	var logs []string
	execResult, err := exec.Run(ctx, publisher.ExecRequest{
		Program: binary,
		Args:    argv,
		Dir:     cfg.ProjectPath,
		Timeout: timeout,
		OnLine:  func(line string) { logs = append(logs, line) },
	})
	completedAt := nowMS()
	result.CompletedAt = completedAt
	result.DurationMS = completedAt - startedAt
	result.Logs = logs

	if err != nil {
		result.Status = publisher.StatusFailed
		result.Error = err.Error()
		return result
	}
	if execResult.ExitCode != 0 && execResult.ExitCode != steamBenignExitCode {
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
	if m := manifestIDPattern.FindStringSubmatch(combined); len(m) == 2 {
		outputs["manifestId"] = m[1]
	}
	if m := bytesUploadedPattern.FindStringSubmatch(combined); len(m) == 2 {
		if n, convErr := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64); convErr == nil {
			outputs["bytesUploaded"] = n
		}
	}
	if len(outputs) > 0 {
		result.Outputs = outputs
	}
	return result
}

func nowMS() int64 {
	return time.Now().UnixMilli()
}
