package mobilepublisher

import (
	"fmt"
	"strings"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

func statusIcon(s publisher.Status) string {
	switch s {
	case publisher.StatusSucceeded, publisher.StatusSkipped:
		return "+"
	case publisher.StatusFailed:
		return "x"
	case publisher.StatusCancelled:
		return "-"
	default:
		return "?"
	}
}

func OneLine(run Run) string {
	durationSec := float64(run.DurationMS) / 1000.0
	return fmt.Sprintf("%s [%s] project %s -> %s %.1fs",
		publisher.ShortRunID(run.ID), statusIcon(run.Status), run.ProjectID,
		strings.Join(run.Targets, ","), durationSec)
}

func Full(run Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", run.ID)
	fmt.Fprintf(&b, "Status: %s\n", run.Status)
	fmt.Fprintf(&b, "Project: %s\n", run.ProjectID)
	if run.AppVersion != "" {
		fmt.Fprintf(&b, "AppVersion: %s\n", run.AppVersion)
	}
	fmt.Fprintf(&b, "TriggeredBy: %s\n", run.TriggeredBy)
	fmt.Fprintf(&b, "Started: %s\n", publisher.FormatTimestamp(run.Timestamp))
	fmt.Fprintf(&b, "Duration: %s\n", publisher.FormatDuration(run.DurationMS))
	if len(run.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(run.Tags, ", "))
	}
	b.WriteString("\nResults:\n")

	headers := []string{"", "Target", "Status", "Duration", "Detail"}
	rows := make([][]string, 0, len(run.Results))
	for _, r := range run.Results {
		detail := r.Error
		if detail == "" {
			detail = formatOutputs(r.Outputs)
		}
		rows = append(rows, []string{statusIcon(r.Status), r.TargetKey, string(r.Status), publisher.FormatDuration(r.DurationMS), detail})
	}
	for _, line := range publisher.RenderAlignedTable(headers, rows, 2) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func Summary(run Run) string {
	succeeded := len(SucceededTargets(run))
	failed := len(FailedTargets(run))
	total := len(run.Results)

	var parts []string
	if succeeded > 0 {
		parts = append(parts, fmt.Sprintf("%d succeeded", succeeded))
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	return fmt.Sprintf("Mobile Publish %s: %s (%d total) project %s",
		publisher.ShortRunID(run.ID), strings.Join(parts, ", "), total, run.ProjectID)
}

func formatOutputs(outputs map[string]any) string {
	if len(outputs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(outputs))
	for _, key := range []string{"versionCode", "buildNumber"} {
		if v, ok := outputs[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", key, v))
		}
	}
	return strings.Join(parts, " ")
}
