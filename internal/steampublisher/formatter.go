package steampublisher

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

// OneLine renders spec §4.7's single-line summary.
func OneLine(run Run) string {
	durationSec := float64(run.DurationMS) / 1000.0
	return fmt.Sprintf("%s [%s] app %s -> %s %.1fs",
		publisher.ShortRunID(run.ID), statusIcon(run.Status), run.AppID,
		strings.Join(run.Depots, ","), durationSec)
}

// Full renders the multi-line header + results table.
func Full(run Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", run.ID)
	fmt.Fprintf(&b, "Status: %s\n", run.Status)
	fmt.Fprintf(&b, "App: %s\n", run.AppID)
	fmt.Fprintf(&b, "TriggeredBy: %s\n", run.TriggeredBy)
	fmt.Fprintf(&b, "Started: %s\n", publisher.FormatTimestamp(run.Timestamp))
	fmt.Fprintf(&b, "Duration: %s\n", publisher.FormatDuration(run.DurationMS))
	if run.BuildDescription != "" {
		fmt.Fprintf(&b, "Description: %s\n", run.BuildDescription)
	}
	if run.Branch != "" {
		fmt.Fprintf(&b, "Branch: %s\n", run.Branch)
	}
	if len(run.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(run.Tags, ", "))
	}
	b.WriteString("\nResults:\n")

	headers := []string{"", "Depot", "Status", "Duration", "Detail"}
	rows := make([][]string, 0, len(run.Results))
	for _, r := range run.Results {
		detail := r.Error
		if detail == "" {
			detail = formatOutputs(r.Outputs)
		}
		rows = append(rows, []string{
			statusIcon(r.Status), r.TargetKey, string(r.Status),
			publisher.FormatDuration(r.DurationMS), detail,
		})
	}
	for _, line := range publisher.RenderAlignedTable(headers, rows, 2) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders spec §4.7's one-line aggregate summary.
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
	detail := strings.Join(parts, ", ")
	return fmt.Sprintf("Steam Publish %s: %s (%d total) app %s",
		publisher.ShortRunID(run.ID), detail, total, run.AppID)
}

func formatOutputs(outputs map[string]any) string {
	if len(outputs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(outputs))
	for _, key := range []string{"manifestId", "bytesUploaded"} {
		if v, ok := outputs[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", key, v))
		}
	}
	return strings.Join(parts, " ")
}
