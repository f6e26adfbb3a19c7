package steampublisher

import (
	"context"
	"testing"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

func executeN(t *testing.T, p *Publisher, n int) []Run {
	t.Helper()
	runs := make([]Run, 0, n)
	for i := 0; i < n; i++ {
		run, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{}, nil, nil)
		if err != nil {
			t.Fatalf("Execute #%d: %v", i, err)
		}
		runs = append(runs, run)
	}
	return runs
}

func TestHistoryListOrderingAndPagination(t *testing.T) {
	p, _ := newPublisherWithInit(t)
	executeN(t, p, 3)

	result, err := p.History.List(publisher.Query{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.TotalCount != 3 {
		t.Fatalf("totalCount = %d, want 3", result.TotalCount)
	}
	if len(result.Runs) != 2 {
		t.Fatalf("page len = %d, want 2", len(result.Runs))
	}
	if result.Runs[0].Timestamp < result.Runs[1].Timestamp {
		t.Fatalf("expected timestamp-desc ordering, got %v", result.Runs)
	}
}

func TestHistoryListFiltersByStatus(t *testing.T) {
	p, _ := newPublisherWithInit(t)
	executeN(t, p, 2)
	failing := &scriptedExecutor{results: []publisher.ExecResult{{ExitCode: 1, Stderr: "boom"}}}
	if _, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{Targets: []string{"1000001"}}, failing, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	result, err := p.History.List(publisher.Query{Status: publisher.StatusSucceeded})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, r := range result.Runs {
		if r.Status != publisher.StatusSucceeded {
			t.Fatalf("expected only succeeded runs, got %s", r.Status)
		}
	}
	if result.TotalCount != 2 {
		t.Fatalf("totalCount = %d, want 2", result.TotalCount)
	}
}

func TestRetentionPrunesOldestRuns(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.AppID = "480"
	cfg.PublishRetention = 2
	p := New(dir, nil, nil)
	if _, err := p.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	executeN(t, p, 3)

	result, err := p.History.List(publisher.Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.TotalCount != 2 {
		t.Fatalf("totalCount = %d, want 2 after retention pruning", result.TotalCount)
	}
}

func TestPruneDeletesExactCount(t *testing.T) {
	p, _ := newPublisherWithInit(t)
	executeN(t, p, 5)

	deleted, err := p.History.Prune(2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d, want 3", deleted)
	}
	result, err := p.History.List(publisher.Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.TotalCount != 2 {
		t.Fatalf("totalCount after prune = %d, want 2", result.TotalCount)
	}
}

func TestStatsAggregation(t *testing.T) {
	p, _ := newPublisherWithInit(t)
	executeN(t, p, 2)
	failing := &scriptedExecutor{results: []publisher.ExecResult{{ExitCode: 1, Stderr: "boom"}}}
	if _, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{Targets: []string{"1000001"}}, failing, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	stats, err := p.History.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalRuns != 3 {
		t.Fatalf("totalRuns = %d, want 3", stats.TotalRuns)
	}
	if stats.SuccessCount != 2 {
		t.Fatalf("successCount = %d, want 2", stats.SuccessCount)
	}
	if stats.FailureCount != 1 {
		t.Fatalf("failureCount = %d, want 1", stats.FailureCount)
	}
}
