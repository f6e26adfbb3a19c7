package webpublisher

import (
	"context"
	"testing"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

func executeN(t *testing.T, p *Publisher, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{}, nil, nil); err != nil {
			t.Fatalf("Execute #%d: %v", i, err)
		}
	}
}

func TestHistoryListPagination(t *testing.T) {
	p := newPublisherWithInit(t)
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
}

func TestRetentionPrunesOldest(t *testing.T) {
	dir := t.TempDir()
	cfg := twoTargetConfig(dir)
	cfg.PublishRetention = 1
	p := New(dir, nil, nil)
	if _, err := p.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	executeN(t, p, 3)

	result, err := p.History.List(publisher.Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.TotalCount != 1 {
		t.Fatalf("totalCount = %d, want 1 after retention", result.TotalCount)
	}
}

func TestPruneReturnsExactDeletedCount(t *testing.T) {
	p := newPublisherWithInit(t)
	executeN(t, p, 4)

	deleted, err := p.History.Prune(1)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d, want 3", deleted)
	}
}
