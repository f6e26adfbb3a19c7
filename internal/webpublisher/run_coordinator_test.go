package webpublisher

import (
	"context"
	"testing"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

type scriptedExecutor struct {
	results []publisher.ExecResult
	errs    []error
	calls   int
}

func (s *scriptedExecutor) Run(ctx context.Context, req publisher.ExecRequest) (publisher.ExecResult, error) {
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return s.results[i], err
}

func twoTargetConfig(dir string) Config {
	cfg := DefaultConfig("p", dir)
	cfg.Targets = []publisher.TargetEntry{
		targetWithConfig("netlify", KindNetlify, "dist", `{"siteId":"s","authToken":"t"}`),
		targetWithConfig("pages", KindGHPages, "dist", `{"branch":"gh-pages","repo":"org/repo"}`),
	}
	return cfg
}

func newPublisherWithInit(t *testing.T) *Publisher {
	t.Helper()
	dir := t.TempDir()
	cfg := twoTargetConfig(dir)
	p := New(dir, nil, nil)
	created, err := p.Init(cfg)
	if err != nil || !created {
		t.Fatalf("Init: created=%v err=%v", created, err)
	}
	return p
}

func TestExecuteDryRunSucceedsAllTargets(t *testing.T) {
	p := newPublisherWithInit(t)
	run, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{}, nil, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if run.Status != publisher.StatusSucceeded {
		t.Fatalf("status = %s, want succeeded", run.Status)
	}
	if len(run.Results) != 2 {
		t.Fatalf("results len = %d, want 2", len(run.Results))
	}
}

func TestExecuteMixedResults(t *testing.T) {
	p := newPublisherWithInit(t)
	exec := &scriptedExecutor{results: []publisher.ExecResult{
		{ExitCode: 0, Stdout: "deployed to https://site.example/preview deploy_id: abc123"},
		{ExitCode: 1, Stderr: "fail"},
	}}

	run, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{}, exec, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if run.Status != publisher.StatusFailed {
		t.Fatalf("overall status = %s, want failed", run.Status)
	}
	if run.Results[0].Status != publisher.StatusSucceeded {
		t.Fatalf("target 0 = %+v, want succeeded", run.Results[0])
	}
	if run.Results[0].Outputs["deployUrl"] != "https://site.example/preview" {
		t.Fatalf("expected deployUrl extraction, got %v", run.Results[0].Outputs)
	}
	if run.Results[0].Outputs["deployId"] != "abc123" {
		t.Fatalf("expected deployId extraction, got %v", run.Results[0].Outputs)
	}
	if run.Results[1].Status != publisher.StatusFailed || run.Results[1].Error != "fail" {
		t.Fatalf("target 1 = %+v, want failed/fail", run.Results[1])
	}
}

func TestExecuteRejectsWhileRunning(t *testing.T) {
	p := newPublisherWithInit(t)
	state, _, _ := p.Store.Read()
	state.IsRunning = true
	_ = p.Store.WriteState(state)

	_, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{}, nil, nil)
	if !publisher.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestExecuteRequiresInit(t *testing.T) {
	dir := t.TempDir()
	p := New(dir, nil, nil)
	_, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{}, nil, nil)
	if !publisher.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestCancelIdleReturnsFalse(t *testing.T) {
	p := newPublisherWithInit(t)
	cancelled, err := p.Coordinator.Cancel()
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled {
		t.Fatal("expected false for idle cancel")
	}
}
