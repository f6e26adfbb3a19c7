package mobilepublisher

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

type panicExecutor struct{}

func (panicExecutor) Run(ctx context.Context, req publisher.ExecRequest) (publisher.ExecResult, error) {
	panic("executor exploded")
}

func twoTargetConfig(dir string) Config {
	cfg := DefaultConfig("p", dir)
	cfg.Targets = []publisher.TargetEntry{
		targetWithConfig("google-play", KindGooglePlay, "build/android", `{"packageName":"com.example.app","track":"production","releaseStatus":"completed"}`),
		targetWithConfig("app-store", KindAppStore, "build/ios", `{"bundleId":"com.example.app","apiKeyId":"k","apiIssuer":"i"}`),
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

func TestExecuteThreadsAppVersionIntoRunHeader(t *testing.T) {
	p := newPublisherWithInit(t)
	run, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{AppVersion: "2.0.1"}, nil, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if run.AppVersion != "2.0.1" {
		t.Fatalf("AppVersion = %q, want \"2.0.1\"", run.AppVersion)
	}
}

func TestExecuteMixedResults(t *testing.T) {
	p := newPublisherWithInit(t)
	exec := &scriptedExecutor{results: []publisher.ExecResult{
		{ExitCode: 0, Stdout: "upload ok, version code: 42"},
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
	if run.Results[0].Outputs["versionCode"] != "42" {
		t.Fatalf("expected versionCode extraction, got %v", run.Results[0].Outputs)
	}
	if run.Results[1].Status != publisher.StatusFailed || run.Results[1].Error != "fail" {
		t.Fatalf("target 1 = %+v, want failed/fail", run.Results[1])
	}
}

func TestExecutePanicRecoveredAsFailure(t *testing.T) {
	p := newPublisherWithInit(t)
	run, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{}, panicExecutor{}, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if run.Status != publisher.StatusFailed {
		t.Fatalf("overall status = %s, want failed", run.Status)
	}
	for _, r := range run.Results {
		if r.Status != publisher.StatusFailed {
			t.Fatalf("target %q = %+v, want failed", r.TargetKey, r)
		}
	}

	state, _, err := p.Store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if state.IsRunning {
		t.Fatal("expected isRunning cleared after a panicking executor")
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

func TestExecuteOnlyRunsEnabledIntersectedWithRequested(t *testing.T) {
	p := newPublisherWithInit(t)
	run, err := p.Coordinator.Execute(context.Background(), publisher.ExecOptions{Targets: []string{"google-play"}}, nil, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(run.Results) != 1 || run.Results[0].TargetKey != "google-play" {
		t.Fatalf("expected only google-play to run, got %+v", run.Results)
	}
}
