package mobilepublisher

import "testing"

func TestStateStoreInitCreatesNamespace(t *testing.T) {
	dir := t.TempDir()
	cfg := twoTargetConfig(dir)
	store := NewStateStore(dir)

	created, err := store.Init(cfg)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !created {
		t.Fatal("expected fresh creation to return true")
	}
	if !store.Exists() {
		t.Fatal("expected namespace to exist after Init")
	}

	state, ok, err := store.Read()
	if err != nil || !ok {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}
	if state.TotalRuns != 0 || state.IsRunning || state.LastRunID != nil {
		t.Fatalf("unexpected initial state: %+v", state)
	}
}

func TestStateStoreInitIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := twoTargetConfig(dir)
	store := NewStateStore(dir)

	if _, err := store.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	created, err := store.Init(cfg)
	if err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if created {
		t.Fatal("expected second Init to report no-op")
	}
}

func TestStateStoreDestroyThenInitAgain(t *testing.T) {
	dir := t.TempDir()
	cfg := twoTargetConfig(dir)
	store := NewStateStore(dir)

	if _, err := store.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	destroyed, err := store.Destroy()
	if err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if !destroyed {
		t.Fatal("expected Destroy to report true")
	}
	if store.Exists() {
		t.Fatal("expected namespace gone after Destroy")
	}

	created, err := store.Init(cfg)
	if err != nil {
		t.Fatalf("re-Init: %v", err)
	}
	if !created {
		t.Fatal("expected re-Init after Destroy to succeed")
	}
}

func TestStateStoreDestroyMissingNamespaceReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	store := NewStateStore(dir)
	destroyed, err := store.Destroy()
	if err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if destroyed {
		t.Fatal("expected Destroy on a missing namespace to return false")
	}
}
