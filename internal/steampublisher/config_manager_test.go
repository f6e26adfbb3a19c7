package steampublisher

import (
	"testing"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

func TestConfigManagerRequiresInit(t *testing.T) {
	dir := t.TempDir()
	store := NewStateStore(dir)
	mgr := NewConfigManager(store)

	if _, err := mgr.Update(Config{}); !publisher.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestConfigManagerUpdateMergesPartial(t *testing.T) {
	p, _ := newPublisherWithInit(t)

	updated, err := p.ConfigManager.Update(Config{BuildDescription: "new build"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.BuildDescription != "new build" {
		t.Fatalf("BuildDescription = %q, want \"new build\"", updated.BuildDescription)
	}
	if updated.AppID != "480" {
		t.Fatalf("expected unmodified AppID to be preserved, got %q", updated.AppID)
	}

	state, _, err := p.Store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if state.Config.BuildDescription != "new build" {
		t.Fatalf("persisted config not updated: %+v", state.Config)
	}
}

func TestConfigManagerSetTargetEnabledUnknownKey(t *testing.T) {
	p, _ := newPublisherWithInit(t)
	_, ok, err := p.ConfigManager.SetTargetEnabled("does-not-exist", false)
	if err != nil {
		t.Fatalf("SetTargetEnabled: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for an unknown target key")
	}
}

func TestConfigManagerAddTargetRejectsDuplicate(t *testing.T) {
	p, _ := newPublisherWithInit(t)
	existing := publisher.TargetEntry{Key: "1000001", Kind: targetKindDepot, Enabled: true, ArtifactDirectory: "build/depot1"}

	added, err := p.ConfigManager.AddTarget(existing)
	if err != nil {
		t.Fatalf("AddTarget: %v", err)
	}
	if added {
		t.Fatal("expected AddTarget to reject a duplicate key")
	}
}

func TestConfigManagerAddThenRemoveTargetRestoresList(t *testing.T) {
	p, _ := newPublisherWithInit(t)
	before, err := p.ConfigManager.GetEnabledTargets()
	if err != nil {
		t.Fatalf("GetEnabledTargets: %v", err)
	}

	entry := publisher.TargetEntry{Key: "1000099", Kind: targetKindDepot, Enabled: true, ArtifactDirectory: "build/depot99"}
	added, err := p.ConfigManager.AddTarget(entry)
	if err != nil || !added {
		t.Fatalf("AddTarget: added=%v err=%v", added, err)
	}
	removed, err := p.ConfigManager.RemoveTarget(entry.Key)
	if err != nil || !removed {
		t.Fatalf("RemoveTarget: removed=%v err=%v", removed, err)
	}

	after, err := p.ConfigManager.GetEnabledTargets()
	if err != nil {
		t.Fatalf("GetEnabledTargets: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("target list len = %d, want %d (restored)", len(after), len(before))
	}
}

func TestConfigManagerRemoveTargetUnknownKey(t *testing.T) {
	p, _ := newPublisherWithInit(t)
	removed, err := p.ConfigManager.RemoveTarget("does-not-exist")
	if err != nil {
		t.Fatalf("RemoveTarget: %v", err)
	}
	if removed {
		t.Fatal("expected RemoveTarget to return false for an unknown key")
	}
}
