package webpublisher

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
	p := newPublisherWithInit(t)

	updated, err := p.ConfigManager.Update(Config{BaseConfig: publisher.BaseConfig{UploadTimeoutMS: 123456}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.UploadTimeoutMS != 123456 {
		t.Fatalf("UploadTimeoutMS = %d, want 123456", updated.UploadTimeoutMS)
	}
	if updated.ProjectID != "p" {
		t.Fatalf("expected unmodified ProjectID to be preserved, got %q", updated.ProjectID)
	}

	state, _, err := p.Store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if state.Config.UploadTimeoutMS != 123456 {
		t.Fatalf("persisted config not updated: %+v", state.Config)
	}
}

func TestConfigManagerSetTargetEnabledUnknownKey(t *testing.T) {
	p := newPublisherWithInit(t)
	_, ok, err := p.ConfigManager.SetTargetEnabled("does-not-exist", false)
	if err != nil {
		t.Fatalf("SetTargetEnabled: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for an unknown target key")
	}
}

func TestConfigManagerAddTargetRejectsDuplicate(t *testing.T) {
	p := newPublisherWithInit(t)
	existing := publisher.TargetEntry{Key: "netlify", Kind: KindNetlify, Enabled: true, ArtifactDirectory: "dist"}

	added, err := p.ConfigManager.AddTarget(existing)
	if err != nil {
		t.Fatalf("AddTarget: %v", err)
	}
	if added {
		t.Fatal("expected AddTarget to reject a duplicate key")
	}
}

func TestConfigManagerAddThenRemoveTargetRestoresList(t *testing.T) {
	p := newPublisherWithInit(t)
	before, err := p.ConfigManager.GetEnabledTargets()
	if err != nil {
		t.Fatalf("GetEnabledTargets: %v", err)
	}

	entry := publisher.TargetEntry{Key: "extra-site", Kind: KindNetlify, Enabled: true, ArtifactDirectory: "dist"}
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
	p := newPublisherWithInit(t)
	removed, err := p.ConfigManager.RemoveTarget("does-not-exist")
	if err != nil {
		t.Fatalf("RemoveTarget: %v", err)
	}
	if removed {
		t.Fatal("expected RemoveTarget to return false for an unknown key")
	}
}
