package webpublisher

import "testing"

func TestValidateRejectsEmptyTargets(t *testing.T) {
	cfg := DefaultConfig("p", "/tmp/p")
	cfg.Targets = nil
	result := Validate(cfg)
	if result.Valid {
		t.Fatal("expected invalid config with no targets")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := DefaultConfig("p", "/tmp/p")
	result := Validate(cfg)
	if !result.Valid {
		t.Fatalf("expected valid defaults, got errors: %v", result.Errors)
	}
}

func TestValidateRejectsUnsupportedKind(t *testing.T) {
	cfg := DefaultConfig("p", "/tmp/p")
	cfg.Targets[0].Kind = "ftp"
	result := Validate(cfg)
	if result.Valid {
		t.Fatal("expected invalid config for unsupported kind")
	}
}

func TestValidateWarnsWhenNoneEnabled(t *testing.T) {
	cfg := DefaultConfig("p", "/tmp/p")
	cfg.Targets[0].Enabled = false
	result := Validate(cfg)
	if !result.Valid {
		t.Fatalf("expected valid config, got errors: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a warning when no targets are enabled")
	}
}
