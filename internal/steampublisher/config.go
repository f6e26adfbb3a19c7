// Package steampublisher implements the Steam depot publishing family:
// StateStore, ConfigManager, ArgumentBuilder, Executor, RunCoordinator,
// HistoryStore, and Formatter, wired around the shared primitives in
// internal/publisher the same way each of the teacher's *bridge
// packages wires internal/apibridge around one vendor API.
package steampublisher

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// namespaceDirName is the per-project directory this family owns,
// matching the `.steam-publisher/` layout in spec §6.
const namespaceDirName = ".steam-publisher"

// stateRootEnvKey lets an operator relocate the namespace root outside
// the project tree, mirroring si's SI_PAAS_STATE_ROOT override.
const stateRootEnvKey = "STEAM_PUBLISHER_STATE_ROOT"

const targetKindDepot = "depot"

var appIDPattern = regexp.MustCompile(`^\d+$`)

// Config is the Steam family's PublishConfig: the shared target-list
// fields plus Steam's own header fields.
type Config struct {
	publisher.BaseConfig
	AppID            string `json:"appId"`
	SteamCmdPath     string `json:"steamCmdPath"`
	Username         string `json:"username,omitempty"`
	Branch           string `json:"branch"`
	BuildDescription string `json:"buildDescription,omitempty"`
	IfChanged        bool   `json:"ifChanged"`
	Preview          bool   `json:"preview"`
}

// DepotConfig is the kind-specific shape carried in a depot target's
// TargetEntry.KindConfig.
type DepotConfig struct {
	ExcludePatterns []string `json:"excludePatterns,omitempty"`
}

func decodeDepotConfig(entry publisher.TargetEntry) (DepotConfig, error) {
	var cfg DepotConfig
	if len(entry.KindConfig) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(entry.KindConfig, &cfg); err != nil {
		return DepotConfig{}, fmt.Errorf("decode depot config for %q: %w", entry.Key, err)
	}
	return cfg, nil
}

// DefaultConfig returns a freshly allocated Config with three default
// depot targets, matching the testable scenario in spec §8.1/§8.2.
func DefaultConfig(projectID, projectPath string) Config {
	return Config{
		BaseConfig: publisher.BaseConfig{
			ProjectID:        projectID,
			ProjectPath:      projectPath,
			Targets:          GetDefaultTargets(),
			UploadTimeoutMS:  600000,
			PublishRetention: 0,
		},
		AppID:        "",
		SteamCmdPath: "steamcmd",
		Branch:       "default",
		IfChanged:    false,
		Preview:      false,
	}
}

// GetDefaultTargets returns three default depot targets, freshly
// allocated on every call.
func GetDefaultTargets() []publisher.TargetEntry {
	return []publisher.TargetEntry{
		{Key: "1000001", Kind: targetKindDepot, Enabled: true, ArtifactDirectory: "build/depot1"},
		{Key: "1000002", Kind: targetKindDepot, Enabled: true, ArtifactDirectory: "build/depot2"},
		{Key: "1000003", Kind: targetKindDepot, Enabled: true, ArtifactDirectory: "build/depot3"},
	}
}

// GetSupportedTargetKinds returns the closed set of target kinds this
// family understands.
func GetSupportedTargetKinds() []string {
	return []string{targetKindDepot}
}

// ValidateAppID reports whether id is a non-empty run of digits, the
// identifier-parser helper spec §6 asks every family to expose.
func ValidateAppID(id string) bool {
	return id != "" && appIDPattern.MatchString(id)
}

func validateDepotID(key string) bool {
	return key != "" && appIDPattern.MatchString(key)
}

// Validate implements ConfigManager.validate. It never mutates cfg and
// never returns an error; structural problems are reported through the
// ValidationResult.
func Validate(cfg Config) publisher.ValidationResult {
	var errs, warnings []string

	if strings.TrimSpace(cfg.ProjectID) == "" {
		errs = append(errs, "projectId is required")
	}
	if strings.TrimSpace(cfg.ProjectPath) == "" {
		errs = append(errs, "projectPath is required")
	}
	if !ValidateAppID(cfg.AppID) {
		errs = append(errs, "appId is required and must be numeric")
	}
	if len(cfg.Targets) == 0 {
		errs = append(errs, "targets must not be empty")
	}

	seenKeys := map[string]bool{}
	anyEnabled := false
	for _, t := range cfg.Targets {
		if t.Enabled {
			anyEnabled = true
		}
		if t.Key == "" {
			errs = append(errs, "every target requires a non-empty key")
		}
		if t.ArtifactDirectory == "" {
			errs = append(errs, fmt.Sprintf("target %q requires a non-empty artifactDirectory", t.Key))
		}
		if seenKeys[t.Key] {
			errs = append(errs, fmt.Sprintf("duplicate target key %q", t.Key))
		}
		seenKeys[t.Key] = true
		if t.Kind != targetKindDepot {
			errs = append(errs, fmt.Sprintf("target %q has unsupported kind %q", t.Key, t.Kind))
			continue
		}
		if !validateDepotID(t.Key) {
			errs = append(errs, fmt.Sprintf("depot id %q must be numeric", t.Key))
		}
	}
	if !anyEnabled && len(cfg.Targets) > 0 {
		warnings = append(warnings, "no targets are enabled")
	}

	if cfg.UploadTimeoutMS <= 0 {
		errs = append(errs, "uploadTimeout must be > 0")
	}
	if cfg.PublishRetention < 0 {
		errs = append(errs, "publishRetention must be >= 0")
	}

	return publisher.ValidationResult{Valid: len(errs) == 0, Errors: errs, Warnings: warnings}
}
