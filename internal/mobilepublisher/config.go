// Package mobilepublisher implements the mobile app store publishing
// family (Google Play via supply/fastlane, App Store via xcrun altool),
// mirroring internal/steampublisher's and internal/webpublisher's
// component layout around the shared internal/publisher primitives.
package mobilepublisher

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

const (
	stateRootEnvKey = "MOBILE_PUBLISHER_STATE_ROOT"
	namespaceDir    = ".mobile-publisher"

	KindGooglePlay = "google-play"
	KindAppStore   = "app-store"
)

var supportedKinds = map[string]bool{KindGooglePlay: true, KindAppStore: true}

// Config is the Mobile family's PublishConfig: the shared fields plus
// the family-wide appVersion header field.
type Config struct {
	publisher.BaseConfig
	AppVersion string `json:"appVersion"`
}

func DefaultConfig(projectID, projectPath string) Config {
	return Config{
		BaseConfig: publisher.BaseConfig{
			ProjectID:        projectID,
			ProjectPath:      projectPath,
			Targets:          GetDefaultTargets(),
			UploadTimeoutMS:  900000,
			PublishRetention: 0,
		},
	}
}

func GetDefaultTargets() []publisher.TargetEntry {
	return []publisher.TargetEntry{
		{
			Key: "google-play", Kind: KindGooglePlay, Enabled: true, ArtifactDirectory: "build/android",
			KindConfig: json.RawMessage(`{"packageName":"com.example.app","track":"internal","releaseStatus":"completed"}`),
		},
	}
}

func GetSupportedTargetKinds() []string {
	return []string{KindGooglePlay, KindAppStore}
}

// Validate implements ConfigManager.validate.
func Validate(cfg Config) publisher.ValidationResult {
	var errs, warnings []string

	if strings.TrimSpace(cfg.ProjectID) == "" {
		errs = append(errs, "projectId is required")
	}
	if strings.TrimSpace(cfg.ProjectPath) == "" {
		errs = append(errs, "projectPath is required")
	}
	if len(cfg.Targets) == 0 {
		errs = append(errs, "targets must not be empty")
	}

	seen := map[string]bool{}
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
		if seen[t.Key] {
			errs = append(errs, fmt.Sprintf("duplicate target key %q", t.Key))
		}
		seen[t.Key] = true
		if !supportedKinds[t.Kind] {
			errs = append(errs, fmt.Sprintf("target %q has unsupported kind %q", t.Key, t.Kind))
			continue
		}
		switch t.Kind {
		case KindGooglePlay:
			var gp GooglePlayConfig
			_ = decodeKindConfig(t, &gp)
			if strings.TrimSpace(gp.PackageName) == "" {
				errs = append(errs, fmt.Sprintf("target %q (google-play) requires packageName", t.Key))
			}
		case KindAppStore:
			var as AppStoreConfig
			_ = decodeKindConfig(t, &as)
			if strings.TrimSpace(as.BundleID) == "" {
				errs = append(errs, fmt.Sprintf("target %q (app-store) requires bundleId", t.Key))
			}
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
