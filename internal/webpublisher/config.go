// Package webpublisher implements the static-site hosting publishing
// family (netlify, vercel, gh-pages, s3, cloudflare-pages), mirroring
// internal/steampublisher's component layout around the same shared
// internal/publisher primitives.
package webpublisher

import (
	"fmt"
	"strings"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

const (
	stateRootEnvKey = "WEB_PUBLISHER_STATE_ROOT"
	namespaceDir    = ".web-publisher"

	KindNetlify         = "netlify"
	KindVercel          = "vercel"
	KindGHPages         = "gh-pages"
	KindS3              = "s3"
	KindCloudflarePages = "cloudflare-pages"
)

// Config is the Web family's PublishConfig. Web adds no header fields
// beyond the shared BaseConfig — each provider's credentials/settings
// live in its target's KindConfig.
type Config struct {
	publisher.BaseConfig
}

func DefaultConfig(projectID, projectPath string) Config {
	return Config{BaseConfig: publisher.BaseConfig{
		ProjectID:        projectID,
		ProjectPath:      projectPath,
		Targets:          GetDefaultTargets(),
		UploadTimeoutMS:  300000,
		PublishRetention: 0,
	}}
}

func GetDefaultTargets() []publisher.TargetEntry {
	return []publisher.TargetEntry{
		{Key: "netlify", Kind: KindNetlify, Enabled: true, ArtifactDirectory: "dist"},
	}
}

func GetSupportedTargetKinds() []string {
	return []string{KindNetlify, KindVercel, KindGHPages, KindS3, KindCloudflarePages}
}

var supportedKinds = map[string]bool{
	KindNetlify: true, KindVercel: true, KindGHPages: true, KindS3: true, KindCloudflarePages: true,
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
