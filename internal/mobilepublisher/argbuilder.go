package mobilepublisher

import (
	"fmt"
	"path/filepath"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// BuildArgv synthesizes the argv for one mobile store target.
func BuildArgv(cfg Config, target publisher.TargetEntry, opts publisher.ExecOptions) ([]string, error) {
	abs, err := resolveArtifactDir(cfg, target)
	if err != nil {
		return nil, err
	}
	switch target.Kind {
	case KindGooglePlay:
		return buildGooglePlayArgv(target, abs, opts)
	case KindAppStore:
		return buildAppStoreArgv(target, abs, opts)
	default:
		return nil, fmt.Errorf("mobilepublisher: target %q has unsupported kind %q", target.Key, target.Kind)
	}
}

func resolveArtifactDir(cfg Config, target publisher.TargetEntry) (string, error) {
	if cfg.ProjectPath == "" {
		return "", fmt.Errorf("mobilepublisher: projectPath is required to resolve target %q", target.Key)
	}
	abs, err := filepath.Abs(filepath.Join(cfg.ProjectPath, target.ArtifactDirectory))
	if err != nil {
		return "", fmt.Errorf("mobilepublisher: resolve artifact dir for %q: %w", target.Key, err)
	}
	return abs, nil
}

func buildGooglePlayArgv(target publisher.TargetEntry, abs string, opts publisher.ExecOptions) ([]string, error) {
	var cfg GooglePlayConfig
	if err := decodeKindConfig(target, &cfg); err != nil {
		return nil, err
	}
	argv := []string{"upload"}
	if opts.DryRun {
		argv = append(argv, "--dry-run")
	}
	argv = append(argv, "--package-name", cfg.PackageName, "--track", cfg.Track, "--release-status", cfg.ReleaseStatus)
	if cfg.ServiceAccountKeyPath != "" {
		argv = append(argv, "--service-account-key", cfg.ServiceAccountKeyPath)
	}
	if cfg.MappingFilePath != "" {
		argv = append(argv, "--mapping-file", cfg.MappingFilePath)
	}
	if cfg.ChangesNotSentForReview {
		argv = append(argv, "--changes-not-sent-for-review")
	}
	version := opts.AppVersion
	if version != "" {
		argv = append(argv, "--version-name", version)
	}
	argv = append(argv, "--artifact", abs)
	return argv, nil
}

func buildAppStoreArgv(target publisher.TargetEntry, abs string, opts publisher.ExecOptions) ([]string, error) {
	var cfg AppStoreConfig
	if err := decodeKindConfig(target, &cfg); err != nil {
		return nil, err
	}
	argv := []string{"altool", "--upload-app"}
	if opts.DryRun {
		argv = append(argv, "--validate-app")
	}
	argv = append(argv, "--type", "ios", "--file", abs, "--apiKey", cfg.APIKeyID, "--apiIssuer", cfg.APIIssuer)
	if cfg.AppleID != "" {
		argv = append(argv, "--apple-id", cfg.AppleID)
	}
	if cfg.BundleID != "" {
		argv = append(argv, "--bundle-id", cfg.BundleID)
	}
	return argv, nil
}

// ProgramForKind returns the vendor CLI binary for a given target kind.
func ProgramForKind(kind string) string {
	switch kind {
	case KindGooglePlay:
		return "supply"
	case KindAppStore:
		return "xcrun"
	default:
		return "publish"
	}
}
