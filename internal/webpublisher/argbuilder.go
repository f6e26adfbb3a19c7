package webpublisher

import (
	"fmt"
	"path/filepath"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// BuildArgv synthesizes the argv for one web hosting target, dispatching
// on the target's kind. Pure: no filesystem or process access beyond
// path resolution against cfg.ProjectPath.
func BuildArgv(cfg Config, target publisher.TargetEntry, opts publisher.ExecOptions) ([]string, error) {
	abs, err := resolveArtifactDir(cfg, target)
	if err != nil {
		return nil, err
	}

	switch target.Kind {
	case KindNetlify:
		return buildNetlifyArgv(target, abs, opts)
	case KindVercel:
		return buildVercelArgv(target, abs, opts)
	case KindGHPages:
		return buildGHPagesArgv(target, abs, opts)
	case KindS3:
		return buildS3Argv(target, abs, opts)
	case KindCloudflarePages:
		return buildCloudflarePagesArgv(target, abs, opts)
	default:
		return []string{"deploy", abs}, nil
	}
}

func resolveArtifactDir(cfg Config, target publisher.TargetEntry) (string, error) {
	if cfg.ProjectPath == "" {
		return "", fmt.Errorf("webpublisher: projectPath is required to resolve target %q", target.Key)
	}
	abs, err := filepath.Abs(filepath.Join(cfg.ProjectPath, target.ArtifactDirectory))
	if err != nil {
		return "", fmt.Errorf("webpublisher: resolve artifact dir for %q: %w", target.Key, err)
	}
	return abs, nil
}

func buildNetlifyArgv(target publisher.TargetEntry, abs string, opts publisher.ExecOptions) ([]string, error) {
	var cfg NetlifyConfig
	if err := decodeKindConfig(target, &cfg); err != nil {
		return nil, err
	}
	argv := []string{"deploy", "--dir", abs, "--site", cfg.SiteID, "--auth", cfg.AuthToken}
	if cfg.Production && !opts.DryRun {
		argv = append(argv, "--prod")
	}
	if cfg.Functions != "" {
		argv = append(argv, "--functions", cfg.Functions)
	}
	if cfg.Message != "" {
		argv = append(argv, "--message", cfg.Message)
	}
	if opts.DryRun {
		argv = append(argv, "--build")
	}
	return argv, nil
}

func buildVercelArgv(target publisher.TargetEntry, abs string, opts publisher.ExecOptions) ([]string, error) {
	var cfg VercelConfig
	if err := decodeKindConfig(target, &cfg); err != nil {
		return nil, err
	}
	argv := []string{"deploy", abs, "--token", cfg.Token}
	if cfg.Production && !opts.DryRun {
		argv = append(argv, "--prod")
	}
	argv = append(argv, "--yes")
	return argv, nil
}

func buildGHPagesArgv(target publisher.TargetEntry, abs string, opts publisher.ExecOptions) ([]string, error) {
	var cfg GHPagesConfig
	if err := decodeKindConfig(target, &cfg); err != nil {
		return nil, err
	}
	branch := cfg.Branch
	if opts.Branch != "" {
		branch = opts.Branch
	}
	argv := []string{"deploy", "--dir", abs, "--branch", branch, "--repo", cfg.Repo}
	if cfg.Message != "" {
		argv = append(argv, "--message", cfg.Message)
	}
	if cfg.NoJekyll {
		argv = append(argv, "--nojekyll")
	}
	return argv, nil
}

func buildS3Argv(target publisher.TargetEntry, abs string, opts publisher.ExecOptions) ([]string, error) {
	var cfg S3Config
	if err := decodeKindConfig(target, &cfg); err != nil {
		return nil, err
	}
	dest := "s3://" + cfg.Bucket + "/"
	if cfg.Prefix != "" {
		dest += cfg.Prefix + "/"
	}
	argv := []string{"s3", "sync", abs, dest, "--region", cfg.Region}
	if cfg.ACL != "" {
		argv = append(argv, "--acl", cfg.ACL)
	}
	if cfg.CacheControl != "" {
		argv = append(argv, "--cache-control", cfg.CacheControl)
	}
	if opts.DryRun {
		argv = append(argv, "--dryrun")
	}
	argv = append(argv, "--delete")
	return argv, nil
}

func buildCloudflarePagesArgv(target publisher.TargetEntry, abs string, opts publisher.ExecOptions) ([]string, error) {
	var cfg CloudflarePagesConfig
	if err := decodeKindConfig(target, &cfg); err != nil {
		return nil, err
	}
	argv := []string{"pages", "deploy", abs, "--project-name", cfg.ProjectName}
	branch := cfg.Branch
	if opts.Branch != "" {
		branch = opts.Branch
	}
	if branch != "" {
		argv = append(argv, "--branch", branch)
	}
	if cfg.CommitMessage != "" {
		argv = append(argv, "--commit-message", cfg.CommitMessage)
	}
	return argv, nil
}

// ProgramForKind returns the vendor CLI binary name a given target kind
// invokes, used by the executor to pick the right program.
func ProgramForKind(kind string) string {
	switch kind {
	case KindNetlify:
		return "netlify"
	case KindVercel:
		return "vercel"
	case KindGHPages:
		return "gh-pages"
	case KindS3:
		return "aws"
	case KindCloudflarePages:
		return "wrangler"
	default:
		return "deploy"
	}
}
