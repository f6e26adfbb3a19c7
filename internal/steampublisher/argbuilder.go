package steampublisher

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// BuildArgv synthesizes the steamcmd argv for one depot target. It is a
// pure function of (cfg, target, opts): no filesystem or process
// access, so it is exhaustively unit-testable without steamcmd
// installed (spec §4.3/§9 design notes).
func BuildArgv(cfg Config, target publisher.TargetEntry, opts publisher.ExecOptions) ([]string, error) {
	if target.Kind != targetKindDepot {
		return nil, fmt.Errorf("steampublisher: target %q has unsupported kind %q", target.Key, target.Kind)
	}

	contentDir, err := resolveContentDir(cfg, target)
	if err != nil {
		return nil, err
	}

	branch := cfg.Branch
	if opts.Branch != "" {
		branch = opts.Branch
	}
	description := cfg.BuildDescription
	if opts.BuildDescription != "" {
		description = opts.BuildDescription
	}

	var argv []string
	if cfg.Username != "" {
		argv = append(argv, "+login", cfg.Username)
	}
	argv = append(argv,
		"+app_build",
		"--app-id", cfg.AppID,
		"--depot-id", target.Key,
		"--content-dir", contentDir,
	)
	if branch != "" && branch != "default" {
		argv = append(argv, "--branch", branch)
	}
	if description != "" {
		argv = append(argv, "--desc", description)
	}
	if opts.DryRun || cfg.Preview {
		argv = append(argv, "--preview")
	}
	argv = append(argv, "+quit")
	return argv, nil
}

func resolveContentDir(cfg Config, target publisher.TargetEntry) (string, error) {
	if cfg.ProjectPath == "" {
		return "", fmt.Errorf("steampublisher: projectPath is required to resolve target %q", target.Key)
	}
	joined := filepath.Join(cfg.ProjectPath, target.ArtifactDirectory)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("steampublisher: resolve content dir for %q: %w", target.Key, err)
	}
	return abs, nil
}

// BuildAppBuildVDF renders the Steamworks AppBuild script for cfg: one
// FileMapping/FileExclusion block per enabled depot, with the
// effective preview flag reflected in the top-level Preview field.
func BuildAppBuildVDF(cfg Config, opts publisher.ExecOptions) (string, error) {
	var b strings.Builder
	b.WriteString("\"AppBuild\"\n{\n")
	fmt.Fprintf(&b, "\t\"AppID\" %q\n", cfg.AppID)
	desc := cfg.BuildDescription
	if opts.BuildDescription != "" {
		desc = opts.BuildDescription
	}
	fmt.Fprintf(&b, "\t\"Desc\" %q\n", desc)
	preview := "0"
	if opts.DryRun || cfg.Preview {
		preview = "1"
	}
	fmt.Fprintf(&b, "\t\"Preview\" %q\n", preview)
	b.WriteString("\t\"Depots\"\n\t{\n")
	for _, t := range cfg.Targets {
		if t.Kind != targetKindDepot || !t.Enabled {
			continue
		}
		contentDir, err := resolveContentDir(cfg, t)
		if err != nil {
			return "", err
		}
		depotCfg, err := decodeDepotConfig(t)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\t\t%q\n\t\t{\n", t.Key)
		b.WriteString("\t\t\t\"FileMapping\"\n\t\t\t{\n")
		fmt.Fprintf(&b, "\t\t\t\t\"LocalPath\" \"%s/*\"\n", contentDir)
		b.WriteString("\t\t\t\t\"DepotPath\" \".\"\n")
		b.WriteString("\t\t\t\t\"Recursive\" \"1\"\n")
		b.WriteString("\t\t\t}\n")
		for _, pattern := range depotCfg.ExcludePatterns {
			fmt.Fprintf(&b, "\t\t\t\"FileExclusion\" %q\n", pattern)
		}
		b.WriteString("\t\t}\n")
	}
	b.WriteString("\t}\n}\n")
	return b.String(), nil
}
