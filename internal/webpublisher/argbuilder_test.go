package webpublisher

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

func targetWithConfig(key, kind, dir string, raw string) publisher.TargetEntry {
	return publisher.TargetEntry{
		Key: key, Kind: kind, Enabled: true, ArtifactDirectory: dir,
		KindConfig: []byte(raw),
	}
}

func TestBuildArgvNetlifyProdOmittedOnDryRun(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("netlify", KindNetlify, "dist", `{"siteId":"site1","authToken":"tok","production":true}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{DryRun: true})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if containsArg(argv, "--prod") {
		t.Fatalf("expected --prod omitted on dry-run: %v", argv)
	}
	if !containsArg(argv, "--build") {
		t.Fatalf("expected --build on dry-run: %v", argv)
	}
	wantDir := mustAbs(t, dir, "dist")
	if !containsArg(argv, wantDir) {
		t.Fatalf("expected resolved abs dir in argv: %v", argv)
	}
}

func TestBuildArgvNetlifyProdWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("netlify", KindNetlify, "dist", `{"siteId":"site1","authToken":"tok","production":true}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if !containsArg(argv, "--prod") {
		t.Fatalf("expected --prod when production and not dry-run: %v", argv)
	}
}

func TestBuildArgvVercel(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("vercel", KindVercel, "dist", `{"token":"tok","production":true}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if argv[len(argv)-1] != "--yes" {
		t.Fatalf("expected trailing --yes: %v", argv)
	}
	if !containsArg(argv, "--prod") {
		t.Fatalf("expected --prod: %v", argv)
	}
}

func TestBuildArgvGHPagesNoJekyll(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("pages", KindGHPages, "dist", `{"branch":"gh-pages","repo":"org/repo","noJekyll":true}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if !containsArg(argv, "--nojekyll") {
		t.Fatalf("expected --nojekyll: %v", argv)
	}
}

func TestBuildArgvS3DryRun(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("bucket", KindS3, "dist", `{"bucket":"my-bucket","region":"us-east-1","prefix":"assets"}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{DryRun: true})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if !containsArg(argv, "s3://my-bucket/assets/") {
		t.Fatalf("expected destination with prefix: %v", argv)
	}
	if !containsArg(argv, "--dryrun") {
		t.Fatalf("expected --dryrun flag: %v", argv)
	}
	if argv[len(argv)-1] != "--delete" {
		t.Fatalf("expected trailing --delete: %v", argv)
	}
}

func TestBuildArgvCloudflarePages(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("cf", KindCloudflarePages, "dist", `{"projectName":"my-site","branch":"main"}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if argv[0] != "pages" || argv[1] != "deploy" {
		t.Fatalf("expected wrangler pages deploy prefix: %v", argv)
	}
	if !containsArg(argv, "--project-name") {
		t.Fatalf("expected --project-name: %v", argv)
	}
}

func TestBuildArgvUnknownKindFallsBack(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := publisher.TargetEntry{Key: "mystery", Kind: "mystery-host", Enabled: true, ArtifactDirectory: "dist"}

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if argv[0] != "deploy" {
		t.Fatalf("expected fallback 'deploy <abs>', got %v", argv)
	}
}

func containsArg(argv []string, needle string) bool {
	for _, a := range argv {
		if a == needle || strings.Contains(a, needle) {
			return true
		}
	}
	return false
}

func mustAbs(t *testing.T, base, rel string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join(base, rel))
	if err != nil {
		t.Fatalf("filepath.Abs: %v", err)
	}
	return abs
}
