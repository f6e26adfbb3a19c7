package mobilepublisher

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

func TestBuildArgvGooglePlayDryRun(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("google-play", KindGooglePlay, "build/android",
		`{"packageName":"com.example.app","track":"production","releaseStatus":"completed","serviceAccountKeyPath":"key.json"}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{DryRun: true, AppVersion: "1.2.3"})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if !containsArg(argv, "--dry-run") {
		t.Fatalf("expected --dry-run: %v", argv)
	}
	if !containsArg(argv, "--package-name") || !containsArg(argv, "com.example.app") {
		t.Fatalf("expected package-name flag: %v", argv)
	}
	if !containsArg(argv, "--version-name") || !containsArg(argv, "1.2.3") {
		t.Fatalf("expected version-name flag with app version: %v", argv)
	}
	wantDir := mustAbs(t, dir, "build/android")
	if !containsArg(argv, wantDir) {
		t.Fatalf("expected resolved abs artifact dir: %v", argv)
	}
	if argv[0] != "upload" {
		t.Fatalf("expected leading 'upload': %v", argv)
	}
}

func TestBuildArgvGooglePlayChangesNotSentForReview(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("google-play", KindGooglePlay, "build/android",
		`{"packageName":"com.example.app","track":"internal","releaseStatus":"draft","changesNotSentForReview":true}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if !containsArg(argv, "--changes-not-sent-for-review") {
		t.Fatalf("expected --changes-not-sent-for-review: %v", argv)
	}
	if containsArg(argv, "--dry-run") {
		t.Fatalf("did not expect --dry-run: %v", argv)
	}
}

func TestBuildArgvAppStoreValidateOnDryRun(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("app-store", KindAppStore, "build/ios",
		`{"bundleId":"com.example.app","apiKeyId":"key1","apiIssuer":"issuer1","appleId":"app@example.com"}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{DryRun: true})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if !containsArg(argv, "--validate-app") {
		t.Fatalf("expected --validate-app on dry-run: %v", argv)
	}
	if !containsArg(argv, "--apple-id") {
		t.Fatalf("expected --apple-id: %v", argv)
	}
	if argv[0] != "altool" || argv[1] != "--upload-app" {
		t.Fatalf("expected altool --upload-app prefix: %v", argv)
	}
}

func TestBuildArgvAppStoreWithoutAppleID(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := targetWithConfig("app-store", KindAppStore, "build/ios",
		`{"bundleId":"com.example.app","apiKeyId":"key1","apiIssuer":"issuer1"}`)

	argv, err := BuildArgv(cfg, target, publisher.ExecOptions{})
	if err != nil {
		t.Fatalf("BuildArgv: %v", err)
	}
	if containsArg(argv, "--apple-id") {
		t.Fatalf("did not expect --apple-id: %v", argv)
	}
	if containsArg(argv, "--validate-app") {
		t.Fatalf("did not expect --validate-app: %v", argv)
	}
}

func TestBuildArgvUnsupportedKindErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig("p", dir)
	target := publisher.TargetEntry{Key: "mystery", Kind: "mystery-store", Enabled: true, ArtifactDirectory: "build"}

	if _, err := BuildArgv(cfg, target, publisher.ExecOptions{}); err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
}

func TestProgramForKind(t *testing.T) {
	if ProgramForKind(KindGooglePlay) != "supply" {
		t.Fatalf("expected supply for google-play")
	}
	if ProgramForKind(KindAppStore) != "xcrun" {
		t.Fatalf("expected xcrun for app-store")
	}
}
