package publisher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSONFile serializes v as pretty-printed (2-space indent), trailing
// newline JSON and writes it atomically via a temp-file-then-rename, the
// same discipline paas_deploy_prune.go uses for rewriting the deploy
// event log. Parent directories are created with 0o700, the file with
// 0o600 — matching paas_store.go's savePaasTargetStore.
func WriteJSONFile(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	raw = append(raw, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// ReadJSONFile reads and decodes path into v. It returns (false, nil) if
// the file does not exist, matching the StateStore "null if missing"
// contract rather than surfacing os.ErrNotExist as a hard failure.
func ReadJSONFile(path string, v any) (bool, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is derived from the managed namespace root.
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
