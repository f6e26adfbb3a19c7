package steampublisher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// State is the Steam family's durable PublishState document.
type State = publisher.State[Config]

// StateStore owns the `.steam-publisher/` namespace directory inside a
// project: config.json, state.json, and runs/<id>.json, matching
// spec §6's filesystem layout.
type StateStore struct {
	projectPath string
}

// NewStateStore builds a StateStore rooted at projectPath's namespace
// directory. STEAM_PUBLISHER_STATE_ROOT, when set, relocates the
// namespace root entirely (same override pattern the teacher exposes
// for its own local state root).
func NewStateStore(projectPath string) *StateStore {
	return &StateStore{projectPath: projectPath}
}

func (s *StateStore) namespaceDir() string {
	if root := strings.TrimSpace(os.Getenv(stateRootEnvKey)); root != "" {
		return filepath.Join(root, sanitizeProjectSegment(s.projectPath))
	}
	return filepath.Join(s.projectPath, namespaceDirName)
}

func sanitizeProjectSegment(path string) string {
	cleaned := filepath.ToSlash(filepath.Clean(path))
	cleaned = strings.TrimPrefix(cleaned, "/")
	replacer := strings.NewReplacer("/", "_", ":", "_", "\\", "_")
	out := replacer.Replace(cleaned)
	if out == "" {
		out = "root"
	}
	return out
}

func (s *StateStore) NamespaceDir() string { return s.namespaceDir() }

func (s *StateStore) configPath() string { return filepath.Join(s.namespaceDir(), "config.json") }
func (s *StateStore) statePath() string  { return filepath.Join(s.namespaceDir(), "state.json") }
func (s *StateStore) runsDir() string    { return filepath.Join(s.namespaceDir(), "runs") }
func (s *StateStore) runPath(id string) string {
	return filepath.Join(s.runsDir(), id+".json")
}

// Exists reports whether the namespace directory already exists.
func (s *StateStore) Exists() bool {
	return publisher.DirExists(s.namespaceDir())
}

// Init creates the namespace directory tree and seeds config.json /
// state.json. It returns false without modifying anything if the
// namespace already exists.
func (s *StateStore) Init(cfg Config) (bool, error) {
	if s.Exists() {
		return false, nil
	}
	if err := os.MkdirAll(s.runsDir(), 0o700); err != nil {
		return false, fmt.Errorf("create namespace: %w", err)
	}
	now := time.Now().UnixMilli()
	state := State{
		Config:        cfg,
		LastRunID:     nil,
		LastRunTime:   nil,
		TotalRuns:     0,
		IsRunning:     false,
		CurrentTarget: nil,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := publisher.WriteJSONFile(s.configPath(), cfg); err != nil {
		return false, err
	}
	if err := publisher.WriteJSONFile(s.statePath(), state); err != nil {
		return false, err
	}
	return true, nil
}

// Read returns the current state, or (State{}, false, nil) if the
// namespace has not been initialized.
func (s *StateStore) Read() (State, bool, error) {
	var state State
	ok, err := publisher.ReadJSONFile(s.statePath(), &state)
	if err != nil || !ok {
		return State{}, false, err
	}
	return state, true, nil
}

// WriteState persists state.
func (s *StateStore) WriteState(state State) error {
	return publisher.WriteJSONFile(s.statePath(), state)
}

// WriteConfig persists cfg to config.json independently of state.json,
// used by ConfigManager.update to keep both documents in sync.
func (s *StateStore) WriteConfig(cfg Config) error {
	return publisher.WriteJSONFile(s.configPath(), cfg)
}

// WriteRun persists a run document.
func (s *StateStore) WriteRun(run Run) error {
	return publisher.WriteJSONFile(s.runPath(run.ID), run)
}

// ReadRun loads one run document by id.
func (s *StateStore) ReadRun(id string) (Run, bool, error) {
	var run Run
	ok, err := publisher.ReadJSONFile(s.runPath(id), &run)
	if err != nil || !ok {
		return Run{}, false, err
	}
	return run, true, nil
}

// ListRunFiles returns the run ids present on disk, in no particular
// order (callers needing an order re-sort via HistoryStore).
func (s *StateStore) ListRunFiles() ([]string, error) {
	entries, err := os.ReadDir(s.runsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	return ids, nil
}

// DeleteRun removes one run document from disk.
func (s *StateStore) DeleteRun(id string) error {
	err := os.Remove(s.runPath(id))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Destroy recursively removes the namespace directory. It returns
// false if the namespace did not exist.
func (s *StateStore) Destroy() (bool, error) {
	if !s.Exists() {
		return false, nil
	}
	if err := os.RemoveAll(s.namespaceDir()); err != nil {
		return false, err
	}
	return true, nil
}
