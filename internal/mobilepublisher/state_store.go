package mobilepublisher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

type State = publisher.State[Config]

// StateStore owns the `.mobile-publisher/` namespace directory.
type StateStore struct {
	projectPath string
}

func NewStateStore(projectPath string) *StateStore {
	return &StateStore{projectPath: projectPath}
}

func (s *StateStore) namespaceDir() string {
	if root := strings.TrimSpace(os.Getenv(stateRootEnvKey)); root != "" {
		return filepath.Join(root, sanitizeProjectSegment(s.projectPath))
	}
	return filepath.Join(s.projectPath, namespaceDir)
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

func (s *StateStore) Exists() bool {
	return publisher.DirExists(s.namespaceDir())
}

func (s *StateStore) Init(cfg Config) (bool, error) {
	if s.Exists() {
		return false, nil
	}
	if err := os.MkdirAll(s.runsDir(), 0o700); err != nil {
		return false, fmt.Errorf("create namespace: %w", err)
	}
	now := time.Now().UnixMilli()
	state := State{Config: cfg, TotalRuns: 0, IsRunning: false, CreatedAt: now, UpdatedAt: now}
	if err := publisher.WriteJSONFile(s.configPath(), cfg); err != nil {
		return false, err
	}
	if err := publisher.WriteJSONFile(s.statePath(), state); err != nil {
		return false, err
	}
	return true, nil
}

func (s *StateStore) Read() (State, bool, error) {
	var state State
	ok, err := publisher.ReadJSONFile(s.statePath(), &state)
	if err != nil || !ok {
		return State{}, false, err
	}
	return state, true, nil
}

func (s *StateStore) WriteState(state State) error {
	return publisher.WriteJSONFile(s.statePath(), state)
}

func (s *StateStore) WriteConfig(cfg Config) error {
	return publisher.WriteJSONFile(s.configPath(), cfg)
}

func (s *StateStore) WriteRun(run Run) error {
	return publisher.WriteJSONFile(s.runPath(run.ID), run)
}

func (s *StateStore) ReadRun(id string) (Run, bool, error) {
	var run Run
	ok, err := publisher.ReadJSONFile(s.runPath(id), &run)
	if err != nil || !ok {
		return Run{}, false, err
	}
	return run, true, nil
}

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
		if strings.HasSuffix(e.Name(), ".json") {
			ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	return ids, nil
}

func (s *StateStore) DeleteRun(id string) error {
	err := os.Remove(s.runPath(id))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *StateStore) Destroy() (bool, error) {
	if !s.Exists() {
		return false, nil
	}
	if err := os.RemoveAll(s.namespaceDir()); err != nil {
		return false, err
	}
	return true, nil
}
