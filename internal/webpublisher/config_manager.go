package webpublisher

import (
	"fmt"
	"time"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// ConfigManager validates, mutates, and persists a project's Config.
type ConfigManager struct {
	store *StateStore
}

func NewConfigManager(store *StateStore) *ConfigManager {
	return &ConfigManager{store: store}
}

func (m *ConfigManager) requireState() (State, error) {
	state, ok, err := m.store.Read()
	if err != nil {
		return State{}, publisher.NewOperationError(publisher.FailureIO, "read state", "", "", err)
	}
	if !ok {
		return State{}, publisher.PreconditionError("configManager", fmt.Errorf("publisher namespace is not initialized"))
	}
	return state, nil
}

func (m *ConfigManager) Update(partial Config) (Config, error) {
	state, err := m.requireState()
	if err != nil {
		return Config{}, err
	}
	merged := state.Config
	if partial.ProjectID != "" {
		merged.ProjectID = partial.ProjectID
	}
	if partial.ProjectPath != "" {
		merged.ProjectPath = partial.ProjectPath
	}
	if partial.Targets != nil {
		merged.Targets = partial.Targets
	}
	if partial.UploadTimeoutMS != 0 {
		merged.UploadTimeoutMS = partial.UploadTimeoutMS
	}
	if partial.PublishRetention != 0 {
		merged.PublishRetention = partial.PublishRetention
	}
	state.Config = merged
	state.UpdatedAt = time.Now().UnixMilli()
	if err := m.persist(state); err != nil {
		return Config{}, err
	}
	return merged, nil
}

func (m *ConfigManager) SetTargetEnabled(key string, enabled bool) (publisher.TargetEntry, bool, error) {
	state, err := m.requireState()
	if err != nil {
		return publisher.TargetEntry{}, false, err
	}
	idx := -1
	for i, t := range state.Config.Targets {
		if t.Key == key {
			idx = i
			break
		}
	}
	if idx == -1 {
		return publisher.TargetEntry{}, false, nil
	}
	state.Config.Targets[idx].Enabled = enabled
	state.UpdatedAt = time.Now().UnixMilli()
	if err := m.persist(state); err != nil {
		return publisher.TargetEntry{}, false, err
	}
	return state.Config.Targets[idx], true, nil
}

func (m *ConfigManager) AddTarget(entry publisher.TargetEntry) (bool, error) {
	state, err := m.requireState()
	if err != nil {
		return false, err
	}
	for _, t := range state.Config.Targets {
		if t.Key == entry.Key {
			return false, nil
		}
	}
	state.Config.Targets = append(state.Config.Targets, entry)
	state.UpdatedAt = time.Now().UnixMilli()
	if err := m.persist(state); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ConfigManager) RemoveTarget(key string) (bool, error) {
	state, err := m.requireState()
	if err != nil {
		return false, err
	}
	idx := -1
	for i, t := range state.Config.Targets {
		if t.Key == key {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	state.Config.Targets = append(state.Config.Targets[:idx], state.Config.Targets[idx+1:]...)
	state.UpdatedAt = time.Now().UnixMilli()
	if err := m.persist(state); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ConfigManager) GetEnabledTargets() ([]publisher.TargetEntry, error) {
	state, err := m.requireState()
	if err != nil {
		return nil, err
	}
	out := make([]publisher.TargetEntry, 0, len(state.Config.Targets))
	for _, t := range state.Config.Targets {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *ConfigManager) persist(state State) error {
	if err := m.store.WriteState(state); err != nil {
		return publisher.NewOperationError(publisher.FailureIO, "write state", "", "", err)
	}
	if err := m.store.WriteConfig(state.Config); err != nil {
		return publisher.NewOperationError(publisher.FailureIO, "write config", "", "", err)
	}
	publisher.AuditLog(m.store.NamespaceDir(), map[string]any{"family": "web", "command": "configMutate", "outcome": "ok"})
	return nil
}
