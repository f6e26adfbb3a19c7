package steampublisher

import (
	"fmt"
	"time"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

// ConfigManager validates, mutates, and persists a project's Config
// and target list, refusing every mutating operation until Init has
// been called (spec §4.2).
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

// Update shallow-merges partial onto the stored config's target list
// and scalar fields (a zero value in a field means "leave unchanged"
// for scalar fields; Targets, when non-nil, replaces the list
// wholesale), persisting to both config.json and state.json.
func (m *ConfigManager) Update(partial Config) (Config, error) {
	state, err := m.requireState()
	if err != nil {
		return Config{}, err
	}
	merged := mergeConfig(state.Config, partial)
	state.Config = merged
	state.UpdatedAt = time.Now().UnixMilli()
	if err := m.store.WriteState(state); err != nil {
		return Config{}, publisher.NewOperationError(publisher.FailureIO, "write state", "", "", err)
	}
	if err := m.store.WriteConfig(merged); err != nil {
		return Config{}, publisher.NewOperationError(publisher.FailureIO, "write config", "", "", err)
	}
	publisher.AuditLog(m.store.NamespaceDir(), map[string]any{"family": "steam", "command": "configUpdate", "outcome": "ok"})
	return merged, nil
}

func mergeConfig(base, partial Config) Config {
	out := base
	if partial.ProjectID != "" {
		out.ProjectID = partial.ProjectID
	}
	if partial.ProjectPath != "" {
		out.ProjectPath = partial.ProjectPath
	}
	if partial.Targets != nil {
		out.Targets = partial.Targets
	}
	if partial.UploadTimeoutMS != 0 {
		out.UploadTimeoutMS = partial.UploadTimeoutMS
	}
	if partial.PublishRetention != 0 {
		out.PublishRetention = partial.PublishRetention
	}
	if partial.AppID != "" {
		out.AppID = partial.AppID
	}
	if partial.SteamCmdPath != "" {
		out.SteamCmdPath = partial.SteamCmdPath
	}
	if partial.Username != "" {
		out.Username = partial.Username
	}
	if partial.Branch != "" {
		out.Branch = partial.Branch
	}
	if partial.BuildDescription != "" {
		out.BuildDescription = partial.BuildDescription
	}
	out.IfChanged = partial.IfChanged || base.IfChanged
	out.Preview = partial.Preview || base.Preview
	return out
}

// SetTargetEnabled toggles a target's Enabled flag by key, returning
// (zero, false) if the key is unknown.
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

// AddTarget appends entry, returning false on a duplicate key without
// mutating anything.
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

// RemoveTarget deletes the target with the given key, returning false
// if it was not present.
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

// GetEnabledTargets returns the subset of the stored config's targets
// with Enabled == true.
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
	publisher.AuditLog(m.store.NamespaceDir(), map[string]any{"family": "steam", "command": "configMutate", "outcome": "ok"})
	return nil
}
