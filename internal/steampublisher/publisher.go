package steampublisher

import "github.com/forgeworks/publisher-pipeline/internal/publisher"

// Publisher wires the four components below together for a single project,
// the entry point family-external callers (the CLI, the desktop shell)
// use instead of reaching into the sub-components directly.
type Publisher struct {
	Store         *StateStore
	ConfigManager *ConfigManager
	History       *HistoryStore
	Coordinator   *RunCoordinator
}

// New builds a Publisher rooted at projectPath. logger and recorder
// may be nil.
func New(projectPath string, logger publisher.EventLogger, recorder *publisher.Recorder) *Publisher {
	store := NewStateStore(projectPath)
	history := NewHistoryStore(store)
	return &Publisher{
		Store:         store,
		ConfigManager: NewConfigManager(store),
		History:       history,
		Coordinator:   NewRunCoordinator(store, history, logger, recorder),
	}
}

// Init creates the namespace and seeds config/state, returning false
// if one already exists.
func (p *Publisher) Init(cfg Config) (bool, error) {
	return p.Store.Init(cfg)
}

// Destroy recursively removes the namespace.
func (p *Publisher) Destroy() (bool, error) {
	return p.Store.Destroy()
}
