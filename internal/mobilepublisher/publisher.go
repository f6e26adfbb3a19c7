package mobilepublisher

import "github.com/forgeworks/publisher-pipeline/internal/publisher"

// Publisher wires the four components below together for a single project.
type Publisher struct {
	Store         *StateStore
	ConfigManager *ConfigManager
	History       *HistoryStore
	Coordinator   *RunCoordinator
}

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

func (p *Publisher) Init(cfg Config) (bool, error) {
	return p.Store.Init(cfg)
}

func (p *Publisher) Destroy() (bool, error) {
	return p.Store.Destroy()
}
