package mobilepublisher

import "github.com/forgeworks/publisher-pipeline/internal/publisher"

// HistoryStore is the read path over persisted Mobile runs.
type HistoryStore struct {
	store *StateStore
}

func NewHistoryStore(store *StateStore) *HistoryStore {
	return &HistoryStore{store: store}
}

func (h *HistoryStore) GetRun(id string) (Run, bool, error) {
	return h.store.ReadRun(id)
}

type ListResult struct {
	ProjectID  string `json:"projectId"`
	Runs       []Run  `json:"runs"`
	TotalCount int    `json:"totalCount"`
}

func (h *HistoryStore) loadAllRuns() ([]Run, error) {
	ids, err := h.store.ListRunFiles()
	if err != nil {
		return nil, publisher.NewOperationError(publisher.FailureIO, "list runs", "", "", err)
	}
	runs := make([]Run, 0, len(ids))
	for _, id := range ids {
		run, ok, err := h.store.ReadRun(id)
		if err != nil {
			return nil, publisher.NewOperationError(publisher.FailureIO, "read run", id, "", err)
		}
		if ok {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func (h *HistoryStore) List(q publisher.Query) (ListResult, error) {
	runs, err := h.loadAllRuns()
	if err != nil {
		return ListResult{}, err
	}
	page, total := publisher.FilterAndPaginate(runs, q)
	projectID := ""
	state, ok, err := h.store.Read()
	if err == nil && ok {
		projectID = state.Config.ProjectID
	}
	return ListResult{ProjectID: projectID, Runs: page, TotalCount: total}, nil
}

func (h *HistoryStore) Stats() (publisher.Stats, error) {
	runs, err := h.loadAllRuns()
	if err != nil {
		return publisher.Stats{}, err
	}
	return publisher.ComputeStats(runs), nil
}

func (h *HistoryStore) Prune(keepCount int) (int, error) {
	runs, err := h.loadAllRuns()
	if err != nil {
		return 0, err
	}
	var kept []Run
	if keepCount <= 0 {
		kept = runs
	} else {
		kept, _ = publisher.FilterAndPaginate(runs, publisher.Query{Limit: keepCount})
	}
	keepIDs := map[string]bool{}
	for _, r := range kept {
		keepIDs[r.ID] = true
	}
	deleted := 0
	for _, r := range runs {
		if keepIDs[r.ID] {
			continue
		}
		if err := h.store.DeleteRun(r.ID); err != nil {
			return deleted, publisher.NewOperationError(publisher.FailureIO, "prune run", r.ID, "", err)
		}
		deleted++
	}
	return deleted, nil
}
