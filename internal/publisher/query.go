package publisher

import "strings"

// HasRunBase is implemented by each family's Run type (steampublisher.Run,
// webpublisher.Run, mobilepublisher.Run) via a trivial accessor that
// returns the embedded RunBase. It lets HistoryStore.list/stats share one
// filter+paginate+summarize implementation across all three families
// without collapsing the family Run types into a single generic type —
// Steam and Mobile keep their own header fields (appId/branch,
// appVersion) alongside RunBase; Web's Run has none.
type HasRunBase interface {
	Base() RunBase
}

// HasSearchText is optionally implemented by a family's Run type to fold
// header fields the search filter must reach but that live outside
// RunBase (Steam's buildDescription, Mobile's appVersion, ...). Types
// that don't implement it (Web has nothing beyond RunBase) are searched
// on RunBase alone.
type HasSearchText interface {
	SearchText() string
}

// Stats is the aggregate HistoryStore.stats() result.
type Stats struct {
	TotalRuns           int            `json:"totalRuns"`
	TotalUploads        int            `json:"totalUploads"`
	SuccessCount        int            `json:"successCount"`
	FailureCount        int            `json:"failureCount"`
	CancelledCount      int            `json:"cancelledCount"`
	AverageDuration     int64          `json:"averageDurationMs"`
	FirstRunTime        int64          `json:"firstRunTime,omitempty"`
	LastRunID           string         `json:"lastRunId,omitempty"`
	LastRunTime         int64          `json:"lastRunTime,omitempty"`
	ByTargetKey         map[string]int `json:"byTargetKey,omitempty"`
	ByTargetSuccessRate map[string]int `json:"byTargetSuccessRate,omitempty"`
}

// FilterAndPaginate applies q's AND-composed optional filters to runs,
// sorts the survivors by (timestamp desc, id desc), and applies
// offset/limit last, matching spec.md §4.6's list() semantics. It
// returns the page and the total matching count (pre-pagination), so
// callers can report "3 of 41 matching runs" style totals.
func FilterAndPaginate[T HasRunBase](runs []T, q Query) ([]T, int) {
	matched := make([]T, 0, len(runs))
	for _, r := range runs {
		if matchesQuery(r, q) {
			matched = append(matched, r)
		}
	}
	sortRunsDesc(matched)
	total := len(matched)

	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []T{}, total
	}
	end := total
	if q.Limit > 0 && offset+q.Limit < end {
		end = offset + q.Limit
	}
	page := make([]T, end-offset)
	copy(page, matched[offset:end])
	return page, total
}

func matchesQuery[T HasRunBase](r T, q Query) bool {
	b := r.Base()
	if q.Since != nil && b.Timestamp < *q.Since {
		return false
	}
	if q.Until != nil && b.Timestamp > *q.Until {
		return false
	}
	if q.TargetKey != "" && !containsString(b.Targets, q.TargetKey) {
		return false
	}
	if q.Status != "" && b.Status != q.Status {
		return false
	}
	if q.TriggeredBy != "" && !strings.EqualFold(b.TriggeredBy, q.TriggeredBy) {
		return false
	}
	if q.Search != "" {
		extra := ""
		if st, ok := any(r).(HasSearchText); ok {
			extra = st.SearchText()
		}
		if !matchesSearch(b, extra, q.Search) {
			return false
		}
	}
	return true
}

// matchesSearch implements the search filter's case-insensitive
// substring match over id, triggeredBy, tags, family header fields
// (projectId plus whatever extra carries), and every result's log
// lines.
func matchesSearch(b RunBase, extra, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(b.ID), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(b.ProjectID), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(b.TriggeredBy), needle) {
		return true
	}
	if extra != "" && strings.Contains(strings.ToLower(extra), needle) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	for _, res := range b.Results {
		for _, line := range res.Logs {
			if strings.Contains(strings.ToLower(line), needle) {
				return true
			}
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

// sortRunsDesc sorts by (timestamp desc, id desc) in place, insertion
// sort over what is normally a small in-memory slice — history stores
// here are files, not a database, so runs per project rarely exceed a
// few hundred.
func sortRunsDesc[T HasRunBase](runs []T) {
	for i := 1; i < len(runs); i++ {
		for j := i; j > 0 && runLess(runs[j], runs[j-1]); j-- {
			runs[j], runs[j-1] = runs[j-1], runs[j]
		}
	}
}

// runLess reports whether a sorts before b under (timestamp desc, id desc).
func runLess[T HasRunBase](a, b T) bool {
	ab, bb := a.Base(), b.Base()
	if ab.Timestamp != bb.Timestamp {
		return ab.Timestamp > bb.Timestamp
	}
	return ab.ID > bb.ID
}

// ComputeStats summarizes runs the way stats() is specified to: run and
// total-target-attempt counts, counts by terminal status, per-target
// attempt tallies and success rates, mean duration rounded to ms, and
// the first/last run timestamps. totalUploads is Σ len(run.Results)
// across runs, the quantity spec.md §8's totalUploads invariant is
// checked against. The coordinators append one result for every key in
// run.Targets, including a failed result when a target's argv build
// fails, so the two tallies agree for runs they write.
func ComputeStats[T HasRunBase](runs []T) Stats {
	var s Stats
	s.ByTargetKey = map[string]int{}
	s.ByTargetSuccessRate = map[string]int{}
	targetSuccesses := map[string]int{}
	var durationSum int64
	var durationCount int

	var newest, oldest *RunBase
	for _, r := range runs {
		b := r.Base()
		s.TotalRuns++
		switch b.Status {
		case StatusSucceeded:
			s.SuccessCount++
		case StatusFailed:
			s.FailureCount++
		case StatusCancelled:
			s.CancelledCount++
		}
		if b.DurationMS > 0 {
			durationSum += b.DurationMS
			durationCount++
		}
		for _, res := range b.Results {
			s.TotalUploads++
			s.ByTargetKey[res.TargetKey]++
			if res.Status == StatusSucceeded {
				targetSuccesses[res.TargetKey]++
			}
		}
		if newest == nil || b.Timestamp > newest.Timestamp {
			bCopy := b
			newest = &bCopy
		}
		if oldest == nil || b.Timestamp < oldest.Timestamp {
			bCopy := b
			oldest = &bCopy
		}
	}
	if durationCount > 0 {
		s.AverageDuration = roundDiv(durationSum, int64(durationCount))
	}
	for key, attempts := range s.ByTargetKey {
		if attempts == 0 {
			continue
		}
		s.ByTargetSuccessRate[key] = int(roundDiv(int64(targetSuccesses[key])*100, int64(attempts)))
	}
	if newest != nil {
		s.LastRunID = newest.ID
		s.LastRunTime = newest.Timestamp
	}
	if oldest != nil {
		s.FirstRunTime = oldest.Timestamp
	}
	return s
}

// roundDiv divides and rounds half away from zero, for millisecond
// durations and integer percentages where a plain integer division
// would silently truncate.
func roundDiv(num, den int64) int64 {
	if den == 0 {
		return 0
	}
	half := den / 2
	return (num + half) / den
}
