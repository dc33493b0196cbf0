package service

import (
	"context"
	"fmt"
	"sync"

	"questionnaire/internal/domain"
)

// ListPageSize is the number of questionnaires fetched per page.
const ListPageSize = 10

// ListFilter selects which saved questionnaires are listed.
type ListFilter struct {
	Keyword   string
	IsStar    bool
	IsDeleted bool
}

// ListState is a read view of the accumulated list.
type ListState struct {
	Filter  ListFilter                    `json:"filter"`
	Items   []domain.QuestionnaireSummary `json:"list"`
	Total   int                           `json:"total"`
	Page    int                           `json:"page"`
	Started bool                          `json:"started"`
	Loading bool                          `json:"loading"`
	HasMore bool                          `json:"hasMore"`
}

// ListLoader accumulates pages of the questionnaire list for infinite
// scrolling. Each page is appended to the list held under the loader's lock
// at the time the response arrives, so rapid successive loads never drop
// results. A filter change discards responses still in flight.
type ListLoader struct {
	lister  domain.QuestionnaireLister
	emitter EventEmitter

	mu         sync.Mutex
	filter     ListFilter
	nextPage   int
	items      []domain.QuestionnaireSummary
	total      int
	started    bool
	loading    bool
	generation int
}

// NewListLoader creates a ListLoader with an empty filter.
func NewListLoader(lister domain.QuestionnaireLister, emitter EventEmitter) *ListLoader {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	return &ListLoader{lister: lister, emitter: emitter, nextPage: 1}
}

// SetFilter clears the accumulated list and starts over with f.
func (l *ListLoader) SetFilter(f ListFilter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = f
	l.nextPage = 1
	l.items = nil
	l.total = 0
	l.started = false
	l.loading = false
	l.generation++
}

// LoadMore fetches the next page. It returns ErrLoadInProgress when a page
// is already being fetched, and is a no-op once every item is loaded.
func (l *ListLoader) LoadMore(ctx context.Context) (ListState, error) {
	l.mu.Lock()
	if l.loading {
		st := l.stateLocked()
		l.mu.Unlock()
		return st, ErrLoadInProgress
	}
	if l.started && l.total <= len(l.items) {
		st := l.stateLocked()
		l.mu.Unlock()
		return st, nil
	}
	gen := l.generation
	q := domain.ListQuery{
		Keyword:   l.filter.Keyword,
		IsStar:    l.filter.IsStar,
		IsDeleted: l.filter.IsDeleted,
		Page:      l.nextPage,
		PageSize:  ListPageSize,
	}
	l.loading = true
	l.mu.Unlock()

	res, err := l.lister.ListQuestionnaires(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		// Filter changed while fetching; this page belongs to the old list.
		return l.stateLocked(), nil
	}
	l.loading = false
	if err != nil {
		return l.stateLocked(), fmt.Errorf("list page %d: %w", q.Page, err)
	}
	l.items = append(l.items, res.List...)
	l.total = res.Total
	l.nextPage++
	l.started = true
	st := l.stateLocked()
	l.emitter.Emit(ctx, EventListChanged, st)
	return st, nil
}

// State returns the accumulated list.
func (l *ListLoader) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stateLocked()
}

func (l *ListLoader) stateLocked() ListState {
	items := make([]domain.QuestionnaireSummary, len(l.items))
	copy(items, l.items)
	return ListState{
		Filter:  l.filter,
		Items:   items,
		Total:   l.total,
		Page:    l.nextPage - 1,
		Started: l.started,
		Loading: l.loading,
		HasMore: !l.started || l.total > len(l.items),
	}
}
