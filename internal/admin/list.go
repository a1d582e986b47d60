package admin

import (
	"context"
	"strings"
	"sync"

	"github.com/mdouchement/cmsadmin/pkg/structs"
)

// List states.
const (
	ListLoading ListState = iota
	ListEmpty
	ListNoMatch
	ListReady
)

// A ListState is the display state of a List.
type ListState int

func (s ListState) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListEmpty:
		return "empty"
	case ListNoMatch:
		return "no match"
	case ListReady:
		return "ready"
	}
	return "unknown"
}

// A List is a searchable collection of entities fetched from the backend.
// The search is a case-insensitive substring match on the configured fields.
type List[T any] struct {
	ioc    IOC
	name   string
	fetch  func(ctx context.Context) ([]T, error)
	fields []string

	mu         sync.RWMutex
	generation uint64
	loading    bool
	items      []T
	search     string
}

// NewList returns a new List fetching its items with fetch and searching on the given fields.
func NewList[T any](ioc IOC, name string, fetch func(ctx context.Context) ([]T, error), fields ...string) *List[T] {
	return &List[T]{
		ioc:     ioc,
		name:    name,
		fetch:   fetch,
		fields:  fields,
		loading: true,
	}
}

// Load fetches the items. A failure is logged and leaves the list empty.
// Only the response of the latest call is kept.
func (l *List[T]) Load(ctx context.Context) {
	l.mu.Lock()
	l.generation++
	generation := l.generation
	l.loading = true
	l.mu.Unlock()

	items, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if generation != l.generation {
		return // Stale response
	}

	l.loading = false
	if err != nil {
		l.ioc.logger().WithError(err).Warnf("could not fetch %s", l.name)
		l.items = nil
		return
	}
	l.items = items
}

// SetSearch sets the search term.
func (l *List[T]) SetSearch(search string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.search = search
}

// Search returns the search term.
func (l *List[T]) Search() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.search
}

// Loading returns true while the items are being fetched.
func (l *List[T]) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.loading
}

// Total returns the number of fetched items, regardless of the search term.
func (l *List[T]) Total() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.items)
}

// Items returns the items matching the search term, in backend order.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.filter()
}

// State returns the display state of the list.
func (l *List[T]) State() ListState {
	l.mu.RLock()
	defer l.mu.RUnlock()

	switch {
	case l.loading:
		return ListLoading
	case len(l.items) == 0:
		return ListEmpty
	case len(l.filter()) == 0:
		return ListNoMatch
	}
	return ListReady
}

func (l *List[T]) filter() []T {
	term := strings.ToLower(strings.TrimSpace(l.search))
	if term == "" || len(l.fields) == 0 {
		return append([]T(nil), l.items...)
	}

	var matches []T
	for _, item := range l.items {
		for _, v := range structs.Text(item, l.fields...) {
			if strings.Contains(strings.ToLower(v), term) {
				matches = append(matches, item)
				break
			}
		}
	}
	return matches
}
