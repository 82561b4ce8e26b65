package store

import (
	"context"
	"sync"

	"backoffice/domain/shared"
	apperrors "backoffice/pkg/errors"
)

// Snapshot Copy of a list container's state
type Snapshot[T Keyed] struct {
	Items      []T                    `json:"items"`
	Pagination *shared.PaginationMeta `json:"meta,omitempty"`
	Status     Status                 `json:"status"`
	Error      string                 `json:"error,omitempty"`
}

// List holds one page of T.
type List[T Keyed] struct {
	mu         sync.RWMutex
	items      []T
	pagination *shared.PaginationMeta
	status     Status
	err        string
	seq        uint64
}

func NewList[T Keyed]() *List[T] {
	return &List[T]{items: []T{}, status: StatusIdle}
}

// Snapshot returns a copy safe to read without locking.
func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Snapshot[T]{
		Items:  append(make([]T, 0, len(l.items)), l.items...),
		Status: l.status,
		Error:  l.err,
	}
	if l.pagination != nil {
		p := *l.pagination
		s.Pagination = &p
	}
	return s
}

func (l *List[T]) Items() []T {
	return l.Snapshot().Items
}

func (l *List[T]) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Fetch runs fetch and replaces the page with its result. Only the most
// recently started fetch may write; earlier ones get STALE_RESPONSE.
func (l *List[T]) Fetch(ctx context.Context, fetch func(ctx context.Context) (shared.Page[T], error)) error {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.status = StatusLoading
	l.mu.Unlock()

	page, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		return apperrors.Stale()
	}
	if err != nil {
		l.status = StatusFailed
		l.err = apperrors.Message(err)
		return err
	}
	items := page.Items
	if items == nil {
		items = []T{}
	}
	l.items = items
	l.pagination = page.Pagination
	l.status = StatusSucceeded
	l.err = ""
	return nil
}

// Find looks an item up by id.
func (l *List[T]) Find(id int64) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if item.Key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Prepend puts a newly created item first.
func (l *List[T]) Prepend(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T{item}, l.items...)
	if l.pagination != nil {
		l.pagination.TotalItems++
	}
}

// Replace swaps the item with the same id in place; false when absent.
func (l *List[T]) Replace(item T) bool {
	return l.Update(item.Key(), func(T) T { return item })
}

// Update applies fn to the item with id; false when absent.
func (l *List[T]) Update(id int64, fn func(T) T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].Key() == id {
			l.items[i] = fn(l.items[i])
			return true
		}
	}
	return false
}

// Remove drops the item with id; false when absent.
func (l *List[T]) Remove(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := make([]T, 0, len(l.items))
	for _, item := range l.items {
		if item.Key() != id {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(l.items)
	l.items = kept
	if removed && l.pagination != nil && l.pagination.TotalItems > 0 {
		l.pagination.TotalItems--
	}
	return removed
}
