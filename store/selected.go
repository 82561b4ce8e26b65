package store

import (
	"context"
	"sync"

	apperrors "backoffice/pkg/errors"
)

// Selected is the detail view of one record, fetched by id on demand and
// never derived from the list cache.
type Selected[D Keyed] struct {
	mu     sync.RWMutex
	item   *D
	status Status
	err    string
	seq    uint64
}

func NewSelected[D Keyed]() *Selected[D] {
	return &Selected[D]{status: StatusIdle}
}

// Load fetches the record and makes it the selection.
func (s *Selected[D]) Load(ctx context.Context, fetch func(ctx context.Context) (D, error)) (D, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.status = StatusLoading
	s.mu.Unlock()

	item, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		var zero D
		return zero, apperrors.Stale()
	}
	if err != nil {
		s.status = StatusFailed
		s.err = apperrors.Message(err)
		var zero D
		return zero, err
	}
	s.item = &item
	s.status = StatusSucceeded
	s.err = ""
	return item, nil
}

// Get returns the selection, if any.
func (s *Selected[D]) Get() (D, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.item == nil {
		var zero D
		return zero, false
	}
	return *s.item, true
}

func (s *Selected[D]) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Selected[D]) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Set makes item the selection without a fetch.
func (s *Selected[D]) Set(item D) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.item = &item
	s.status = StatusSucceeded
	s.err = ""
}

// Update applies fn when the selection has the given id.
func (s *Selected[D]) Update(id int64, fn func(D) D) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.item == nil || (*s.item).Key() != id {
		return false
	}
	next := fn(*s.item)
	s.item = &next
	return true
}

// Clear drops the selection, e.g. when the detail view closes. A fetch
// still in flight is discarded when it lands.
func (s *Selected[D]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.item = nil
	s.status = StatusIdle
	s.err = ""
}

// ClearIf drops the selection when it has the given id.
func (s *Selected[D]) ClearIf(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.item != nil && (*s.item).Key() == id {
		s.seq++
		s.item = nil
		s.status = StatusIdle
		s.err = ""
	}
}
