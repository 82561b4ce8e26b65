package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurstOfKeystrokesFetchesOnce(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	done := make(chan struct{}, 5)

	search := NewSearch(200*time.Millisecond, func(_ context.Context, q string) error {
		mu.Lock()
		queries = append(queries, q)
		mu.Unlock()
		done <- struct{}{}
		return nil
	})

	for _, q := range []string{"a", "ap", "app", "appl", "apple"} {
		search.Type(context.Background(), q)
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("debounced fetch never ran")
	}
	// Give any wrongly scheduled extra call time to show up.
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"apple"}, queries)
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	ran := make(chan struct{}, 1)
	d.Trigger(func() { ran <- struct{}{} })
	d.Stop()

	select {
	case <-ran:
		t.Fatalf("stopped call ran")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSeparateBurstsEachFetch(t *testing.T) {
	calls := make(chan string, 2)
	d := NewDebouncer(20 * time.Millisecond)

	d.Trigger(func() { calls <- "first" })
	assert.Equal(t, "first", <-calls)
	d.Trigger(func() { calls <- "second" })
	assert.Equal(t, "second", <-calls)
}
