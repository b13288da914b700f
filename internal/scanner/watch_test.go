package scanner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/dom"
)

func TestWatcher_CoalescesBursts(t *testing.T) {
	w := NewWatcher(20 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) { runs.Add(1) })
	}()

	for i := 0; i < 5; i++ {
		w.Notify()
		time.Sleep(2 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load(), "one burst triggers one run")

	w.Notify()
	assert.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_DefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDebounce, NewWatcher(0).delay)
}

func TestWatch_StopsOnRejectedPage(t *testing.T) {
	f := newFixture(t, nil)
	doc, err := dom.ParseString(applicationForm, "https://elsewhere.org/apply")
	require.NoError(t, err)

	w := NewWatcher(5 * time.Millisecond)
	w.Notify()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err = f.scanner.Watch(ctx, &StaticPage{Doc: doc}, w)
	assert.ErrorIs(t, err, ErrNotWhitelisted)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Add(&FormField{ID: "af-1", Members: []string{"af-1"}})
	r.Add(&FormField{ID: "af-2", Members: []string{"af-2", "af-3"}})

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Seen("af-3"))
	assert.False(t, r.Seen("af-4"))
	assert.Equal(t, "af-2", r.ForElement("af-3").ID)
	assert.Nil(t, r.ForElement("af-4"))
	assert.Equal(t, "af-1", r.Get("af-1").ID)
	assert.Equal(t, "af-1", r.All()[0].ID)
}
