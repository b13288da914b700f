package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/job-autofill/internal/dom"
)

// DefaultDebounce is how long the page must stay quiet after inserting
// controls before a rescan runs.
const DefaultDebounce = 100 * time.Millisecond

// Watcher coalesces bursts of DOM-change notifications into single rescans.
type Watcher struct {
	delay  time.Duration
	notify chan struct{}
}

// NewWatcher returns a watcher that fires delay after the last Notify.
func NewWatcher(delay time.Duration) *Watcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Watcher{delay: delay, notify: make(chan struct{}, 1)}
}

// Notify records that new controls appeared. It never blocks.
func (w *Watcher) Notify() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Run calls fn once per quiet period after one or more notifications,
// until ctx is done.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context)) error {
	// Timers never deliver stale values after Reset (Go 1.23+).
	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.notify:
			timer.Reset(w.delay)
		case <-timer.C:
			fn(ctx)
		}
	}
}

// Watch rescans page after each quiet period until ctx is done. Scan
// errors are logged; a rejected page stops the watch.
func (s *Scanner) Watch(ctx context.Context, page Page, w *Watcher) error {
	var stop error
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	err := w.Run(ctx, func(ctx context.Context) {
		report, err := s.Scan(ctx, page)
		switch {
		case errors.Is(err, ErrNotWhitelisted):
			stop = err
			cancel()
		case err != nil:
			s.logger.Warn().Err(err).Msg("rescan failed")
		case len(report.Fields) > 0:
			s.logger.Info().Int("new_fields", len(report.Fields)).Msg("rescan processed new fields")
		}
	})
	if stop != nil {
		return stop
	}
	return err
}

// StaticPage adapts an in-memory document to Page.
type StaticPage struct {
	Doc *dom.Document
}

// Document implements Page.
func (p *StaticPage) Document(context.Context) (*dom.Document, error) {
	return p.Doc, nil
}

// Apply implements Page.
func (p *StaticPage) Apply(_ context.Context, f dom.Fill) error {
	return p.Doc.Apply(f)
}
