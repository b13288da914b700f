package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-autofill/internal/scanner"
)

// Engine is the part of *scanner.Scanner the host drives.
type Engine interface {
	Watch(ctx context.Context, page scanner.Page, w *scanner.Watcher) error
	RecordEdit(ctx context.Context, page scanner.Page, elementID string) (bool, error)
	Generate(ctx context.Context, page scanner.Page, id string) (string, error)
}

// Drive relays page events into engine until ctx is done or done closes,
// returning nil in either case. Mutations feed the watcher's debounced
// rescans; edits and trigger clicks go to the engine. A whitelist rejection
// during a rescan ends the drive with that error.
func Drive(ctx context.Context, engine Engine, page scanner.Page, events <-chan Event, done <-chan struct{}, w *scanner.Watcher, logger zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return engine.Watch(gctx, page, w)
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-done:
				return errSessionEnded
			case ev := <-events:
				switch ev.Type {
				case EventMutation:
					w.Notify()
				case EventEdit:
					if _, err := engine.RecordEdit(gctx, page, ev.ID); err != nil {
						logger.Warn().Err(err).Str("id", ev.ID).Msg("recording edit failed")
					}
				case EventTrigger:
					id := ev.ID
					g.Go(func() error {
						if _, err := engine.Generate(gctx, page, id); err != nil {
							logger.Warn().Err(err).Str("id", id).Msg("generation failed")
						}
						return nil
					})
				default:
					logger.Debug().Str("type", ev.Type).Msg("unknown relay event")
				}
			}
		}
	})

	err := g.Wait()
	if ctx.Err() != nil || errors.Is(err, errSessionEnded) {
		return nil
	}
	return err
}

var errSessionEnded = errors.New("browser session ended")

// Run drives engine against the session until ctx is done or the tab closes.
func (s *Session) Run(ctx context.Context, engine Engine, debounce time.Duration) error {
	return Drive(ctx, engine, s, s.events, s.Done(), scanner.NewWatcher(debounce), s.logger)
}

// Render loads a page in a headless browser and returns the rendered HTML,
// for JavaScript-built forms that a plain fetch cannot see.
func Render(ctx context.Context, pageURL string, cfg Config) (string, error) {
	cfg.Headless = true
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocatorOptions(cfg)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, cfg.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to build the form
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}
	return html, nil
}
