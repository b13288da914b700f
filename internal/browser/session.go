// Package browser hosts the field scanner in a live Chrome tab driven over
// the DevTools protocol. An injected script assigns stable control IDs,
// snapshots the page, applies fills with the events frameworks listen for,
// and relays user edits, trigger clicks and new controls back to the host.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/job-autofill/internal/dom"
)

// DefaultTimeout bounds navigation and script installation.
const DefaultTimeout = 2 * time.Minute

// eventBuffer is how many relayed events may queue before new ones drop.
const eventBuffer = 64

// Config configures the browser process.
type Config struct {
	// ExecPath overrides the Chrome binary; empty uses the system default.
	ExecPath string
	Headless bool
	Timeout  time.Duration
}

// Event types relayed from the page.
const (
	EventMutation = "mutation"
	EventEdit     = "edit"
	EventTrigger  = "trigger"
)

// Event is one notification from the injected script.
type Event struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// Session is one browser tab showing an application page. It implements
// scanner.Page.
type Session struct {
	ID string

	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	events      chan Event
	logger      zerolog.Logger
}

func allocatorOptions(cfg Config) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", cfg.Headless),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if cfg.Headless {
		opts = append(opts, chromedp.NoSandbox)
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	return opts
}

// Open starts a browser, installs the page script and navigates to pageURL.
// The session lives until Close or until ctx is done.
func Open(ctx context.Context, pageURL string, cfg Config, logger zerolog.Logger) (*Session, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	id := uuid.NewString()
	logger = logger.With().Str("session", id).Logger()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(cfg)...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug().Msgf(format, args...)
		}),
	)

	s := &Session{
		ID:          id,
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		events:      make(chan Event, eventBuffer),
		logger:      logger,
	}
	chromedp.ListenTarget(tabCtx, s.onTargetEvent)

	// The first Run allocates the browser; it must not carry the timeout or
	// the timeout's cancellation would close the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	navCtx, cancel := context.WithTimeout(tabCtx, cfg.Timeout)
	defer cancel()
	err := chromedp.Run(navCtx,
		runtime.AddBinding(bindingName),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(pageScript).Do(ctx)
			return err
		}),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("opening %s: %w", pageURL, err)
	}

	logger.Info().Str("url", pageURL).Msg("browser session opened")
	return s, nil
}

func (s *Session) onTargetEvent(ev any) {
	called, ok := ev.(*runtime.EventBindingCalled)
	if !ok || called.Name != bindingName {
		return
	}
	var e Event
	if err := json.Unmarshal([]byte(called.Payload), &e); err != nil {
		s.logger.Debug().Err(err).Msg("bad relay payload")
		return
	}
	select {
	case s.events <- e:
	default:
		s.logger.Warn().Str("type", e.Type).Msg("relay queue full, event dropped")
	}
}

// Events returns the relayed page events. The channel is never closed; use
// Done to detect the end of the session.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Done is closed when the browser tab goes away.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// run executes actions in the tab, cancelled by either ctx or the session.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

type snapshot struct {
	HTML     string              `json:"html"`
	URL      string              `json:"url"`
	Referrer string              `json:"referrer"`
	Framed   bool                `json:"framed"`
	Boxes    map[string]dom.Rect `json:"boxes"`
}

func (snap *snapshot) document() (*dom.Document, error) {
	doc, err := dom.ParseString(snap.HTML, snap.URL)
	if err != nil {
		return nil, err
	}
	doc.Referrer = snap.Referrer
	doc.InFrame = snap.Framed
	if len(snap.Boxes) > 0 {
		doc.SetLayout(BoxLayout(snap.Boxes))
	}
	return doc, nil
}

// Document implements scanner.Page by snapshotting the live page.
func (s *Session) Document(ctx context.Context) (*dom.Document, error) {
	var snap snapshot
	if err := s.run(ctx, chromedp.Evaluate(snapshotExpr, &snap)); err != nil {
		return nil, fmt.Errorf("snapshot failed: %w", err)
	}
	return snap.document()
}

// Apply implements scanner.Page by performing f in the live page.
func (s *Session) Apply(ctx context.Context, f dom.Fill) error {
	expr, err := applyExpr(f)
	if err != nil {
		return err
	}
	var msg string
	if err := s.run(ctx, chromedp.Evaluate(expr, &msg)); err != nil {
		return fmt.Errorf("apply %s to %s: %w", f.Kind, f.ElementID, err)
	}
	if msg != "" {
		return errors.New(msg)
	}
	return nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	if err := chromedp.Cancel(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug().Err(err).Msg("browser close")
	}
	s.cancelTab()
	s.cancelAlloc()
}

// BoxLayout is a dom.Layout keyed by BoxAttr.
type BoxLayout map[string]dom.Rect

// Rect implements dom.Layout.
func (b BoxLayout) Rect(el *dom.Element) (dom.Rect, bool) {
	key := el.AttrOr(BoxAttr)
	if key == "" {
		return dom.Rect{}, false
	}
	r, ok := b[key]
	return r, ok
}
