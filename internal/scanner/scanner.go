// Package scanner discovers the form controls of a page, labels and keys
// them, fills what the answer resolver can answer, and offers manual AI
// generation for the rest. It keeps a registry of every control it has seen
// so rescans only touch new ones.
package scanner

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jonathan/job-autofill/internal/answers"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/fieldmatch"
	"github.com/jonathan/job-autofill/internal/labels"
	"github.com/jonathan/job-autofill/internal/site"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

// Page is a document the scanner can read and fill.
type Page interface {
	// Document returns the current DOM snapshot.
	Document(ctx context.Context) (*dom.Document, error)
	// Apply performs a fill and dispatches its events.
	Apply(ctx context.Context, f dom.Fill) error
}

// Backend supplies profiles, the whitelist and the autofill log.
type Backend interface {
	Profile(ctx context.Context) (*types.Profile, error)
	CanonicalProfile(ctx context.Context) (*types.CanonicalProfile, error)
	Whitelist(ctx context.Context) ([]string, error)
	LoggingEnabled(ctx context.Context) (bool, error)
	AppendLog(ctx context.Context, payload any) (*store.LogEntry, error)
}

// Generator drafts an answer for a free-text question.
type Generator interface {
	GenerateAnswer(ctx context.Context, label, company, role string) (string, error)
}

// Scanner runs the engine for one page session. Scans, edits and triggers
// are serialized; a generation releases the lock while the model runs.
type Scanner struct {
	resolver  *answers.Resolver
	backend   Backend
	generator Generator
	logger    zerolog.Logger

	mu       sync.Mutex
	registry *Registry
	inFlight map[string]bool
}

// New returns a scanner with an empty registry. generator may be nil, in
// which case Generate fails with ErrNoGenerator.
func New(resolver *answers.Resolver, backend Backend, generator Generator, logger zerolog.Logger) *Scanner {
	return &Scanner{
		resolver:  resolver,
		backend:   backend,
		generator: generator,
		logger:    logger,
		registry:  NewRegistry(),
		inFlight:  make(map[string]bool),
	}
}

// Report is the outcome of one scan.
type Report struct {
	URL    string       `json:"url"`
	Fields []*FormField `json:"fields"`
}

// Counts tallies the report's fields by state.
func (r *Report) Counts() map[State]int {
	counts := make(map[State]int)
	for _, f := range r.Fields {
		counts[f.State]++
	}
	return counts
}

// Fields returns a snapshot of every field seen so far, in discovery order.
func (s *Scanner) Fields() []FormField {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.registry.All()
	out := make([]FormField, len(all))
	for i, f := range all {
		out[i] = *f
	}
	return out
}

// Scan processes every control not seen before. It returns
// ErrNotWhitelisted without touching the page when the gate rejects it.
func (s *Scanner) Scan(ctx context.Context, page Page) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := page.Document(ctx)
	if err != nil {
		return nil, err
	}

	whitelist, err := s.backend.Whitelist(ctx)
	if err != nil {
		return nil, err
	}
	if !site.AllowedDocument(whitelist, doc) {
		return nil, ErrNotWhitelisted
	}

	profile, canonical := s.profiles(ctx)
	logging := s.loggingEnabled(ctx)
	domain := doc.Hostname()

	report := &Report{URL: doc.URL}
	for _, c := range enumerate(doc) {
		if s.registry.Seen(c.first().AutofillID()) {
			continue
		}

		f := s.label(domain, c)
		s.registry.Add(f)
		report.Fields = append(report.Fields, f)

		res, err := s.resolver.Resolve(ctx, f.answerField(), profile, canonical)
		if err != nil {
			return report, err
		}

		if res == nil {
			f.State = StateUnresolved
			if !f.Kind.IsChoice() {
				if err := page.Apply(ctx, dom.Fill{ElementID: f.ID, Kind: dom.FillTrigger}); err != nil {
					s.logger.Warn().Err(err).Str("field", f.ID).Msg("attach trigger failed")
				} else {
					f.Trigger = true
				}
			}
			s.logger.Debug().Str("label", f.Label).Msg("no match, trigger shown")
			continue
		}

		if err := s.applyResolution(ctx, page, c, f, res); err != nil {
			s.logger.Warn().Err(err).Str("field", f.ID).Msg("fill failed")
			f.State = StateUnresolved
			continue
		}
		f.resolve(res.Source, res.Value)
		s.logger.Debug().Str("label", f.Label).Str("source", string(res.Source)).Msg("filled")

		if logging {
			s.logFill(ctx, c.first(), f, res.Value)
		}
	}

	return report, nil
}

// label creates the registry entry for a candidate: unseen, then labeled.
func (s *Scanner) label(domain string, c candidate) *FormField {
	first := c.first()
	f := &FormField{ID: first.AutofillID(), Name: c.name, Kind: c.kind, State: StateUnseen}
	for _, m := range c.members {
		f.Members = append(f.Members, m.AutofillID())
	}

	af := answers.NewField(domain, labels.Extract(first), c.kind, choices(c))
	f.Label = af.Label
	f.SiteKey = af.SiteKey
	f.Key = af.Key
	f.Choices = af.Choices
	f.State = StateLabeled
	return f
}

func (s *Scanner) applyResolution(ctx context.Context, page Page, c candidate, f *FormField, res *answers.Resolution) error {
	for _, fill := range fillsFor(c, f, res) {
		if err := page.Apply(ctx, fill); err != nil {
			return err
		}
	}
	return nil
}

// fillsFor turns a resolution into DOM mutations. Checkbox state changes
// only when it differs, so no spurious change events fire.
func fillsFor(c candidate, f *FormField, res *answers.Resolution) []dom.Fill {
	switch f.Kind {
	case answers.KindSelect:
		if len(res.Selected) == 0 {
			return nil
		}
		return []dom.Fill{{ElementID: f.ID, Kind: dom.FillSelect, Value: res.Selected[0].Value}}

	case answers.KindRadioGroup:
		if len(res.Selected) == 0 {
			return nil
		}
		return []dom.Fill{{ElementID: res.Selected[0].ElementID, Kind: dom.FillCheck, Checked: true}}

	case answers.KindCheckbox:
		if c.first().Checked() == res.Checked {
			return nil
		}
		return []dom.Fill{{ElementID: f.ID, Kind: dom.FillCheck, Checked: res.Checked}}

	case answers.KindCheckboxGroup:
		want := make(map[string]bool, len(res.Selected))
		for _, choice := range res.Selected {
			want[choice.ElementID] = true
		}
		var fills []dom.Fill
		for _, m := range c.members {
			id := m.AutofillID()
			if m.Checked() != want[id] {
				fills = append(fills, dom.Fill{ElementID: id, Kind: dom.FillCheck, Checked: want[id]})
			}
		}
		return fills
	}

	return []dom.Fill{{ElementID: f.ID, Kind: dom.FillValue, Value: res.Value.String()}}
}

// RecordEdit persists the current value of the control with the given
// stable ID when it differs from the last known value. It reports whether
// anything was saved; controls the scanner never registered are ignored.
func (s *Scanner) RecordEdit(ctx context.Context, page Page, elementID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.registry.ForElement(elementID)
	if f == nil {
		return false, nil
	}

	doc, err := page.Document(ctx)
	if err != nil {
		return false, err
	}
	v, ok := currentValue(doc, f)
	if !ok || v.Equal(f.LastValue) {
		return false, nil
	}

	if err := s.resolver.Save(ctx, f.SiteKey, f.Key, v, nil); err != nil {
		return false, err
	}
	f.resolve(answers.SourceUser, v)
	s.logger.Debug().Str("site_key", f.SiteKey).Msg("saved edit")
	return true, nil
}

// currentValue reads what the user has entered into f. Text fields need a
// non-empty trimmed value; a select needs a non-empty option value; a radio
// group needs a checked member.
func currentValue(doc *dom.Document, f *FormField) (types.Value, bool) {
	first := doc.ByAutofillID(f.ID)
	if first == nil {
		return types.Value{}, false
	}

	switch f.Kind {
	case answers.KindSelect:
		for _, opt := range first.Options() {
			if opt.Selected && opt.Value != "" {
				return types.Text(opt.Value), true
			}
		}
		return types.Value{}, false

	case answers.KindRadioGroup:
		for _, id := range f.Members {
			if m := doc.ByAutofillID(id); m != nil && m.Checked() {
				return types.Text(inputValue(m)), true
			}
		}
		return types.Value{}, false

	case answers.KindCheckbox:
		if first.Checked() {
			return types.Text("true"), true
		}
		return types.Text("false"), true

	case answers.KindCheckboxGroup:
		checked := []string{}
		for _, id := range f.Members {
			if m := doc.ByAutofillID(id); m != nil && m.Checked() {
				checked = append(checked, inputValue(m))
			}
		}
		return types.List(checked...), true
	}

	value := strings.TrimSpace(first.Value())
	if value == "" {
		return types.Value{}, false
	}
	return types.Text(value), true
}

// Generate is the manual trigger: it drafts an answer for a free-text field,
// validates it against the field's canonical key, fills it and saves it.
// A second call for the same field while the first runs fails with
// ErrInFlight.
func (s *Scanner) Generate(ctx context.Context, page Page, id string) (string, error) {
	if s.generator == nil {
		return "", ErrNoGenerator
	}

	s.mu.Lock()
	f := s.registry.ForElement(id)
	switch {
	case f == nil:
		s.mu.Unlock()
		return "", &FieldError{ID: id, Message: "not a scanned field"}
	case f.Kind.IsChoice():
		s.mu.Unlock()
		return "", &FieldError{ID: id, Message: "generation needs a text field"}
	case s.inFlight[f.ID]:
		s.mu.Unlock()
		return "", ErrInFlight
	}
	s.inFlight[f.ID] = true
	label, key := f.Label, f.Key
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, f.ID)
		s.mu.Unlock()
	}()

	doc, err := page.Document(ctx)
	if err != nil {
		return "", err
	}
	company, role := site.Company(doc), site.Role(doc)

	answer, err := s.generator.GenerateAnswer(ctx, label, company, role)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if !fieldmatch.IsValid(answer, key) {
		return "", &ValidationError{Label: label, Key: string(key), Value: answer}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := page.Apply(ctx, dom.Fill{ElementID: f.ID, Kind: dom.FillValue, Value: answer}); err != nil {
		return "", err
	}
	if f.Trigger {
		if err := page.Apply(ctx, dom.Fill{ElementID: f.ID, Kind: dom.FillClearTrigger}); err == nil {
			f.Trigger = false
		}
	}

	value := types.Text(answer)
	related := &types.ExperienceRef{Company: company}
	if role != site.UnknownRole {
		related.Role = role
	}
	if err := s.resolver.Save(ctx, f.SiteKey, f.Key, value, related); err != nil {
		s.logger.Warn().Err(err).Str("site_key", f.SiteKey).Msg("saving generated answer failed")
	}
	f.resolve(answers.SourceAI, value)

	if s.loggingEnabled(ctx) {
		if el := doc.ByAutofillID(f.ID); el != nil {
			s.logFill(ctx, el, f, value)
		}
	}
	return answer, nil
}

// profiles loads both profile shapes. Missing or unreadable profiles leave
// the profile tiers empty.
func (s *Scanner) profiles(ctx context.Context) (*types.Profile, *types.CanonicalProfile) {
	profile, err := s.backend.Profile(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("profile unavailable")
	}
	canonical, err := s.backend.CanonicalProfile(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("canonical profile unavailable")
	}
	return profile, canonical
}

func (s *Scanner) loggingEnabled(ctx context.Context) bool {
	enabled, err := s.backend.LoggingEnabled(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reading autofill logging flag failed")
		return false
	}
	return enabled
}
