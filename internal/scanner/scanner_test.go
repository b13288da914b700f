package scanner

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/answers"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

const applicationForm = `<html><head><title>Acme - Engineer</title></head><body>
<form>
  <label for="fn">First Name *</label><input id="fn" name="first_name" type="text">
  <label for="em">Email</label><input id="em" name="email" type="email">
  <label for="why">Why do you want to work here?</label><textarea id="why" name="why"></textarea>
  <input type="hidden" name="token" value="x">
  <input id="ro" type="text" readonly placeholder="Read only">
  <input id="off" type="text" disabled placeholder="Disabled">
  <label for="country">Country</label>
  <select id="country" name="country">
    <option value="">Select...</option>
    <option value="us">United States</option>
    <option value="ca">Canada</option>
  </select>
  <fieldset>
    <label><input type="checkbox" name="lang" value="A" aria-label="Languages"> A</label>
    <label><input type="checkbox" name="lang" value="B"> B</label>
    <label><input type="checkbox" name="lang" value="C"> C</label>
  </fieldset>
  <fieldset>
    <input type="radio" id="auth-y" name="auth" value="yes" aria-label="Work authorization"><label for="auth-y">Yes</label>
    <input type="radio" id="auth-n" name="auth" value="no"><label for="auth-n">No</label>
  </fieldset>
  <label><input type="checkbox" name="agree" value="1"> I agree to terms</label>
  <button type="submit">Submit</button>
</form>
</body></html>`

const pageURL = "https://jobs.acme.com/apply"

type fixture struct {
	store   *store.Store
	scanner *Scanner
	page    *StaticPage
}

func newFixture(t *testing.T, gen Generator) *fixture {
	t.Helper()
	ctx := context.Background()

	s := store.New(store.NewMemory())
	_, err := s.AddToWhitelist(ctx, "acme.com")
	require.NoError(t, err)
	require.NoError(t, s.SaveProfile(ctx,
		&types.Profile{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}, nil, ""))

	doc, err := dom.ParseString(applicationForm, pageURL)
	require.NoError(t, err)

	resolver := answers.NewResolver(s, zerolog.Nop())
	return &fixture{
		store:   s,
		scanner: New(resolver, s, gen, zerolog.Nop()),
		page:    &StaticPage{Doc: doc},
	}
}

func (f *fixture) field(t *testing.T, label string) FormField {
	t.Helper()
	for _, ff := range f.scanner.Fields() {
		if ff.Label == label {
			return ff
		}
	}
	t.Fatalf("no field labeled %q", label)
	return FormField{}
}

func TestScan_FillsAndRegisters(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	report, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)
	assert.Equal(t, pageURL, report.URL)

	var labels []string
	for _, ff := range report.Fields {
		labels = append(labels, ff.Label)
	}
	assert.Equal(t, []string{
		"First Name",
		"Email",
		"Why do you want to work here?",
		"Country",
		"Languages",
		"Work authorization",
		"I agree to terms",
	}, labels)

	doc := f.page.Doc
	assert.Equal(t, "Jane", doc.ByID("fn").Value())
	assert.Equal(t, "jane@x.com", doc.ByID("em").Value())

	first := f.field(t, "First Name")
	assert.Equal(t, StateResolved, first.State)
	assert.Equal(t, answers.SourceBasicProfile, first.Source)
	assert.Equal(t, "jobs.acme.com::first_name::input", first.SiteKey)

	why := f.field(t, "Why do you want to work here?")
	assert.Equal(t, StateUnresolved, why.State)
	assert.True(t, why.Trigger)
	triggers := doc.Find("." + dom.TriggerClass)
	require.Len(t, triggers, 1)
	assert.Equal(t, why.ID, triggers[0].AttrOr(dom.TriggerForAttr))

	country := f.field(t, "Country")
	assert.Equal(t, StateUnresolved, country.State)
	assert.False(t, country.Trigger, "choice controls get no trigger")

	langs := f.field(t, "Languages")
	assert.Equal(t, answers.KindCheckboxGroup, langs.Kind)
	assert.Len(t, langs.Members, 3)

	agree := f.field(t, "I agree to terms")
	assert.Equal(t, answers.KindCheckbox, agree.Kind)

	counts := report.Counts()
	assert.Equal(t, 2, counts[StateResolved])
	assert.Equal(t, 5, counts[StateUnresolved])
}

func TestScan_RescanSkipsProcessed(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)
	events := len(f.page.Doc.Events())

	report, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)
	assert.Empty(t, report.Fields)
	assert.Len(t, f.page.Doc.Events(), events)
	assert.Len(t, f.scanner.Fields(), 7)
}

func TestScan_RestoresChoices(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.store.SetMappings(ctx, &store.MappingsUpdate{
		FieldAnswers: map[string]types.Value{
			"jobs.acme.com::country::select":            types.Text("Canada"),
			"jobs.acme.com::languages::checkbox_group":  types.List("A", "C"),
			"jobs.acme.com::work_authorization::radio":  types.Text("no"),
			"jobs.acme.com::i_agree_to_terms::checkbox": types.Text("true"),
		},
	}))

	_, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)
	doc := f.page.Doc

	assert.Equal(t, "ca", doc.ByID("country").Value())

	var checked []string
	for _, cb := range doc.Find(`input[name="lang"]`) {
		if cb.Checked() {
			checked = append(checked, cb.AttrOr("value"))
		}
	}
	assert.Equal(t, []string{"A", "C"}, checked)

	assert.True(t, doc.ByID("auth-n").Checked())
	assert.False(t, doc.ByID("auth-y").Checked())
	assert.True(t, doc.First(`input[name="agree"]`).Checked())

	for _, label := range []string{"Country", "Languages", "Work authorization", "I agree to terms"} {
		ff := f.field(t, label)
		assert.Equal(t, StateResolved, ff.State, label)
		assert.Equal(t, answers.SourceSiteSaved, ff.Source, label)
	}
}

func TestScan_NotWhitelisted(t *testing.T) {
	f := newFixture(t, nil)
	doc, err := dom.ParseString(applicationForm, "https://evil.example.org/apply")
	require.NoError(t, err)

	_, err = f.scanner.Scan(context.Background(), &StaticPage{Doc: doc})
	assert.ErrorIs(t, err, ErrNotWhitelisted)
	assert.Empty(t, doc.Events())
	assert.Empty(t, f.scanner.Fields())
}

func TestScan_LogsFillsWhenEnabled(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.store.SetLogging(ctx, true))

	_, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)

	logs, err := f.store.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	var entry FillLog
	require.NoError(t, json.Unmarshal(logs[0].Payload, &entry))
	assert.Equal(t, "fn", entry.Field.ID)
	assert.Equal(t, "first_name", entry.Field.Name)
	assert.Equal(t, "text", entry.Field.Type)
	require.NotNil(t, entry.NearestLabel)
	assert.Equal(t, "First Name *", entry.NearestLabel.Text)
	assert.Equal(t, "basic-profile", entry.Meta.Source)
	assert.Equal(t, "first_name", entry.Meta.CanonicalKey)
	assert.Equal(t, "Jane", entry.Value.String())
}

func TestRecordEdit(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)

	doc := f.page.Doc
	whyID := doc.ByID("why").AutofillID()

	saved, err := f.scanner.RecordEdit(ctx, f.page, whyID)
	require.NoError(t, err)
	assert.False(t, saved, "empty value is not saved")

	require.NoError(t, doc.Apply(dom.Fill{ElementID: whyID, Kind: dom.FillValue, Value: "  I like rockets  "}))
	saved, err = f.scanner.RecordEdit(ctx, f.page, whyID)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = f.scanner.RecordEdit(ctx, f.page, whyID)
	require.NoError(t, err)
	assert.False(t, saved, "unchanged value is not saved again")

	why := f.field(t, "Why do you want to work here?")
	assert.Equal(t, StateResolved, why.State)
	assert.Equal(t, answers.SourceUser, why.Source)

	v, ok, err := f.store.SiteAnswer(ctx, why.SiteKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "I like rockets", v.String())

	saved, err = f.scanner.RecordEdit(ctx, f.page, "af-999")
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestRecordEdit_CheckboxGroupMember(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)

	doc := f.page.Doc
	boxes := doc.Find(`input[name="lang"]`)
	require.Len(t, boxes, 3)
	require.NoError(t, doc.Apply(dom.Fill{ElementID: boxes[1].AutofillID(), Kind: dom.FillCheck, Checked: true}))

	saved, err := f.scanner.RecordEdit(ctx, f.page, boxes[1].AutofillID())
	require.NoError(t, err)
	require.True(t, saved)

	v, ok, err := f.store.SiteAnswer(ctx, "jobs.acme.com::languages::checkbox_group")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"B"}, v.Items())
}

type stubGenerator struct {
	answer string
	err    error
	calls  []string
}

func (g *stubGenerator) GenerateAnswer(_ context.Context, label, company, role string) (string, error) {
	g.calls = append(g.calls, label+"|"+company+"|"+role)
	return g.answer, g.err
}

func TestGenerate(t *testing.T) {
	gen := &stubGenerator{answer: "I admire Acme's mission."}
	f := newFixture(t, gen)
	ctx := context.Background()
	_, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)

	doc := f.page.Doc
	whyID := doc.ByID("why").AutofillID()

	answer, err := f.scanner.Generate(ctx, f.page, whyID)
	require.NoError(t, err)
	assert.Equal(t, "I admire Acme's mission.", answer)
	assert.Equal(t, []string{"Why do you want to work here?|Acme|Unknown"}, gen.calls)

	assert.Equal(t, "I admire Acme's mission.", doc.ByID("why").Value())
	assert.Empty(t, doc.Find("."+dom.TriggerClass), "trigger is removed after success")

	why := f.field(t, "Why do you want to work here?")
	assert.Equal(t, StateResolved, why.State)
	assert.Equal(t, answers.SourceAI, why.Source)

	m, err := f.store.Mappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "I admire Acme's mission.", m.FieldAnswers[why.SiteKey].String())
	assert.Equal(t, []types.ExperienceRef{{Company: "Acme"}}, m.Experiences)
}

func TestGenerate_Errors(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, nil)
	_, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)
	_, err = f.scanner.Generate(ctx, f.page, f.page.Doc.ByID("why").AutofillID())
	assert.ErrorIs(t, err, ErrNoGenerator)

	gen := &stubGenerator{answer: "definitely not an email"}
	f = newFixture(t, gen)
	_, err = f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)
	doc := f.page.Doc

	_, err = f.scanner.Generate(ctx, f.page, "af-999")
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)

	_, err = f.scanner.Generate(ctx, f.page, doc.ByID("country").AutofillID())
	assert.ErrorAs(t, err, &fieldErr)

	_, err = f.scanner.Generate(ctx, f.page, doc.ByID("em").AutofillID())
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "email", valErr.Key)
	assert.Equal(t, "jane@x.com", doc.ByID("em").Value(), "rejected answer is not filled")

	gen.err = errors.New("upstream down")
	_, err = f.scanner.Generate(ctx, f.page, doc.ByID("why").AutofillID())
	assert.EqualError(t, err, "upstream down")
	assert.Len(t, doc.Find("."+dom.TriggerClass), 1, "trigger stays after failure")
}

type blockingGenerator struct {
	entered chan struct{}
	release chan struct{}
}

func (g *blockingGenerator) GenerateAnswer(ctx context.Context, _, _, _ string) (string, error) {
	close(g.entered)
	select {
	case <-g.release:
		return "Generated answer", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestGenerate_RefusesReentry(t *testing.T) {
	gen := &blockingGenerator{entered: make(chan struct{}), release: make(chan struct{})}
	f := newFixture(t, gen)
	ctx := context.Background()
	_, err := f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)
	whyID := f.page.Doc.ByID("why").AutofillID()

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = f.scanner.Generate(ctx, f.page, whyID)
	}()

	<-gen.entered
	_, err = f.scanner.Generate(ctx, f.page, whyID)
	assert.ErrorIs(t, err, ErrInFlight)

	// Scans are not blocked by a running generation.
	_, err = f.scanner.Scan(ctx, f.page)
	require.NoError(t, err)

	close(gen.release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, "Generated answer", f.page.Doc.ByID("why").Value())
}
