package answers

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/fieldmatch"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

func newTestResolver(t *testing.T) (*Resolver, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemory())
	return NewResolver(s, zerolog.Nop()), s
}

func textField(siteKey string, key fieldmatch.Key, label string) Field {
	return Field{Label: label, SiteKey: siteKey, Key: key, Kind: KindText}
}

func TestResolve_SiteBeatsGeneric(t *testing.T) {
	r, s := newTestResolver(t)
	ctx := context.Background()

	require.NoError(t, s.SetMappings(ctx, &store.MappingsUpdate{
		FieldAnswers:        map[string]types.Value{"site.com::email::input": types.Text("a@b.com")},
		GenericFieldAnswers: map[string]types.Value{"email": types.Text("c@d.com")},
	}))

	res, err := r.Resolve(ctx, textField("site.com::email::input", fieldmatch.Email, "Email"), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "a@b.com", res.Value.String())
	assert.Equal(t, SourceSiteSaved, res.Source)
}

func TestResolve_GenericViaSiteMapping(t *testing.T) {
	r, s := newTestResolver(t)
	ctx := context.Background()

	require.NoError(t, s.SetMappings(ctx, &store.MappingsUpdate{
		SiteToGeneric:       map[string]string{"site.com::phone::input": "phone"},
		GenericFieldAnswers: map[string]types.Value{"phone": types.Text("555-1234")},
	}))

	res, err := r.Resolve(ctx, textField("site.com::phone::input", "", "phone"), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "555-1234", res.Value.String())
	assert.Equal(t, SourceGenericSaved, res.Source)
}

func TestResolve_InvalidSavedValueIsSkipped(t *testing.T) {
	r, s := newTestResolver(t)
	ctx := context.Background()

	// A website saved under a name field must not fill it.
	require.NoError(t, s.SetMappings(ctx, &store.MappingsUpdate{
		FieldAnswers:        map[string]types.Value{"site.com::first_name::input": types.Text("https://jane.dev")},
		GenericFieldAnswers: map[string]types.Value{"first_name": types.Text("jane@x.com")},
	}))

	profile := &types.Profile{FirstName: "Jane"}
	res, err := r.Resolve(ctx, textField("site.com::first_name::input", fieldmatch.FirstName, "First Name"), profile, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Jane", res.Value.String())
	assert.Equal(t, SourceBasicProfile, res.Source)
}

func TestResolve_CanonicalTierWritesBack(t *testing.T) {
	r, s := newTestResolver(t)
	ctx := context.Background()

	canonical := &types.CanonicalProfile{}
	canonical.Identity.LocationCity = "Austin"
	canonical.Identity.LocationState = "TX"

	f := textField("site.com::location::input", fieldmatch.CurrentLocation, "Location")
	res, err := r.Resolve(ctx, f, nil, canonical)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Austin, TX", res.Value.String())
	assert.Equal(t, SourceCanonical, res.Source)

	res, err = r.Resolve(ctx, f, nil, canonical)
	require.NoError(t, err)
	assert.Equal(t, SourceSiteSaved, res.Source, "second visit hits site memory")

	m, err := s.Mappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Austin, TX", m.GenericFieldAnswers["current_location"].String())
	assert.Equal(t, "current_location", m.SiteToGeneric["site.com::location::input"])
}

func TestResolve_EndToEndBasicProfile(t *testing.T) {
	r, s := newTestResolver(t)
	ctx := context.Background()

	profile := &types.Profile{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}
	f := NewField("site.com", "First Name", KindText, nil)
	require.Equal(t, fieldmatch.FirstName, f.Key)
	require.Equal(t, "site.com::first_name::input", f.SiteKey)

	res, err := r.Resolve(ctx, f, profile, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Jane", res.Value.String())
	assert.Equal(t, SourceBasicProfile, res.Source)

	m, err := s.Mappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane", m.FieldAnswers["site.com::first_name::input"].String())
	assert.Equal(t, "Jane", m.GenericFieldAnswers["first_name"].String())
}

func TestResolve_NoMatch(t *testing.T) {
	r, _ := newTestResolver(t)
	res, err := r.Resolve(context.Background(), NewField("site.com", "Describe your dream job", KindTextarea, nil), &types.Profile{}, nil)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolve_CancelledContext(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, textField("k", "", "x"), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSave_KeepsMapsConsistent(t *testing.T) {
	r, s := newTestResolver(t)
	ctx := context.Background()

	for _, v := range []string{"555-0000", "555-1111", "555-2222"} {
		require.NoError(t, r.Save(ctx, "site.com::phone::input", fieldmatch.Phone, types.Text(v), nil))
		m, err := s.Mappings(ctx)
		require.NoError(t, err)
		assert.Equal(t, m.FieldAnswers["site.com::phone::input"], m.GenericFieldAnswers["phone"])
		assert.Equal(t, "phone", m.SiteToGeneric["site.com::phone::input"])
	}
}

type failingMemory struct{ saves int }

var errStorage = errors.New("storage offline")

func (f *failingMemory) SiteAnswer(context.Context, string) (types.Value, bool, error) {
	return types.Value{}, false, errStorage
}

func (f *failingMemory) GenericAnswer(context.Context, string) (types.Value, bool, error) {
	return types.Value{}, false, errStorage
}

func (f *failingMemory) GenericKeyFor(context.Context, string) (string, bool, error) {
	return "", false, errStorage
}

func (f *failingMemory) SaveAnswer(context.Context, store.SaveRequest) error {
	f.saves++
	return errStorage
}

func TestResolve_StorageErrorsDegrade(t *testing.T) {
	mem := &failingMemory{}
	r := NewResolver(mem, zerolog.Nop())

	res, err := r.Resolve(context.Background(), NewField("site.com", "Email", KindText, nil), &types.Profile{Email: "jane@x.com"}, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "jane@x.com", res.Value.String())
	assert.Equal(t, 1, mem.saves)
}
