package answers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/fieldmatch"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

func TestResolve_SelectMatchesValueOrText(t *testing.T) {
	r, s := newTestResolver(t)
	ctx := context.Background()

	choices := []Choice{{Value: "", Text: "Select..."}, {Value: "us", Text: "United States"}, {Value: "ca", Text: "Canada"}}
	f := Field{Label: "Country", SiteKey: "site.com::country::select", Key: fieldmatch.LocationCountry, Kind: KindSelect, Choices: choices}

	tests := []struct {
		saved string
		want  string
	}{
		{"ca", "ca"},
		{"CA", "ca"},
		{"united states", "us"},
	}
	for _, tt := range tests {
		t.Run(tt.saved, func(t *testing.T) {
			require.NoError(t, s.SetMappings(ctx, &store.MappingsUpdate{
				FieldAnswers: map[string]types.Value{f.SiteKey: types.Text(tt.saved)},
			}))
			res, err := r.Resolve(ctx, f, nil, nil)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.want, res.Value.String())
			require.Len(t, res.Selected, 1)
			assert.Equal(t, tt.want, res.Selected[0].Value)
		})
	}
}

func TestResolve_SelectUnmappedFallsToGeneric(t *testing.T) {
	r, s := newTestResolver(t)
	ctx := context.Background()

	f := Field{
		Label: "Country", SiteKey: "site.com::country::select", Key: fieldmatch.LocationCountry, Kind: KindSelect,
		Choices: []Choice{{Value: "us", Text: "United States"}},
	}
	require.NoError(t, s.SetMappings(ctx, &store.MappingsUpdate{
		FieldAnswers:        map[string]types.Value{f.SiteKey: types.Text("Mars")},
		GenericFieldAnswers: map[string]types.Value{"location_country": types.Text("United States")},
	}))

	res, err := r.Resolve(ctx, f, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, SourceGenericSaved, res.Source)
	assert.Equal(t, "us", res.Value.String())
}

func TestResolve_ChoiceIgnoresProfiles(t *testing.T) {
	r, _ := newTestResolver(t)
	f := Field{Label: "Email", SiteKey: "s::email::select", Key: fieldmatch.Email, Kind: KindSelect,
		Choices: []Choice{{Value: "jane@x.com", Text: "jane@x.com"}}}

	res, err := r.Resolve(context.Background(), f, &types.Profile{Email: "jane@x.com"}, nil)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolve_RadioMatchesID(t *testing.T) {
	r, s := newTestResolver(t)
	ctx := context.Background()

	f := Field{Label: "Sponsorship", SiteKey: "s::sponsorship::radio", Kind: KindRadioGroup, Choices: []Choice{
		{ElementID: "af-1", Value: "1", ID: "sponsor-yes", Text: "Yes"},
		{ElementID: "af-2", Value: "0", ID: "sponsor-no", Text: "No"},
	}}
	require.NoError(t, s.SetMappings(ctx, &store.MappingsUpdate{
		FieldAnswers: map[string]types.Value{f.SiteKey: types.Text("sponsor-no")},
	}))

	res, err := r.Resolve(ctx, f, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "af-2", res.Selected[0].ElementID)
}

func TestResolve_Checkbox(t *testing.T) {
	tests := []struct {
		saved   types.Value
		checked bool
	}{
		{types.Text("true"), true},
		{types.Text("1"), true},
		{types.Text("yes"), true},
		{types.Text("false"), false},
		{types.Text("on"), false},
	}

	for _, tt := range tests {
		t.Run(tt.saved.String(), func(t *testing.T) {
			r, s := newTestResolver(t)
			ctx := context.Background()
			f := Field{Label: "Agree", SiteKey: "s::agree::checkbox", Kind: KindCheckbox}
			require.NoError(t, s.SetMappings(ctx, &store.MappingsUpdate{
				FieldAnswers: map[string]types.Value{f.SiteKey: tt.saved},
			}))

			res, err := r.Resolve(ctx, f, nil, nil)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.checked, res.Checked)
		})
	}
}

func TestResolve_CheckboxGroupRestoresExactList(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()

	f := Field{Label: "Languages", SiteKey: "s::languages::checkbox_group", Kind: KindCheckboxGroup, Choices: []Choice{
		{ElementID: "af-1", Value: "A"},
		{ElementID: "af-2", Value: "B"},
		{ElementID: "af-3", Value: "C"},
	}}
	require.NoError(t, r.Save(ctx, f.SiteKey, "", types.List("A", "C"), nil))

	res, err := r.Resolve(ctx, f, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, SourceSiteSaved, res.Source)

	var ids []string
	for _, c := range res.Selected {
		ids = append(ids, c.ElementID)
	}
	assert.Equal(t, []string{"af-1", "af-3"}, ids)
}

func TestResolve_CheckboxGroupEmptyListUnchecksAll(t *testing.T) {
	r, _ := newTestResolver(t)
	ctx := context.Background()

	f := Field{SiteKey: "s::x::checkbox_group", Kind: KindCheckboxGroup, Choices: []Choice{{Value: "A"}}}
	require.NoError(t, r.Save(ctx, f.SiteKey, "", types.List(), nil))

	res, err := r.Resolve(ctx, f, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Selected)
}

func TestKind_SiteKeyToken(t *testing.T) {
	assert.Equal(t, "input", KindText.SiteKeyToken())
	assert.Equal(t, "textarea", KindTextarea.SiteKeyToken())
	assert.Equal(t, "radio", KindRadioGroup.SiteKeyToken())
	assert.Equal(t, "checkbox_group", KindCheckboxGroup.SiteKeyToken())
	assert.True(t, KindCheckbox.IsChoice())
	assert.False(t, KindTextarea.IsChoice())
}
