package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/resume"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

type stubGenerator struct {
	answer string
	err    error
	calls  []string
}

func (g *stubGenerator) GenerateAnswer(_ context.Context, label, company, role string) (string, error) {
	g.calls = append(g.calls, label+"|"+company+"|"+role)
	return g.answer, g.err
}

type stubStructurer struct{}

func (stubStructurer) Structure(_ context.Context, text string) (*resume.Result, error) {
	p := resume.StructureLocal(text)
	return &resume.Result{Profile: p, Canonical: resume.ToCanonical(p), Local: true}, nil
}

type fixture struct {
	handler   *Handler
	store     *store.Store
	generator *stubGenerator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.New(store.NewMemory())
	t.Cleanup(func() { _ = s.Close() })
	g := &stubGenerator{answer: "Because."}
	return &fixture{
		handler:   NewHandler(s, g, stubStructurer{}, zerolog.Nop()),
		store:     s,
		generator: g,
	}
}

func (f *fixture) send(t *testing.T, msg string) Response {
	t.Helper()
	return f.handler.Handle(context.Background(), []byte(msg))
}

func TestHandle_UnknownAndMalformed(t *testing.T) {
	f := newFixture(t)

	resp := f.send(t, `{"action":"launchRockets"}`)
	assert.False(t, resp.Success())
	assert.Equal(t, "unknown action: launchRockets", resp.Error())

	resp = f.send(t, `not json`)
	assert.False(t, resp.Success())
	assert.Contains(t, resp.Error(), "invalid message")

	resp = f.send(t, `{}`)
	assert.False(t, resp.Success())
}

func TestHandle_SaveAndGetFieldAnswer(t *testing.T) {
	f := newFixture(t)

	resp := f.send(t, `{"action":"saveFieldAnswer","fieldKey":"a.com::email::input","answer":"jane@x.com","genericKey":"email","relatedExperience":{"company":"Acme"}}`)
	require.True(t, resp.Success(), resp.Error())

	resp = f.send(t, `{"action":"getFieldAnswer","fieldKey":"a.com::email::input"}`)
	require.True(t, resp.Success())
	assert.Equal(t, types.Text("jane@x.com"), resp["answer"])

	// Another site key mapped nowhere but asking for the generic key.
	resp = f.send(t, `{"action":"getFieldAnswer","fieldKey":"b.com::e_mail::input","genericKey":"email"}`)
	assert.Equal(t, types.Text("jane@x.com"), resp["answer"])

	resp = f.send(t, `{"action":"getFieldAnswer","fieldKey":"b.com::nothing::input"}`)
	require.True(t, resp.Success())
	assert.Nil(t, resp["answer"])
	assert.JSONEq(t, `{"success":true,"answer":null}`, string(resp.Marshal()))

	m, err := f.store.Mappings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "email", m.SiteToGeneric["a.com::email::input"])
	assert.Equal(t, []types.ExperienceRef{{Company: "Acme"}}, m.Experiences)
}

func TestHandle_GetFieldAnswerViaMapping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.SetMappings(ctx, &store.MappingsUpdate{
		GenericFieldAnswers: map[string]types.Value{"phone": types.Text("555-123-4567")},
		SiteToGeneric:       map[string]string{"a.com::mobile::input": "phone"},
	}))

	resp := f.send(t, `{"action":"getFieldAnswer","fieldKey":"a.com::mobile::input"}`)
	assert.Equal(t, types.Text("555-123-4567"), resp["answer"])
}

func TestHandle_SaveFieldAnswerValidation(t *testing.T) {
	f := newFixture(t)

	resp := f.send(t, `{"action":"saveFieldAnswer","answer":"x"}`)
	assert.False(t, resp.Success())
	assert.Contains(t, resp.Error(), "FieldKey")

	resp = f.send(t, `{"action":"saveFieldAnswer","fieldKey":"a::b::input","answer":"x","genericKey":"favourite_colour"}`)
	assert.False(t, resp.Success())
	assert.Contains(t, resp.Error(), "canonical_key")
}

func TestHandle_GenerateAnswer(t *testing.T) {
	f := newFixture(t)

	resp := f.send(t, `{"action":"generateAnswer","fieldLabel":"Why us?","company":"Acme","role":"Engineer"}`)
	require.True(t, resp.Success())
	assert.Equal(t, "Because.", resp["answer"])
	assert.Equal(t, []string{"Why us?|Acme|Engineer"}, f.generator.calls)

	f.generator.err = errors.New("No resume uploaded")
	resp = f.send(t, `{"action":"generateAnswer","fieldLabel":"Why us?"}`)
	assert.JSONEq(t, `{"success":false,"error":"No resume uploaded"}`, string(resp.Marshal()))

	resp = f.send(t, `{"action":"generateAnswer"}`)
	assert.False(t, resp.Success())
}

func TestHandle_StructureResume(t *testing.T) {
	f := newFixture(t)

	resp := f.send(t, `{"action":"structureResume","resumeText":"Jane Doe\njane@x.com"}`)
	require.True(t, resp.Success())
	profile, ok := resp["profile"].(*types.Profile)
	require.True(t, ok)
	assert.Equal(t, "jane@x.com", profile.Email)
	assert.NotNil(t, resp["canonicalProfile"])

	resp = f.send(t, `{"action":"structureResume","resumeText":""}`)
	assert.False(t, resp.Success())
}

func TestHandle_Mappings(t *testing.T) {
	f := newFixture(t)

	resp := f.send(t, `{"action":"getMappings"}`)
	require.True(t, resp.Success())
	assert.JSONEq(t,
		`{"success":true,"mappings":{"fieldAnswers":{},"genericFieldAnswers":{},"experiences":[],"siteToGeneric":{},"autofillLogging":false}}`,
		string(resp.Marshal()))

	resp = f.send(t, `{"action":"setMappings","mappings":{"fieldAnswers":{"a::b::checkbox_group":["A","C"]},"autofillLogging":true}}`)
	require.True(t, resp.Success(), resp.Error())

	m, err := f.store.Mappings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.List("A", "C"), m.FieldAnswers["a::b::checkbox_group"])
	assert.True(t, m.AutofillLogging)

	resp = f.send(t, `{"action":"setMappings","mappings":{"profile":{}}}`)
	assert.False(t, resp.Success())
	assert.Contains(t, resp.Error(), "validation failed")

	resp = f.send(t, `{"action":"setMappings"}`)
	assert.True(t, resp.Success())
}

func TestHandle_Logs(t *testing.T) {
	f := newFixture(t)

	resp := f.send(t, `{"action":"logAutofill","field":{"id":"af-1"},"value":"Jane"}`)
	require.True(t, resp.Success())

	resp = f.send(t, `{"action":"getLogs"}`)
	require.True(t, resp.Success())
	logs, ok := resp["logs"].([]store.LogEntry)
	require.True(t, ok)
	require.Len(t, logs, 1)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(logs[0].Payload, &payload))
	assert.Equal(t, "Jane", payload["value"])
	assert.NotEmpty(t, logs[0].ID)

	require.True(t, f.send(t, `{"action":"clearLogs"}`).Success())
	logs = f.send(t, `{"action":"getLogs"}`)["logs"].([]store.LogEntry)
	assert.Empty(t, logs)
}

func TestAction(t *testing.T) {
	assert.Equal(t, ActionGetLogs, Action([]byte(`{"action":"getLogs"}`)))
	assert.Equal(t, "", Action([]byte(`nope`)))
	assert.True(t, IsAIAction(ActionGenerateAnswer))
	assert.True(t, IsAIAction(ActionStructureResume))
	assert.False(t, IsAIAction(ActionGetLogs))
}
