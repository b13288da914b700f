package scanner

import (
	"github.com/jonathan/job-autofill/internal/answers"
	"github.com/jonathan/job-autofill/internal/fieldmatch"
	"github.com/jonathan/job-autofill/internal/types"
)

// State is a control's position in the fill lifecycle.
type State string

// Field states. A field never returns to StateUnseen.
const (
	StateUnseen     State = "unseen"
	StateLabeled    State = "labeled"
	StateResolved   State = "resolved"
	StateUnresolved State = "unresolved"
)

// FormField is one discovered control or control group.
type FormField struct {
	// ID is the stable ID of the control, or of a group's first member.
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	Kind      answers.Kind   `json:"kind"`
	Label     string         `json:"label"`
	SiteKey   string         `json:"site_key"`
	Key       fieldmatch.Key `json:"canonical_key,omitempty"`
	State     State          `json:"state"`
	Source    answers.Source `json:"source,omitempty"`
	LastValue types.Value    `json:"value"`
	// Members lists the stable IDs of every control the field covers.
	Members []string         `json:"members"`
	Choices []answers.Choice `json:"-"`
	// Trigger reports whether the manual generation affordance is attached.
	Trigger bool `json:"trigger,omitempty"`
}

func (f *FormField) answerField() answers.Field {
	return answers.Field{
		Label:   f.Label,
		SiteKey: f.SiteKey,
		Key:     f.Key,
		Kind:    f.Kind,
		Choices: f.Choices,
	}
}

func (f *FormField) resolve(source answers.Source, value types.Value) {
	f.State = StateResolved
	f.Source = source
	f.LastValue = value
}

// Registry is the arena of discovered fields, keyed by stable ID. It is not
// safe for concurrent use; the Scanner serializes access.
type Registry struct {
	fields  map[string]*FormField
	members map[string]string
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fields:  make(map[string]*FormField),
		members: make(map[string]string),
	}
}

// Add registers f and each of its members.
func (r *Registry) Add(f *FormField) {
	if _, ok := r.fields[f.ID]; !ok {
		r.order = append(r.order, f.ID)
	}
	r.fields[f.ID] = f
	for _, m := range f.Members {
		r.members[m] = f.ID
	}
}

// Get returns the field with the given ID.
func (r *Registry) Get(id string) *FormField {
	return r.fields[id]
}

// ForElement returns the field covering the control with the given stable ID.
func (r *Registry) ForElement(elementID string) *FormField {
	if id, ok := r.members[elementID]; ok {
		return r.fields[id]
	}
	return nil
}

// Seen reports whether any registered field covers elementID.
func (r *Registry) Seen(elementID string) bool {
	_, ok := r.members[elementID]
	return ok
}

// All returns the fields in discovery order.
func (r *Registry) All() []*FormField {
	out := make([]*FormField, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.fields[id])
	}
	return out
}

// Len returns the number of fields.
func (r *Registry) Len() int {
	return len(r.order)
}
