// Package answers decides what value to put into a form field. It layers
// site-specific memory, cross-site generic memory, the canonical profile and
// the basic profile, and promotes profile-derived answers into memory so the
// next visit hits the cheaper tiers.
package answers

import "github.com/jonathan/job-autofill/internal/fieldmatch"

// Kind is the control shape of a form field.
type Kind string

// Field kinds.
const (
	KindText          Kind = "text"
	KindTextarea      Kind = "textarea"
	KindSelect        Kind = "select"
	KindRadioGroup    Kind = "radio-group"
	KindCheckbox      Kind = "checkbox"
	KindCheckboxGroup Kind = "checkbox-group"
)

// siteKeyTokens are the kind tokens embedded in site keys.
var siteKeyTokens = map[Kind]string{
	KindText:          "input",
	KindTextarea:      "textarea",
	KindSelect:        "select",
	KindRadioGroup:    "radio",
	KindCheckbox:      "checkbox",
	KindCheckboxGroup: "checkbox_group",
}

// SiteKeyToken returns the site-key token for k.
func (k Kind) SiteKeyToken() string {
	if tok, ok := siteKeyTokens[k]; ok {
		return tok
	}
	return "input"
}

// IsChoice reports whether the control picks among fixed options.
func (k Kind) IsChoice() bool {
	switch k {
	case KindSelect, KindRadioGroup, KindCheckbox, KindCheckboxGroup:
		return true
	}
	return false
}

// Choice is one selectable option of a select, radio group or checkbox group.
type Choice struct {
	// ElementID identifies the option's own control for radios and
	// checkboxes; it is empty for select options.
	ElementID string
	Value     string
	Text      string
	// ID is the control's DOM id, matched when restoring radios.
	ID string
}

// Field is what the resolver needs to know about one form control.
type Field struct {
	Label   string
	SiteKey string
	// Key is the matched canonical key, or "" when none matched.
	Key     fieldmatch.Key
	Kind    Kind
	Choices []Choice
}

// NewField derives the site key and canonical key for a labeled control.
func NewField(domain, label string, kind Kind, choices []Choice) Field {
	key, _ := fieldmatch.Match(label)
	return Field{
		Label:   label,
		SiteKey: fieldmatch.SiteKey(domain, label, kind.SiteKeyToken()),
		Key:     key,
		Kind:    kind,
		Choices: choices,
	}
}
