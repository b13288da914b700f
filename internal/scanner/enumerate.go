package scanner

import (
	"github.com/jonathan/job-autofill/internal/answers"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/labels"
)

// controlSelector matches every element the scanner may consider.
const controlSelector = "input, textarea, select"

var textInputTypes = map[string]bool{
	"text":   true,
	"email":  true,
	"tel":    true,
	"url":    true,
	"number": true,
	"search": true,
}

// candidate is a control, or a radio or checkbox group, found by enumerate.
type candidate struct {
	kind    answers.Kind
	name    string
	members []*dom.Element
}

func (c candidate) first() *dom.Element {
	return c.members[0]
}

// enumerate lists candidate controls in document order. Text-like controls
// must be visible and editable; choice controls only need to be enabled.
// Radios group by name (falling back to id); checkboxes group by name when
// more than one shares it.
func enumerate(doc *dom.Document) []candidate {
	var out []candidate
	grouped := make(map[string]bool)

	for _, el := range doc.Find(controlSelector) {
		if el.Disabled() {
			continue
		}

		switch el.Tag() {
		case "textarea":
			if el.Hidden() || el.ReadOnly() {
				continue
			}
			out = append(out, candidate{kind: answers.KindTextarea, name: el.Name(), members: []*dom.Element{el}})
			continue
		case "select":
			out = append(out, candidate{kind: answers.KindSelect, name: el.Name(), members: []*dom.Element{el}})
			continue
		}

		switch typ := el.Type(); {
		case textInputTypes[typ]:
			if el.Hidden() || el.ReadOnly() {
				continue
			}
			out = append(out, candidate{kind: answers.KindText, name: el.Name(), members: []*dom.Element{el}})

		case typ == "radio":
			name := el.Name()
			if name == "" {
				name = el.ID()
			}
			if name == "" {
				out = append(out, candidate{kind: answers.KindRadioGroup, members: []*dom.Element{el}})
				continue
			}
			if grouped["radio:"+name] {
				continue
			}
			grouped["radio:"+name] = true
			out = append(out, candidate{kind: answers.KindRadioGroup, name: name, members: sameName(doc, "radio", el, name)})

		case typ == "checkbox":
			name := el.Name()
			if name == "" {
				out = append(out, candidate{kind: answers.KindCheckbox, members: []*dom.Element{el}})
				continue
			}
			if grouped["checkbox:"+name] {
				continue
			}
			members := sameName(doc, "checkbox", el, name)
			if len(members) > 1 {
				grouped["checkbox:"+name] = true
				out = append(out, candidate{kind: answers.KindCheckboxGroup, name: name, members: members})
				continue
			}
			out = append(out, candidate{kind: answers.KindCheckbox, name: name, members: []*dom.Element{el}})
		}
	}
	return out
}

// sameName returns the enabled inputs of typ sharing name, in document
// order. An id-named radio is its own group.
func sameName(doc *dom.Document, typ string, el *dom.Element, name string) []*dom.Element {
	if el.Name() == "" {
		return []*dom.Element{el}
	}
	var members []*dom.Element
	for _, other := range doc.Find(`input[type="` + typ + `"]`) {
		if other.Name() == name && !other.Disabled() {
			members = append(members, other)
		}
	}
	if len(members) == 0 {
		return []*dom.Element{el}
	}
	return members
}

// choices describes the options a candidate offers.
func choices(c candidate) []answers.Choice {
	switch c.kind {
	case answers.KindSelect:
		var out []answers.Choice
		for _, opt := range c.first().Options() {
			out = append(out, answers.Choice{Value: opt.Value, Text: opt.Text})
		}
		return out
	case answers.KindRadioGroup, answers.KindCheckboxGroup:
		out := make([]answers.Choice, 0, len(c.members))
		for _, m := range c.members {
			out = append(out, answers.Choice{
				ElementID: m.AutofillID(),
				Value:     inputValue(m),
				Text:      optionText(m),
				ID:        m.ID(),
			})
		}
		return out
	}
	return nil
}

// inputValue is the submitted value of a radio or checkbox; browsers use
// "on" when the attribute is absent.
func inputValue(el *dom.Element) string {
	if v, ok := el.Attr("value"); ok {
		return v
	}
	return "on"
}

// optionText is the visible caption of a radio or checkbox.
func optionText(el *dom.Element) string {
	if id := el.ID(); id != "" {
		if label := el.Document().LabelFor(id); label != nil {
			return labels.CleanLabelText(label.Text())
		}
	}
	if label := el.Closest("label"); label != nil {
		return labels.CleanLabelText(label.Text())
	}
	return ""
}
