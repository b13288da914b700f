package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Event is a notification dispatched on a control after a fill.
type Event struct {
	ElementID string `json:"element_id"`
	Type      string `json:"type"`
}

// FillKind selects how a Fill mutates its control.
type FillKind string

const (
	// FillValue sets the value of a text input or textarea.
	FillValue FillKind = "value"
	// FillSelect selects the option whose value equals Fill.Value.
	FillSelect FillKind = "select"
	// FillCheck sets the checked state of a radio or checkbox.
	FillCheck FillKind = "check"
	// FillTrigger attaches the manual AI-generation affordance.
	FillTrigger FillKind = "trigger"
	// FillClearTrigger removes the affordance once the control is answered.
	FillClearTrigger FillKind = "clear-trigger"
)

// TriggerClass marks the affordance element appended for FillTrigger.
const TriggerClass = "autofill-ai-trigger"

// TriggerForAttr links an affordance to the stable ID of its control.
const TriggerForAttr = "data-autofill-for"

// Fill is a single mutation of a control, addressed by stable ID.
type Fill struct {
	ElementID string   `json:"element_id"`
	Kind      FillKind `json:"kind"`
	Value     string   `json:"value,omitempty"`
	Checked   bool     `json:"checked,omitempty"`
}

// Apply performs the fill in memory and records the events a browser would
// dispatch: input, change and blur for values, change for choices.
func (d *Document) Apply(f Fill) error {
	el := d.ByAutofillID(f.ElementID)
	if el == nil {
		return fmt.Errorf("no element with %s=%q", IDAttr, f.ElementID)
	}

	switch f.Kind {
	case FillValue:
		el.setValue(f.Value)
		d.dispatch(el, "input", "change", "blur")
	case FillSelect:
		if !el.selectOption(f.Value) {
			return fmt.Errorf("select %s has no option %q", f.ElementID, f.Value)
		}
		d.dispatch(el, "change")
	case FillCheck:
		el.setChecked(f.Checked)
		d.dispatch(el, "change")
	case FillTrigger:
		d.attachTrigger(el)
	case FillClearTrigger:
		d.clearTrigger(el)
	default:
		return fmt.Errorf("unknown fill kind %q", f.Kind)
	}
	return nil
}

func (e *Element) setValue(value string) {
	if e.Tag() == "textarea" {
		e.sel.Empty()
		e.Node().AppendChild(&html.Node{Type: html.TextNode, Data: value})
		return
	}
	e.sel.SetAttr("value", value)
}

func (e *Element) selectOption(value string) bool {
	found := false
	e.sel.Find("option").Each(func(_ int, s *goquery.Selection) {
		v, ok := s.Attr("value")
		if !ok {
			v = strings.Join(strings.Fields(s.Text()), " ")
		}
		if v == value && !found {
			s.SetAttr("selected", "")
			found = true
			return
		}
		s.RemoveAttr("selected")
	})
	return found
}

func (e *Element) setChecked(checked bool) {
	if !checked {
		e.sel.RemoveAttr("checked")
		return
	}
	if e.Type() == "radio" && e.Name() != "" {
		for _, other := range e.doc.Find(`input[type="radio"]`) {
			if other.Name() == e.Name() {
				other.sel.RemoveAttr("checked")
			}
		}
	}
	e.sel.SetAttr("checked", "")
}

func (d *Document) clearTrigger(el *Element) {
	id := el.AutofillID()
	for _, existing := range d.Find("." + TriggerClass) {
		if existing.AttrOr(TriggerForAttr) == id {
			existing.sel.Remove()
		}
	}
}

// attachTrigger appends the affordance to body once per control.
func (d *Document) attachTrigger(el *Element) {
	id := el.AutofillID()
	for _, existing := range d.Find("." + TriggerClass) {
		if existing.AttrOr(TriggerForAttr) == id {
			return
		}
	}

	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return
	}
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr: []html.Attribute{
			{Key: "class", Val: TriggerClass},
			{Key: TriggerForAttr, Val: id},
			{Key: "title", Val: "Click to generate with AI"},
		},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: "✨"})
	body.Get(0).AppendChild(span)
}
