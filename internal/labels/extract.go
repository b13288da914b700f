// Package labels infers a human-readable label for a form control from its
// attributes, its surrounding markup and, when layout is known, the nearest
// label-like element on screen.
package labels

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/dom"
)

// Unknown is returned when no step of the cascade yields text.
const Unknown = "unknown"

const (
	maxAncestorDepth  = 5
	maxSiblings       = 3
	maxLabelLength    = 100
	maxHeadingLength  = 50
	proximityCutoffPx = 200
	offAxisPenalty    = 1.5
)

// dataLabelAttrs are framework and test hooks that often carry field names.
var dataLabelAttrs = []string{
	"data-label", "data-field-name", "data-field-label", "data-name",
	"data-qa", "data-testid", "data-test-id", "data-cy", "data-automation",
}

// labelLikeChildren are checked as direct children of each ancestor.
var labelLikeChildren = []string{
	"label", ".label", ".form-label", ".field-label", ".input-label", "span.label", "div.label",
}

const headingSelector = "h1, h2, h3, h4, h5, h6"

// ProximitySelector matches the label-like elements the proximity step considers.
const ProximitySelector = `label, .label, .form-label, [class*="label"]`

// Step is one named stage of the cascade.
type Step struct {
	Name    string
	Extract func(el *dom.Element) string
}

// Cascade is the ordered list of steps; the first non-empty result wins.
var Cascade = []Step{
	{"aria-label", fromAriaLabel},
	{"aria-labelledby", fromAriaLabelledBy},
	{"aria-describedby", fromAriaDescribedBy},
	{"data-attribute", fromDataAttrs},
	{"label-for", fromLabelFor},
	{"placeholder", fromPlaceholder},
	{"title", fromTitle},
	{"ancestor", fromAncestors},
	{"sibling", fromSiblings},
	{"proximity", fromProximity},
	{"attribute-name", fromAttributeName},
}

// Extract returns the best label for el, never empty.
func Extract(el *dom.Element) string {
	label, _ := Explain(el)
	return label
}

// Explain returns the label and the name of the step that produced it.
func Explain(el *dom.Element) (label, step string) {
	for _, s := range Cascade {
		if v := s.Extract(el); v != "" {
			return v, s.Name
		}
	}
	return Unknown, "fallback"
}

func fromAriaLabel(el *dom.Element) string {
	return el.AttrOr("aria-label")
}

func fromAriaLabelledBy(el *dom.Element) string {
	return referencedText(el, "aria-labelledby")
}

func fromAriaDescribedBy(el *dom.Element) string {
	text := referencedText(el, "aria-describedby")
	if length(text) >= maxLabelLength {
		return ""
	}
	return text
}

// referencedText resolves a space-separated ID list and joins the texts.
func referencedText(el *dom.Element, attr string) string {
	ids := strings.Fields(el.AttrOr(attr))
	if len(ids) == 0 {
		return ""
	}
	var parts []string
	for _, id := range ids {
		if ref := el.Document().ByID(id); ref != nil {
			parts = append(parts, strings.TrimSpace(ref.Text()))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func fromDataAttrs(el *dom.Element) string {
	for _, attr := range dataLabelAttrs {
		v := el.AttrOr(attr)
		if n := length(v); n > 1 && n < maxLabelLength {
			return cleanDataAttr(v)
		}
	}
	return ""
}

func fromLabelFor(el *dom.Element) string {
	doc := el.Document()
	for _, target := range []string{el.ID(), el.Name()} {
		if label := doc.LabelFor(target); label != nil {
			if text := CleanLabelText(label.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

func fromPlaceholder(el *dom.Element) string {
	v := el.AttrOr("placeholder")
	if length(v) > 1 {
		return v
	}
	return ""
}

func fromTitle(el *dom.Element) string {
	v := el.AttrOr("title")
	if n := length(v); n > 1 && n < maxLabelLength {
		return v
	}
	return ""
}

func fromAncestors(el *dom.Element) string {
	current := el.Parent()
	for depth := 0; depth < maxAncestorDepth && current != nil; depth++ {
		if text := ancestorLabel(current, el); text != "" {
			return text
		}
		current = current.Parent()
	}
	return ""
}

func ancestorLabel(ancestor, control *dom.Element) string {
	switch ancestor.Tag() {
	case "label":
		if text := ancestor.DirectText(); text != "" {
			return text
		}
	case "fieldset":
		if legends := ancestor.Find("legend"); len(legends) > 0 {
			if text := CleanLabelText(legends[0].Text()); text != "" {
				return text
			}
		}
	}

	for _, selector := range labelLikeChildren {
		children := ancestor.Children(selector)
		if len(children) == 0 || children[0].Contains(control) {
			continue
		}
		if text := CleanLabelText(children[0].Text()); text != "" {
			return text
		}
	}

	if headings := ancestor.Children(headingSelector); len(headings) > 0 {
		if text := CleanLabelText(headings[0].Text()); text != "" && length(text) < maxHeadingLength {
			return text
		}
	}

	if text := ancestor.DirectText(); length(text) > 1 && length(text) < maxLabelLength {
		return text
	}
	return ""
}

func fromSiblings(el *dom.Element) string {
	sibling := el.PrevSibling()
	for i := 0; i < maxSiblings && sibling != nil; i++ {
		if sibling.Tag() == "label" || sibling.HasClass("label") || sibling.HasClass("form-label") {
			if text := CleanLabelText(sibling.Text()); text != "" {
				return text
			}
		} else if (sibling.Tag() == "span" || sibling.Tag() == "div") && length(strings.TrimSpace(sibling.Text())) < maxLabelLength {
			if text := CleanLabelText(sibling.Text()); text != "" && LooksLikeLabel(text) {
				return text
			}
		}
		sibling = sibling.PrevSibling()
	}
	return ""
}

// fromProximity picks the label-like element with the smallest box gap,
// penalizing candidates that are not above or left of the control.
func fromProximity(el *dom.Element) string {
	layout := el.Document().Layout()
	if layout == nil {
		return ""
	}
	rect, ok := layout.Rect(el)
	if !ok || rect.Width() == 0 {
		return ""
	}

	var nearest *dom.Element
	best := float64(proximityCutoffPx)
	for _, candidate := range el.Document().Find(ProximitySelector) {
		if candidate.Contains(el) {
			continue
		}
		box, ok := layout.Rect(candidate)
		if !ok || box.Width() == 0 {
			continue
		}
		distance := rect.Gap(box)
		if !box.AboveOrLeftOf(rect) {
			distance *= offAxisPenalty
		}
		if distance < best {
			best = distance
			nearest = candidate
		}
	}

	if nearest == nil {
		return ""
	}
	return CleanLabelText(nearest.Text())
}

func fromAttributeName(el *dom.Element) string {
	if name := CleanAttributeName(el.Name()); name != "" {
		return name
	}
	return CleanAttributeName(el.ID())
}
