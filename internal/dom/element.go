package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a single element node of a Document.
type Element struct {
	sel *goquery.Selection
	doc *Document
}

// Option is one choice of a select control.
type Option struct {
	Value    string
	Text     string
	Selected bool
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.sel.Get(0)
}

// Document returns the document the element belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

// Is reports whether e and other are the same node.
func (e *Element) Is(other *Element) bool {
	return other != nil && e.Node() == other.Node()
}

// Tag returns the lowercase tag name.
func (e *Element) Tag() string {
	return e.Node().Data
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// AttrOr returns the attribute value, or "" when absent.
func (e *Element) AttrOr(name string) string {
	return e.sel.AttrOr(name, "")
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.AttrOr("id")
}

// Name returns the name attribute.
func (e *Element) Name() string {
	return e.AttrOr("name")
}

// AutofillID returns the stable identifier assigned at parse time.
func (e *Element) AutofillID() string {
	return e.AttrOr(IDAttr)
}

// Type returns the lowercase type of an input; missing or empty means "text".
// Non-input elements return their tag name.
func (e *Element) Type() string {
	if e.Tag() != "input" {
		return e.Tag()
	}
	t := strings.ToLower(strings.TrimSpace(e.AttrOr("type")))
	if t == "" {
		return "text"
	}
	return t
}

// HasClass reports whether the class list contains class.
func (e *Element) HasClass(class string) bool {
	return e.sel.HasClass(class)
}

// Matches reports whether the element matches selector.
func (e *Element) Matches(selector string) bool {
	return e.sel.Is(selector)
}

// Text returns the text content of the element and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}

// DirectText returns the concatenated text of the element's own text nodes,
// ignoring child elements, trimmed.
func (e *Element) DirectText() string {
	var b strings.Builder
	for c := e.Node().FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	target := e.Node()
	for n := other.Node(); n != nil; n = n.Parent {
		if n == target {
			return true
		}
	}
	return false
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() *Element {
	p := e.sel.Parent()
	if p.Length() == 0 || p.Get(0).Type != html.ElementNode {
		return nil
	}
	return &Element{sel: p, doc: e.doc}
}

// Closest returns the nearest ancestor matching selector, starting at e.
func (e *Element) Closest(selector string) *Element {
	c := e.sel.Closest(selector)
	if c.Length() == 0 {
		return nil
	}
	return &Element{sel: c, doc: e.doc}
}

// Children returns the direct child elements matching selector.
func (e *Element) Children(selector string) []*Element {
	return e.doc.wrap(e.sel.ChildrenFiltered(selector))
}

// Find returns the descendants matching selector.
func (e *Element) Find(selector string) []*Element {
	return e.doc.wrap(e.sel.Find(selector))
}

// PrevSibling returns the previous element sibling, or nil.
func (e *Element) PrevSibling() *Element {
	p := e.sel.Prev()
	if p.Length() == 0 {
		return nil
	}
	return &Element{sel: p, doc: e.doc}
}

// Disabled reports the disabled attribute.
func (e *Element) Disabled() bool {
	_, ok := e.Attr("disabled")
	return ok
}

// ReadOnly reports the readonly attribute.
func (e *Element) ReadOnly() bool {
	_, ok := e.Attr("readonly")
	return ok
}

// Hidden reports whether the element is not rendered: a hidden input, a
// browser-reported hidden control, or a hidden attribute or inline
// display:none / visibility:hidden on the element or an ancestor.
func (e *Element) Hidden() bool {
	if e.Tag() == "input" && e.Type() == "hidden" {
		return true
	}
	if _, ok := e.Attr(HiddenAttr); ok {
		return true
	}
	for n := e.Node(); n != nil && n.Type == html.ElementNode; n = n.Parent {
		for _, a := range n.Attr {
			if a.Key == "hidden" {
				return true
			}
			if a.Key == "style" && hiddenStyle(a.Val) {
				return true
			}
		}
	}
	return false
}

func hiddenStyle(style string) bool {
	compact := strings.ToLower(strings.Join(strings.Fields(style), ""))
	return strings.Contains(compact, "display:none") || strings.Contains(compact, "visibility:hidden")
}

// Value returns the control's current value: the value attribute of an
// input, the text of a textarea, or the selected option of a select.
func (e *Element) Value() string {
	switch e.Tag() {
	case "textarea":
		return e.Text()
	case "select":
		options := e.Options()
		for _, o := range options {
			if o.Selected {
				return o.Value
			}
		}
		if len(options) > 0 {
			return options[0].Value
		}
		return ""
	default:
		return e.AttrOr("value")
	}
}

// Checked reports the checked attribute of a radio or checkbox.
func (e *Element) Checked() bool {
	_, ok := e.Attr("checked")
	return ok
}

// Options lists a select's options. An option without a value attribute
// uses its text as value.
func (e *Element) Options() []Option {
	var options []Option
	e.sel.Find("option").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		value, ok := s.Attr("value")
		if !ok {
			value = text
		}
		_, selected := s.Attr("selected")
		options = append(options, Option{Value: value, Text: text, Selected: selected})
	})
	return options
}
