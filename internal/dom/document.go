// Package dom wraps a parsed HTML page with the element operations the field
// scanner needs: stable element IDs, direct-text access, optional layout boxes,
// fill application with event recording, and rendering back to HTML.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// IDAttr is the attribute that carries an element's stable identifier.
const IDAttr = "data-autofill-id"

// HiddenAttr is set by the live browser host on controls that have no
// rendered box (offsetParent === null).
const HiddenAttr = "data-autofill-hidden"

// idPrefix is shared with the in-page script so IDs stay unique across
// snapshots of the same live page.
const idPrefix = "af-"

// Document is a parsed page.
type Document struct {
	doc *goquery.Document

	// URL is the page address; its hostname feeds site keys and the whitelist gate.
	URL string
	// Referrer is the embedding page's address when the document is framed.
	Referrer string
	// InFrame reports whether the document is embedded in another page.
	InFrame bool

	layout Layout
	events []Event
	nextID int
}

// Parse reads HTML and assigns stable IDs to every form control.
func Parse(r io.Reader, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	d := &Document{doc: doc, URL: pageURL}
	d.scanExistingIDs()
	d.AssignIDs()
	return d, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(content, pageURL string) (*Document, error) {
	return Parse(strings.NewReader(content), pageURL)
}

// Hostname returns the lowercase host of the page URL, without port.
func (d *Document) Hostname() string {
	return hostnameOf(d.URL)
}

// ReferrerHostname returns the host of the referrer, or "" when there is none.
func (d *Document) ReferrerHostname() string {
	return hostnameOf(d.Referrer)
}

func hostnameOf(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// Title returns the text of the document's title element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// SetLayout installs bounding boxes for proximity searches.
func (d *Document) SetLayout(l Layout) {
	d.layout = l
}

// Layout returns the installed layout, or nil.
func (d *Document) Layout() Layout {
	return d.layout
}

// Find returns the elements matching selector in document order. Invalid
// selectors match nothing.
func (d *Document) Find(selector string) []*Element {
	return d.wrap(d.doc.Find(selector))
}

// First returns the first element matching selector, or nil.
func (d *Document) First(selector string) *Element {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel, doc: d}
}

// ByID returns the element whose id attribute equals id, or nil.
func (d *Document) ByID(id string) *Element {
	return d.firstWithAttr("[id]", "id", id)
}

// ByAutofillID returns the element carrying the given stable ID, or nil.
func (d *Document) ByAutofillID(id string) *Element {
	return d.firstWithAttr("["+IDAttr+"]", IDAttr, id)
}

// LabelFor returns the first label whose for attribute equals target, or nil.
func (d *Document) LabelFor(target string) *Element {
	return d.firstWithAttr("label[for]", "for", target)
}

// firstWithAttr compares attribute values directly so arbitrary IDs never
// have to be escaped into a selector.
func (d *Document) firstWithAttr(selector, attr, value string) *Element {
	if value == "" {
		return nil
	}
	sel := d.doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(attr)
		return v == value
	}).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel, doc: d}
}

// AssignIDs gives every input, textarea and select without a stable ID a new one.
func (d *Document) AssignIDs() {
	d.doc.Find("input, textarea, select").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr(IDAttr); ok {
			return
		}
		d.nextID++
		s.SetAttr(IDAttr, idPrefix+strconv.Itoa(d.nextID))
	})
}

func (d *Document) scanExistingIDs() {
	d.doc.Find("[" + IDAttr + "]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr(IDAttr)
		n, err := strconv.Atoi(strings.TrimPrefix(v, idPrefix))
		if err == nil && strings.HasPrefix(v, idPrefix) && n > d.nextID {
			d.nextID = n
		}
	})
}

// Events returns the events dispatched by fills, in order.
func (d *Document) Events() []Event {
	return append([]Event(nil), d.events...)
}

func (d *Document) dispatch(el *Element, types ...string) {
	for _, t := range types {
		d.events = append(d.events, Event{ElementID: el.AutofillID(), Type: t})
	}
}

// Render serializes the document, including applied fills, back to HTML.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	for _, n := range d.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("failed to render HTML: %w", err)
		}
	}
	return buf.String(), nil
}

func (d *Document) wrap(sel *goquery.Selection) []*Element {
	elements := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s, doc: d})
	})
	return elements
}
