package labels

import (
	"math"
	"strings"

	"github.com/jonathan/job-autofill/internal/dom"
)

// Info describes the label element closest to a control, for debug logs.
type Info struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Text string `json:"text"`
}

// Nearest finds the label element most tied to el: a label[for], a wrapping
// label, a label or heading under the parent, or the label closest in
// vertical position when layout is known. Returns nil when nothing qualifies.
func Nearest(el *dom.Element) *Info {
	doc := el.Document()
	if label := doc.LabelFor(el.ID()); label != nil {
		return infoOf(label)
	}
	if label := el.Closest("label"); label != nil {
		return infoOf(label)
	}
	if parent := el.Parent(); parent != nil {
		if found := parent.Find("label, h1, h2, h3"); len(found) > 0 {
			return infoOf(found[0])
		}
	}

	layout := doc.Layout()
	if layout == nil {
		return nil
	}
	rect, ok := layout.Rect(el)
	if !ok {
		return nil
	}
	var closest *dom.Element
	best := math.Inf(1)
	for _, label := range doc.Find("label") {
		box, ok := layout.Rect(label)
		if !ok {
			continue
		}
		if d := math.Abs(box.Top - rect.Top); d < best {
			best = d
			closest = label
		}
	}
	if closest == nil {
		return nil
	}
	return infoOf(closest)
}

func infoOf(el *dom.Element) *Info {
	return &Info{ID: el.ID(), Name: el.Name(), Text: strings.TrimSpace(el.Text())}
}
