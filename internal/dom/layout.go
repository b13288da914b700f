package dom

import "math"

// Rect is a bounding box in CSS pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns the box width.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the box height.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Gap returns the Euclidean distance between the closest edges of two boxes;
// overlapping axes contribute zero.
func (r Rect) Gap(other Rect) float64 {
	var dx, dy float64
	switch {
	case other.Right <= r.Left:
		dx = r.Left - other.Right
	case other.Left >= r.Right:
		dx = other.Left - r.Right
	}
	switch {
	case other.Bottom <= r.Top:
		dy = r.Top - other.Bottom
	case other.Top >= r.Bottom:
		dy = other.Top - r.Bottom
	}
	return math.Sqrt(dx*dx + dy*dy)
}

// AboveOrLeftOf reports whether r ends above or to the left of other.
func (r Rect) AboveOrLeftOf(other Rect) bool {
	return r.Bottom <= other.Top || r.Right <= other.Left
}

// Layout supplies bounding boxes for elements.
type Layout interface {
	Rect(el *Element) (Rect, bool)
}

// MapLayout is a Layout keyed by stable element ID. The live browser host
// fills one from getBoundingClientRect; tests build them by hand.
type MapLayout map[string]Rect

// Rect implements Layout.
func (m MapLayout) Rect(el *Element) (Rect, bool) {
	id := el.AutofillID()
	if id == "" {
		return Rect{}, false
	}
	r, ok := m[id]
	return r, ok
}
