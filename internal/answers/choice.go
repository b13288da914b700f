package answers

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/types"
)

// restore maps a saved value onto a choice control, or returns nil when it
// names nothing the control offers.
func restore(f Field, v types.Value) *Resolution {
	switch f.Kind {
	case KindSelect:
		return restoreSelect(f.Choices, v.String())
	case KindRadioGroup:
		return restoreRadio(f.Choices, v.String())
	case KindCheckbox:
		checked := Truthy(v.String())
		return &Resolution{Value: types.Text(boolText(checked)), Checked: checked}
	case KindCheckboxGroup:
		return restoreGroup(f.Choices, v)
	}
	return nil
}

func restoreSelect(choices []Choice, saved string) *Resolution {
	for _, c := range choices {
		if strings.EqualFold(c.Value, saved) || strings.EqualFold(c.Text, saved) {
			return &Resolution{Value: types.Text(c.Value), Selected: []Choice{c}}
		}
	}
	return nil
}

func restoreRadio(choices []Choice, saved string) *Resolution {
	for _, c := range choices {
		if strings.EqualFold(c.Value, saved) || (c.ID != "" && c.ID == saved) || strings.EqualFold(c.Text, saved) {
			return &Resolution{Value: types.Text(c.Value), Selected: []Choice{c}}
		}
	}
	return nil
}

// restoreGroup checks exactly the saved values; a scalar is a one-item list.
func restoreGroup(choices []Choice, v types.Value) *Resolution {
	want := make(map[string]bool)
	for _, item := range v.Items() {
		want[item] = true
	}
	selected := []Choice{}
	for _, c := range choices {
		if want[c.Value] {
			selected = append(selected, c)
		}
	}
	return &Resolution{Value: types.List(v.Items()...), Selected: selected}
}

// Truthy reports whether a saved checkbox value means checked.
func Truthy(s string) bool {
	switch s {
	case "true", "1", "yes":
		return true
	}
	return false
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
