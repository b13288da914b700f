package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value is a stored answer: either a text scalar or a list of texts (the
// checked values of a checkbox group). JSON booleans and numbers decode to
// their text form, so a saved checkbox true reads back as "true".
type Value struct {
	text   string
	list   []string
	isList bool
}

// Text returns a scalar value.
func Text(s string) Value {
	return Value{text: s}
}

// List returns a list value; a nil or empty list is still a list.
func List(items ...string) Value {
	return Value{list: append([]string{}, items...), isList: true}
}

// IsList reports whether the value holds a list.
func (v Value) IsList() bool {
	return v.isList
}

// Items returns the list items, or the scalar as a one-item list when it is
// non-empty.
func (v Value) Items() []string {
	if v.isList {
		return append([]string(nil), v.list...)
	}
	if v.text == "" {
		return nil
	}
	return []string{v.text}
}

// String returns the scalar, or the list items joined with ", ".
func (v Value) String() string {
	if v.isList {
		return strings.Join(v.list, ", ")
	}
	return v.text
}

// IsZero reports whether the value is absent or an empty scalar. Empty lists
// are present: an unchecked group is a real answer.
func (v Value) IsZero() bool {
	return !v.isList && v.text == ""
}

// Equal reports whether two values hold the same scalar or the same list.
func (v Value) Equal(other Value) bool {
	if v.isList != other.isList {
		return false
	}
	if !v.isList {
		return v.text == other.text
	}
	if len(v.list) != len(other.list) {
		return false
	}
	for i := range v.list {
		if v.list[i] != other.list[i] {
			return false
		}
	}
	return true
}

// MarshalJSON writes a string or an array of strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isList {
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts strings, numbers, booleans, null and arrays of those.
func (v *Value) UnmarshalJSON(data []byte) error {
	raw, err := decodeNumberPreserving(data)
	if err != nil {
		return err
	}

	if items, ok := raw.([]any); ok {
		list := make([]string, 0, len(items))
		for _, item := range items {
			s, err := scalarText(item)
			if err != nil {
				return err
			}
			list = append(list, s)
		}
		*v = Value{list: list, isList: true}
		return nil
	}

	s, err := scalarText(raw)
	if err != nil {
		return err
	}
	*v = Value{text: s}
	return nil
}

func decodeNumberPreserving(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return raw, nil
}

func scalarText(raw any) (string, error) {
	switch t := raw.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		if t {
			return "true", nil
		}
		return "false", nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("unsupported answer value of type %T", raw)
	}
}
