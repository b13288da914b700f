package types

import (
	"encoding/json"
	"fmt"
)

// FlexString decodes from a JSON string, number or boolean and always
// encodes as a string. Resume structuring returns years and graduation
// years in either form.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	raw, err := decodeNumberPreserving(data)
	if err != nil {
		return err
	}
	s, err := scalarText(raw)
	if err != nil {
		return fmt.Errorf("expected scalar: %w", err)
	}
	*f = FlexString(s)
	return nil
}

// String returns the text form.
func (f FlexString) String() string {
	return string(f)
}

// firstNonEmpty returns the first argument that is not "".
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstFlex is like firstNonEmpty for FlexString fields.
func firstFlex(values ...FlexString) FlexString {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ json.Unmarshaler = (*FlexString)(nil)
