package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_StructuredProfile(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"full", `{"firstName":"Jane","skills":["Go"],"experience":[{"company":"Acme","role":"Eng"}]}`, true},
		{"nulls allowed", `{"firstName":null,"skills":null}`, true},
		{"empty object", `{}`, true},
		{"skills not list", `{"skills":"Go, Rust"}`, false},
		{"experience entry not object", `{"experience":["Acme"]}`, false},
		{"top level array", `[]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(StructuredProfile, []byte(tt.doc))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.NotEmpty(t, verr.Errors)
		})
	}
}

func TestValidate_Mappings(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"scalars and lists", `{"fieldAnswers":{"a::b::input":"x","c::d::checkbox":true,"e::f::checkbox_group":["A","C"]},"autofillLogging":false}`, true},
		{"experiences", `{"experiences":[{"company":"Acme","role":null}]}`, true},
		{"nested object answer", `{"fieldAnswers":{"k":{"v":1}}}`, false},
		{"unknown key", `{"profile":{}}`, false},
		{"logging not bool", `{"autofillLogging":"yes"}`, false},
		{"empty generic key", `{"siteToGeneric":{"a::b::input":""}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Mappings, []byte(tt.doc))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	var lerr *SchemaLoadError
	require.True(t, errors.As(err, &lerr))
	assert.Contains(t, err.Error(), "unknown schema")

	err = Validate(Mappings, []byte(`{not json`))
	assert.True(t, errors.As(err, &lerr))
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"autofillLogging":1}`), 0o600))

	err := ValidateFile(Mappings, path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "autofillLogging", verr.Errors[0].Field)

	assert.Error(t, ValidateFile(Mappings, filepath.Join(t.TempDir(), "absent.json")))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"]}`
	assert.NoError(t, ValidateJSONString(schema, `{"name":"x"}`))
	assert.Error(t, ValidateJSONString(schema, `{}`))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: Mappings,
		Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}},
	}
	assert.Equal(t, "mappings.schema.json validation failed: a: bad; b: worse", err.Error())
}
