package scanner

import (
	"errors"
	"fmt"
)

var (
	// ErrNotWhitelisted is returned by Scan when neither the page nor its
	// embedding page is on the whitelist.
	ErrNotWhitelisted = errors.New("page is not whitelisted")
	// ErrInFlight is returned by Generate while a generation for the same
	// field is still running.
	ErrInFlight = errors.New("generation already in progress")
	// ErrNoGenerator is returned by Generate when no generator is configured.
	ErrNoGenerator = errors.New("no answer generator configured")
)

// FieldError reports an operation on a field the scanner cannot serve.
type FieldError struct {
	ID      string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.ID, e.Message)
}

// ValidationError reports a generated answer rejected for the field's
// canonical key.
type ValidationError struct {
	Label string
	Key   string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("generated answer for %q is not a valid %s value", e.Label, e.Key)
}
