package llm

import "fmt"

// ProviderError is returned when an upstream provider rejects a call or
// returns an unusable response.
type ProviderError struct {
	Provider   Provider
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s provider error: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ConfigError indicates a client could not be built from its configuration.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
