package generation

import "errors"

// Configuration errors surfaced to the user verbatim.
var (
	ErrNoAPIKey = errors.New("No AI API key configured. Please add an OpenAI or Gemini key.") //nolint:staticcheck // user-facing message
	ErrNoResume = errors.New("No resume uploaded")                                              //nolint:staticcheck // user-facing message
)
