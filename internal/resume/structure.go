// Package resume turns plain resume text into the lightweight and canonical
// profiles the fill tiers read.
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/job-autofill/internal/generation"
	"github.com/jonathan/job-autofill/internal/llm"
	"github.com/jonathan/job-autofill/internal/prompts"
	"github.com/jonathan/job-autofill/internal/schemas"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

const (
	// maxPromptRunes caps the resume text sent to the model.
	maxPromptRunes      = 4000
	structuringTemp     = 0.3
	structuringMaxToken = 1500
)

// StructuringError is returned when the model output is not a usable
// profile.
type StructuringError struct {
	Message string
	Cause   error
}

func (e *StructuringError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume structuring error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume structuring error: %s", e.Message)
}

func (e *StructuringError) Unwrap() error {
	return e.Cause
}

// Backend is the storage the structurer reads preferences from and writes
// profiles to.
type Backend interface {
	AIKeys(ctx context.Context) (store.AIKeys, error)
	SaveProfile(ctx context.Context, p *types.Profile, c *types.CanonicalProfile, resumeText string) error
}

// ClientSource returns a client for the configured provider, or
// generation.ErrNoAPIKey when none is set.
type ClientSource interface {
	Client(ctx context.Context) (llm.Client, error)
}

// Result is a structured resume.
type Result struct {
	Profile   *types.Profile          `json:"profile"`
	Canonical *types.CanonicalProfile `json:"canonicalProfile"`
	// Local is true when the heuristics ran instead of the model.
	Local bool `json:"-"`
}

// Structurer structures and persists resumes.
type Structurer struct {
	backend Backend
	clients ClientSource
	logger  zerolog.Logger
}

// NewStructurer returns a Structurer.
func NewStructurer(backend Backend, clients ClientSource, logger zerolog.Logger) *Structurer {
	return &Structurer{backend: backend, clients: clients, logger: logger}
}

// Structure parses resumeText locally when local structuring is preferred
// or no AI key is configured, otherwise with the model, then saves the
// profile, its canonical form and the text.
func (s *Structurer) Structure(ctx context.Context, resumeText string) (*Result, error) {
	keys, err := s.backend.AIKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read AI settings: %w", err)
	}

	res := &Result{}
	if keys.UseLocalStructuring {
		res.Profile, res.Local = StructureLocal(resumeText), true
	} else {
		client, err := s.clients.Client(ctx)
		switch {
		case errors.Is(err, generation.ErrNoAPIKey):
			res.Profile, res.Local = StructureLocal(resumeText), true
		case err != nil:
			return nil, err
		default:
			defer client.Close()
			if res.Profile, err = StructureWithAI(ctx, client, resumeText); err != nil {
				return nil, err
			}
		}
	}
	res.Canonical = ToCanonical(res.Profile)

	if err := s.backend.SaveProfile(ctx, res.Profile, res.Canonical, resumeText); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	s.logger.Info().
		Bool("local", res.Local).
		Int("experiences", len(res.Profile.Experience)).
		Int("skills", len(res.Profile.Skills)).
		Msg("resume structured")
	return res, nil
}

// StructureWithAI asks client for a structured profile and validates it
// against the structured profile schema.
func StructureWithAI(ctx context.Context, client llm.Client, resumeText string) (*types.Profile, error) {
	text := []rune(resumeText)
	prompt := prompts.Format(prompts.MustGet(prompts.Structuring, "structure-user"), map[string]string{
		"Resume": string(text[:min(len(text), maxPromptRunes)]),
	})

	out, err := client.GenerateJSON(ctx, llm.Request{
		System:      prompts.MustGet(prompts.Structuring, "structure-system"),
		Prompt:      prompt,
		Tier:        llm.TierStandard,
		Temperature: structuringTemp,
		MaxTokens:   structuringMaxToken,
	})
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.StructuredProfile, []byte(out)); err != nil {
		return nil, &StructuringError{Message: "model output does not match profile schema", Cause: err}
	}
	var p types.Profile
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		return nil, &StructuringError{Message: "failed to decode model output", Cause: err}
	}
	return &p, nil
}
