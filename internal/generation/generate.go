// Package generation drafts free-text answers to application questions from
// a minimal slice of the candidate profile.
package generation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/job-autofill/internal/llm"
	"github.com/jonathan/job-autofill/internal/prompts"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

const (
	answerTemperature = 0.7
	answerMaxTokens   = 300
)

// AnswerRequest is one field to draft an answer for.
type AnswerRequest struct {
	FieldLabel string
	Company    string
	Role       string
	Profile    MinimalProfile
}

// BuildPrompt renders the system and user prompts for req.
func BuildPrompt(req AnswerRequest) llm.Request {
	g := GuidanceFor(req.FieldLabel)

	summary := req.Profile.Summary
	if summary == "" {
		summary = "Experienced professional"
	}
	experience := renderExperience(req.Profile.Experience)
	if experience == "" {
		experience = "See resume"
	}

	user := prompts.Format(prompts.MustGet(prompts.Generation, "answer-user"), map[string]string{
		"FieldLabel": req.FieldLabel,
		"Company":    orDefault(req.Company, "Not specified"),
		"Role":       orDefault(req.Role, "Not specified"),
		"Summary":    summary,
		"Experience": experience,
		"Guidance":   prompts.MustGet(prompts.Generation, g.Key),
		"WordLimit":  g.WordLimit,
		"CompanyRef": orDefault(req.Company, "this company"),
		"RoleRef":    orDefault(req.Role, "this role"),
	})

	return llm.Request{
		System:      prompts.MustGet(prompts.Generation, "answer-system"),
		Prompt:      user,
		Tier:        llm.TierLite,
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	}
}

// Generate drafts one answer with client. No retry is attempted.
func Generate(ctx context.Context, client llm.Client, req AnswerRequest) (string, error) {
	return client.GenerateContent(ctx, BuildPrompt(req))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Backend is the stored state answer generation reads.
type Backend interface {
	AIKeys(ctx context.Context) (store.AIKeys, error)
	Profile(ctx context.Context) (*types.Profile, error)
	CanonicalProfile(ctx context.Context) (*types.CanonicalProfile, error)
}

// ClientFactory builds a provider client. It matches llm.NewClient.
type ClientFactory func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error)

// Service resolves provider credentials and the profile from storage and
// drafts answers.
type Service struct {
	backend   Backend
	newClient ClientFactory
	configs   map[llm.Provider]*llm.Config
	logger    zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClientFactory replaces llm.NewClient.
func WithClientFactory(f ClientFactory) Option {
	return func(s *Service) { s.newClient = f }
}

// WithProviderConfig overrides the model configuration of one provider.
func WithProviderConfig(c *llm.Config) Option {
	return func(s *Service) { s.configs[c.Provider] = c }
}

// NewService returns a Service over backend.
func NewService(backend Backend, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		backend:   backend,
		newClient: llm.NewClient,
		configs: map[llm.Provider]*llm.Config{
			llm.ProviderOpenAI: llm.DefaultOpenAIConfig(),
			llm.ProviderGemini: llm.DefaultGeminiConfig(),
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client returns a client for the selected provider, or ErrNoAPIKey.
func (s *Service) Client(ctx context.Context) (llm.Client, error) {
	keys, err := s.backend.AIKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read AI keys: %w", err)
	}
	provider, apiKey, ok := llm.Select(llm.Keys{
		OpenAI: keys.OpenAIKey,
		Gemini: keys.GeminiKey,
		Active: llm.Provider(keys.ActiveProvider),
	})
	if !ok {
		return nil, ErrNoAPIKey
	}
	return s.newClient(ctx, s.configs[provider], apiKey)
}

// GenerateAnswer drafts an answer for one field label on a company/role
// page.
func (s *Service) GenerateAnswer(ctx context.Context, label, company, role string) (string, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	profile, err := s.backend.Profile(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read profile: %w", err)
	}
	if profile == nil {
		return "", ErrNoResume
	}
	canonical, err := s.backend.CanonicalProfile(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("canonical profile unreadable, using lightweight profile")
		canonical = nil
	}

	req := AnswerRequest{
		FieldLabel: label,
		Company:    company,
		Role:       role,
		Profile:    BuildMinimalProfile(profile, canonical, company, role),
	}
	s.logger.Debug().
		Str("label", label).
		Str("company", company).
		Str("model", client.GetModel(llm.TierLite)).
		Int("experiences", len(req.Profile.Experience)).
		Msg("generating answer")

	return Generate(ctx, client, req)
}
