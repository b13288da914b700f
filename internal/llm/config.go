// Package llm provides provider configuration and client abstractions for
// the AI answer and resume-structuring calls.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for short free-text answers
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as resume parsing
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI chat completions provider
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Valid reports whether p names a supported provider.
func (p Provider) Valid() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}

// Config holds the model configuration for one provider
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// BaseURL overrides the provider endpoint. Empty uses the public API.
	BaseURL string
}

// DefaultConfig returns the default configuration for a provider
func DefaultConfig(p Provider) *Config {
	if p == ProviderGemini {
		return DefaultGeminiConfig()
	}
	return DefaultOpenAIConfig()
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
		},
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-1.5-flash",
			TierStandard: "gemini-1.5-flash",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
		BaseURL:  c.BaseURL,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// Keys are the stored provider credentials.
type Keys struct {
	OpenAI string
	Gemini string
	Active Provider
}

// Select picks the provider to call: the active provider when its key is
// set, otherwise the first provider with a key in the order openai, gemini.
// ok is false when no key is configured.
func Select(k Keys) (p Provider, apiKey string, ok bool) {
	switch {
	case k.Active == ProviderOpenAI && k.OpenAI != "":
		return ProviderOpenAI, k.OpenAI, true
	case k.Active == ProviderGemini && k.Gemini != "":
		return ProviderGemini, k.Gemini, true
	case k.OpenAI != "":
		return ProviderOpenAI, k.OpenAI, true
	case k.Gemini != "":
		return ProviderGemini, k.Gemini, true
	}
	return "", "", false
}
