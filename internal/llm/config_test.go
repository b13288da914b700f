package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", DefaultConfig(ProviderOpenAI).GetModel(TierLite))
	assert.Equal(t, "gemini-1.5-flash", DefaultConfig(ProviderGemini).GetModel(TierStandard))
	assert.Equal(t, ProviderOpenAI, DefaultConfig("").Provider)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
	assert.Equal(t, "", (&Config{}).GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	config := DefaultOpenAIConfig()
	newConfig := config.WithModel(TierStandard, "gpt-4o")

	assert.Equal(t, "gpt-4o-mini", config.GetModel(TierStandard))
	assert.Equal(t, "gpt-4o", newConfig.GetModel(TierStandard))
	assert.Equal(t, "gpt-4o-mini", newConfig.GetModel(TierLite))
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		keys     Keys
		provider Provider
		key      string
		ok       bool
	}{
		{"explicit gemini", Keys{OpenAI: "o", Gemini: "g", Active: ProviderGemini}, ProviderGemini, "g", true},
		{"explicit openai", Keys{OpenAI: "o", Gemini: "g", Active: ProviderOpenAI}, ProviderOpenAI, "o", true},
		{"explicit without key falls back", Keys{Gemini: "g", Active: ProviderOpenAI}, ProviderGemini, "g", true},
		{"openai first", Keys{OpenAI: "o", Gemini: "g"}, ProviderOpenAI, "o", true},
		{"gemini only", Keys{Gemini: "g"}, ProviderGemini, "g", true},
		{"none", Keys{Active: ProviderGemini}, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, key, ok := Select(tt.keys)
			assert.Equal(t, tt.provider, p)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestProviderValid(t *testing.T) {
	assert.True(t, ProviderOpenAI.Valid())
	assert.True(t, ProviderGemini.Valid())
	assert.False(t, Provider("anthropic").Valid())
}
