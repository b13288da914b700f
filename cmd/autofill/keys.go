package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/llm"
)

func newKeysCmd(g *globals) *cobra.Command {
	var (
		openaiKey string
		geminiKey string
		provider  string
		local     bool
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Store AI provider keys and preferences",
		Long: `Store provider keys in the answer store. Flags that are not given keep their
stored value. Keys from the environment or config file are used only when the
store holds none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if provider != "" && !llm.Provider(provider).Valid() {
				return fmt.Errorf("unknown AI provider %q", provider)
			}

			ctx := cmd.Context()
			s, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			keys, err := s.AIKeys(ctx)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("openai") {
				keys.OpenAIKey = openaiKey
			}
			if flags.Changed("gemini") {
				keys.GeminiKey = geminiKey
			}
			if flags.Changed("provider") {
				keys.ActiveProvider = provider
			}
			if flags.Changed("local-structuring") {
				keys.UseLocalStructuring = local
			}
			if err := s.SetAIKeys(ctx, keys); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "OpenAI key: %s, Gemini key: %s, provider: %s, local structuring: %t\n",
				mask(keys.OpenAIKey), mask(keys.GeminiKey), orNone(keys.ActiveProvider), keys.UseLocalStructuring)
			return nil
		},
	}

	cmd.Flags().StringVar(&openaiKey, "openai", "", "OpenAI API key")
	cmd.Flags().StringVar(&geminiKey, "gemini", "", "Gemini API key")
	cmd.Flags().StringVar(&provider, "provider", "", "preferred provider (openai or gemini)")
	cmd.Flags().BoolVar(&local, "local-structuring", false, "structure resumes locally even when a key is set")
	return cmd
}

func mask(key string) string {
	if key == "" {
		return "(none)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "…" + key[len(key)-4:]
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
