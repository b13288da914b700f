package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/answers"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/generation"
	"github.com/jonathan/job-autofill/internal/llm"
	"github.com/jonathan/job-autofill/internal/messaging"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/resume"
	"github.com/jonathan/job-autofill/internal/scanner"
	"github.com/jonathan/job-autofill/internal/store"
)

// globals holds the root flags and what PersistentPreRunE builds from them.
type globals struct {
	cfgFile    string
	verbose    bool
	outputJSON bool

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "autofill",
		Short: "Fill job application forms from your profile and saved answers",
		Long: `autofill identifies the fields of job application forms, fills them from
your structured profile and remembered answers, and drafts free-text answers
with an AI provider when asked.

Run "autofill serve" for the browser extension, "autofill fill <url>" to fill
a page in a controlled browser, or "autofill scan" for an offline dry run.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if g.verbose {
				cfg.Log.Level = "debug"
			}
			cfg.Log.Output = cmd.ErrOrStderr()
			g.cfg = cfg
			g.logger = observability.NewLogger(cfg.Log)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&g.cfgFile, "config", "c", "", "config file path (JSON or YAML)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&g.outputJSON, "json", false, "output in JSON format")

	cmd.AddCommand(newServeCmd(g))
	cmd.AddCommand(newScanCmd(g))
	cmd.AddCommand(newFillCmd(g))
	cmd.AddCommand(newProfileCmd(g))
	cmd.AddCommand(newMappingsCmd(g))
	cmd.AddCommand(newLogsCmd(g))
	cmd.AddCommand(newWhitelistCmd(g))
	cmd.AddCommand(newKeysCmd(g))
	return cmd
}

// keyedStore falls back to configured provider keys when the store has none.
type keyedStore struct {
	*store.Store
	fallback   store.AIKeys
	forceLocal bool
}

func (k *keyedStore) AIKeys(ctx context.Context) (store.AIKeys, error) {
	keys, err := k.Store.AIKeys(ctx)
	if err != nil {
		return keys, err
	}
	if keys.OpenAIKey == "" {
		keys.OpenAIKey = k.fallback.OpenAIKey
	}
	if keys.GeminiKey == "" {
		keys.GeminiKey = k.fallback.GeminiKey
	}
	if keys.ActiveProvider == "" {
		keys.ActiveProvider = k.fallback.ActiveProvider
	}
	if k.forceLocal {
		keys.UseLocalStructuring = true
	}
	return keys, nil
}

// app is the wired engine for one command run.
type app struct {
	store      *keyedStore
	generator  *generation.Service
	structurer *resume.Structurer
	handler    *messaging.Handler
	logger     zerolog.Logger
}

func (g *globals) openStore(ctx context.Context) (*store.Store, error) {
	kv, err := store.Open(ctx, g.cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store.New(kv), nil
}

func (g *globals) openApp(ctx context.Context) (*app, error) {
	s, err := g.openStore(ctx)
	if err != nil {
		return nil, err
	}
	ks := &keyedStore{Store: s, fallback: g.cfg.AI.Keys()}

	var opts []generation.Option
	if g.cfg.AI.BaseURL != "" {
		provider := llm.Provider(g.cfg.AI.Provider)
		if provider == "" {
			provider = llm.ProviderOpenAI
		}
		c := llm.DefaultConfig(provider)
		c.BaseURL = g.cfg.AI.BaseURL
		opts = append(opts, generation.WithProviderConfig(c))
	}

	gen := generation.NewService(ks, g.logger, opts...)
	st := resume.NewStructurer(ks, gen, g.logger)
	return &app{
		store:      ks,
		generator:  gen,
		structurer: st,
		handler:    messaging.NewHandler(ks, gen, st, g.logger),
		logger:     g.logger,
	}, nil
}

func (a *app) newScanner() *scanner.Scanner {
	return scanner.New(answers.NewResolver(a.store, a.logger), a.store, a.generator, a.logger)
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("closing store")
	}
}
