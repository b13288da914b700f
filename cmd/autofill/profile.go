package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newProfileCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the structured profile",
	}
	cmd.AddCommand(newProfileImportCmd(g), newProfileShowCmd(g))
	return cmd
}

func newProfileImportCmd(g *globals) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "import <resume.txt|->",
		Short: "Structure plain resume text into the profile",
		Long: `Structure plain resume text with the configured AI provider, or with the
built-in heuristics when --local is set or no key is configured, and save the
profile, the canonical profile and the resume text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			a, err := g.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.forceLocal = local

			result, err := a.structurer.Structure(ctx, text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.outputJSON {
				return writeJSON(out, result)
			}
			method := "AI"
			if result.Local {
				method = "local heuristics"
			}
			_, _ = fmt.Fprintf(out, "Structured profile for %s using %s\n", result.Profile.FullName(), method)
			_, _ = fmt.Fprintf(out, "Experience entries: %d, education entries: %d, skills: %d\n",
				len(result.Canonical.Experience), len(result.Canonical.Education), len(result.Profile.Skills))
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "structure with local heuristics only")
	return cmd
}

func newProfileShowCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile and canonical profile as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			p, err := s.Profile(ctx)
			if err != nil {
				return err
			}
			c, err := s.CanonicalProfile(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"profile": p, "canonicalProfile": c})
		},
	}
}

// readInput reads a file, or stdin when path is "-".
func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
