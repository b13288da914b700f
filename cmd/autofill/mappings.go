package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/schemas"
	"github.com/jonathan/job-autofill/internal/store"
)

func newMappingsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Export or import saved answers and field mappings",
	}
	cmd.AddCommand(newMappingsExportCmd(g), newMappingsImportCmd(g))
	return cmd
}

func newMappingsExportCmd(g *globals) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write saved answers, generic mappings and experiences as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			m, err := s.Mappings(ctx)
			if err != nil {
				return err
			}
			if outFile == "" {
				return writeJSON(cmd.OutOrStdout(), m)
			}

			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal mappings: %w", err)
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d site answers and %d generic answers to %s\n",
				len(m.FieldAnswers), len(m.GenericFieldAnswers), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newMappingsImportCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Validate and load a mappings export",
		Long: `Validate a mappings file against the mappings schema, then replace each
collection it contains. Collections missing from the file are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := schemas.ValidateFile(schemas.Mappings, args[0]); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var update store.MappingsUpdate
			if err := json.Unmarshal(data, &update); err != nil {
				return fmt.Errorf("failed to parse mappings: %w", err)
			}

			ctx := cmd.Context()
			s, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if err := s.SetMappings(ctx, &update); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported mappings from %s\n", args[0])
			return nil
		},
	}
}
