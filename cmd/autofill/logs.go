package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/observability"
)

func newLogsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect the autofill debug log",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print autofill log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			entries, err := s.Logs(ctx)
			if err != nil {
				return err
			}
			if g.outputJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintLogs(entries)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every autofill log entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if err := s.ClearLogs(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Autofill log cleared")
			return nil
		},
	}

	toggle := func(use, short string, enabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx := cmd.Context()
				s, err := g.openStore(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = s.Close() }()
				return s.SetLogging(ctx, enabled)
			},
		}
	}

	cmd.AddCommand(show, clearCmd,
		toggle("enable", "Record an entry for every autofilled field", true),
		toggle("disable", "Stop recording autofill entries", false))
	return cmd
}
