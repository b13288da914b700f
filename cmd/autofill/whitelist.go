package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newWhitelistCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Manage the sites autofill is allowed on",
	}

	add := &cobra.Command{
		Use:   "add <domain>...",
		Short: "Allow autofill on one or more domains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			list, err := s.AddToWhitelist(ctx, args...)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Whitelist: %s\n", strings.Join(list, ", "))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the whitelisted domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			domains, err := s.Whitelist(ctx)
			if err != nil {
				return err
			}
			if g.outputJSON {
				return writeJSON(cmd.OutOrStdout(), domains)
			}
			for _, d := range domains {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
