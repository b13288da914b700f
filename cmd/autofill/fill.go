package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/browser"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/scanner"
)

func newFillCmd(g *globals) *cobra.Command {
	var headless bool

	cmd := &cobra.Command{
		Use:   "fill <url>",
		Short: "Open an application page in Chrome and fill it live",
		Long: `Open the page in a browser window, fill every field that can be answered,
and keep watching: new fields are filled as they appear, your edits are
remembered for next time, and the ✨ marker next to an open question drafts
an answer with AI. Press Ctrl-C to close the browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := g.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			session, err := browser.Open(ctx, args[0], browser.Config{
				ExecPath: g.cfg.Browser.ExecPath,
				Headless: headless || g.cfg.Browser.Headless,
				Timeout:  g.cfg.Browser.Timeout,
			}, g.logger)
			if err != nil {
				return err
			}
			defer session.Close()

			sc := a.newScanner()
			report, err := sc.Scan(ctx, session)
			if errors.Is(err, scanner.ErrNotWhitelisted) {
				return errors.New(`site is not whitelisted; add it with "autofill whitelist add <domain>"`)
			}
			if err != nil {
				return err
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintReport(report)

			return session.Run(ctx, sc, g.cfg.Browser.Debounce)
		},
	}

	cmd.Flags().BoolVar(&headless, "headless", false, "run the browser without a window")
	return cmd
}
