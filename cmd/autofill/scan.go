package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/browser"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/fetch"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/scanner"
)

func newScanCmd(g *globals) *cobra.Command {
	var (
		pageURL string
		render  bool
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "scan <url|file>",
		Short: "Identify and fill the fields of a page offline",
		Long: `Fetch a page (or read a saved HTML file), run one scan over it and report
what each field was identified as and filled with. Nothing is submitted.

Use --page-url with a saved file so the whitelist and site keys see the real
address. Use --render to load JavaScript-built forms in a headless browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := g.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := fetch.Page(ctx, args[0], pageURL, nil)
			if err != nil {
				return err
			}
			html := result.HTML
			if render && fetch.NeedsBrowser(html) {
				g.logger.Info().Str("url", result.URL).Msg("no controls in fetched page, rendering in browser")
				html, err = browser.Render(ctx, result.URL, browser.Config{
					ExecPath: g.cfg.Browser.ExecPath,
					Timeout:  g.cfg.Browser.Timeout,
				})
				if err != nil {
					return err
				}
			}

			doc, err := dom.ParseString(html, result.URL)
			if err != nil {
				return err
			}

			report, err := a.newScanner().Scan(ctx, &scanner.StaticPage{Doc: doc})
			if err != nil {
				return err
			}

			if outFile != "" {
				filled, err := doc.Render()
				if err != nil {
					return err
				}
				if err := os.WriteFile(outFile, []byte(filled), 0o644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if g.outputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			observability.NewPrinter(out).PrintReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "page-url", "", "address a saved file was captured from")
	cmd.Flags().BoolVar(&render, "render", false, "render JavaScript-built pages in a headless browser")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the filled HTML to this file")
	return cmd
}
