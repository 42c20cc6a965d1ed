package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/use-agent/skinprices/config"
	"github.com/use-agent/skinprices/extractor"
	"github.com/use-agent/skinprices/layout"
	"github.com/use-agent/skinprices/scraper"
)

func newInspectCmd(cfg *config.Config) *cobra.Command {
	var (
		markdown bool
		baseline string
	)
	cmd := &cobra.Command{
		Use:   "inspect [--markdown] [--baseline <hex>]",
		Short: "Fetches the page and reports on its pricing table without writing anything.",
		Long: "Reports row counts and the layout fingerprint of the table body. With " +
			"--baseline, exits 1 when the fingerprint is further than the drift " +
			"threshold from the given one.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var base uint64
			if baseline != "" {
				v, err := strconv.ParseUint(strings.TrimPrefix(baseline, "0x"), 16, 64)
				if err != nil {
					return fmt.Errorf("invalid --baseline %q: %w", baseline, err)
				}
				base = v
			}

			s, err := scraper.New(cfg)
			if err != nil {
				return err
			}
			rep, err := s.Inspect(cmd.Context())
			if errors.Is(err, extractor.ErrNoTableBody) {
				fmt.Fprintln(cmd.OutOrStdout(), "No tbody")
				return exitError{code: 1}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "url:         %s\n", rep.FinalURL)
			fmt.Fprintf(out, "engine:      %s (status %d)\n", rep.Engine, rep.StatusCode)
			fmt.Fprintf(out, "rows:        %d\n", rep.Rows)
			fmt.Fprintf(out, "qualifying:  %d\n", rep.Qualifying)
			fmt.Fprintf(out, "entries:     %d\n", rep.Entries)
			fmt.Fprintf(out, "fingerprint: %016x\n", rep.Fingerprint)

			if markdown {
				md, err := extractor.Markdown(rep.TableBody, rep.URL)
				if err != nil {
					return fmt.Errorf("render markdown: %w", err)
				}
				fmt.Fprintf(out, "\n%s\n", md)
			}

			if baseline != "" {
				d := layout.Distance(base, rep.Fingerprint)
				fmt.Fprintf(out, "distance:    %d bits (threshold %d)\n", d, cfg.Source.DriftThreshold)
				if rep.Drifted(base, cfg.Source.DriftThreshold) {
					fmt.Fprintln(out, "layout drifted")
					return exitError{code: 1}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the table body as Markdown")
	cmd.Flags().StringVar(&baseline, "baseline", "", "fingerprint from an earlier run, in hex")
	return cmd
}
