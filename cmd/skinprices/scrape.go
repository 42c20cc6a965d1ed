package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/use-agent/skinprices/config"
	"github.com/use-agent/skinprices/extractor"
	"github.com/use-agent/skinprices/scraper"
)

func newScrapeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Fetches the skin list once and writes the price book.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, cfg)
		},
	}
}

// runScrape prints exactly one line to stdout. A page without a table body
// exits 1 and an interrupted run exits 130; every other failure is reported
// and exits 0.
func runScrape(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	s, err := scraper.New(cfg)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return nil
	}

	res, err := s.Run(cmd.Context())
	switch {
	case errors.Is(err, extractor.ErrNoTableBody):
		fmt.Fprintln(out, "No tbody")
		return exitError{code: 1}
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(cmd.ErrOrStderr(), "interrupted")
		return exitError{code: exitInterrupted}
	case err != nil:
		fmt.Fprintf(out, "Error: %v\n", err)
		return nil
	}

	fmt.Fprintf(out, "Saved %d skins to %s\n", res.Count, res.Path)
	return nil
}
