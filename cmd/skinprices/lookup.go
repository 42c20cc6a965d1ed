package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/use-agent/skinprices/config"
	"github.com/use-agent/skinprices/prices"
	"github.com/use-agent/skinprices/store"
)

func newLookupCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <champion> <skin>",
		Short: "Prints the saved price of one skin. Exits 1 when it is not in the book.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := store.Load(cfg.Output.Path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			key := prices.Key(args[0], args[1])
			if price, ok := book.Get(key); ok {
				fmt.Fprintf(out, "%s: %s\n", key, price)
				return nil
			}

			fmt.Fprintf(out, "%s: not found\n", key)
			if s := prices.Suggest(book, key, 5); len(s) > 0 {
				fmt.Fprintf(out, "did you mean: %s\n", strings.Join(s, ", "))
			}
			return exitError{code: 1}
		},
	}
}
