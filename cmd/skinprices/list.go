package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/use-agent/skinprices/config"
	"github.com/use-agent/skinprices/prices"
	"github.com/use-agent/skinprices/store"
)

func newListCmd(cfg *config.Config) *cobra.Command {
	var champion string
	cmd := &cobra.Command{
		Use:   "list [--champion <name>]",
		Short: "Prints the saved price book as a table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := store.Load(cfg.Output.Path)
			if err != nil {
				return err
			}

			keys := book.Keys()
			if champion != "" {
				keys = prices.Champion(book, champion)
			}

			t := table.NewWriter()
			t.SetStyle(table.StyleRounded)
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Key", "Price"})
			for _, key := range keys {
				price, _ := book.Get(key)
				t.AppendRow(table.Row{key, price})
			}
			t.AppendFooter(table.Row{"Total", len(keys)})
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&champion, "champion", "", "only show this champion's skins")
	return cmd
}
