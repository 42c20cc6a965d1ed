package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/use-agent/skinprices/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// exitInterrupted is the conventional status for a run stopped by SIGINT.
const exitInterrupted = 130

// exitError carries a process exit status out of a command without printing
// anything further.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// run executes the CLI and returns the exit status. stdout carries only the
// command's own output; logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()
	initLogger(cfg.Log, stderr)

	root := newRootCmd(cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	var ee exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		fmt.Fprintln(stderr, err)
		return 1
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "skinprices",
		Short:         "skinprices scrapes champion skin prices into a JSON file.",
		Long:          "With no subcommand, skinprices runs one scrape (same as \"skinprices scrape\").",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Source.URL, "url", cfg.Source.URL, "page to scrape")
	pf.StringVarP(&cfg.Output.Path, "output", "o", cfg.Output.Path, "price book path")
	pf.StringVar(&cfg.Source.Engine, "engine", cfg.Source.Engine, "fetch engine: http or rod")
	pf.StringVar(&cfg.Source.Extractor, "extractor", cfg.Source.Extractor, "table extractor: regex or tree")
	pf.DurationVar(&cfg.Source.Timeout, "timeout", cfg.Source.Timeout, "fetch timeout, 0 for none")

	root.AddCommand(
		newScrapeCmd(cfg),
		newInspectCmd(cfg),
		newListCmd(cfg),
		newLookupCmd(cfg),
		newServeCmd(cfg),
	)
	return root
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig, w io.Writer) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
