package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jamescbjeon/ty-english-word/internal/app"
	"github.com/jamescbjeon/ty-english-word/internal/app/converter"
	"github.com/jamescbjeon/ty-english-word/internal/config"
)

// NewRootCmd builds the vocabconv command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "vocabconv",
		Short:         "vocabconv: vocabulary list to CSV converter",
		Long:          "Reconstructs multi-line word list records (lesson, rank, word, gloss) and writes them as CSV, lesson decks or database rows.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default: $CONFIG_PATH or "+config.DefaultPath+")")

	root.AddCommand(newConvertCmd(&configPath))
	root.AddCommand(newSeedCmd(&configPath))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command and logs a failure once.
func Execute(ctx context.Context) error {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("vocabconv failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

var errPhasesFailed = errors.New("conversion completed with errors")

// runPipeline validates cfg after CLI overrides, runs the requested phases
// and prints a per-phase summary to stdout.
func runPipeline(cmd *cobra.Command, cfg *config.Config, phases []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := app.NewLogger(cfg.Log, cmd.ErrOrStderr())

	pipeline, err := app.Run(cmd.Context(), cfg, logger, phases)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), cfg, pipeline)

	if pipeline.HasErrors() {
		return errPhasesFailed
	}
	return nil
}

// printSummary groups digits so full-size lists stay readable.
func printSummary(w io.Writer, cfg *config.Config, p *converter.Pipeline) {
	m := message.NewPrinter(language.English)

	if parsed := p.Parsed(); parsed != nil {
		m.Fprintf(w, "parsed %s: %d records from %d lines (%d discarded)\n",
			cfg.Convert.InputPath, parsed.Stats.Records, parsed.Stats.Lines, parsed.Stats.Discarded)
	}

	results := p.Results()
	for _, phase := range converter.AllPhases() {
		res, ok := results[phase]
		if !ok {
			continue
		}
		status := "ok"
		if res.Err != nil {
			status = "failed: " + res.Err.Error()
		}
		m.Fprintf(w, "%-8s written=%d skipped=%d (%s) %s\n",
			phase, res.Written, res.Skipped, res.Duration.Round(time.Millisecond), status)
	}

	if cfg.Convert.DryRun {
		fmt.Fprintln(w, "dry run: nothing was written")
	}
}
