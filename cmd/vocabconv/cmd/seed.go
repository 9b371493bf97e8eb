package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamescbjeon/ty-english-word/internal/app/converter"
	"github.com/jamescbjeon/ty-english-word/internal/config"
)

func newSeedCmd(configPath *string) *cobra.Command {
	var dryRun bool

	c := &cobra.Command{
		Use:   "seed [input]",
		Short: "Parse a word list and upsert its records into PostgreSQL",
		Long: "Applies pending migrations, then stores every record keyed by (lesson, rank). " +
			"Re-running with the same list changes nothing. The DSN comes from DATABASE_DSN or the config file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Convert.InputPath = args[0]
			}
			cfg.Database.Enabled = true
			cfg.Database.Migrate = true
			if dryRun {
				cfg.Convert.DryRun = true
			}

			if err := runPipeline(cmd, cfg, []string{converter.PhaseDB}); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate without touching the database")
	return c
}
