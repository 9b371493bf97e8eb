package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jamescbjeon/ty-english-word/internal/config"
)

type convertFlags struct {
	lessonsDir string
	db         bool
	dryRun     bool
	markers    []string
}

func newConvertCmd(configPath *string) *cobra.Command {
	var flags convertFlags

	c := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a word list into a CSV table",
		Long: "Reads the word list (default eng1000.txt), drops blank and promotional lines, " +
			"rebuilds records spread over several lines and writes Lesson,Rank,English,Korean " +
			"rows (default 1000_english_words.csv).",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, *configPath, flags)
		},
	}

	c.Flags().StringVar(&flags.lessonsDir, "lessons-dir", "", "also write one CSV deck per lesson and list.json into this directory")
	c.Flags().BoolVar(&flags.db, "db", false, "also upsert the records into PostgreSQL")
	c.Flags().BoolVar(&flags.dryRun, "dry-run", false, "parse and report counts without writing anything")
	c.Flags().StringArrayVar(&flags.markers, "marker", nil, "extra promotional marker to filter out (repeatable)")
	return c
}

func runConvert(cmd *cobra.Command, args []string, configPath string, flags convertFlags) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// CLI arguments and flags override config.
	if len(args) > 0 {
		cfg.Convert.InputPath = args[0]
	}
	if len(args) > 1 {
		cfg.Convert.OutputPath = args[1]
	}
	if flags.lessonsDir != "" {
		cfg.Convert.LessonsDir = flags.lessonsDir
	}
	if flags.db {
		cfg.Database.Enabled = true
	}
	if flags.dryRun {
		cfg.Convert.DryRun = true
	}
	if len(flags.markers) > 0 {
		cfg.Convert.PromoMarkers = append(slices.Clone(cfg.Convert.PromoMarkers), flags.markers...)
	}

	if err := runPipeline(cmd, cfg, nil); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	return nil
}
