package converter

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jamescbjeon/ty-english-word/internal/adapter/csvfile"
	"github.com/jamescbjeon/ty-english-word/internal/app/wordlist"
	"github.com/jamescbjeon/ty-english-word/internal/config"
	"github.com/jamescbjeon/ty-english-word/internal/domain"
	"github.com/jamescbjeon/ty-english-word/pkg/ctxutil"
)

// Phase names in canonical execution order.
const (
	PhaseCSV     = "csv"
	PhaseLessons = "lessons"
	PhaseDB      = "db"
)

var allPhases = []string{PhaseCSV, PhaseLessons, PhaseDB}

// AllPhases returns every phase name in execution order.
func AllPhases() []string {
	return slices.Clone(allPhases)
}

// EnabledPhases returns the phases switched on by cfg: csv always, lessons
// when a lessons directory is set, db when the database is enabled.
func EnabledPhases(cfg config.Config) []string {
	phases := []string{PhaseCSV}
	if cfg.Convert.LessonsDir != "" {
		phases = append(phases, PhaseLessons)
	}
	if cfg.Database.Enabled {
		phases = append(phases, PhaseDB)
	}
	return phases
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Written  int // rows, files or upserted records
	Skipped  int
	Duration time.Duration
	Err      error
}

// Pipeline parses one word list and runs the requested output phases.
type Pipeline struct {
	log     *slog.Logger
	cfg     config.Config
	store   RecordStore
	tx      TxRunner
	parsed  *wordlist.Result
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline. store and tx may be nil when the db
// phase is not run.
func NewPipeline(log *slog.Logger, cfg config.Config, store RecordStore, tx TxRunner) *Pipeline {
	return &Pipeline{
		log:     log,
		cfg:     cfg,
		store:   store,
		tx:      tx,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Parsed returns the parse outcome, or nil before Run.
func (p *Pipeline) Parsed() *wordlist.Result {
	return p.parsed
}

// HasErrors returns true if any phase failed.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run parses the input and executes phases in canonical order.
// A parse failure or an unknown phase aborts the run; phase failures are
// recorded in Results.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun, err := selectPhases(phases)
	if err != nil {
		return err
	}

	var opts wordlist.Options
	if p.cfg.Convert.PromoMarkers != nil {
		opts.PromoMarkers = p.cfg.Convert.Markers()
	}

	parsed, err := wordlist.Parse(p.cfg.Convert.InputPath, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", p.cfg.Convert.InputPath, err)
	}
	p.parsed = parsed

	p.log.Info("word list parsed",
		slog.String("input", p.cfg.Convert.InputPath),
		slog.Int("lines", parsed.Stats.Lines),
		slog.Int("records", parsed.Stats.Records),
		slog.Int("continuations", parsed.Stats.Continuations),
	)
	if parsed.Stats.Discarded > 0 {
		p.log.Warn("discarded continuation lines before the first record",
			slog.Int("discarded", parsed.Stats.Discarded),
		)
	}

	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseCSV:
			result = p.runCSV()
		case PhaseLessons:
			result = p.runLessons()
		case PhaseDB:
			result = p.runDB(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("written", result.Written),
				slog.Int("skipped", result.Skipped),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	p.log.Info("pipeline completed",
		slog.Int("phases_run", len(toRun)),
		slog.Bool("dry_run", p.cfg.Convert.DryRun),
	)
	return nil
}

// selectPhases keeps canonical order regardless of the order requested.
func selectPhases(phases []string) ([]string, error) {
	if len(phases) == 0 {
		return allPhases, nil
	}
	for _, ph := range phases {
		if !slices.Contains(allPhases, ph) {
			return nil, fmt.Errorf("unknown phase %q (want one of %v)", ph, allPhases)
		}
	}
	var selected []string
	for _, ph := range allPhases {
		if slices.Contains(phases, ph) {
			selected = append(selected, ph)
		}
	}
	return selected, nil
}

// runCSV writes the output table.
func (p *Pipeline) runCSV() PhaseResult {
	records := p.parsed.Records
	if p.cfg.Convert.DryRun {
		return PhaseResult{Skipped: len(records)}
	}

	if err := csvfile.WriteTable(p.cfg.Convert.OutputPath, records); err != nil {
		return PhaseResult{Err: fmt.Errorf("write table: %w", err)}
	}
	p.log.Info("table written", slog.String("path", p.cfg.Convert.OutputPath))

	return PhaseResult{Written: len(records)}
}

// runLessons writes one deck per lesson plus the lesson manifest.
func (p *Pipeline) runLessons() PhaseResult {
	dir := p.cfg.Convert.LessonsDir
	if dir == "" {
		return PhaseResult{Skipped: 1, Err: fmt.Errorf("lessons dir not configured")}
	}

	lessons := domain.Lessons(p.parsed.Records)
	if p.cfg.Convert.DryRun {
		return PhaseResult{Skipped: len(lessons)}
	}

	written, err := csvfile.WriteLessons(dir, p.parsed.Records)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("write lessons: %w", err)}
	}
	p.log.Info("lesson decks written", slog.String("dir", dir), slog.Int("lessons", len(written)))

	return PhaseResult{Written: len(written)}
}

// runDB upserts all records in one transaction, split into batches.
func (p *Pipeline) runDB(ctx context.Context) PhaseResult {
	records := p.parsed.Records
	if err := domain.ValidateRecords(records); err != nil {
		return PhaseResult{Err: err}
	}
	if p.cfg.Convert.DryRun {
		return PhaseResult{Skipped: len(records)}
	}
	if p.store == nil || p.tx == nil {
		return PhaseResult{Skipped: 1, Err: fmt.Errorf("record store not configured")}
	}

	if timeout := p.cfg.Database.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	importID := uuid.New()
	ctx = ctxutil.WithImportID(ctx, importID)

	var affected int
	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := batchProcess(records, p.cfg.Database.BatchSize, func(batch []domain.Record) (int, error) {
			return p.store.UpsertRecords(ctx, importID, p.cfg.Database.Source, batch)
		})
		affected = n
		return err
	})
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("upsert records: %w", err)}
	}

	p.log.InfoContext(ctx, "records stored",
		slog.String("source", p.cfg.Database.Source),
		slog.Int("changed", affected),
	)

	counts, err := p.store.CountByLesson(ctx)
	if err != nil {
		p.log.WarnContext(ctx, "could not count stored lessons", slog.String("error", err.Error()))
	} else {
		for _, lesson := range domain.Lessons(records) {
			p.log.DebugContext(ctx, "lesson stored", slog.String("lesson", lesson), slog.Int("records", counts[lesson]))
		}
	}

	return PhaseResult{Written: affected, Skipped: len(records) - affected}
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
