// Package vocab persists reconstructed vocabulary records in PostgreSQL.
// Records are keyed by (lesson, rank); re-importing the same list is a no-op.
package vocab

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/jamescbjeon/ty-english-word/internal/adapter/postgres"
	"github.com/jamescbjeon/ty-english-word/internal/domain"
)

const table = "vocab_records"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// upsertSuffix updates an existing (lesson, rank) row only when its content
// changed, so RowsAffected counts inserted or changed rows.
const upsertSuffix = `ON CONFLICT (lesson, rank) DO UPDATE
	SET headword = EXCLUDED.headword,
	    gloss = EXCLUDED.gloss,
	    source = EXCLUDED.source,
	    import_id = EXCLUDED.import_id,
	    imported_at = EXCLUDED.imported_at
	WHERE (vocab_records.headword, vocab_records.gloss, vocab_records.source)
	      IS DISTINCT FROM (EXCLUDED.headword, EXCLUDED.gloss, EXCLUDED.source)`

// Repo provides vocabulary record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New creates a new vocabulary record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, now: time.Now}
}

// UpsertRecords writes records in one pgx.Batch, tagging every row with
// importID and source. Returns the number of inserted or changed rows.
// When the same (lesson, rank) appears twice the later record wins.
// Runs inside the context transaction if there is one.
func (r *Repo) UpsertRecords(ctx context.Context, importID uuid.UUID, source string, records []domain.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	now := r.now().UTC()
	batch := &pgx.Batch{}
	for _, rec := range records {
		query, args, err := psql.Insert(table).
			Columns("id", "lesson", "rank", "headword", "gloss", "source", "import_id", "imported_at").
			Values(uuid.New(), rec.Lesson, rec.Rank, rec.Headword, rec.Gloss, source, importID, now).
			Suffix(upsertSuffix).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build upsert for %s: %w", recordKey(rec), err)
		}
		batch.Queue(query, args...)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for _, rec := range records {
		tag, err := results.Exec()
		if err != nil {
			return affected, postgres.MapError(err, "vocab_record", recordKey(rec))
		}
		affected += int(tag.RowsAffected())
	}

	return affected, nil
}

// CountByLesson returns the number of stored records per lesson.
func (r *Repo) CountByLesson(ctx context.Context) (map[string]int, error) {
	query, args, err := psql.Select("lesson", "count(*)").
		From(table).
		GroupBy("lesson").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count by lesson: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			lesson string
			n      int64
		)
		if err := rows.Scan(&lesson, &n); err != nil {
			return nil, fmt.Errorf("scan lesson count: %w", err)
		}
		counts[lesson] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson counts: %w", err)
	}

	return counts, nil
}

func recordKey(rec domain.Record) string {
	return rec.Lesson + "/" + strconv.Itoa(rec.Rank)
}
