package vocab_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamescbjeon/ty-english-word/internal/adapter/postgres"
	"github.com/jamescbjeon/ty-english-word/internal/adapter/postgres/testhelper"
	"github.com/jamescbjeon/ty-english-word/internal/adapter/postgres/vocab"
	"github.com/jamescbjeon/ty-english-word/internal/domain"
)

// uniqueLesson returns a lesson tag unlikely to collide with parallel tests
// sharing the container.
func uniqueLesson() string {
	return fmt.Sprintf("T%d", rand.IntN(1_000_000_000))
}

type fixture struct {
	pool *pgxpool.Pool
	repo *vocab.Repo
	txm  *postgres.TxManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return &fixture{pool: pool, repo: vocab.New(pool), txm: postgres.NewTxManager(pool)}
}

// stored reads the rows of one lesson ordered by rank.
func (f *fixture) stored(t *testing.T, lesson string) []domain.Record {
	t.Helper()
	rows, err := f.pool.Query(context.Background(),
		`SELECT lesson, rank, headword, gloss FROM vocab_records WHERE lesson = $1 ORDER BY rank`, lesson)
	require.NoError(t, err)

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Record, error) {
		var rec domain.Record
		err := row.Scan(&rec.Lesson, &rec.Rank, &rec.Headword, &rec.Gloss)
		return rec, err
	})
	require.NoError(t, err)
	return records
}

func TestRepo_UpsertRecords_Basic(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	lesson := uniqueLesson()

	records := []domain.Record{
		{Lesson: lesson, Rank: 2, Headword: "banana", Gloss: "바나나"},
		{Lesson: lesson, Rank: 1, Headword: "apple", Gloss: "사과"},
	}

	affected, err := f.repo.UpsertRecords(ctx, uuid.New(), "test", records)
	require.NoError(t, err)
	assert.Equal(t, 2, affected)
	assert.Equal(t, []domain.Record{records[1], records[0]}, f.stored(t, lesson))
}

func TestRepo_UpsertRecords_Idempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	lesson := uniqueLesson()

	records := []domain.Record{{Lesson: lesson, Rank: 1, Headword: "apple", Gloss: "사과"}}

	first, err := f.repo.UpsertRecords(ctx, uuid.New(), "test", records)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := f.repo.UpsertRecords(ctx, uuid.New(), "test", records)
	require.NoError(t, err)
	assert.Equal(t, 0, second, "unchanged records must not count as affected")
}

func TestRepo_UpsertRecords_UpdatesChangedGloss(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	lesson := uniqueLesson()

	_, err := f.repo.UpsertRecords(ctx, uuid.New(), "test", []domain.Record{
		{Lesson: lesson, Rank: 5, Headword: "run", Gloss: "달리다"},
	})
	require.NoError(t, err)

	affected, err := f.repo.UpsertRecords(ctx, uuid.New(), "test", []domain.Record{
		{Lesson: lesson, Rank: 5, Headword: "run", Gloss: "달리다 운영하다"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	got := f.stored(t, lesson)
	require.Len(t, got, 1)
	assert.Equal(t, "달리다 운영하다", got[0].Gloss)
}

func TestRepo_UpsertRecords_DuplicateKeyLaterWins(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	lesson := uniqueLesson()

	_, err := f.repo.UpsertRecords(context.Background(), uuid.New(), "test", []domain.Record{
		{Lesson: lesson, Rank: 1, Headword: "first", Gloss: "처음"},
		{Lesson: lesson, Rank: 1, Headword: "second", Gloss: "두번째"},
	})
	require.NoError(t, err)

	got := f.stored(t, lesson)
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].Headword)
}

func TestRepo_UpsertRecords_LargeRank(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	lesson := uniqueLesson()

	records := []domain.Record{
		{Lesson: lesson, Rank: math.MaxInt32 + 1, Headword: "beyond"},
		{Lesson: lesson, Rank: math.MaxInt, Headword: "max"},
	}

	affected, err := f.repo.UpsertRecords(context.Background(), uuid.New(), "test", records)
	require.NoError(t, err)
	assert.Equal(t, 2, affected)
	assert.Equal(t, records, f.stored(t, lesson))
}

func TestRepo_UpsertRecords_Empty(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	affected, err := f.repo.UpsertRecords(context.Background(), uuid.New(), "test", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, affected)
}

func TestRepo_UpsertRecords_CheckViolation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.repo.UpsertRecords(context.Background(), uuid.New(), "test", []domain.Record{
		{Lesson: "lesson-one", Rank: 1, Headword: "apple"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "vocab_record lesson-one/1")
}

func TestRepo_CountByLesson(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	a, b := uniqueLesson(), uniqueLesson()

	_, err := f.repo.UpsertRecords(ctx, uuid.New(), "test", []domain.Record{
		{Lesson: a, Rank: 1, Headword: "one"},
		{Lesson: a, Rank: 2, Headword: "two"},
		{Lesson: b, Rank: 3, Headword: "three"},
	})
	require.NoError(t, err)

	counts, err := f.repo.CountByLesson(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[a])
	assert.Equal(t, 1, counts[b])
}

func TestRepo_UpsertRecords_RollbackInTx(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	lesson := uniqueLesson()
	sentinel := errors.New("abort import")

	err := f.txm.RunInTx(ctx, func(ctx context.Context) error {
		n, err := f.repo.UpsertRecords(ctx, uuid.New(), "test", []domain.Record{
			{Lesson: lesson, Rank: 1, Headword: "apple"},
		})
		require.NoError(t, err)
		require.Equal(t, 1, n)
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	assert.Empty(t, f.stored(t, lesson), "rolled-back upsert must not be visible")
}
