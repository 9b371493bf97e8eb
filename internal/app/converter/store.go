// Package converter orchestrates the word list conversion: parse the source
// once, then run the csv, lessons and db phases over the records.
package converter

import (
	"context"

	"github.com/google/uuid"

	"github.com/jamescbjeon/ty-english-word/internal/domain"
)

// RecordStore is the persistence contract consumed by the db phase.
// Implemented by vocab.Repo.
type RecordStore interface {
	// UpsertRecords writes records keyed by (lesson, rank) and returns the
	// number of inserted or changed rows.
	UpsertRecords(ctx context.Context, importID uuid.UUID, source string, records []domain.Record) (int, error)
	CountByLesson(ctx context.Context) (map[string]int, error)
}

// TxRunner runs fn inside one transaction carried by the context.
// Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
