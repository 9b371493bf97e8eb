package converter_test

import (
	"github.com/jamescbjeon/ty-english-word/internal/adapter/postgres"
	"github.com/jamescbjeon/ty-english-word/internal/adapter/postgres/vocab"
	"github.com/jamescbjeon/ty-english-word/internal/app/converter"
)

// Compile-time checks: the postgres adapters satisfy the pipeline contracts.
var (
	_ converter.RecordStore = (*vocab.Repo)(nil)
	_ converter.TxRunner    = (*postgres.TxManager)(nil)
)
