// Command vocabconv converts the flat 1000-word vocabulary list into a
// normalized CSV table, optionally exporting per-lesson decks for the quiz
// app and storing the records in PostgreSQL.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jamescbjeon/ty-english-word/cmd/vocabconv/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
