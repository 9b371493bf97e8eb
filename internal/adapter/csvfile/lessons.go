package csvfile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamescbjeon/ty-english-word/internal/domain"
)

// ManifestName is the deck index the quiz web app fetches first.
const ManifestName = "list.json"

// DeckHeader is the header row of a lesson deck. The quiz app skips the
// header and reads the first two columns as word and meaning.
var DeckHeader = []string{"word", "meaning"}

// WriteLessons writes one deck per lesson into dir as <lesson>.csv and then
// the list.json manifest with the lesson keys in encounter order. The
// manifest goes last so it never names a deck that is not on disk.
// Decks carry no BOM: the quiz app splits raw lines and would keep it.
func WriteLessons(dir string, records []domain.Record) ([]string, error) {
	if err := domain.ValidateRecords(records); err != nil {
		return nil, fmt.Errorf("write lessons: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lessons dir %s: %w", dir, err)
	}

	lessons := domain.Lessons(records)
	groups := domain.GroupByLesson(records)

	for _, lesson := range lessons {
		deck := groups[lesson]
		path := filepath.Join(dir, lesson+".csv")
		if err := writeAtomic(path, func(w io.Writer) error {
			return EncodeDeck(w, deck)
		}); err != nil {
			return nil, fmt.Errorf("write lesson %s: %w", lesson, err)
		}
	}

	manifest := lessons
	if manifest == nil {
		manifest = []string{}
	}
	if err := writeAtomic(filepath.Join(dir, ManifestName), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(manifest)
	}); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return lessons, nil
}

// deckField keeps a value in one column for the quiz app, which splits
// each line on ASCII commas and does not understand CSV quoting.
var deckField = strings.NewReplacer(",", "\uFF0C")

// EncodeDeck writes a word/meaning deck for the quiz app. Values are never
// quoted; ASCII commas inside them become fullwidth commas (U+FF0C).
func EncodeDeck(w io.Writer, records []domain.Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(DeckHeader, ",") + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		line := deckField.Replace(r.Headword) + "," + deckField.Replace(r.Gloss) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("write row %s %d: %w", r.Lesson, r.Rank, err)
		}
	}
	return bw.Flush()
}
