// Package csvfile writes reconstructed vocabulary records as delimited text.
// Every file is replaced atomically: readers see either the previous file or
// the complete new one.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jamescbjeon/ty-english-word/internal/domain"
)

// TableHeader is the header row of the output table.
var TableHeader = []string{"Lesson", "Rank", "English", "Korean"}

// WriteTable writes records to path as UTF-8 CSV with a byte-order mark,
// so spreadsheet apps detect the Korean text correctly.
func WriteTable(path string, records []domain.Record) error {
	if err := domain.ValidateRecords(records); err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}

	if err := writeAtomic(path, func(w io.Writer) error {
		return EncodeTable(w, records)
	}); err != nil {
		return fmt.Errorf("write table %s: %w", path, err)
	}
	return nil
}

// EncodeTable streams the header and one row per record to w, prefixed by
// the UTF-8 BOM.
func EncodeTable(w io.Writer, records []domain.Record) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())

	cw := csv.NewWriter(bw)
	if err := cw.Write(TableHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Lesson, strconv.Itoa(r.Rank), r.Headword, r.Gloss}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s %d: %w", r.Lesson, r.Rank, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	if err := bw.Close(); err != nil {
		return fmt.Errorf("encode utf-8 bom: %w", err)
	}
	return nil
}
