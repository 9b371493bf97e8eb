package wordlist

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jamescbjeon/ty-english-word/internal/domain"
)

// Options controls parsing.
type Options struct {
	// PromoMarkers are substrings marking boilerplate lines. Nil means
	// DefaultPromoMarker only; an empty non-nil slice disables filtering
	// of boilerplate.
	PromoMarkers []string
}

func (o Options) markers() []string {
	if o.PromoMarkers == nil {
		return []string{DefaultPromoMarker}
	}
	return o.PromoMarkers
}

// Result is the outcome of parsing one word list.
type Result struct {
	Records []domain.Record
	Stats   Stats
}

// Parse reads the word list at path and reconstructs its records.
// The file is read fully and closed before parsing starts.
func Parse(path string, opts Options) (*Result, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	return parseLines(lines, opts), nil
}

// ParseReader is Parse over an already opened source.
func ParseReader(r io.Reader, opts Options) (*Result, error) {
	text, err := decode(r)
	if err != nil {
		return nil, err
	}
	return parseLines(strings.Lines(text), opts), nil
}

// ReadLines loads the file at path into memory, strips a leading UTF-8 BOM
// and returns its lines. Line terminators are kept; Filter trims them.
func ReadLines(path string) (iter.Seq[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	text, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return strings.Lines(text), nil
}

// decode reads r as UTF-8, dropping a byte-order mark when present.
// Invalid byte sequences become U+FFFD.
func decode(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("decode utf-8: %w", err)
	}
	return string(b), nil
}

func parseLines(lines iter.Seq[string], opts Options) *Result {
	rc := NewReconstructor()
	for line := range Filter(lines, opts.markers()) {
		rc.Feed(line)
	}
	records := rc.Finish()
	return &Result{Records: records, Stats: rc.Stats()}
}
