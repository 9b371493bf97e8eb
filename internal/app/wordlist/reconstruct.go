package wordlist

import (
	"iter"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/jamescbjeon/ty-english-word/internal/domain"
)

// recordStart matches "<LessonTag> <Rank> <rest>", e.g. "L12 305 apple 사과".
// Digits may come from any decimal script (fullwidth ０-９ included).
var recordStart = regexp.MustCompile(`^([A-Za-z]\p{Nd}+)[\s\p{Zs}]+(\p{Nd}+)[\s\p{Zs}]+(.+)$`)

// Transition names what a single Feed call did to the reconstructor state.
type Transition int

const (
	// Discarded: continuation line with no open record.
	Discarded Transition = iota
	// Appended: continuation line added to the open record's gloss.
	Appended
	// Started: record-start line opened a record; nothing was open.
	Started
	// Rolled: record-start line sealed the open record and opened a new one.
	Rolled
)

func (t Transition) String() string {
	switch t {
	case Discarded:
		return "discarded"
	case Appended:
		return "appended"
	case Started:
		return "started"
	case Rolled:
		return "rolled"
	default:
		return "transition(" + strconv.Itoa(int(t)) + ")"
	}
}

// Stats counts what the reconstructor saw.
type Stats struct {
	Lines         int
	Records       int
	Continuations int
	Discarded     int
}

// draft is a record still collecting gloss fragments.
type draft struct {
	lesson    string
	rank      int
	headword  string
	fragments []string
}

func (d *draft) record() domain.Record {
	return domain.Record{
		Lesson:   d.lesson,
		Rank:     d.rank,
		Headword: d.headword,
		Gloss:    strings.Join(d.fragments, " "),
	}
}

// Reconstructor rebuilds multi-line records from filtered lines.
// current is nil until the first record-start line; after that exactly one
// draft is open until Finish.
type Reconstructor struct {
	current *draft
	sealed  []domain.Record
	stats   Stats
}

// NewReconstructor returns a reconstructor with no open record.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{}
}

// Feed applies one filtered line. Lines are expected to be trimmed and
// non-empty, as produced by Filter.
func (r *Reconstructor) Feed(line string) Transition {
	r.stats.Lines++

	next, ok := parseStart(line)
	if !ok {
		if r.current == nil {
			r.stats.Discarded++
			return Discarded
		}
		r.current.fragments = append(r.current.fragments, line)
		r.stats.Continuations++
		return Appended
	}

	t := Started
	if r.current != nil {
		r.seal()
		t = Rolled
	}
	r.current = next
	return t
}

// Open reports whether a record is currently collecting gloss fragments.
func (r *Reconstructor) Open() bool {
	return r.current != nil
}

// Finish seals the open record, if any, and returns all sealed records in
// encounter order. Feeding after Finish starts a fresh record.
func (r *Reconstructor) Finish() []domain.Record {
	if r.current != nil {
		r.seal()
	}
	return r.Records()
}

// Records returns a copy of the records sealed so far.
func (r *Reconstructor) Records() []domain.Record {
	return slices.Clone(r.sealed)
}

// Stats returns the counters accumulated so far.
func (r *Reconstructor) Stats() Stats {
	return r.stats
}

func (r *Reconstructor) seal() {
	r.sealed = append(r.sealed, r.current.record())
	r.current = nil
	r.stats.Records++
}

// Reconstruct runs a fresh Reconstructor over lines and returns the sealed
// records.
func Reconstruct(lines iter.Seq[string]) []domain.Record {
	r := NewReconstructor()
	for line := range lines {
		r.Feed(line)
	}
	return r.Finish()
}

// parseStart recognizes a record-start line. The first token after the rank
// is the headword; the remaining tokens on the line seed the gloss.
// A rank too large for int makes the line a continuation.
func parseStart(line string) (*draft, bool) {
	m := recordStart.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	rank, err := strconv.Atoi(asciiDigits(m[2]))
	if err != nil {
		return nil, false
	}

	tokens := strings.Fields(m[3])
	if len(tokens) == 0 {
		return nil, false
	}

	return &draft{
		lesson:    asciiDigits(m[1]),
		rank:      rank,
		headword:  tokens[0],
		fragments: tokens[1:],
	}, true
}

// asciiDigits rewrites every decimal digit in s as its ASCII form.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII && unicode.IsDigit(r) {
			return '0' + digitValue(r)
		}
		return r
	}, s)
}

// digitValue returns the value of a decimal digit rune. Decimal digits are
// encoded in contiguous runs of ten, zero first, so the value is the offset
// from the start of the run modulo ten.
func digitValue(r rune) rune {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return (r - start) % 10
}
