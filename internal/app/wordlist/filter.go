// Package wordlist turns a plain-text vocabulary list into records.
// Pure functions over in-memory lines: no database or output dependencies.
package wordlist

import (
	"iter"
	"strings"
)

// DefaultPromoMarker is the footer tag the printed word list repeats on
// every page.
const DefaultPromoMarker = "1000englishwords.com"

// Filter trims every line and drops blank lines and lines containing any of
// the promotional markers. The returned sequence is lazy and preserves order;
// filtering its own output drops nothing further.
func Filter(lines iter.Seq[string], markers []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || isPromo(line, markers) {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

func isPromo(line string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(line, m) {
			return true
		}
	}
	return false
}
