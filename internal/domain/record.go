package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// lessonTagPattern matches a lesson identifier: one letter followed by digits.
var lessonTagPattern = regexp.MustCompile(`^[A-Za-z][0-9]+$`)

// Record is one vocabulary entry reconstructed from a word list.
// Gloss is the translation assembled from one or more source fragments
// joined by single spaces; it may be empty.
type Record struct {
	Lesson   string
	Rank     int
	Headword string
	Gloss    string
}

// IsLessonTag reports whether s is a well-formed lesson identifier.
func IsLessonTag(s string) bool {
	return lessonTagPattern.MatchString(s)
}

// Validate checks the fields every emitted record must carry.
// Gloss is never validated: an empty translation is legal.
func (r Record) Validate() error {
	var errs []FieldError

	if r.Lesson == "" {
		errs = append(errs, FieldError{Field: "lesson", Message: "required"})
	} else if !IsLessonTag(r.Lesson) {
		errs = append(errs, FieldError{Field: "lesson", Message: "must be a letter followed by digits"})
	}
	if r.Rank < 0 {
		errs = append(errs, FieldError{Field: "rank", Message: "must be >= 0"})
	}
	if r.Headword == "" {
		errs = append(errs, FieldError{Field: "headword", Message: "required"})
	} else if strings.ContainsFunc(r.Headword, unicode.IsSpace) {
		errs = append(errs, FieldError{Field: "headword", Message: "must be a single token"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ValidateRecords validates every record and reports the first failure
// together with its position.
func ValidateRecords(records []Record) error {
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return &RecordError{Index: i, Record: records[i], Err: err}
		}
	}
	return nil
}

// RecordError ties a validation failure to the offending record.
type RecordError struct {
	Index  int
	Record Record
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s %d): %v", e.Index, e.Record.Lesson, e.Record.Rank, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Lessons returns the distinct lesson tags in first-seen order.
func Lessons(records []Record) []string {
	seen := make(map[string]bool)
	var lessons []string
	for _, r := range records {
		if seen[r.Lesson] {
			continue
		}
		seen[r.Lesson] = true
		lessons = append(lessons, r.Lesson)
	}
	return lessons
}

// GroupByLesson buckets records by lesson tag, keeping encounter order
// inside each bucket.
func GroupByLesson(records []Record) map[string][]Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		groups[r.Lesson] = append(groups[r.Lesson], r)
	}
	return groups
}
