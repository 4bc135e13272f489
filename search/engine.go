package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Matches reports whether any search field of record contains query,
// ignoring case. An empty query matches every record.
func Matches(record Searchable, query string) bool {
	return Predicate[Searchable](query)(record)
}

// Filter returns the records matching query, preserving their order. An
// empty query returns records unchanged.
func Filter[T Searchable](records []T, query string) []T {
	if query == "" {
		return records
	}
	match := Predicate[T](query)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Predicate compiles query into a match function suitable for
// store.Collection.List. The returned function must not be shared between
// goroutines.
func Predicate[T Searchable](query string) func(T) bool {
	if query == "" {
		return func(T) bool { return true }
	}

	// A Caser keeps state between calls, so each predicate owns one.
	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	return func(rec T) bool {
		for _, field := range rec.SearchFields() {
			if field == "" {
				continue
			}
			if strings.Contains(lower.String(field), needle) {
				return true
			}
		}
		return false
	}
}
