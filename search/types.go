// Package search implements the catalog's substring filter.
//
// A record is searchable when it can list the text of the fields a query is
// matched against. Matching is case-insensitive and Unicode-aware; there is
// no ranking and no tokenization, a record either contains the query in one
// of its fields or it does not.
package search

// Searchable is implemented by every record kind. SearchFields returns the
// field values a query is matched against; absent values are "".
type Searchable interface {
	SearchFields() []string
}
