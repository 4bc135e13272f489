// Package ids generates record identifiers for taxostore.
//
//	Shape
//
// Every identifier is a kind prefix, a dash, and a version-4 UUID in its
// canonical textual form:
//
//	LIT-3f2b8c1e-6d7a-4e4b-9a51-0c2d9f1b7e44
//	TAX-...
//	SMP-...
//
// Identifiers are unique within a collection. Nothing prevents the same
// UUID suffix from appearing under two prefixes, and callers may supply
// their own identifiers, so the prefix is a convention rather than a
// constraint.
//
//	Pluggability
//
// Stores depend on the Generator interface. UUIDGenerator is the default;
// SequenceGenerator produces predictable identifiers for tests and fixtures.
package ids
