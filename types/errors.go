package types

import (
	"errors"
	"fmt"
)

// Sentinel errors usable with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnsupportedKind = errors.New("unsupported kind")
	ErrStorage         = errors.New("storage failure")
	ErrNotFound        = errors.New("record not found")
)

// ValidationError reports a record that fails its required-field rule or,
// in strict mode, one of the optional consistency checks.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s: %s", e.Kind, e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// UnsupportedKindError is returned when an identifier is requested for an
// unknown kind.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported kind %q (want literature, taxonomy or sample)", e.Kind)
}

func (e *UnsupportedKindError) Is(target error) bool { return target == ErrUnsupportedKind }

// StorageError wraps an I/O failure while reading or writing a collection
// document. It is not retried.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
