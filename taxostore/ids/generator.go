package ids

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/taxostore/types"
	"github.com/google/uuid"
)

// Generator produces identifiers for a record kind.
type Generator interface {
	Next(kind types.Kind) (string, error)
}

// UUIDGenerator is the default Generator: "<PREFIX>-<uuid v4>".
type UUIDGenerator struct{}

// Next implements Generator.
func (UUIDGenerator) Next(kind types.Kind) (string, error) {
	prefix := kind.Prefix()
	if prefix == "" {
		return "", &types.UnsupportedKindError{Kind: string(kind)}
	}
	return prefix + "-" + uuid.New().String(), nil
}

// NewString generates an identifier for a kind given in its textual form,
// as received by the generate-id endpoint.
func NewString(g Generator, kind string) (string, error) {
	k, err := types.ParseKind(kind)
	if err != nil {
		return "", err
	}
	return g.Next(k)
}

// SequenceGenerator yields "<PREFIX>-0001", "<PREFIX>-0002", ... with an
// independent counter per kind. It is safe for concurrent use.
type SequenceGenerator struct {
	mu       sync.Mutex
	counters map[types.Kind]int
}

// NewSequenceGenerator returns a SequenceGenerator starting at 1 for every kind.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{counters: make(map[types.Kind]int)}
}

// Next implements Generator.
func (g *SequenceGenerator) Next(kind types.Kind) (string, error) {
	prefix := kind.Prefix()
	if prefix == "" {
		return "", &types.UnsupportedKindError{Kind: string(kind)}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[kind]++
	return fmt.Sprintf("%s-%04d", prefix, g.counters[kind]), nil
}

// HasPrefix reports whether id carries the prefix of kind.
func HasPrefix(kind types.Kind, id string) bool {
	prefix := kind.Prefix()
	return prefix != "" && strings.HasPrefix(id, prefix+"-")
}

// IsWellFormed reports whether id is "<PREFIX>-<uuid>" for kind.
func IsWellFormed(kind types.Kind, id string) bool {
	if !HasPrefix(kind, id) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(id, kind.Prefix()+"-"))
	return err == nil
}
