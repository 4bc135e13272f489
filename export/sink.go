package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink stores a finished archive and reports where it went.
type Sink interface {
	Put(ctx context.Context, name string, r io.Reader) (string, error)
}

// DirSink writes archives into a local directory.
type DirSink struct {
	Dir string
}

// Put writes the archive to Dir/name via a temp file and rename.
func (d DirSink) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	target := filepath.Join(d.Dir, name)
	tmp, err := os.CreateTemp(d.Dir, "."+name+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close archive: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to move archive into place: %w", err)
	}
	return target, nil
}
