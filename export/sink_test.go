package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	location, err := Export(context.Background(), testSnapshot(), DirSink{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "taxostore-export-2024-03-01T12-30-00.zip"), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Len(t, readArchive(t, data), 4)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestDirSinkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DirSink{Dir: t.TempDir()}.Put(ctx, "x.zip", strings.NewReader("x"))
	assert.True(t, errors.Is(err, context.Canceled))
}

type failingSink struct{}

func (failingSink) Put(context.Context, string, io.Reader) (string, error) {
	return "", errors.New("disk full")
}

func TestExportSinkFailure(t *testing.T) {
	_, err := Export(context.Background(), testSnapshot(), failingSink{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
