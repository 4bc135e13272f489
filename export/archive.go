package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// WriteArchive writes snap to w as a zip archive holding the three
// collection documents and a manifest.
func WriteArchive(w io.Writer, snap Snapshot) error {
	zipWriter := zip.NewWriter(w)

	entries := []struct {
		name string
		v    any
	}{
		{LiteratureEntry, nonNil(snap.Literature)},
		{TaxonomyEntry, nonNil(snap.Taxonomy)},
		{SampleEntry, nonNil(snap.Samples)},
		{ManifestEntry, snap.manifest()},
	}
	for _, e := range entries {
		if err := addJSONToZip(zipWriter, e.name, snap.CreatedAt, e.v); err != nil {
			return fmt.Errorf("failed to add %s to zip: %w", e.name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}

// Export writes snap as an archive and hands it to sink under a
// timestamped name. It returns the location reported by the sink.
func Export(ctx context.Context, snap Snapshot, sink Sink) (string, error) {
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	var buf bytes.Buffer
	if err := WriteArchive(&buf, snap); err != nil {
		return "", err
	}

	location, err := sink.Put(ctx, ArchiveFilename(snap.CreatedAt), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", fmt.Errorf("failed to deliver archive: %w", err)
	}
	return location, nil
}

// ArchiveFilename names an archive after its creation time.
func ArchiveFilename(t time.Time) string {
	return "taxostore-export-" + t.UTC().Format("2006-01-02T15-04-05") + ".zip"
}

func addJSONToZip(zipWriter *zip.Writer, name string, modified time.Time, v any) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	}

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(writer)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// nonNil keeps empty collections encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
