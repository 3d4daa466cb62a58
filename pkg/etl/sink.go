package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gridscope/ferceqr/pkg/errors"
)

// Sink receives flushed chunks of aligned records.
type Sink interface {
	// WriteChunk persists one numbered chunk. Chunks arrive in order,
	// one call at a time.
	WriteChunk(index int, records []Record) error

	// Close flushes any buffered state after the final chunk.
	Close() error
}

// ChunkFileName returns the file name for chunk index n, e.g.
// "chunk_0003.csv".
func ChunkFileName(index int) string {
	return fmt.Sprintf("chunk_%04d.csv", index)
}

// CSVSink writes each chunk as a headered CSV file in a directory.
type CSVSink struct {
	dir     string
	columns []string
}

// NewCSVSink creates a sink writing chunk files to dir using the schema's
// column order for headers.
func NewCSVSink(dir string, schema *Schema) *CSVSink {
	return &CSVSink{dir: dir, columns: schema.Columns}
}

// WriteChunk implements Sink. The chunk file only appears once fully
// written: output goes to a temp file first and is renamed into place.
func (s *CSVSink) WriteChunk(index int, records []Record) error {
	name := ChunkFileName(index)
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".tmp*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(s.columns); err != nil {
		tmp.Close()
		return errors.WrapIO("write", path, err)
	}
	for _, record := range records {
		if err := w.Write(record.Row()); err != nil {
			tmp.Close()
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// Close implements Sink.
func (s *CSVSink) Close() error {
	return nil
}
