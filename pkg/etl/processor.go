package etl

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gridscope/ferceqr/pkg/constants"
	"github.com/gridscope/ferceqr/pkg/errors"
	"github.com/gridscope/ferceqr/pkg/filter"
	"github.com/gridscope/ferceqr/pkg/logging"
)

// Processor reads one record type out of a quarterly archive, aligns and
// filters its rows, and writes numbered chunks through its sinks.
type Processor struct {
	schema    *Schema
	outDir    string
	chunkSize int
	workers   int
	strict    bool
	sinks     []Sink
	logger    *zerolog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithChunkSize sets the row threshold at which chunks flush.
func WithChunkSize(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithWorkers sets how many seller archives are processed concurrently.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithStrict controls error handling. Strict runs abort on the first
// unexpected error; lenient runs log it and continue. Expected per-seller
// defects (missing record type, broken inner ZIP, undecodable payload) are
// logged and skipped in both modes.
func WithStrict(strict bool) Option {
	return func(p *Processor) { p.strict = strict }
}

// WithSink adds a sink in addition to the default CSV chunk writer.
func WithSink(s Sink) Option {
	return func(p *Processor) { p.sinks = append(p.sinks, s) }
}

// WithLogger sets the console logger for run progress.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// NewProcessor creates a processor for one record type writing to outDir.
// The directory is created if missing.
func NewProcessor(schema *Schema, outDir string, opts ...Option) (*Processor, error) {
	if err := os.MkdirAll(outDir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("mkdir", outDir, err)
	}

	p := &Processor{
		schema:    schema,
		outDir:    outDir,
		chunkSize: constants.DefaultChunkSize,
		workers:   constants.DefaultWorkers,
		strict:    true,
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.sinks = append([]Sink{NewCSVSink(outDir, schema)}, p.sinks...)
	return p, nil
}

// Run processes the outer quarterly archive at inZip, applying the filter
// spec, and returns the manifest describing what was written. The manifest
// is also persisted to the output directory, after the final chunk, so a
// manifest on disk always describes a completed run.
func (p *Processor) Run(ctx context.Context, inZip string, spec filter.Spec) (*Manifest, error) {
	predicate, err := filter.Compile(spec, p.schema.Columns)
	if err != nil {
		return nil, err
	}

	outer, err := zip.OpenReader(inZip)
	if err != nil {
		return nil, errors.WrapIO("open", inZip, err)
	}
	defer outer.Close()

	runLog, closeLog, err := p.openRunLog()
	if err != nil {
		return nil, err
	}
	defer closeLog()

	manifest := &Manifest{
		Source:     inZip,
		RecordType: p.schema.RecordType,
		Filters:    describeFilters(spec),
		Strict:     p.strict,
		StartedAt:  time.Now().UTC(),
	}
	runLog.Info().
		Str("source", inZip).
		Str("target", p.outDir).
		Fields(map[string]any{"filters": manifest.Filters}).
		Msg("starting preprocessing run")

	acc := &accumulator{processor: p, manifest: manifest}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, member := range outer.File {
		if member.FileInfo().IsDir() {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			records, err := p.processSeller(member, predicate, &runLog)
			if err != nil {
				if errors.IsExpectedDefect(err) {
					runLog.Warn().Str("member", member.Name).Err(err).Msg("skipping seller")
					acc.skip(member.Name, err)
					return nil
				}
				if p.strict {
					return fmt.Errorf("while processing %q: %w", member.Name, err)
				}
				runLog.Error().Str("member", member.Name).Err(err).Msg("continuing past error")
				acc.skip(member.Name, err)
				return nil
			}
			return acc.add(records)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := acc.finish(); err != nil {
		return nil, err
	}

	manifest.FinishedAt = time.Now().UTC()
	if err := manifest.Write(filepath.Join(p.outDir, ManifestFileName)); err != nil {
		return nil, err
	}

	p.logger.Info().
		Str("record_type", p.schema.RecordType).
		Int("rows", manifest.Rows).
		Int("chunks", len(manifest.Chunks)).
		Int("skipped_sellers", len(manifest.Skipped)).
		Msg("preprocessing complete")
	return manifest, nil
}

// processSeller extracts, decodes, parses, filters, and aligns one seller's
// dataset. The returned records are the rows that survived the filter.
func (p *Processor) processSeller(member *zip.File, predicate filter.Predicate, runLog *zerolog.Logger) ([]Record, error) {
	payload, err := extractRecordType(member, p.schema)
	if err != nil {
		return nil, err
	}

	text, err := decodePayload(payload, member.Name)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.FieldsPerRecord = len(p.schema.Columns)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.WrapParse("csv", member.Name, err)
	}
	if err := p.checkHeader(header, member.Name); err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", member.Name, err)
		}
		if !predicate(row) {
			continue
		}

		record, err := p.schema.Align(row)
		if err != nil {
			if p.strict {
				return nil, err
			}
			runLog.Warn().Str("member", member.Name).Err(err).Msg("dropping unalignable row")
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// checkHeader verifies the CSV header matches the schema, ignoring case.
func (p *Processor) checkHeader(header []string, source string) error {
	for i, column := range p.schema.Columns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), column) {
			return errors.WrapParse("csv", source,
				fmt.Errorf("header column %d is %q, want %q", i, header[i], column))
		}
	}
	return nil
}

// openRunLog opens the timestamped per-run log file in the output directory.
func (p *Processor) openRunLog() (zerolog.Logger, func() error, error) {
	name := fmt.Sprintf("eqr_%s_%s.log", p.schema.RecordType, time.Now().Format("2006-01-02T15-04-05"))
	logger, closeFn, err := logging.NewFile(filepath.Join(p.outDir, name))
	if err != nil {
		return logging.Nop, nil, errors.WrapIO("create", name, err)
	}
	return logger, closeFn, nil
}

// describeFilters renders a filter spec for the manifest.
func describeFilters(spec filter.Spec) map[string]string {
	if len(spec) == 0 {
		return nil
	}
	described := make(map[string]string, len(spec))
	for column, constraint := range spec {
		described[column] = constraint.String()
	}
	return described
}

// accumulator gathers aligned records across workers and flushes chunks
// once the size threshold is reached. Flushing is serialized so chunk
// numbers are contiguous and each sink sees one chunk at a time.
type accumulator struct {
	processor *Processor
	manifest  *Manifest

	mu      sync.Mutex
	pending []Record
	next    int
}

func (a *accumulator) add(records []Record) error {
	if len(records) == 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = append(a.pending, records...)
	for len(a.pending) >= a.processor.chunkSize {
		chunk := a.pending[:a.processor.chunkSize]
		rest := a.pending[a.processor.chunkSize:]
		if err := a.flushLocked(chunk); err != nil {
			return err
		}
		a.pending = rest
	}
	return nil
}

func (a *accumulator) skip(member string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.manifest.Skipped = append(a.manifest.Skipped, SkippedSeller{Member: member, Reason: err.Error()})
}

// finish flushes any remaining rows and closes the sinks.
func (a *accumulator) finish() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.pending) > 0 {
		if err := a.flushLocked(a.pending); err != nil {
			return err
		}
		a.pending = nil
	}
	for _, sink := range a.processor.sinks {
		if err := sink.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (a *accumulator) flushLocked(chunk []Record) error {
	for _, sink := range a.processor.sinks {
		if err := sink.WriteChunk(a.next, chunk); err != nil {
			return err
		}
	}
	a.manifest.Chunks = append(a.manifest.Chunks, ChunkInfo{Name: ChunkFileName(a.next), Rows: len(chunk)})
	a.manifest.Rows += len(chunk)

	a.processor.logger.Debug().
		Str("record_type", a.processor.schema.RecordType).
		Int("chunk", a.next).
		Int("rows", len(chunk)).
		Msg("flushed chunk")
	a.next++
	return nil
}
