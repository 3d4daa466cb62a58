// Package ferceqr downloads, preprocesses, and queries FERC Electric
// Quarterly Report (EQR) filings. It wraps the Report Viewer client, the
// quarterly archive preprocessor, and the optional SQLite store behind one
// configurable client.
package ferceqr

import (
	"context"
	"fmt"

	"github.com/gridscope/ferceqr/internal/store"
	"github.com/gridscope/ferceqr/pkg/caiso"
	"github.com/gridscope/ferceqr/pkg/eqr"
	"github.com/gridscope/ferceqr/pkg/etl"
	"github.com/gridscope/ferceqr/pkg/filter"
	"github.com/gridscope/ferceqr/pkg/viewer"
)

// Ferceqr is the top-level client for working with EQR filings.
type Ferceqr interface {
	// Download fetches the quarterly archive for a quarter in the given
	// format ("csv" or "xml") and returns the saved path.
	Download(ctx context.Context, quarter eqr.Quarter, format string) (string, error)

	// Links lists the quarterly archives the Report Viewer advertises.
	Links(ctx context.Context) ([]viewer.Link, error)

	// ProcessTransactions extracts, filters, and chunks the transactions
	// dataset of a downloaded quarterly archive.
	ProcessTransactions(ctx context.Context, archive, outDir string, filters filter.Spec) (*etl.Manifest, error)

	// ProcessContracts does the same for the contracts dataset.
	ProcessContracts(ctx context.Context, archive, outDir string, filters filter.Spec) (*etl.Manifest, error)

	// MatchSellers joins EQR seller names from the store against a CAISO
	// resource list. Requires WithDatabase.
	MatchSellers(ctx context.Context, resourcesCSV string) (caiso.Report, error)

	// Close releases the store, if one is open.
	Close() error
}

type client struct {
	config *config
	viewer *viewer.Client
	store  *store.Store
}

// New creates a Ferceqr client with the given options.
func New(opts ...Option) (Ferceqr, error) {
	c := &client{config: defaultConfig()}
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	c.viewer = viewer.New(
		viewer.WithRoot(c.config.viewerRoot),
		viewer.WithLogger(c.config.logger),
	)

	if c.config.database != "" {
		s, err := store.Open(c.config.database)
		if err != nil {
			return nil, err
		}
		c.store = s
	}
	return c, nil
}

func (c *client) Download(ctx context.Context, quarter eqr.Quarter, format string) (string, error) {
	return c.viewer.Download(ctx, quarter, format, c.config.targetDir)
}

func (c *client) Links(ctx context.Context) ([]viewer.Link, error) {
	return c.viewer.Links(ctx)
}

func (c *client) ProcessTransactions(ctx context.Context, archive, outDir string, filters filter.Spec) (*etl.Manifest, error) {
	return c.process(ctx, etl.Transactions, archive, outDir, filters)
}

func (c *client) ProcessContracts(ctx context.Context, archive, outDir string, filters filter.Spec) (*etl.Manifest, error) {
	return c.process(ctx, etl.Contracts, archive, outDir, filters)
}

func (c *client) process(ctx context.Context, schema *etl.Schema, archive, outDir string, filters filter.Spec) (*etl.Manifest, error) {
	opts := []etl.Option{
		etl.WithChunkSize(c.config.chunkSize),
		etl.WithWorkers(c.config.workers),
		etl.WithStrict(c.config.strict),
		etl.WithLogger(c.config.logger),
	}
	if c.store != nil {
		quarter, err := eqr.ParseQuarter(archiveBase(archive))
		if err == nil {
			opts = append(opts, etl.WithSink(store.NewSink(ctx, c.store, quarter)))
		} else {
			c.config.logger.Warn().Str("archive", archive).
				Msg("cannot infer quarter from archive name, skipping database load")
		}
	}

	p, err := etl.NewProcessor(schema, outDir, opts...)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, archive, filters)
}

func (c *client) MatchSellers(ctx context.Context, resourcesCSV string) (caiso.Report, error) {
	if c.store == nil {
		return caiso.Report{}, fmt.Errorf("seller matching requires a database, use WithDatabase")
	}

	resources, err := caiso.LoadResources(resourcesCSV)
	if err != nil {
		return caiso.Report{}, err
	}
	sellers, err := c.store.SellerJoinKeys(ctx)
	if err != nil {
		return caiso.Report{}, err
	}
	return caiso.NewMatcher(resources).MatchSellers(sellers), nil
}

func (c *client) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
