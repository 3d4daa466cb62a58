// Package process implements the process command: extract, filter, and
// chunk one record type out of a downloaded quarterly archive.
package process

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gridscope/ferceqr"
	"github.com/gridscope/ferceqr/pkg/etl"
	"github.com/gridscope/ferceqr/pkg/filter"
)

// AppContext defines what the process command needs from the app.
type AppContext interface {
	ClientWithOptions(opts ...ferceqr.Option) (ferceqr.Ferceqr, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the process command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Preprocess a downloaded quarterly archive",
		Long: `Process extracts one record type from a quarterly archive, aligns
and filters its rows, and writes chunked CSV output plus a manifest.

Filters take the form column=value, column=v1,v2 for membership, or
column=op:value with op one of gt, ge, lt, le, ne, between (between
takes low..high).`,
		Example: `  ferceqr process transactions --source ./eqr_data/csv_2025_q2.zip \
      --target ./2025q2_tx --filter point_of_delivery_balancing_authority=CISO
  ferceqr process contracts --source ./eqr_data/csv_2025_q2.zip \
      --target ./2025q2_ct --filter rate=gt:0 --db ./eqr.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newRecordTypeCommand(app, "transactions",
		func(ctx context.Context, c ferceqr.Ferceqr, source, target string, spec filter.Spec) (*etl.Manifest, error) {
			return c.ProcessTransactions(ctx, source, target, spec)
		}))
	cmd.AddCommand(newRecordTypeCommand(app, "contracts",
		func(ctx context.Context, c ferceqr.Ferceqr, source, target string, spec filter.Spec) (*etl.Manifest, error) {
			return c.ProcessContracts(ctx, source, target, spec)
		}))
	return cmd
}

type runFunc func(ctx context.Context, c ferceqr.Ferceqr, source, target string, spec filter.Spec) (*etl.Manifest, error)

func newRecordTypeCommand(app AppContext, recordType string, run runFunc) *cobra.Command {
	var (
		source    string
		target    string
		chunkSize int
		workers   int
		filters   []string
		strict    bool
		database  string
	)

	cmd := &cobra.Command{
		Use:   recordType,
		Short: fmt.Sprintf("Extract and chunk the %s dataset", recordType),
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec := filter.Spec{}
			for _, arg := range filters {
				column, constraint, err := filter.ParseArg(arg)
				if err != nil {
					return err
				}
				spec[column] = constraint
			}

			var opts []ferceqr.Option
			if chunkSize > 0 {
				opts = append(opts, ferceqr.WithChunkSize(chunkSize))
			}
			if workers > 0 {
				opts = append(opts, ferceqr.WithWorkers(workers))
			}
			opts = append(opts, ferceqr.WithStrict(strict))
			if database != "" {
				opts = append(opts, ferceqr.WithDatabase(database))
			}

			client, err := app.ClientWithOptions(opts...)
			if err != nil {
				return err
			}
			defer client.Close()

			manifest, err := run(cmd.Context(), client, source, target, spec)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d rows in %d chunks -> %s (%d sellers skipped)\n",
				manifest.Rows, len(manifest.Chunks), target, len(manifest.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "quarterly archive to process (required)")
	cmd.Flags().StringVar(&target, "target", "", "output directory for chunks and manifest (required)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "rows per output chunk (default 1000000)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent seller archives (default 4)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "row filter, repeatable (column=value)")
	cmd.Flags().BoolVar(&strict, "strict", true, "abort on unexpected errors (--strict=false logs and continues)")
	cmd.Flags().StringVar(&database, "db", "", "also load processed records into this SQLite database")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
