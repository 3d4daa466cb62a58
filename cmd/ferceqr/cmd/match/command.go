// Package match implements the match command: join EQR sellers against a
// CAISO generation resource list.
package match

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gridscope/ferceqr"
	"github.com/gridscope/ferceqr/pkg/caiso"
	"github.com/gridscope/ferceqr/pkg/errors"
)

// AppContext defines what the match command needs from the app.
type AppContext interface {
	ClientWithOptions(opts ...ferceqr.Option) (ferceqr.Ferceqr, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the match command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var resources string
	var sellers string
	var database string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match EQR sellers to CAISO resources",
		Long: `Match joins EQR seller names against a CAISO generation resource
CSV, using normalized seller names as the join key, and reports matched
and unmatched sellers.

Sellers come from the processed-record database (--db) or from a plain
text file with one seller name per line (--sellers).`,
		Example: `  ferceqr match --resources ./caiso_resources.csv --db ./eqr.db
  ferceqr match --resources ./caiso_resources.csv --sellers ./sellers.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var report caiso.Report
			var err error
			if sellers != "" {
				report, err = matchFromFile(resources, sellers)
			} else {
				report, err = matchFromStore(cmd, app, resources, database)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range report.Matched {
				for _, r := range m.Resources {
					fmt.Fprintf(out, "%s\t%s\t%s\n", m.JoinKey, r.ResourceID, r.Name)
				}
			}
			for _, seller := range report.Unmatched {
				fmt.Fprintf(out, "%s\t-\t-\n", seller)
			}
			fmt.Fprintf(out, "%d matched, %d unmatched\n", len(report.Matched), len(report.Unmatched))
			return nil
		},
	}

	cmd.Flags().StringVar(&resources, "resources", "", "CAISO resource CSV (required)")
	cmd.Flags().StringVar(&sellers, "sellers", "", "file of seller names, one per line")
	cmd.Flags().StringVar(&database, "db", "", "SQLite database of processed records (overrides config)")
	_ = cmd.MarkFlagRequired("resources")
	return cmd
}

// matchFromStore joins the distinct sellers stored in the database.
func matchFromStore(cmd *cobra.Command, app AppContext, resources, database string) (caiso.Report, error) {
	var opts []ferceqr.Option
	if database != "" {
		opts = append(opts, ferceqr.WithDatabase(database))
	}
	client, err := app.ClientWithOptions(opts...)
	if err != nil {
		return caiso.Report{}, err
	}
	defer client.Close()
	return client.MatchSellers(cmd.Context(), resources)
}

// matchFromFile joins seller names listed in a text file.
func matchFromFile(resources, sellersPath string) (caiso.Report, error) {
	loaded, err := caiso.LoadResources(resources)
	if err != nil {
		return caiso.Report{}, err
	}

	file, err := os.Open(sellersPath)
	if err != nil {
		return caiso.Report{}, errors.WrapIO("open", sellersPath, err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return caiso.Report{}, errors.WrapIO("read", sellersPath, err)
	}

	return caiso.NewMatcher(loaded).MatchSellers(names), nil
}
