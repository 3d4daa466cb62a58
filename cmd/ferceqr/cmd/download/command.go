// Package download implements the download command: fetch a quarterly
// archive from the FERC Report Viewer.
package download

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gridscope/ferceqr"
	"github.com/gridscope/ferceqr/pkg/eqr"
)

// AppContext defines what the download command needs from the app.
type AppContext interface {
	Client() (ferceqr.Ferceqr, error)
	ClientWithOptions(opts ...ferceqr.Option) (ferceqr.Ferceqr, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the download command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var format string
	var target string

	cmd := &cobra.Command{
		Use:   "download <quarter>",
		Short: "Download a quarterly EQR archive",
		Long: `Download fetches one quarter's filing archive from the FERC Report
Viewer into the target directory.

The quarter may be written as "2025q2", "2025 Q2", or "2025_q2".`,
		Example: `  ferceqr download 2025q2
  ferceqr download 2025q2 --format xml --target ./archives`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quarter, err := eqr.ParseQuarter(args[0])
			if err != nil {
				return err
			}
			if format != "csv" && format != "xml" {
				return fmt.Errorf("unsupported format %q, use csv or xml", format)
			}

			client, err := clientFor(app, target)
			if err != nil {
				return err
			}

			path, err := client.Download(cmd.Context(), quarter, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "archive format: csv or xml")
	cmd.Flags().StringVar(&target, "target", "", "directory to save the archive (overrides config)")
	return cmd
}

func clientFor(app AppContext, target string) (ferceqr.Ferceqr, error) {
	if target == "" {
		return app.Client()
	}
	return app.ClientWithOptions(ferceqr.WithTargetDir(target))
}
