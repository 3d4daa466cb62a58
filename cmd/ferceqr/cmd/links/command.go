// Package links implements the links command: list quarterly archives
// advertised on the FERC Report Viewer.
package links

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gridscope/ferceqr"
)

// AppContext defines what the links command needs from the app.
type AppContext interface {
	Client() (ferceqr.Ferceqr, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the links command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List quarterly archives on the Report Viewer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			links, err := client.Links(cmd.Context())
			if err != nil {
				return err
			}
			for _, link := range links {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", link.Quarter, link.Format, link.URL)
			}
			return nil
		},
	}
}
