package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gridscope/ferceqr/cmd/ferceqr/cmd/download"
	"github.com/gridscope/ferceqr/cmd/ferceqr/cmd/links"
	"github.com/gridscope/ferceqr/cmd/ferceqr/cmd/match"
	"github.com/gridscope/ferceqr/cmd/ferceqr/cmd/process"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(download.NewCommand(a))
	rootCmd.AddCommand(process.NewCommand(a))
	rootCmd.AddCommand(links.NewCommand(a))
	rootCmd.AddCommand(match.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ferceqr version %s\n", a.version)
			fmt.Fprintf(out, "commit: %s\n", a.commit)
			fmt.Fprintf(out, "built: %s\n", a.date)
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
