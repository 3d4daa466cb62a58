// Package main provides the entry point for the ferceqr CLI tool.
package main

import (
	"context"
	"os"

	"github.com/gridscope/ferceqr/cmd/ferceqr/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancel in-flight downloads and processing on SIGINT/SIGTERM
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		if closeErr := application.Shutdown(); closeErr != nil {
			application.Logger().Error().Err(closeErr).Msg("shutdown error during error handling")
		}
		app.ExitOnError(err)
	}
	app.ExitOnError(application.Shutdown())
}
