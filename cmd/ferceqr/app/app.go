// Package app provides the application context and dependency management
// for the ferceqr CLI. It centralizes configuration, logging, and the
// ferceqr client behind one lifecycle.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/gridscope/ferceqr"
)

// App represents the ferceqr CLI application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client ferceqr.Ferceqr
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the ferceqr client, creating it lazily from the app
// configuration. Thread-safe; only one instance is created.
func (a *App) Client() (ferceqr.Ferceqr, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	c, err := ferceqr.New(a.buildClientOptions()...)
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client with the app configuration plus
// custom options. Useful for commands whose flags override the config,
// e.g. a per-command target directory or database path.
func (a *App) ClientWithOptions(opts ...ferceqr.Option) (ferceqr.Ferceqr, error) {
	return ferceqr.New(append(a.buildClientOptions(), opts...)...)
}

// Shutdown closes the client, if one was created.
func (a *App) Shutdown() error {
	a.mu.RLock()
	c := a.client
	a.mu.RUnlock()

	if c == nil {
		return nil
	}
	return c.Close()
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []ferceqr.Option {
	opts := []ferceqr.Option{
		ferceqr.WithLogger(a.logger),
		ferceqr.WithStrict(a.config.Strict),
	}
	if a.config.TargetDir != "" {
		opts = append(opts, ferceqr.WithTargetDir(a.config.TargetDir))
	}
	if a.config.ViewerRoot != "" {
		opts = append(opts, ferceqr.WithViewerRoot(a.config.ViewerRoot))
	}
	if a.config.ChunkSize > 0 {
		opts = append(opts, ferceqr.WithChunkSize(a.config.ChunkSize))
	}
	if a.config.Workers > 0 {
		opts = append(opts, ferceqr.WithWorkers(a.config.Workers))
	}
	if a.config.Database != "" {
		opts = append(opts, ferceqr.WithDatabase(a.config.Database))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c ferceqr.Ferceqr) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
