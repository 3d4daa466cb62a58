package ferceqr

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridscope/ferceqr/pkg/constants"
	"github.com/gridscope/ferceqr/pkg/errors"
	"github.com/gridscope/ferceqr/pkg/logging"
	"github.com/gridscope/ferceqr/pkg/viewer"
)

// DefaultTargetDir is where downloaded quarterly archives land unless
// overridden.
const DefaultTargetDir = "./eqr_data"

type config struct {
	targetDir  string
	viewerRoot string
	chunkSize  int
	workers    int
	strict     bool
	database   string
	logger     *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		targetDir:  DefaultTargetDir,
		viewerRoot: viewer.DefaultRoot,
		chunkSize:  constants.DefaultChunkSize,
		workers:    constants.DefaultWorkers,
		strict:     true,
		logger:     logging.Default(),
	}
}

// Option configures a Ferceqr client.
type Option func(*config) error

// WithTargetDir sets where downloaded archives are saved.
func WithTargetDir(dir string) Option {
	return func(c *config) error {
		if strings.TrimSpace(dir) == "" {
			return errors.NewValidationError("target dir", dir, "cannot be empty")
		}
		c.targetDir = dir
		return nil
	}
}

// WithViewerRoot overrides the FERC Report Viewer URL.
func WithViewerRoot(root string) Option {
	return func(c *config) error {
		if strings.TrimSpace(root) == "" {
			return errors.NewValidationError("viewer root", root, "cannot be empty")
		}
		c.viewerRoot = root
		return nil
	}
}

// WithChunkSize sets the preprocessor's chunk flush threshold.
func WithChunkSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return errors.NewValidationError("chunk size", n, "must be positive")
		}
		c.chunkSize = n
		return nil
	}
}

// WithWorkers sets how many seller archives are processed concurrently.
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return errors.NewValidationError("workers", n, "must be positive")
		}
		c.workers = n
		return nil
	}
}

// WithStrict controls whether preprocessing aborts on unexpected errors.
func WithStrict(strict bool) Option {
	return func(c *config) error {
		c.strict = strict
		return nil
	}
}

// WithDatabase enables the SQLite store at the given path. Processed
// records are loaded into it as chunks flush.
func WithDatabase(path string) Option {
	return func(c *config) error {
		if strings.TrimSpace(path) == "" {
			return errors.NewValidationError("database", path, "path cannot be empty")
		}
		c.database = path
		return nil
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// archiveBase strips the directory from an archive path so its quarter can
// be parsed from the file name.
func archiveBase(archive string) string {
	return filepath.Base(archive)
}
