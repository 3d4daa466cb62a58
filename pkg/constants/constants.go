// Package constants provides shared constants used throughout the ferceqr codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for short HTTP requests
	DefaultHTTPTimeout = 30 * time.Second

	// DownloadTimeout bounds a full quarterly archive download. The CSV
	// archives run to several gigabytes, so this is generous.
	DownloadTimeout = 2 * time.Hour

	// PageRenderTimeout bounds a single headless render of the
	// FERC Report Viewer page
	PageRenderTimeout = 60 * time.Second

	// TabClickTimeout bounds waiting for a tab on the Report Viewer page
	// to become clickable
	TabClickTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Processing constants control the quarterly archive preprocessor
const (
	// DefaultChunkSize is the row threshold at which an output chunk is flushed
	DefaultChunkSize = 1_000_000

	// DefaultWorkers is the number of seller archives processed concurrently
	DefaultWorkers = 4

	// DownloadProgressInterval is how many bytes pass between download
	// progress log lines
	DownloadProgressInterval = 128 * 1024 * 1024

	// EOCDSearchWindow is how far back from the end of a ZIP the end of
	// central directory record may sit (ZIP spec: 22 bytes + 64 KiB comment)
	EOCDSearchWindow = 66560
)
