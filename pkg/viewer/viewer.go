// Package viewer queries the FERC EQR Report Viewer for quarterly filing
// archives. The page is dynamically rendered, so link discovery drives a
// headless Chrome session via chromedp; a plain HTTP snapshot scan is used
// as a fallback for statically served mirrors of the page.
package viewer

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/gridscope/ferceqr/internal/transport"
	"github.com/gridscope/ferceqr/pkg/logging"
)

// DefaultRoot is the FERC EQR Report Viewer URL.
const DefaultRoot = "https://eqrreportviewer.ferc.gov"

// Renderer fetches the fully rendered HTML of a page.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Client discovers and downloads quarterly filing archives.
type Client struct {
	root     string
	http     *http.Client
	renderer Renderer
	limiter  *rate.Limiter
	logger   *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRoot overrides the Report Viewer root URL.
func WithRoot(root string) Option {
	return func(c *Client) {
		if root != "" {
			c.root = root
		}
	}
}

// WithHTTPClient overrides the HTTP client used for snapshots and downloads.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRenderer overrides the headless page renderer.
func WithRenderer(r Renderer) Option {
	return func(c *Client) { c.renderer = r }
}

// WithLogger sets the logger for download progress.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Report Viewer client. Requests to FERC are rate limited to
// one per second.
func New(opts ...Option) *Client {
	c := &Client{
		root:    DefaultRoot,
		http:    transport.NewDownloadClient(),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  logging.Default(),
	}
	c.renderer = &chromeRenderer{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the configured Report Viewer root URL.
func (c *Client) Root() string {
	return c.root
}
