// Package transport provides the HTTP client used against the FERC
// Report Viewer. FERC throttles anonymous scrapers, so every request
// carries an identifying User-Agent.
package transport

import (
	"net/http"
	"time"

	"github.com/gridscope/ferceqr/pkg/constants"
)

// UserAgent identifies ferceqr requests to FERC.
const UserAgent = "ferceqr (+https://github.com/gridscope/ferceqr)"

// NewClient creates an HTTP client with the given total-request timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: http.DefaultTransport},
	}
}

// NewDownloadClient creates the client used for multi-gigabyte archive
// downloads.
func NewDownloadClient() *http.Client {
	return NewClient(constants.DownloadTimeout)
}

// userAgentTransport stamps the User-Agent header on every request that
// does not already set one.
type userAgentTransport struct {
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return t.base.RoundTrip(req)
}
