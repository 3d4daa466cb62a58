package viewer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridscope/ferceqr/pkg/eqr"
	"github.com/gridscope/ferceqr/pkg/errors"
	"github.com/gridscope/ferceqr/pkg/logging"
)

// staticRenderer serves canned HTML, or fails to trigger the snapshot path.
type staticRenderer struct {
	html string
	err  error
}

func (r staticRenderer) Render(context.Context, string) (string, error) {
	return r.html, r.err
}

const filingsPage = `
<html><body>
<a href="/downloads/CSV_2025_Q2.zip">CSV Archive</a>
<a href="/downloads/CSV_2025_Q1.zip">CSV Archive</a>
<a href="https://files.example.gov/XML_2025_Q2.zip">XML Archive</a>
<a href="/downloads/CSV_2025_Q2.zip">duplicate link</a>
<a href="/help">Help</a>
</body></html>`

func TestCollectLinks(t *testing.T) {
	links := collectLinks(filingsPage, "https://viewer.example.gov/")
	require.Len(t, links, 3)

	assert.Equal(t, Link{
		Format:  "csv",
		Quarter: eqr.Quarter{Year: 2025, Q: 2},
		URL:     "https://viewer.example.gov/downloads/CSV_2025_Q2.zip",
	}, links[0])
	assert.Equal(t, eqr.Quarter{Year: 2025, Q: 1}, links[1].Quarter)

	// absolute hrefs pass through untouched
	assert.Equal(t, "https://files.example.gov/XML_2025_Q2.zip", links[2].URL)
	assert.Equal(t, "xml", links[2].Format)
}

func TestCollectLinksMatchesByText(t *testing.T) {
	page := `<a href="/d/8f3a">CSV_2024_Q4.zip</a>`
	links := collectLinks(page, "https://viewer.example.gov")
	require.Len(t, links, 1)
	assert.Equal(t, eqr.Quarter{Year: 2024, Q: 4}, links[0].Quarter)
	assert.Equal(t, "https://viewer.example.gov/d/8f3a", links[0].URL)
}

func TestLinksRenderedPage(t *testing.T) {
	c := New(
		WithRenderer(staticRenderer{html: filingsPage}),
		WithLogger(&logging.Nop),
	)
	links, err := c.Links(context.Background())
	require.NoError(t, err)
	assert.Len(t, links, 3)
}

func TestLinksSnapshotFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(filingsPage))
	}))
	defer srv.Close()

	c := New(
		WithRoot(srv.URL),
		WithRenderer(staticRenderer{err: errors.New("no chrome")}),
		WithLogger(&logging.Nop),
	)
	links, err := c.Links(context.Background())
	require.NoError(t, err)
	assert.Len(t, links, 3)
}

func TestLinksNoneFound(t *testing.T) {
	c := New(
		WithRenderer(staticRenderer{html: "<html><body>nothing here</body></html>"}),
		WithLogger(&logging.Nop),
	)
	_, err := c.Links(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDownload(t *testing.T) {
	payload := []byte("PK\x03\x04 pretend archive bytes")
	var mux http.ServeMux
	var srv *httptest.Server
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<a href="` + srv.URL + `/downloads/CSV_2025_Q2.zip">CSV</a>`))
	})
	mux.HandleFunc("/downloads/CSV_2025_Q2.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	})
	srv = httptest.NewServer(&mux)
	defer srv.Close()

	targetDir := filepath.Join(t.TempDir(), "eqr_data")
	c := New(
		WithRoot(srv.URL),
		WithRenderer(staticRenderer{err: errors.New("no chrome")}),
		WithLogger(&logging.Nop),
	)

	dest, err := c.Download(context.Background(), eqr.Quarter{Year: 2025, Q: 2}, "csv", targetDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(targetDir, "csv_2025_q2.zip"), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDownloadQuarterNotPublished(t *testing.T) {
	c := New(
		WithRenderer(staticRenderer{html: filingsPage}),
		WithLogger(&logging.Nop),
	)
	_, err := c.Download(context.Background(), eqr.Quarter{Year: 2019, Q: 3}, "csv", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDownloadServerError(t *testing.T) {
	var mux http.ServeMux
	var srv *httptest.Server
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<a href="` + srv.URL + `/CSV_2025_Q2.zip">CSV</a>`))
	})
	mux.HandleFunc("/CSV_2025_Q2.zip", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})
	srv = httptest.NewServer(&mux)
	defer srv.Close()

	c := New(
		WithRoot(srv.URL),
		WithRenderer(staticRenderer{err: errors.New("no chrome")}),
		WithLogger(&logging.Nop),
	)
	_, err := c.Download(context.Background(), eqr.Quarter{Year: 2025, Q: 2}, "csv", t.TempDir())
	require.Error(t, err)

	var dlErr *errors.DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.Equal(t, http.StatusBadGateway, dlErr.StatusCode)
}

func TestProgressReader(t *testing.T) {
	var reports []int64
	r := &progressReader{
		reader:   &countingReader{n: 10},
		interval: 4,
		report:   func(total int64) { reports = append(reports, total) },
	}
	buf := make([]byte, 3)
	for {
		if _, err := r.Read(buf); err != nil {
			break
		}
	}
	assert.Equal(t, []int64{6, 9}, reports)
}

// countingReader yields n bytes then EOF.
type countingReader struct{ n int }

func (r *countingReader) Read(p []byte) (int, error) {
	if r.n == 0 {
		return 0, errors.New("EOF")
	}
	take := len(p)
	if take > r.n {
		take = r.n
	}
	r.n -= take
	return take, nil
}
