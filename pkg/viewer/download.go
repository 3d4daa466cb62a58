package viewer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gridscope/ferceqr/pkg/constants"
	"github.com/gridscope/ferceqr/pkg/eqr"
	"github.com/gridscope/ferceqr/pkg/errors"
)

// Download fetches the quarterly archive for the given quarter and format
// ("csv" or "xml") into targetDir, returning the path of the saved file.
// The archive streams to a temp file first so a partial download never
// masquerades as a complete one.
func (c *Client) Download(ctx context.Context, quarter eqr.Quarter, format, targetDir string) (string, error) {
	links, err := c.Links(ctx)
	if err != nil {
		return "", err
	}

	pattern := quarter.RemoteFilePattern(format)
	var url string
	for _, link := range links {
		if pattern.MatchString(link.URL) {
			url = link.URL
			break
		}
	}
	if url == "" {
		return "", fmt.Errorf("no %s archive for %s on %s: %w",
			format, quarter, c.root, errors.ErrNotFound)
	}

	if err := os.MkdirAll(targetDir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("mkdir", targetDir, err)
	}
	dest := filepath.Join(targetDir, quarter.ArchiveName(format))

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	c.logger.Info().Str("url", url).Str("dest", dest).Msg("downloading quarterly archive")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.WrapDownload(url, 0, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.WrapDownload(url, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.WrapDownload(url, resp.StatusCode, errors.New("unexpected status "+resp.Status))
	}

	if err := c.save(resp.Body, dest, url); err != nil {
		return "", err
	}
	return dest, nil
}

// save streams the response body to dest via a temp file in the same
// directory, logging progress as the download advances.
func (c *Client) save(body io.Reader, dest, url string) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", dest, err)
	}
	defer os.Remove(tmp.Name())

	reader := &progressReader{
		reader:   body,
		interval: constants.DownloadProgressInterval,
		report: func(total int64) {
			c.logger.Info().Str("url", url).Int64("bytes", total).Msg("download progress")
		},
	}
	written, err := io.Copy(tmp, reader)
	if err != nil {
		tmp.Close()
		return errors.WrapDownload(url, 0, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return errors.WrapIO("rename", dest, err)
	}

	c.logger.Info().Str("dest", dest).Int64("bytes", written).Msg("download complete")
	return nil
}

// progressReader invokes report every interval bytes read.
type progressReader struct {
	reader   io.Reader
	interval int64
	report   func(total int64)

	total int64
	next  int64
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.total += int64(n)
	if r.next == 0 {
		r.next = r.interval
	}
	for r.total >= r.next {
		r.report(r.total)
		r.next += r.interval
	}
	return n, err
}
