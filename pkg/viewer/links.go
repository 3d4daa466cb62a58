package viewer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/chromedp/chromedp"

	"github.com/gridscope/ferceqr/pkg/constants"
	"github.com/gridscope/ferceqr/pkg/eqr"
	"github.com/gridscope/ferceqr/pkg/errors"
)

// Link is one quarterly archive advertised on the Report Viewer.
type Link struct {
	Format  string // "csv" or "xml"
	Quarter eqr.Quarter
	URL     string
}

var (
	anchorPattern  = regexp.MustCompile(`(?is)<a\s[^>]*href="([^"]+)"[^>]*>(.*?)</a>`)
	archivePattern = regexp.MustCompile(`(?i)\b(CSV|XML)_(\d{4})_Q([1-4])\.zip\b`)
)

// Links returns the quarterly filing archives the Report Viewer advertises,
// in page order with duplicates removed. The page is rendered headlessly
// first; if Chrome is unavailable the static snapshot of the page is
// scanned instead.
func (c *Client) Links(ctx context.Context) ([]Link, error) {
	html, err := c.renderer.Render(ctx, c.root)
	if err != nil {
		c.logger.Warn().Err(err).Msg("headless render failed, scanning page snapshot")
		html, err = c.snapshot(ctx)
		if err != nil {
			return nil, err
		}
	}

	links := collectLinks(html, c.root)
	if len(links) == 0 {
		return nil, fmt.Errorf("no quarterly archives on %s: %w", c.root, errors.ErrNotFound)
	}
	return links, nil
}

// snapshot fetches the page over plain HTTP, without rendering.
func (c *Client) snapshot(ctx context.Context) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.root, nil)
	if err != nil {
		return "", errors.WrapDownload(c.root, 0, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.WrapDownload(c.root, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.WrapDownload(c.root, resp.StatusCode, errors.New("unexpected status "+resp.Status))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.WrapDownload(c.root, 0, err)
	}
	return string(body), nil
}

// collectLinks scans rendered HTML for quarterly archive anchors. Page
// order is preserved and repeated archives keep their first occurrence.
func collectLinks(html, root string) []Link {
	var links []Link
	seen := make(map[string]bool)

	for _, anchor := range anchorPattern.FindAllStringSubmatch(html, -1) {
		href, text := anchor[1], anchor[2]

		match := archivePattern.FindString(path.Base(href))
		if match == "" {
			match = archivePattern.FindString(text)
		}
		if match == "" {
			continue
		}

		quarter, err := eqr.ParseQuarter(match)
		if err != nil {
			continue
		}
		format := strings.ToLower(match[:3])

		key := format + quarter.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		links = append(links, Link{Format: format, Quarter: quarter, URL: resolveHref(href, root)})
	}
	return links
}

// resolveHref resolves relative archive hrefs against the page root.
func resolveHref(href, root string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(root, "/") + "/" + strings.TrimLeft(href, "/")
}

// chromeRenderer drives a headless Chrome through the Report Viewer's
// Downloads and Quarterly Filings tabs and returns the rendered page.
type chromeRenderer struct{}

func (chromeRenderer) Render(ctx context.Context, url string) (string, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, constants.PageRenderTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.Click(`//a[normalize-space()="Downloads"]`, chromedp.BySearch),
		chromedp.Click(`//a[normalize-space()="Quarterly Filings"]`, chromedp.BySearch),
		chromedp.WaitVisible(`//a[contains(@href, ".zip")]`, chromedp.BySearch),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", errors.WrapDownload(url, 0, err)
	}
	return html, nil
}
