// Package fetch retrieves and parses single web pages. Failures of any kind
// collapse to "no document"; the engine treats an unreachable page the same
// as an empty one.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// UserAgent identifies the crawler as a regular browser; plenty of small-firm
// hosts reject the default Go client string outright.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// maxBodyBytes caps how much of a response is read; some sites serve
// unbounded streams.
const maxBodyBytes = 5 * 1024 * 1024

// Fetcher issues GETs with a fixed timeout, following redirects.
type Fetcher struct {
	client *http.Client
}

// New builds a Fetcher with the given per-request timeout.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Page fetches url and returns the parsed document, or nil on any non-200
// status or transport error. It never returns an error: absence of a page is
// an expected outcome, not a failure.
func (f *Fetcher) Page(ctx context.Context, url string) *goquery.Document {
	body, ok := f.get(ctx, url)
	if !ok {
		return nil
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil
	}
	return doc
}

// Raw fetches url and returns the body bytes; used for robots.txt.
func (f *Fetcher) Raw(ctx context.Context, url string) ([]byte, bool) {
	body, ok := f.get(ctx, url)
	if !ok {
		return nil, false
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, false
	}
	return resp.Body, true
}
