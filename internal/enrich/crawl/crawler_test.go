package crawl

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surge/internal/enrich/extract"
	"surge/internal/platform/logger"
)

// fakeFetcher serves canned HTML by URL and records every page request.
type fakeFetcher struct {
	pages   map[string]string
	robots  string
	fetched []string
}

func (f *fakeFetcher) Page(_ context.Context, url string) *goquery.Document {
	f.fetched = append(f.fetched, url)
	html, ok := f.pages[url]
	if !ok {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return doc
}

func (f *fakeFetcher) Raw(_ context.Context, url string) ([]byte, bool) {
	if f.robots == "" {
		return nil, false
	}
	return []byte(f.robots), true
}

func newCrawler(f *fakeFetcher, maxSubpages int) *Crawler {
	return New(f, extract.NewExtractor(), maxSubpages, time.Millisecond, nil, logger.Discard())
}

func TestCrawlUnreachableSite(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}

	got := newCrawler(f, 6).Crawl(context.Background(), "acme.com", "acme.com")

	assert.Nil(t, got)
	// Both schemes were tried before giving up.
	assert.Equal(t, []string{"https://acme.com", "http://acme.com"}, f.fetched)
}

func TestCrawlSchemeFallback(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"http://acme.com": `<html><body><p>Mark Doe, Managing Partner</p></body></html>`,
	}}

	got := newCrawler(f, 0).Crawl(context.Background(), "acme.com", "acme.com")

	require.Len(t, got, 1)
	assert.Equal(t, "Mark Doe", got[0].Name)
}

func TestCrawlSubpageCap(t *testing.T) {
	home := `<html><body>
		<a href="/team">Team</a>
		<a href="/about">About</a>
		<a href="/contact">Contact</a>
	</body></html>`
	card := `<html><body><p>Alice Barnes, Principal</p></body></html>`

	f := &fakeFetcher{pages: map[string]string{
		"https://acme.com":         home,
		"https://acme.com/team":    card,
		"https://acme.com/about":   card,
		"https://acme.com/contact": card,
	}}

	newCrawler(f, 2).Crawl(context.Background(), "https://acme.com", "acme.com")

	// Homepage plus at most two successfully fetched subpages; failed guesses
	// do not count against the cap.
	success := 0
	for _, url := range f.fetched {
		if _, ok := f.pages[url]; ok {
			success++
		}
	}
	assert.Equal(t, 3, success)
}

func TestCrawlHonorsRobots(t *testing.T) {
	home := `<html><body><a href="/team">Team</a></body></html>`

	f := &fakeFetcher{
		pages: map[string]string{
			"https://acme.com":      home,
			"https://acme.com/team": `<html><body><p>Alice Barnes, Principal</p></body></html>`,
		},
		robots: "User-agent: *\nDisallow: /team",
	}

	got := newCrawler(f, 6).Crawl(context.Background(), "https://acme.com", "acme.com")

	assert.NotContains(t, f.fetched, "https://acme.com/team")
	assert.Empty(t, got)
}

func TestCrawlUnionsCandidatesAcrossPages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://acme.com":      `<html><body><a href="/team">Team</a><p>Mark Doe, Managing Partner</p></body></html>`,
		"https://acme.com/team": `<html><body><p>Alice Barnes, Principal</p></body></html>`,
	}}

	got := newCrawler(f, 6).Crawl(context.Background(), "https://acme.com", "acme.com")

	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Mark Doe")
	assert.Contains(t, names, "Alice Barnes")
}
