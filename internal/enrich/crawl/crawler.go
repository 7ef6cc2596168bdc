// Package crawl walks a firm's website: the homepage plus a bounded set of
// likely contact pages, politely paced.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"

	"surge/internal/enrich/extract"
	"surge/internal/enrich/fetch"
	"surge/internal/enrich/lexicon"
	"surge/internal/enrich/metrics"
	"surge/internal/enrich/models"
	"surge/pkg/strutil"
)

// Fetcher is the page source; satisfied by *fetch.Fetcher.
type Fetcher interface {
	Page(ctx context.Context, url string) *goquery.Document
	Raw(ctx context.Context, url string) ([]byte, bool)
}

// Crawler fetches a site's pages sequentially and feeds each one to the
// extractor. It never returns an error; an unreachable site yields no
// candidates.
type Crawler struct {
	fetcher     Fetcher
	extractor   *extract.Extractor
	limiter     *rate.Limiter
	maxSubpages int
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// New builds a Crawler. delay paces subpage fetches; maxSubpages bounds how
// many beyond the homepage are fetched. metrics may be nil.
func New(fetcher Fetcher, extractor *extract.Extractor, maxSubpages int, delay time.Duration, m *metrics.Metrics, logger *slog.Logger) *Crawler {
	return &Crawler{
		fetcher:     fetcher,
		extractor:   extractor,
		limiter:     rate.NewLimiter(rate.Every(delay), 1),
		maxSubpages: maxSubpages,
		metrics:     m,
		logger:      logger,
	}
}

// Crawl fetches the homepage (retrying once on the alternate scheme), then up
// to maxSubpages discovered or guessed contact-ish subpages, and unions the
// extractor output of every page that loaded.
func (c *Crawler) Crawl(ctx context.Context, website, domain string) []models.Candidate {
	homeURL := models.NormalizeURL(website)
	if homeURL == "" {
		return nil
	}

	doc := c.fetcher.Page(ctx, homeURL)
	if doc == nil {
		if flipped, ok := flipScheme(homeURL); ok {
			homeURL = flipped
			doc = c.fetcher.Page(ctx, homeURL)
		}
	}
	if doc == nil {
		c.logger.DebugContext(ctx, "homepage unreachable", "website", website)
		return nil
	}

	c.metrics.IncrementPagesCrawled()
	fetched := map[string]struct{}{strings.TrimRight(homeURL, "/"): {}}
	candidates := c.extractor.Extract(doc, domain)

	robots := c.robotsGroup(ctx, homeURL)

	count := 0
	for _, subURL := range c.subpageURLs(doc, homeURL) {
		if count >= c.maxSubpages {
			break
		}
		if _, done := fetched[subURL]; done {
			continue
		}
		if robots != nil && !robots.Test(pathOf(subURL)) {
			continue
		}

		if err := c.limiter.Wait(ctx); err != nil {
			break
		}
		subDoc := c.fetcher.Page(ctx, subURL)
		if subDoc == nil {
			continue
		}
		c.metrics.IncrementPagesCrawled()
		fetched[subURL] = struct{}{}
		candidates = append(candidates, c.extractor.Extract(subDoc, domain)...)
		count++
	}

	return candidates
}

// subpageURLs combines links discovered on the homepage whose path mentions a
// contact-ish fragment with the fixed subpage paths probed directly against
// the root. Discovered links come first, in document order.
func (c *Crawler) subpageURLs(home *goquery.Document, homeURL string) []string {
	var urls []string

	base, err := url.Parse(homeURL)
	if err != nil {
		return nil
	}

	home.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		lower := strings.ToLower(strings.TrimSpace(href))
		for _, sub := range lexicon.ContactSubpages {
			if !strings.Contains(lower, strings.TrimPrefix(sub, "/")) {
				continue
			}
			ref, err := url.Parse(strings.TrimSpace(href))
			if err != nil {
				break
			}
			resolved := base.ResolveReference(ref)
			if resolved.Host == base.Host {
				urls = append(urls, strings.TrimRight(resolved.String(), "/"))
			}
			break
		}
	})

	root := strings.TrimRight(homeURL, "/")
	for _, sub := range lexicon.ContactSubpages {
		urls = append(urls, root+sub)
	}

	return strutil.DedupeAndTrim(urls)
}

// robotsGroup fetches the site's robots.txt once. Unreachable or malformed
// robots.txt means allow-all.
func (c *Crawler) robotsGroup(ctx context.Context, homeURL string) *robotstxt.Group {
	parsed, err := url.Parse(homeURL)
	if err != nil {
		return nil
	}
	data, ok := c.fetcher.Raw(ctx, parsed.Scheme+"://"+parsed.Host+"/robots.txt")
	if !ok {
		return nil
	}
	robots, err := robotstxt.FromBytes(data)
	if err != nil {
		return nil
	}
	return robots.FindGroup(fetch.UserAgent)
}

func flipScheme(u string) (string, bool) {
	if rest, ok := strings.CutPrefix(u, "https://"); ok {
		return "http://" + rest, true
	}
	if rest, ok := strings.CutPrefix(u, "http://"); ok {
		return "https://" + rest, true
	}
	return "", false
}

func pathOf(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Path == "" {
		return "/"
	}
	return parsed.Path
}
