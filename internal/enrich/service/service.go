// Package service orchestrates contact enrichment: scraping and directory
// search produce independent candidate lists, the reconciler merges them.
package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"surge/internal/enrich/metrics"
	"surge/internal/enrich/models"
)

// Crawler walks a firm's website for scraped candidates.
type Crawler interface {
	Crawl(ctx context.Context, website, domain string) []models.Candidate
}

// Directory is the domain-wide search side of the directory service.
type Directory interface {
	Enabled() bool
	DomainSearch(ctx context.Context, domain string) []models.Candidate
}

// Reconciler merges candidates into one contact.
type Reconciler interface {
	Reconcile(ctx context.Context, domain string, candidates []models.Candidate) models.Contact
}

// Service is the enrichment engine's entry point. It holds no state across
// calls, so enriching different firms concurrently is safe.
type Service struct {
	crawler    Crawler
	directory  Directory
	reconciler Reconciler
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New wires the engine. directory may be a disabled client; metrics may be nil.
func New(crawler Crawler, directory Directory, reconciler Reconciler, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		crawler:    crawler,
		directory:  directory,
		reconciler: reconciler,
		metrics:    m,
		logger:     logger,
	}
}

// Enrich discovers the best contact for a firm's website. It always returns
// a contact; every field empty means nothing was found. A firm with no
// website returns immediately without any network traffic.
//
// Cost ordering is deliberate and load-bearing: free scraping first, one
// paid domain search second, and at most one targeted lookup last (inside
// the reconciler, only to backfill a missing email).
func (s *Service) Enrich(ctx context.Context, website string) models.Contact {
	start := time.Now()

	if models.NormalizeURL(website) == "" {
		s.metrics.IncrementOutcome("empty")
		return models.Contact{}
	}

	domain := models.CanonicalDomain(website)

	candidates := s.crawler.Crawl(ctx, website, domain)
	s.metrics.AddCandidates(string(models.SourceScraped), len(candidates))

	if s.directory != nil && s.directory.Enabled() && domain != "" {
		found := s.directory.DomainSearch(ctx, domain)
		s.metrics.AddCandidates(string(models.SourceDirectory), len(found))
		candidates = append(candidates, found...)
	}

	contact := s.reconciler.Reconcile(ctx, domain, candidates)

	s.metrics.ObserveEnrichLatency(time.Since(start))
	s.metrics.IncrementOutcome(outcome(contact))
	s.logger.InfoContext(ctx, "enrichment finished",
		"website", website,
		"domain", domain,
		"candidates", len(candidates),
		"outcome", outcome(contact),
	)

	return contact
}

// EnrichBatch enriches several firms concurrently. Each enrichment is fully
// independent, so the only coordination needed is the parallelism bound.
func (s *Service) EnrichBatch(ctx context.Context, websites []string, parallelism int) []models.Contact {
	if parallelism < 1 {
		parallelism = 1
	}

	contacts := make([]models.Contact, len(websites))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, website := range websites {
		i, website := i, website
		g.Go(func() error {
			contacts[i] = s.Enrich(gctx, website)
			return nil
		})
	}
	// Workers never return errors; Wait is for completion only.
	_ = g.Wait()

	return contacts
}

func outcome(c models.Contact) string {
	switch {
	case c.Name != "" && c.Email != "":
		return "full"
	case c.Name != "":
		return "name_only"
	case c.Email != "":
		return "email_only"
	default:
		return "empty"
	}
}
