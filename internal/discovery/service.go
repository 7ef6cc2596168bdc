// Package discovery runs the full prospecting pipeline: pull newly
// registered firms from the SEC feed, score them for fit, and enrich the
// promising ones with a best-guess contact. Results are cached per CRD so a
// rerun only pays for firms it has not seen.
package discovery

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"surge/internal/audit"
	"surge/internal/contactstore"
	"surge/internal/enrich/models"
	"surge/internal/registry"
	"surge/internal/score"
)

const defaultParallelism = 4

// Feed supplies newly registered firms.
type Feed interface {
	Recent(ctx context.Context, start, end time.Time) (*registry.Snapshot, error)
}

// Scorer rates a firm's fit.
type Scorer interface {
	Score(ctx context.Context, firm registry.Firm) score.Result
}

// Enricher finds a best-guess contact for a firm's website.
type Enricher interface {
	Enrich(ctx context.Context, website string) models.Contact
}

// Prospect is one firm with everything the pipeline learned about it.
type Prospect struct {
	Firm       registry.Firm  `json:"firm"`
	FitScore   string         `json:"fit_score"`
	FitReasons string         `json:"fit_reasons"`
	Contact    models.Contact `json:"contact"`
	FromCache  bool           `json:"from_cache"`
}

// Report is one discovery run's output, ordered best fit first.
type Report struct {
	Prospects    []Prospect `json:"prospects"`
	TotalRecords int        `json:"total_records"`
	SnapshotDate time.Time  `json:"snapshot_date"`
	SourceURL    string     `json:"source_url"`
}

// Service wires the pipeline stages together.
type Service struct {
	feed     Feed
	scorer   Scorer
	enricher Enricher
	store    contactstore.Store
	audit    *audit.Publisher
	logger   *slog.Logger
}

func New(feed Feed, scorer Scorer, enricher Enricher, store contactstore.Store, auditor *audit.Publisher, logger *slog.Logger) *Service {
	return &Service{
		feed:     feed,
		scorer:   scorer,
		enricher: enricher,
		store:    store,
		audit:    auditor,
		logger:   logger,
	}
}

// Discover runs the pipeline over firms registered in [start, end]. Scoring
// is sequential (each score may fetch one homepage, already rate limited);
// enrichment crawls many pages per firm, so it runs concurrently across
// firms with a parallelism bound.
func (s *Service) Discover(ctx context.Context, start, end time.Time, parallelism int) (*Report, error) {
	if parallelism < 1 {
		parallelism = defaultParallelism
	}

	snapshot, err := s.feed.Recent(ctx, start, end)
	if err != nil {
		return nil, err
	}
	firms := snapshot.Firms

	crds := make([]int, len(firms))
	for i, firm := range firms {
		crds[i] = firm.CRD
		s.emit(ctx, audit.Event{
			CRD:    firm.CRD,
			Action: string(audit.EventFirmDiscovered),
			Detail: map[string]string{"company": firm.Company, "state": firm.State},
		})
	}

	cachedScores := s.lookupScores(ctx, crds)
	cachedContacts := s.lookupEnrichments(ctx, crds)

	results := make([]score.Result, len(firms))
	var newScores []contactstore.ScoreRecord
	for i, firm := range firms {
		if cached, ok := cachedScores[firm.CRD]; ok {
			results[i] = resultFromRecord(cached)
			continue
		}
		results[i] = s.scorer.Score(ctx, firm)
		newScores = append(newScores, contactstore.ScoreRecord{
			CRD:     firm.CRD,
			Company: firm.Company,
			Website: firm.Website,
			Score:   scoreString(results[i]),
			Reasons: strings.Join(results[i].Reasons, ", "),
		})
		s.emit(ctx, audit.Event{
			CRD:    firm.CRD,
			Action: string(audit.EventFirmScored),
			Detail: map[string]string{"fit_score": scoreString(results[i])},
		})
	}
	if err := s.store.SaveScores(ctx, newScores); err != nil {
		s.logger.WarnContext(ctx, "score cache write failed", "error", err)
	}

	contacts := make([]models.Contact, len(firms))
	fromCache := make([]bool, len(firms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, firm := range firms {
		if cached, ok := cachedContacts[firm.CRD]; ok {
			contacts[i] = cached.Contact
			fromCache[i] = true
			continue
		}
		i, firm := i, firm
		g.Go(func() error {
			contacts[i] = s.enricher.Enrich(gctx, firm.Website)
			return nil
		})
	}
	_ = g.Wait()

	var newEnrichments []contactstore.EnrichmentRecord
	for i, firm := range firms {
		if fromCache[i] {
			continue
		}
		newEnrichments = append(newEnrichments, contactstore.EnrichmentRecord{
			CRD:     firm.CRD,
			Contact: contacts[i],
		})
		s.emit(ctx, audit.Event{
			CRD:    firm.CRD,
			Action: string(audit.EventContactEnriched),
			Detail: map[string]string{"contact_name": contacts[i].Name, "contact_email": contacts[i].Email},
		})
	}
	if err := s.store.SaveEnrichments(ctx, newEnrichments); err != nil {
		s.logger.WarnContext(ctx, "enrichment cache write failed", "error", err)
	}

	order := score.RankFirms(firms, results)
	prospects := make([]Prospect, 0, len(firms))
	for _, i := range order {
		prospects = append(prospects, Prospect{
			Firm:       firms[i],
			FitScore:   scoreString(results[i]),
			FitReasons: strings.Join(results[i].Reasons, ", "),
			Contact:    contacts[i],
			FromCache:  fromCache[i],
		})
	}

	s.logger.InfoContext(ctx, "discovery run finished",
		"firms", len(firms),
		"cached_scores", len(cachedScores),
		"cached_contacts", len(cachedContacts),
	)

	return &Report{
		Prospects:    prospects,
		TotalRecords: snapshot.TotalRecords,
		SnapshotDate: snapshot.SnapshotDate,
		SourceURL:    snapshot.SourceURL,
	}, nil
}

func (s *Service) lookupScores(ctx context.Context, crds []int) map[int]contactstore.ScoreRecord {
	found, err := s.store.LookupScores(ctx, crds)
	if err != nil {
		s.logger.WarnContext(ctx, "score cache read failed", "error", err)
		return nil
	}
	return found
}

func (s *Service) lookupEnrichments(ctx context.Context, crds []int) map[int]contactstore.EnrichmentRecord {
	found, err := s.store.LookupEnrichments(ctx, crds)
	if err != nil {
		s.logger.WarnContext(ctx, "enrichment cache read failed", "error", err)
		return nil
	}
	return found
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

// scoreString renders a result the way the cache stores it: a number, or
// "N/A" when the firm could not be assessed.
func scoreString(r score.Result) string {
	if r.Insufficient {
		return "N/A"
	}
	return strconv.Itoa(r.Score)
}

func resultFromRecord(record contactstore.ScoreRecord) score.Result {
	if record.Score == "N/A" {
		return score.Result{Insufficient: true, Reasons: splitReasons(record.Reasons)}
	}
	n, err := strconv.Atoi(record.Score)
	if err != nil {
		return score.Result{Insufficient: true}
	}
	return score.Result{Score: n, Reasons: splitReasons(record.Reasons)}
}

func splitReasons(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	return parts
}
