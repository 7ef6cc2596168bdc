// Package contactstore caches fit scores and enriched contacts per firm so
// repeated discovery runs skip work already done. Records are keyed by the
// firm's CRD number.
package contactstore

import (
	"context"
	"errors"
	"time"

	"surge/internal/enrich/models"
)

// ErrNotFound is returned by single-record lookups when no cached record
// exists for the CRD.
var ErrNotFound = errors.New("contactstore: record not found")

// ScoreRecord is one cached fit assessment.
type ScoreRecord struct {
	CRD      int       `json:"crd"`
	Company  string    `json:"company"`
	Website  string    `json:"website"`
	Score    string    `json:"fit_score"`
	Reasons  string    `json:"fit_reasons"`
	ScoredAt time.Time `json:"scored_at"`
}

// EnrichmentRecord is one cached contact discovery result.
type EnrichmentRecord struct {
	CRD        int            `json:"crd"`
	Contact    models.Contact `json:"contact"`
	EnrichedAt time.Time      `json:"enriched_at"`
}

// Store persists per-firm discovery results. Saves are upserts: scoring and
// enrichment update their own columns without clobbering each other.
type Store interface {
	SaveScores(ctx context.Context, records []ScoreRecord) error
	SaveEnrichments(ctx context.Context, records []EnrichmentRecord) error

	// Batch lookups return only the CRDs present in the cache; absent CRDs
	// are simply missing from the map.
	LookupScores(ctx context.Context, crds []int) (map[int]ScoreRecord, error)
	LookupEnrichments(ctx context.Context, crds []int) (map[int]EnrichmentRecord, error)

	Health(ctx context.Context) error
}
