package contactstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"surge/internal/enrich/models"
)

// PostgresStore persists the firm cache in PostgreSQL. This is the
// production store: discovery runs from multiple instances share it.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed store and ensures the schema.
func NewPostgres(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	s := &PostgresStore{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate firm cache: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ria_cache (
			crd              BIGINT PRIMARY KEY,
			company          TEXT NOT NULL DEFAULT '',
			website          TEXT NOT NULL DEFAULT '',
			fit_score        TEXT NOT NULL DEFAULT '',
			fit_reasons      TEXT NOT NULL DEFAULT '',
			scored_at        TIMESTAMPTZ,
			contact_name     TEXT NOT NULL DEFAULT '',
			contact_email    TEXT NOT NULL DEFAULT '',
			contact_title    TEXT NOT NULL DEFAULT '',
			contact_phone    TEXT NOT NULL DEFAULT '',
			contact_linkedin TEXT NOT NULL DEFAULT '',
			enriched_at      TIMESTAMPTZ
		)`)
	return err
}

func (s *PostgresStore) SaveScores(ctx context.Context, records []ScoreRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ria_cache (crd, company, website, fit_score, fit_reasons, scored_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (crd) DO UPDATE SET
			company     = EXCLUDED.company,
			website     = EXCLUDED.website,
			fit_score   = EXCLUDED.fit_score,
			fit_reasons = EXCLUDED.fit_reasons,
			scored_at   = EXCLUDED.scored_at`)
	if err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		scoredAt := r.ScoredAt
		if scoredAt.IsZero() {
			scoredAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx, r.CRD, r.Company, r.Website, r.Score, r.Reasons, scoredAt); err != nil {
			return fmt.Errorf("save score crd=%d: %w", r.CRD, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveEnrichments(ctx context.Context, records []EnrichmentRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save enrichments: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ria_cache (crd, contact_name, contact_email, contact_title,
		                       contact_phone, contact_linkedin, enriched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (crd) DO UPDATE SET
			contact_name     = EXCLUDED.contact_name,
			contact_email    = EXCLUDED.contact_email,
			contact_title    = EXCLUDED.contact_title,
			contact_phone    = EXCLUDED.contact_phone,
			contact_linkedin = EXCLUDED.contact_linkedin,
			enriched_at      = EXCLUDED.enriched_at`)
	if err != nil {
		return fmt.Errorf("save enrichments: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		enrichedAt := r.EnrichedAt
		if enrichedAt.IsZero() {
			enrichedAt = time.Now().UTC()
		}
		c := r.Contact
		if _, err := stmt.ExecContext(ctx, r.CRD, c.Name, c.Email, c.Title, c.Phone, c.SocialProfile, enrichedAt); err != nil {
			return fmt.Errorf("save enrichment crd=%d: %w", r.CRD, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save enrichments: %w", err)
	}
	return nil
}

func (s *PostgresStore) LookupScores(ctx context.Context, crds []int) (map[int]ScoreRecord, error) {
	found := make(map[int]ScoreRecord)
	if len(crds) == 0 {
		return found, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT crd, company, website, fit_score, fit_reasons, scored_at
		FROM ria_cache
		WHERE crd = ANY($1) AND scored_at IS NOT NULL`,
		pq.Array(int64Slice(crds)))
	if err != nil {
		return nil, fmt.Errorf("lookup scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r ScoreRecord
		var scoredAt sql.NullTime
		if err := rows.Scan(&r.CRD, &r.Company, &r.Website, &r.Score, &r.Reasons, &scoredAt); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		r.ScoredAt = scoredAt.Time
		found[r.CRD] = r
	}
	return found, rows.Err()
}

func (s *PostgresStore) LookupEnrichments(ctx context.Context, crds []int) (map[int]EnrichmentRecord, error) {
	found := make(map[int]EnrichmentRecord)
	if len(crds) == 0 {
		return found, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT crd, contact_name, contact_email, contact_title,
		       contact_phone, contact_linkedin, enriched_at
		FROM ria_cache
		WHERE crd = ANY($1) AND enriched_at IS NOT NULL`,
		pq.Array(int64Slice(crds)))
	if err != nil {
		return nil, fmt.Errorf("lookup enrichments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r EnrichmentRecord
		var c models.Contact
		var enrichedAt sql.NullTime
		if err := rows.Scan(&r.CRD, &c.Name, &c.Email, &c.Title, &c.Phone, &c.SocialProfile, &enrichedAt); err != nil {
			return nil, fmt.Errorf("scan enrichment row: %w", err)
		}
		r.Contact = c
		r.EnrichedAt = enrichedAt.Time
		found[r.CRD] = r
	}
	return found, rows.Err()
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func int64Slice(crds []int) []int64 {
	out := make([]int64, len(crds))
	for i, crd := range crds {
		out[i] = int64(crd)
	}
	return out
}
