package contactstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"surge/internal/enrich/models"
)

// firmKeyPrefix namespaces the per-firm cache hashes.
const firmKeyPrefix = "ria:crd:"

// RedisStore keeps the firm cache in Redis hashes, one hash per CRD. Suited
// to deployments that already run Redis but not PostgreSQL.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func firmKey(crd int) string {
	return firmKeyPrefix + strconv.Itoa(crd)
}

func (s *RedisStore) SaveScores(ctx context.Context, records []ScoreRecord) error {
	if len(records) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for _, r := range records {
		scoredAt := r.ScoredAt
		if scoredAt.IsZero() {
			scoredAt = time.Now().UTC()
		}
		pipe.HSet(ctx, firmKey(r.CRD), map[string]any{
			"company":     r.Company,
			"website":     r.Website,
			"fit_score":   r.Score,
			"fit_reasons": r.Reasons,
			"scored_at":   scoredAt.Format(time.RFC3339),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	return nil
}

func (s *RedisStore) SaveEnrichments(ctx context.Context, records []EnrichmentRecord) error {
	if len(records) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for _, r := range records {
		enrichedAt := r.EnrichedAt
		if enrichedAt.IsZero() {
			enrichedAt = time.Now().UTC()
		}
		pipe.HSet(ctx, firmKey(r.CRD), map[string]any{
			"contact_name":     r.Contact.Name,
			"contact_email":    r.Contact.Email,
			"contact_title":    r.Contact.Title,
			"contact_phone":    r.Contact.Phone,
			"contact_linkedin": r.Contact.SocialProfile,
			"enriched_at":      enrichedAt.Format(time.RFC3339),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save enrichments: %w", err)
	}
	return nil
}

func (s *RedisStore) LookupScores(ctx context.Context, crds []int) (map[int]ScoreRecord, error) {
	found := make(map[int]ScoreRecord)
	if len(crds) == 0 {
		return found, nil
	}

	hashes, err := s.fetchHashes(ctx, crds)
	if err != nil {
		return nil, fmt.Errorf("lookup scores: %w", err)
	}
	for crd, fields := range hashes {
		scoredAt := parseTime(fields["scored_at"])
		if scoredAt.IsZero() {
			continue
		}
		found[crd] = ScoreRecord{
			CRD:      crd,
			Company:  fields["company"],
			Website:  fields["website"],
			Score:    fields["fit_score"],
			Reasons:  fields["fit_reasons"],
			ScoredAt: scoredAt,
		}
	}
	return found, nil
}

func (s *RedisStore) LookupEnrichments(ctx context.Context, crds []int) (map[int]EnrichmentRecord, error) {
	found := make(map[int]EnrichmentRecord)
	if len(crds) == 0 {
		return found, nil
	}

	hashes, err := s.fetchHashes(ctx, crds)
	if err != nil {
		return nil, fmt.Errorf("lookup enrichments: %w", err)
	}
	for crd, fields := range hashes {
		enrichedAt := parseTime(fields["enriched_at"])
		if enrichedAt.IsZero() {
			continue
		}
		found[crd] = EnrichmentRecord{
			CRD: crd,
			Contact: models.Contact{
				Name:          fields["contact_name"],
				Email:         fields["contact_email"],
				Title:         fields["contact_title"],
				Phone:         fields["contact_phone"],
				SocialProfile: fields["contact_linkedin"],
			},
			EnrichedAt: enrichedAt,
		}
	}
	return found, nil
}

// fetchHashes reads all firm hashes in one pipeline round trip.
func (s *RedisStore) fetchHashes(ctx context.Context, crds []int) (map[int]map[string]string, error) {
	pipe := s.client.Pipeline()
	cmds := make(map[int]*redis.MapStringStringCmd, len(crds))
	for _, crd := range crds {
		cmds[crd] = pipe.HGetAll(ctx, firmKey(crd))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	hashes := make(map[int]map[string]string)
	for crd, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		hashes[crd] = fields
	}
	return hashes, nil
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
