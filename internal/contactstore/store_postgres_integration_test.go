//go:build integration

package contactstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"surge/internal/enrich/models"
	"surge/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *PostgresStore
	ctx   context.Context
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	pg := containers.NewPostgresContainer(s.T())
	store, err := NewPostgres(s.ctx, pg.DB)
	s.Require().NoError(err)
	s.store = store
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.store.db.ExecContext(s.ctx, "TRUNCATE ria_cache")
	s.Require().NoError(err)
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) TestScoreRoundTrip() {
	now := time.Now().UTC().Truncate(time.Second)
	s.Require().NoError(s.store.SaveScores(s.ctx, []ScoreRecord{
		{CRD: 100, Company: "Acme Wealth", Website: "acme.com", Score: "72", Reasons: "has_website", ScoredAt: now},
	}))

	found, err := s.store.LookupScores(s.ctx, []int{100, 999})
	s.Require().NoError(err)
	s.Require().Contains(found, 100)
	s.Equal("72", found[100].Score)
	s.Equal("Acme Wealth", found[100].Company)
	s.NotContains(found, 999)
}

func (s *PostgresStoreSuite) TestEnrichmentUpsertKeepsScoreColumns() {
	s.Require().NoError(s.store.SaveScores(s.ctx, []ScoreRecord{{CRD: 100, Score: "72"}}))
	s.Require().NoError(s.store.SaveEnrichments(s.ctx, []EnrichmentRecord{
		{CRD: 100, Contact: models.Contact{Name: "Jane Smith", Email: "jane@acme.com"}},
	}))

	scores, err := s.store.LookupScores(s.ctx, []int{100})
	s.Require().NoError(err)
	s.Equal("72", scores[100].Score)

	enrichments, err := s.store.LookupEnrichments(s.ctx, []int{100})
	s.Require().NoError(err)
	s.Equal("jane@acme.com", enrichments[100].Contact.Email)
}

func (s *PostgresStoreSuite) TestUnenrichedRowExcludedFromEnrichmentLookup() {
	s.Require().NoError(s.store.SaveScores(s.ctx, []ScoreRecord{{CRD: 100, Score: "72"}}))

	found, err := s.store.LookupEnrichments(s.ctx, []int{100})
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *PostgresStoreSuite) TestHealth() {
	s.NoError(s.store.Health(s.ctx))
}
