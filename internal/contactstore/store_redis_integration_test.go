//go:build integration

package contactstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"surge/internal/enrich/models"
	"surge/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	store *RedisStore
	redis *containers.RedisContainer
	ctx   context.Context
}

func (s *RedisStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
	s.store = NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) TestScoreRoundTrip() {
	s.Require().NoError(s.store.SaveScores(s.ctx, []ScoreRecord{
		{CRD: 100, Company: "Acme Wealth", Website: "acme.com", Score: "72", Reasons: "has_website"},
	}))

	found, err := s.store.LookupScores(s.ctx, []int{100, 999})
	s.Require().NoError(err)
	s.Require().Contains(found, 100)
	s.Equal("72", found[100].Score)
	s.False(found[100].ScoredAt.IsZero())
	s.NotContains(found, 999)
}

func (s *RedisStoreSuite) TestEnrichmentRoundTrip() {
	contact := models.Contact{
		Name:          "Jane Smith",
		Email:         "jane@acme.com",
		Title:         "Chief Compliance Officer",
		Phone:         "+1 555 0100",
		SocialProfile: "linkedin.com/in/janesmith",
	}
	s.Require().NoError(s.store.SaveEnrichments(s.ctx, []EnrichmentRecord{
		{CRD: 100, Contact: contact},
	}))

	found, err := s.store.LookupEnrichments(s.ctx, []int{100})
	s.Require().NoError(err)
	s.Require().Contains(found, 100)
	s.Equal(contact, found[100].Contact)
}

func (s *RedisStoreSuite) TestScoreOnlyHashExcludedFromEnrichmentLookup() {
	s.Require().NoError(s.store.SaveScores(s.ctx, []ScoreRecord{{CRD: 100, Score: "72"}}))

	found, err := s.store.LookupEnrichments(s.ctx, []int{100})
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *RedisStoreSuite) TestHealth() {
	s.NoError(s.store.Health(s.ctx))
}
