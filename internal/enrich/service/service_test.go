package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surge/internal/enrich/models"
	"surge/internal/platform/logger"
)

type fakeCrawler struct {
	candidates []models.Candidate
	calls      atomic.Int32
}

func (f *fakeCrawler) Crawl(_ context.Context, website, domain string) []models.Candidate {
	f.calls.Add(1)
	return f.candidates
}

type fakeDirectory struct {
	enabled    bool
	candidates []models.Candidate
	calls      int
}

func (f *fakeDirectory) Enabled() bool { return f.enabled }

func (f *fakeDirectory) DomainSearch(_ context.Context, domain string) []models.Candidate {
	f.calls++
	return f.candidates
}

type fakeReconciler struct {
	mu      sync.Mutex
	seen    []models.Candidate
	contact models.Contact
}

func (f *fakeReconciler) Reconcile(_ context.Context, domain string, candidates []models.Candidate) models.Contact {
	f.mu.Lock()
	f.seen = candidates
	f.mu.Unlock()
	return f.contact
}

func TestEnrichNoWebsiteSkipsAllNetwork(t *testing.T) {
	crawler := &fakeCrawler{}
	dir := &fakeDirectory{enabled: true}
	svc := New(crawler, dir, &fakeReconciler{}, nil, logger.Discard())

	for _, website := range []string{"", "   ", "nan"} {
		got := svc.Enrich(context.Background(), website)
		assert.True(t, got.IsEmpty(), "website %q", website)
	}
	assert.Zero(t, crawler.calls.Load())
	assert.Zero(t, dir.calls)
}

func TestEnrichMergesScrapedBeforeDirectory(t *testing.T) {
	crawler := &fakeCrawler{candidates: []models.Candidate{
		{Name: "Mark Doe", Source: models.SourceScraped},
	}}
	dir := &fakeDirectory{enabled: true, candidates: []models.Candidate{
		{Name: "Jane Smith", Source: models.SourceDirectory},
	}}
	rec := &fakeReconciler{contact: models.Contact{Name: "Jane Smith"}}
	svc := New(crawler, dir, rec, nil, logger.Discard())

	got := svc.Enrich(context.Background(), "acme.com")

	assert.Equal(t, "Jane Smith", got.Name)
	require.Len(t, rec.seen, 2)
	assert.Equal(t, models.SourceScraped, rec.seen[0].Source)
	assert.Equal(t, models.SourceDirectory, rec.seen[1].Source)
	assert.Equal(t, 1, dir.calls)
}

func TestEnrichSkipsDirectoryWhenDisabled(t *testing.T) {
	crawler := &fakeCrawler{}
	dir := &fakeDirectory{enabled: false}
	svc := New(crawler, dir, &fakeReconciler{}, nil, logger.Discard())

	svc.Enrich(context.Background(), "acme.com")

	assert.Equal(t, int32(1), crawler.calls.Load())
	assert.Zero(t, dir.calls)
}

func TestEnrichBatchKeepsOrder(t *testing.T) {
	crawler := &fakeCrawler{}
	rec := &fakeReconciler{}
	svc := New(crawler, &fakeDirectory{}, rec, nil, logger.Discard())

	websites := []string{"a.com", "", "c.com", "nan", "e.com"}
	got := svc.EnrichBatch(context.Background(), websites, 2)

	require.Len(t, got, len(websites))
	for i := range got {
		assert.True(t, got[i].IsEmpty(), "index %d", i)
	}
	assert.Equal(t, int32(3), crawler.calls.Load())
}
