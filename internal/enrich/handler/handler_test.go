package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surge/internal/enrich/directory"
	"surge/internal/enrich/models"
	"surge/internal/platform/logger"
)

type fakeEnricher struct {
	contact models.Contact
	website string
}

func (f *fakeEnricher) Enrich(_ context.Context, website string) models.Contact {
	f.website = website
	return f.contact
}

type fakeAccount struct {
	enabled bool
	status  directory.AccountStatus
	err     error
}

func (f *fakeAccount) Enabled() bool { return f.enabled }

func (f *fakeAccount) Account(_ context.Context) (directory.AccountStatus, error) {
	return f.status, f.err
}

func newRouter(enricher Enricher, account AccountChecker) http.Handler {
	r := chi.NewRouter()
	New(enricher, account, logger.Discard()).Routes(r)
	return r
}

func TestEnrichEndpoint(t *testing.T) {
	t.Run("returns the flat contact", func(t *testing.T) {
		enricher := &fakeEnricher{contact: models.Contact{
			Name:  "Jane Smith",
			Email: "jane@acme.com",
			Title: "Chief Compliance Officer",
		}}
		router := newRouter(enricher, &fakeAccount{})

		req := httptest.NewRequest(http.MethodPost, "/enrich", strings.NewReader(`{"website":"acme.com"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "acme.com", enricher.website)
		assert.JSONEq(t, `{
			"contact_name": "Jane Smith",
			"contact_email": "jane@acme.com",
			"contact_title": "Chief Compliance Officer",
			"contact_phone": "",
			"contact_linkedin": ""
		}`, rec.Body.String())
	})

	t.Run("empty contact still succeeds", func(t *testing.T) {
		router := newRouter(&fakeEnricher{}, &fakeAccount{})

		req := httptest.NewRequest(http.MethodPost, "/enrich", strings.NewReader(`{"website":""}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		router := newRouter(&fakeEnricher{}, &fakeAccount{})

		req := httptest.NewRequest(http.MethodPost, "/enrich", strings.NewReader(`{broken`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDirectoryAccountEndpoint(t *testing.T) {
	t.Run("returns quota", func(t *testing.T) {
		account := &fakeAccount{
			enabled: true,
			status:  directory.AccountStatus{SearchesUsed: 12, SearchesAvailable: 50},
		}
		router := newRouter(&fakeEnricher{}, account)

		req := httptest.NewRequest(http.MethodGet, "/directory/account", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"searches_used":12,"searches_available":50}`, rec.Body.String())
	})

	t.Run("503 when not configured", func(t *testing.T) {
		router := newRouter(&fakeEnricher{}, &fakeAccount{enabled: false})

		req := httptest.NewRequest(http.MethodGet, "/directory/account", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("502 when the directory errors", func(t *testing.T) {
		router := newRouter(&fakeEnricher{}, &fakeAccount{enabled: true, err: errors.New("boom")})

		req := httptest.NewRequest(http.MethodGet, "/directory/account", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
