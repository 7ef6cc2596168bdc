package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherPage(t *testing.T) {
	t.Run("returns a parsed document on 200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`<html><body><h1>Acme Wealth</h1></body></html>`))
		}))
		defer srv.Close()

		doc := New(5 * time.Second).Page(context.Background(), srv.URL)
		require.NotNil(t, doc)
		assert.Equal(t, "Acme Wealth", doc.Find("h1").Text())
	})

	t.Run("nil on non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		assert.Nil(t, New(5*time.Second).Page(context.Background(), srv.URL))
	})

	t.Run("nil on unreachable host", func(t *testing.T) {
		assert.Nil(t, New(time.Second).Page(context.Background(), "http://127.0.0.1:1"))
	})

	t.Run("nil on invalid URL", func(t *testing.T) {
		assert.Nil(t, New(time.Second).Page(context.Background(), "://bad"))
	})
}

func TestFetcherRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private"))
	}))
	defer srv.Close()

	data, ok := New(5 * time.Second).Raw(context.Background(), srv.URL)
	require.True(t, ok)
	assert.Contains(t, string(data), "Disallow: /private")

	_, ok = New(time.Second).Raw(context.Background(), "http://127.0.0.1:1")
	assert.False(t, ok)
}
