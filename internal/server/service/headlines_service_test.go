package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock-impact-scanner/internal/server/config"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/pkg/apperrors"
	pkgconfig "stock-impact-scanner/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadlinesFixture(t *testing.T, handler http.HandlerFunc) HeadlinesService {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		NewsAPI: pkgconfig.NewsAPI{
			APIKey:              "test-key",
			BaseURL:             upstream.URL,
			MaxRequestPerMinute: 600,
		},
	}
	repo := repository.NewNewsAPIRepository(cfg, testLogger())
	return NewHeadlinesService(repo, nil, cfg.NewsAPI.APIKey, 0, testLogger())
}

func TestTopHeadlinesPassthrough(t *testing.T) {
	payload := `{"status":"ok","totalResults":1,"articles":[{"title":"Fed holds rates"}]}`
	svc := newHeadlinesFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/top-headlines", r.URL.Path)
		assert.Equal(t, "business", r.URL.Query().Get("category"))
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	})

	body, err := svc.TopHeadlines(context.Background(), "business", "us")
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(body))
}

func TestEverythingUpstreamError(t *testing.T) {
	svc := newHeadlinesFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	})

	_, err := svc.Everything(context.Background(), "tesla", "publishedAt", "en")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestTopHeadlinesInvalidJSON(t *testing.T) {
	svc := newHeadlinesFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := svc.TopHeadlines(context.Background(), "business", "us")
	assert.ErrorIs(t, err, apperrors.ErrDataCorruption)
}

func TestHeadlinesMockWithoutAPIKey(t *testing.T) {
	// Without an API key the upstream must never be contacted.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called without an API key")
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		NewsAPI: pkgconfig.NewsAPI{BaseURL: upstream.URL},
	}
	repo := repository.NewNewsAPIRepository(cfg, testLogger())
	svc := NewHeadlinesService(repo, nil, "", 0, testLogger())

	body, err := svc.TopHeadlines(context.Background(), "business", "us")
	require.NoError(t, err)

	var parsed struct {
		Status       string `json:"status"`
		TotalResults int    `json:"totalResults"`
		Articles     []json.RawMessage
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, "ok", parsed.Status)
	assert.NotEmpty(t, parsed.Articles)

	body2, err := svc.Everything(context.Background(), "anything", "publishedAt", "en")
	require.NoError(t, err)
	assert.Equal(t, string(body), string(body2))
}

func TestQuoteStockStaysInRange(t *testing.T) {
	svc := NewHeadlinesService(nil, nil, "", 0, testLogger())
	for i := 0; i < 50; i++ {
		quote := svc.QuoteStock("AAPL")
		assert.Equal(t, "AAPL", quote.Symbol)
		assert.GreaterOrEqual(t, quote.Price, 50.0)
		assert.LessOrEqual(t, quote.Price, 500.0)
		assert.GreaterOrEqual(t, quote.Change, -5.0)
		assert.LessOrEqual(t, quote.Change, 5.0)
	}
}
