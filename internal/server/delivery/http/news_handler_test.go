package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/pkg/apperrors"
	"stock-impact-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

// stubNewsService serves a fixed in-memory news list.
type stubNewsService struct {
	items   []entity.NewsItem
	impacts map[string][]entity.StockImpact
}

func (s *stubNewsService) GetNews(_ context.Context, category string, skip, limit int) ([]entity.NewsItem, error) {
	var out []entity.NewsItem
	for _, item := range s.items {
		if category != "" && item.Category != category {
			continue
		}
		out = append(out, item)
	}
	if skip >= len(out) {
		return []entity.NewsItem{}, nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubNewsService) GetNewsItem(_ context.Context, id string) (*entity.NewsItem, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, fmt.Errorf("news item %s: %w", id, apperrors.ErrNotFound)
}

func (s *stubNewsService) GetNewsImpacts(_ context.Context, newsID string) ([]entity.StockImpact, error) {
	if impacts := s.impacts[newsID]; len(impacts) > 0 {
		return impacts, nil
	}
	return nil, fmt.Errorf("no impacts for news item %s: %w", newsID, apperrors.ErrNotFound)
}

func newNewsTestServer() *echo.Echo {
	svc := &stubNewsService{
		items: []entity.NewsItem{
			{ID: "news-1", Title: "Fed raises rates", Category: "monetary-policy"},
			{ID: "news-2", Title: "Apple ships new iPhone", Category: "technology"},
			{ID: "news-3", Title: "Tesla supply chain update", Category: "technology"},
		},
		impacts: map[string][]entity.StockImpact{
			"news-1": {
				{ID: "imp-1", NewsID: "news-1", StockID: "stock-1", ImpactScore: -0.7},
			},
		},
	}

	e := echo.New()
	g := e.Group("/api")
	NewNewsHandler(svc, testLogger()).RegisterRoutes(g)
	return e
}

func doRequest(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetNewsList(t *testing.T) {
	e := newNewsTestServer()

	rec := doRequest(e, http.MethodGet, "/api/news")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []entity.NewsItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 3)
}

func TestGetNewsPagination(t *testing.T) {
	e := newNewsTestServer()

	rec := doRequest(e, http.MethodGet, "/api/news?skip=1&limit=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []entity.NewsItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "news-2", items[0].ID)
}

func TestGetNewsCategoryFilter(t *testing.T) {
	e := newNewsTestServer()

	rec := doRequest(e, http.MethodGet, "/api/news?category=technology")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []entity.NewsItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "technology", item.Category)
	}
}

func TestGetNewsGarbageQueryParamsFallBack(t *testing.T) {
	e := newNewsTestServer()

	rec := doRequest(e, http.MethodGet, "/api/news?limit=abc&skip=-3")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []entity.NewsItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 3)
}

func TestGetNewsItemNotFound(t *testing.T) {
	e := newNewsTestServer()

	rec := doRequest(e, http.MethodGet, "/api/news/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetNewsImpacts(t *testing.T) {
	e := newNewsTestServer()

	rec := doRequest(e, http.MethodGet, "/api/news/news-1/impacts")
	require.Equal(t, http.StatusOK, rec.Code)

	var impacts []entity.StockImpact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &impacts))
	require.Len(t, impacts, 1)
	assert.InDelta(t, -0.7, impacts[0].ImpactScore, 1e-9)

	// A news item without annotations reports not found.
	rec = doRequest(e, http.MethodGet, "/api/news/news-2/impacts")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
