package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stock-impact-scanner/internal/server/config"
	"stock-impact-scanner/pkg/apperrors"
	"stock-impact-scanner/pkg/logger"

	"golang.org/x/time/rate"
)

// NewsAPIRepository wraps the upstream headlines API. Responses are passed
// through verbatim; the caller decides on caching.
type NewsAPIRepository interface {
	TopHeadlines(ctx context.Context, category, country string) (json.RawMessage, error)
	Everything(ctx context.Context, query, sortBy, language string) (json.RawMessage, error)
}

type newsAPIRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewNewsAPIRepository creates a rate-limited NewsAPI client.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) NewsAPIRepository {
	perMinute := cfg.NewsAPI.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	secondsPerRequest := time.Minute / time.Duration(perMinute)
	return &newsAPIRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

func (r *newsAPIRepository) TopHeadlines(ctx context.Context, category, country string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("category", category)
	params.Set("country", country)
	return r.get(ctx, "/top-headlines", params)
}

func (r *newsAPIRepository) Everything(ctx context.Context, query, sortBy, language string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", sortBy)
	params.Set("language", language)
	return r.get(ctx, "/everything", params)
}

func (r *newsAPIRepository) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params.Set("apiKey", r.cfg.NewsAPI.APIKey)
	reqURL := r.cfg.NewsAPI.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Error("NewsAPI request failed", logger.ErrorField(err), logger.Field("path", path))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", apperrors.ErrUpstream, err)
	}

	if resp.StatusCode >= 400 {
		r.log.Error("NewsAPI returned error status",
			logger.IntField("status_code", resp.StatusCode), logger.Field("path", path))
		return nil, fmt.Errorf("%w: status %d: %s", apperrors.ErrUpstream, resp.StatusCode, string(body))
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: upstream returned invalid JSON", apperrors.ErrDataCorruption)
	}

	return body, nil
}
