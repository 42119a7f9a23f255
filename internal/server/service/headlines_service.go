package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"stock-impact-scanner/internal/server/dto"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const defaultHeadlinesCacheTTL = 5 * time.Minute

// HeadlinesService proxies the upstream headlines API, caching responses in
// Redis. Without an API key it serves a fixed mock payload so the frontend
// keeps working offline.
type HeadlinesService interface {
	TopHeadlines(ctx context.Context, category, country string) (json.RawMessage, error)
	Everything(ctx context.Context, query, sortBy, language string) (json.RawMessage, error)
	QuoteStock(symbol string) dto.StockQuote
}

// NewHeadlinesService creates a new headlines service. The Redis client may
// be nil, in which case caching is skipped.
func NewHeadlinesService(newsAPIRepo repository.NewsAPIRepository, redisClient *redis.Client, apiKey string, cacheTTL time.Duration, log *logger.Logger) HeadlinesService {
	if cacheTTL <= 0 {
		cacheTTL = defaultHeadlinesCacheTTL
	}
	return &headlinesService{
		newsAPIRepo: newsAPIRepo,
		redisClient: redisClient,
		apiKey:      apiKey,
		cacheTTL:    cacheTTL,
		logger:      log,
	}
}

type headlinesService struct {
	newsAPIRepo repository.NewsAPIRepository
	redisClient *redis.Client
	apiKey      string
	cacheTTL    time.Duration
	logger      *logger.Logger
}

func (s *headlinesService) TopHeadlines(ctx context.Context, category, country string) (json.RawMessage, error) {
	if s.apiKey == "" {
		return mockHeadlinesPayload, nil
	}
	cacheKey := fmt.Sprintf("newsapi:top-headlines:%s:%s", category, country)
	return s.cached(ctx, cacheKey, func() (json.RawMessage, error) {
		return s.newsAPIRepo.TopHeadlines(ctx, category, country)
	})
}

func (s *headlinesService) Everything(ctx context.Context, query, sortBy, language string) (json.RawMessage, error) {
	if s.apiKey == "" {
		return mockHeadlinesPayload, nil
	}
	cacheKey := fmt.Sprintf("newsapi:everything:%s:%s:%s", query, sortBy, language)
	return s.cached(ctx, cacheKey, func() (json.RawMessage, error) {
		return s.newsAPIRepo.Everything(ctx, query, sortBy, language)
	})
}

// QuoteStock returns a mock quote; there is no real market-data upstream.
func (s *headlinesService) QuoteStock(symbol string) dto.StockQuote {
	return dto.StockQuote{
		Symbol: symbol,
		Price:  roundTo2(rand.Float64()*450 + 50),
		Change: roundTo2(rand.Float64()*10 - 5),
	}
}

// cached serves from Redis when possible; cache failures degrade to a direct
// upstream call.
func (s *headlinesService) cached(ctx context.Context, key string, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, key).Bytes(); err == nil {
			return cached, nil
		} else if err != redis.Nil {
			s.logger.Warn("Headlines cache read failed", logger.ErrorField(err))
		}
	}

	body, err := fetch()
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if err := s.redisClient.Set(ctx, key, []byte(body), s.cacheTTL).Err(); err != nil {
			s.logger.Warn("Headlines cache write failed", logger.ErrorField(err))
		}
	}
	return body, nil
}

func roundTo2(v float64) float64 {
	return float64(int(v*100)) / 100
}

var mockHeadlinesPayload = json.RawMessage(`{
  "status": "ok",
  "totalResults": 3,
  "articles": [
    {
      "source": {"id": null, "name": "Bloomberg"},
      "title": "Federal Reserve announces unexpected 50 basis point rate hike",
      "url": "https://example.com/fed-rate-hike",
      "publishedAt": "2024-06-01T12:00:00Z"
    },
    {
      "source": {"id": null, "name": "CNBC"},
      "title": "Apple unveils new AI features for iPhone 16",
      "url": "https://example.com/apple-ai",
      "publishedAt": "2024-06-01T09:00:00Z"
    },
    {
      "source": {"id": null, "name": "Reuters"},
      "title": "Tesla faces battery supply chain disruptions from Southeast Asia",
      "url": "https://example.com/tesla-supply-chain",
      "publishedAt": "2024-06-01T03:00:00Z"
    }
  ]
}`)
