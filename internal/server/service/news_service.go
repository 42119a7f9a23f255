package service

import (
	"context"
	"fmt"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/pkg/apperrors"
	"stock-impact-scanner/pkg/logger"
)

// NewsService exposes read access to news and their impact annotations.
type NewsService interface {
	GetNews(ctx context.Context, category string, skip, limit int) ([]entity.NewsItem, error)
	GetNewsItem(ctx context.Context, id string) (*entity.NewsItem, error)
	GetNewsImpacts(ctx context.Context, newsID string) ([]entity.StockImpact, error)
}

// NewNewsService creates a new news service.
func NewNewsService(newsRepo repository.NewsRepository, impactRepo repository.StockImpactRepository, log *logger.Logger) NewsService {
	return &newsService{newsRepo: newsRepo, impactRepo: impactRepo, logger: log}
}

type newsService struct {
	newsRepo   repository.NewsRepository
	impactRepo repository.StockImpactRepository
	logger     *logger.Logger
}

// GetNews lists news newest first, optionally filtered by category.
func (s *newsService) GetNews(ctx context.Context, category string, skip, limit int) ([]entity.NewsItem, error) {
	items, err := s.newsRepo.Find(ctx, category, skip, limit)
	if err != nil {
		s.logger.Error("Failed to list news", logger.ErrorField(err))
		return nil, err
	}
	return items, nil
}

// GetNewsItem retrieves a single news item by id.
func (s *newsService) GetNewsItem(ctx context.Context, id string) (*entity.NewsItem, error) {
	return s.newsRepo.FindByID(ctx, id)
}

// GetNewsImpacts retrieves the impact annotations for a news item. An empty
// result is reported as not found, matching the API contract.
func (s *newsService) GetNewsImpacts(ctx context.Context, newsID string) ([]entity.StockImpact, error) {
	impacts, err := s.impactRepo.FindByNewsID(ctx, newsID)
	if err != nil {
		s.logger.Error("Failed to list impacts", logger.ErrorField(err), logger.Field("news_id", newsID))
		return nil, err
	}
	if len(impacts) == 0 {
		return nil, fmt.Errorf("no impacts for news item %s: %w", newsID, apperrors.ErrNotFound)
	}
	return impacts, nil
}
