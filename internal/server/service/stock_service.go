package service

import (
	"context"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/pkg/logger"
)

// StockService exposes read access to the stock collection.
type StockService interface {
	GetStocks(ctx context.Context, exchange string, limit int) ([]entity.Stock, error)
	GetStock(ctx context.Context, key string) (*entity.Stock, error)
	GetStockNews(ctx context.Context, key string, limit int) ([]entity.NewsItem, error)
}

// NewStockService creates a new stock service.
func NewStockService(stockRepo repository.StockRepository, newsRepo repository.NewsRepository, log *logger.Logger) StockService {
	return &stockService{stockRepo: stockRepo, newsRepo: newsRepo, logger: log}
}

type stockService struct {
	stockRepo repository.StockRepository
	newsRepo  repository.NewsRepository
	logger    *logger.Logger
}

// GetStocks lists stocks, optionally filtered by exchange.
func (s *stockService) GetStocks(ctx context.Context, exchange string, limit int) ([]entity.Stock, error) {
	stocks, err := s.stockRepo.FindAll(ctx, exchange, limit)
	if err != nil {
		s.logger.Error("Failed to list stocks", logger.ErrorField(err))
		return nil, err
	}
	return stocks, nil
}

// GetStock resolves a stock by id or ticker symbol.
func (s *stockService) GetStock(ctx context.Context, key string) (*entity.Stock, error) {
	return s.stockRepo.FindByIDOrSymbol(ctx, key)
}

// GetStockNews lists news affecting the stock identified by id or symbol,
// newest first.
func (s *stockService) GetStockNews(ctx context.Context, key string, limit int) ([]entity.NewsItem, error) {
	stock, err := s.stockRepo.FindByIDOrSymbol(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.newsRepo.FindByAffectedSymbol(ctx, stock.Symbol, limit)
}
