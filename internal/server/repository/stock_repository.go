package repository

import (
	"context"
	"errors"
	"fmt"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/pkg/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository defines the interface for stock data operations.
type StockRepository interface {
	FindAll(ctx context.Context, exchange string, limit int) ([]entity.Stock, error)
	FindByIDOrSymbol(ctx context.Context, key string) (*entity.Stock, error)
	CreateIgnoreConflict(ctx context.Context, stock *entity.Stock) error
	Count(ctx context.Context) (int64, error)
}

// NewStockRepository creates a new GORM-based stock repository.
func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

type stockRepository struct {
	db *gorm.DB
}

// FindAll retrieves stocks, optionally filtered by exchange, capped at limit.
func (r *stockRepository) FindAll(ctx context.Context, exchange string, limit int) ([]entity.Stock, error) {
	var stocks []entity.Stock
	q := r.db.WithContext(ctx).Limit(limit)
	if exchange != "" {
		q = q.Where("exchange = ?", exchange)
	}
	if err := q.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindByIDOrSymbol tries the key as an id first, then as a ticker symbol.
// Downstream endpoints rely on accepting either interchangeably.
func (r *stockRepository) FindByIDOrSymbol(ctx context.Context, key string) (*entity.Stock, error) {
	var stock entity.Stock
	err := r.db.WithContext(ctx).Where("id = ?", key).First(&stock).Error
	if err == nil {
		return &stock, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	err = r.db.WithContext(ctx).Where("symbol = ?", key).First(&stock).Error
	if err == nil {
		return &stock, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("stock %s: %w", key, apperrors.ErrNotFound)
	}
	return nil, err
}

// CreateIgnoreConflict inserts a stock, silently skipping symbol duplicates.
func (r *stockRepository) CreateIgnoreConflict(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoNothing: true,
	}).Create(stock).Error
}

// Count returns the number of stock rows.
func (r *stockRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Stock{}).Count(&count).Error
	return count, err
}
