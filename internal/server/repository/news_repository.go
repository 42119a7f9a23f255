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

// NewsRepository defines the interface for news data operations.
type NewsRepository interface {
	Find(ctx context.Context, category string, skip, limit int) ([]entity.NewsItem, error)
	FindByID(ctx context.Context, id string) (*entity.NewsItem, error)
	FindByAffectedSymbol(ctx context.Context, symbol string, limit int) ([]entity.NewsItem, error)
	Create(ctx context.Context, item *entity.NewsItem) error
	CreateIgnoreConflict(ctx context.Context, item *entity.NewsItem) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// NewNewsRepository creates a new GORM-based news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

type newsRepository struct {
	db *gorm.DB
}

// Find retrieves news ordered newest first, optionally filtered by category.
func (r *newsRepository) Find(ctx context.Context, category string, skip, limit int) ([]entity.NewsItem, error) {
	var items []entity.NewsItem
	q := r.db.WithContext(ctx).Order("published_at DESC").Offset(skip).Limit(limit)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID retrieves a single news item.
func (r *newsRepository) FindByID(ctx context.Context, id string) (*entity.NewsItem, error) {
	var item entity.NewsItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("news item %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

// FindByAffectedSymbol retrieves news whose affected-stocks list contains the
// symbol, newest first.
func (r *newsRepository) FindByAffectedSymbol(ctx context.Context, symbol string, limit int) ([]entity.NewsItem, error) {
	var items []entity.NewsItem
	err := r.db.WithContext(ctx).
		Where("? = ANY(affected_stocks)", symbol).
		Order("published_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a news item.
func (r *newsRepository) Create(ctx context.Context, item *entity.NewsItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateIgnoreConflict inserts a news item, skipping rows whose hash
// identifier is already present. Returns whether a row was inserted.
func (r *newsRepository) CreateIgnoreConflict(ctx context.Context, item *entity.NewsItem) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash_identifier"}},
		DoNothing: true,
	}).Create(item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Count returns the number of news rows.
func (r *newsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.NewsItem{}).Count(&count).Error
	return count, err
}
