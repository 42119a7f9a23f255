package repository

import (
	"context"

	"stock-impact-scanner/internal/entity"

	"gorm.io/gorm"
)

// StockImpactRepository defines the interface for impact annotation storage.
type StockImpactRepository interface {
	Create(ctx context.Context, impact *entity.StockImpact) error
	FindByNewsID(ctx context.Context, newsID string) ([]entity.StockImpact, error)
}

// NewStockImpactRepository creates a new GORM-based impact repository.
func NewStockImpactRepository(db *gorm.DB) StockImpactRepository {
	return &stockImpactRepository{db: db}
}

type stockImpactRepository struct {
	db *gorm.DB
}

// Create inserts an impact row. Impacts are never updated afterwards.
func (r *stockImpactRepository) Create(ctx context.Context, impact *entity.StockImpact) error {
	return r.db.WithContext(ctx).Create(impact).Error
}

// FindByNewsID retrieves all impact rows for a news item.
func (r *stockImpactRepository) FindByNewsID(ctx context.Context, newsID string) ([]entity.StockImpact, error) {
	var impacts []entity.StockImpact
	if err := r.db.WithContext(ctx).Where("news_id = ?", newsID).Find(&impacts).Error; err != nil {
		return nil, err
	}
	return impacts, nil
}
