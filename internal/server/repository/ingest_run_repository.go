package repository

import (
	"context"
	"time"

	"stock-impact-scanner/internal/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IngestRunRepository records RSS ingest passes.
type IngestRunRepository interface {
	Create(ctx context.Context, run *entity.IngestRun) error
	Finish(ctx context.Context, id, status string, stats datatypes.JSON) error
}

// NewIngestRunRepository creates a new GORM-based ingest run repository.
func NewIngestRunRepository(db *gorm.DB) IngestRunRepository {
	return &ingestRunRepository{db: db}
}

type ingestRunRepository struct {
	db *gorm.DB
}

func (r *ingestRunRepository) Create(ctx context.Context, run *entity.IngestRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Finish marks a run as completed or failed and attaches its stats payload.
func (r *ingestRunRepository) Finish(ctx context.Context, id, status string, stats datatypes.JSON) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&entity.IngestRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"stats":       stats,
			"finished_at": &now,
		}).Error
}
