package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ingest run statuses.
const (
	IngestRunStatusRunning   = "running"
	IngestRunStatusCompleted = "completed"
	IngestRunStatusFailed    = "failed"
)

// IngestRun records one pass of the RSS ingester.
type IngestRun struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	Status     string         `gorm:"not null" json:"status"`
	Stats      datatypes.JSON `json:"stats"`
	StartedAt  time.Time      `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
}

func (IngestRun) TableName() string {
	return "ingest_runs"
}

func (r *IngestRun) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
