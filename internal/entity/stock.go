package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stock represents a tradable instrument. Rows are seeded once and are
// effectively immutable afterwards.
type Stock struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"uniqueIndex;not null" json:"symbol"`
	Name      string    `gorm:"not null" json:"name"`
	Exchange  string    `json:"exchange"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Stock) TableName() string {
	return "stocks"
}

func (s *Stock) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
