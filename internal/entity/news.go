package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// NewsItem represents an ingested or seeded news article. Read-only after
// creation.
type NewsItem struct {
	ID               string         `gorm:"primaryKey" json:"id"`
	Title            string         `gorm:"not null" json:"title"`
	Content          string         `json:"content"`
	URL              string         `json:"url"`
	Source           string         `json:"source"`
	PublishedAt      time.Time      `gorm:"index" json:"published_at"`
	Category         string         `gorm:"index" json:"category"`
	AffectedStocks   pq.StringArray `gorm:"type:text[]" json:"affected_stocks"`
	ConfidenceScore  float64        `json:"confidence_score"`
	ValidatedSources pq.StringArray `gorm:"type:text[]" json:"validated_sources"`
	HashIdentifier   string         `gorm:"uniqueIndex" json:"-"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (NewsItem) TableName() string {
	return "news"
}

func (n *NewsItem) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// StockImpact is the annotator's verdict for one (news, stock) pair. Created
// alongside its news item, never updated.
type StockImpact struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	NewsID      string    `gorm:"index;not null" json:"news_id"`
	StockID     string    `gorm:"not null" json:"stock_id"`
	ImpactScore float64   `json:"impact_score"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StockImpact) TableName() string {
	return "stock_impacts"
}

func (i *StockImpact) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// NewsSource is a seed-time reference row describing a publisher.
type NewsSource struct {
	ID               string  `gorm:"primaryKey" json:"id"`
	Name             string  `gorm:"uniqueIndex;not null" json:"name"`
	URL              string  `json:"url"`
	ReliabilityScore float64 `json:"reliability_score"`
}

func (NewsSource) TableName() string {
	return "news_sources"
}

func (s *NewsSource) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
