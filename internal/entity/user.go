package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User represents a registered account. FavoriteStocks and FavoriteNews are
// stored as arrays but carry set semantics; mutation goes through guarded
// single-statement updates in the repository.
type User struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string         `gorm:"not null" json:"-"`
	FavoriteStocks pq.StringArray `gorm:"type:text[]" json:"favorite_stocks"`
	FavoriteNews   pq.StringArray `gorm:"type:text[]" json:"favorite_news"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
