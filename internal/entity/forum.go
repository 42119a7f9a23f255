package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ForumPost is a user-authored discussion thread. Username is denormalized
// for display; editing a user record does not rewrite existing posts.
type ForumPost struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"index;not null" json:"user_id"`
	Username  string         `json:"username"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `json:"content"`
	Stocks    pq.StringArray `gorm:"type:text[]" json:"stocks"`
	Upvotes   int            `json:"upvotes"`
	Comments  pq.StringArray `gorm:"type:text[]" json:"comments"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}

func (p *ForumPost) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Comment belongs to an existing post. The comment row and the post's
// comment-id list are written separately; the by-post listing reads this
// table, not the list.
type Comment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	PostID    string    `gorm:"index;not null" json:"post_id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `gorm:"not null" json:"content"`
	Upvotes   int       `json:"upvotes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
