package repository

import (
	"context"

	"stock-impact-scanner/internal/entity"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
}

// NewCommentRepository creates a new GORM-based comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

type commentRepository struct {
	db *gorm.DB
}

// Create inserts a comment row.
func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByPostID retrieves a post's comments in creation order.
func (r *commentRepository) FindByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
