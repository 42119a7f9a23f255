package repository

import (
	"context"
	"errors"
	"fmt"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/pkg/apperrors"

	"gorm.io/gorm"
)

// ForumPostRepository defines the interface for forum post data operations.
type ForumPostRepository interface {
	Find(ctx context.Context, skip, limit int) ([]entity.ForumPost, error)
	FindByID(ctx context.Context, id string) (*entity.ForumPost, error)
	Create(ctx context.Context, post *entity.ForumPost) error
	Upvote(ctx context.Context, id string) error
	AppendComment(ctx context.Context, postID, commentID string) error
	Count(ctx context.Context) (int64, error)
}

// NewForumPostRepository creates a new GORM-based forum post repository.
func NewForumPostRepository(db *gorm.DB) ForumPostRepository {
	return &forumPostRepository{db: db}
}

type forumPostRepository struct {
	db *gorm.DB
}

// Find retrieves posts newest first.
func (r *forumPostRepository) Find(ctx context.Context, skip, limit int) ([]entity.ForumPost, error) {
	var posts []entity.ForumPost
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID retrieves a single post.
func (r *forumPostRepository) FindByID(ctx context.Context, id string) (*entity.ForumPost, error) {
	var post entity.ForumPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts a new post.
func (r *forumPostRepository) Create(ctx context.Context, post *entity.ForumPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Upvote atomically increments the post's upvote counter.
func (r *forumPostRepository) Upvote(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE forum_posts SET upvotes = upvotes + 1 WHERE id = ?`, id,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// AppendComment atomically appends a comment id to the post's ordered list.
func (r *forumPostRepository) AppendComment(ctx context.Context, postID, commentID string) error {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE forum_posts SET comments = array_append(comments, ?) WHERE id = ?`,
		commentID, postID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, apperrors.ErrNotFound)
	}
	return nil
}

// Count returns the number of posts.
func (r *forumPostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ForumPost{}).Count(&count).Error
	return count, err
}
