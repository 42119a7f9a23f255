package service

import (
	"context"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/pkg/logger"
)

// ForumService handles forum post and comment operations.
type ForumService interface {
	GetPosts(ctx context.Context, skip, limit int) ([]entity.ForumPost, error)
	GetPost(ctx context.Context, id string) (*entity.ForumPost, error)
	CreatePost(ctx context.Context, author *entity.User, title, content string, stocks []string) (*entity.ForumPost, error)
	AddComment(ctx context.Context, author *entity.User, postID, content string) (*entity.Comment, error)
	GetComments(ctx context.Context, postID string) ([]entity.Comment, error)
	UpvotePost(ctx context.Context, id string) error
}

// NewForumService creates a new forum service.
func NewForumService(postRepo repository.ForumPostRepository, commentRepo repository.CommentRepository, log *logger.Logger) ForumService {
	return &forumService{postRepo: postRepo, commentRepo: commentRepo, logger: log}
}

type forumService struct {
	postRepo    repository.ForumPostRepository
	commentRepo repository.CommentRepository
	logger      *logger.Logger
}

// GetPosts lists posts newest first.
func (s *forumService) GetPosts(ctx context.Context, skip, limit int) ([]entity.ForumPost, error) {
	posts, err := s.postRepo.Find(ctx, skip, limit)
	if err != nil {
		s.logger.Error("Failed to list posts", logger.ErrorField(err))
		return nil, err
	}
	return posts, nil
}

// GetPost retrieves a single post.
func (s *forumService) GetPost(ctx context.Context, id string) (*entity.ForumPost, error) {
	return s.postRepo.FindByID(ctx, id)
}

// CreatePost inserts a new thread authored by the given user. The author's
// username is denormalized onto the post for display.
func (s *forumService) CreatePost(ctx context.Context, author *entity.User, title, content string, stocks []string) (*entity.ForumPost, error) {
	if stocks == nil {
		stocks = []string{}
	}
	post := &entity.ForumPost{
		UserID:   author.ID,
		Username: author.Username,
		Title:    title,
		Content:  content,
		Stocks:   stocks,
		Comments: []string{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error("Failed to create post", logger.ErrorField(err), logger.Field("username", author.Username))
		return nil, err
	}
	s.logger.Info("Forum post created", logger.Field("post_id", post.ID), logger.Field("username", author.Username))
	return post, nil
}

// AddComment creates a comment on an existing post and appends its id to the
// post's ordered comment list. The two writes are separate; the listing reads
// the comments table, so an orphaned id append is not load-bearing.
func (s *forumService) AddComment(ctx context.Context, author *entity.User, postID, content string) (*entity.Comment, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		PostID:   postID,
		UserID:   author.ID,
		Username: author.Username,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to create comment", logger.ErrorField(err), logger.Field("post_id", postID))
		return nil, err
	}
	if err := s.postRepo.AppendComment(ctx, postID, comment.ID); err != nil {
		s.logger.Error("Failed to append comment id to post", logger.ErrorField(err), logger.Field("post_id", postID))
		return nil, err
	}
	return comment, nil
}

// GetComments lists a post's comments in creation order.
func (s *forumService) GetComments(ctx context.Context, postID string) ([]entity.Comment, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByPostID(ctx, postID)
}

// UpvotePost increments the post's upvote counter.
func (s *forumService) UpvotePost(ctx context.Context, id string) error {
	return s.postRepo.Upvote(ctx, id)
}
