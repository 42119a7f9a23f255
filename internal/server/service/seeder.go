package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder populates empty collections with the demo dataset. Seeding is
// idempotent: each collection is only filled when empty, and inserts are
// conflict-tolerant so concurrent startups cannot double-seed.
type Seeder struct {
	db          *gorm.DB
	stockRepo   repository.StockRepository
	newsRepo    repository.NewsRepository
	impactRepo  repository.StockImpactRepository
	userRepo    repository.UserRepository
	postRepo    repository.ForumPostRepository
	commentRepo repository.CommentRepository
	analyzer    ImpactAnalyzer
	logger      *logger.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(
	db *gorm.DB,
	stockRepo repository.StockRepository,
	newsRepo repository.NewsRepository,
	impactRepo repository.StockImpactRepository,
	userRepo repository.UserRepository,
	postRepo repository.ForumPostRepository,
	commentRepo repository.CommentRepository,
	analyzer ImpactAnalyzer,
	log *logger.Logger,
) *Seeder {
	return &Seeder{
		db:          db,
		stockRepo:   stockRepo,
		newsRepo:    newsRepo,
		impactRepo:  impactRepo,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		analyzer:    analyzer,
		logger:      log,
	}
}

// Seed fills empty collections. Errors are returned for the caller to log;
// startup continues degraded either way.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedStocks(ctx); err != nil {
		return fmt.Errorf("seeding stocks: %w", err)
	}
	if err := s.seedNewsSources(ctx); err != nil {
		return fmt.Errorf("seeding news sources: %w", err)
	}
	if err := s.seedNews(ctx); err != nil {
		return fmt.Errorf("seeding news: %w", err)
	}
	if err := s.seedUsers(ctx); err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	if err := s.seedForum(ctx); err != nil {
		return fmt.Errorf("seeding forum: %w", err)
	}
	s.logger.Info("Database seeding completed")
	return nil
}

func (s *Seeder) seedStocks(ctx context.Context) error {
	count, err := s.stockRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	s.logger.Info("Seeding stocks collection")
	for i := range seedStocks {
		stock := seedStocks[i]
		if err := s.stockRepo.CreateIgnoreConflict(ctx, &stock); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedNewsSources(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&entity.NewsSource{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	s.logger.Info("Seeding news sources collection")
	for i := range seedNewsSources {
		source := seedNewsSources[i]
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&source).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedNews(ctx context.Context) error {
	count, err := s.newsRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	s.logger.Info("Seeding news collection")

	for _, item := range seedNews(time.Now().UTC()) {
		news := item
		news.HashIdentifier = hashIdentifier(news.URL)
		inserted, err := s.newsRepo.CreateIgnoreConflict(ctx, &news)
		if err != nil {
			return err
		}
		if !inserted {
			continue
		}

		// Impact rows only exist for affected symbols we actually track.
		for _, symbol := range news.AffectedStocks {
			stock, err := s.stockRepo.FindByIDOrSymbol(ctx, symbol)
			if err != nil {
				continue
			}
			score, explanation := s.analyzer.Annotate(&news, stock)
			impact := &entity.StockImpact{
				NewsID:      news.ID,
				StockID:     stock.ID,
				ImpactScore: score,
				Explanation: explanation,
			}
			if err := s.impactRepo.Create(ctx, impact); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	s.logger.Info("Seeding users collection")
	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &entity.User{
			Username:       u.Username,
			Email:          u.Email,
			HashedPassword: string(hash),
			FavoriteStocks: u.FavoriteStocks,
			FavoriteNews:   []string{},
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedForum(ctx context.Context) error {
	count, err := s.postRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	s.logger.Info("Seeding forum collections")

	for i, p := range seedPosts {
		author, err := s.userRepo.FindByUsername(ctx, p.Username)
		if err != nil {
			continue
		}
		post := &entity.ForumPost{
			UserID:   author.ID,
			Username: author.Username,
			Title:    p.Title,
			Content:  p.Content,
			Stocks:   p.Stocks,
			Upvotes:  p.Upvotes,
			Comments: []string{},
		}
		if err := s.postRepo.Create(ctx, post); err != nil {
			return err
		}

		if i >= len(seedComments) {
			continue
		}
		c := seedComments[i]
		commenter, err := s.userRepo.FindByUsername(ctx, c.Username)
		if err != nil {
			continue
		}
		comment := &entity.Comment{
			PostID:   post.ID,
			UserID:   commenter.ID,
			Username: commenter.Username,
			Content:  c.Content,
			Upvotes:  c.Upvotes,
		}
		if err := s.commentRepo.Create(ctx, comment); err != nil {
			return err
		}
		if err := s.postRepo.AppendComment(ctx, post.ID, comment.ID); err != nil {
			return err
		}
	}
	return nil
}

func hashIdentifier(link string) string {
	sum := md5.Sum([]byte(link))
	return hex.EncodeToString(sum[:])
}
