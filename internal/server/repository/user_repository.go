package repository

import (
	"context"
	"errors"
	"fmt"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/pkg/apperrors"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	AddFavoriteStock(ctx context.Context, userID, symbol string) (bool, error)
	RemoveFavoriteStock(ctx context.Context, userID, symbol string) (bool, error)
}

// NewUserRepository creates a new GORM-based user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *gorm.DB
}

// Create inserts a new user. The unique indexes on username and email are the
// authority on duplicates; a violation surfaces as ErrConflict.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("username or email: %w", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// FindByID retrieves a user by id.
func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves a user by username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", username, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// AddFavoriteStock appends the symbol to the user's favorites only when it is
// absent, in a single atomic statement. Returns false when the symbol was
// already present.
func (r *userRepository) AddFavoriteStock(ctx context.Context, userID, symbol string) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE users SET favorite_stocks = array_append(favorite_stocks, ?)
		 WHERE id = ? AND NOT (? = ANY(favorite_stocks))`,
		symbol, userID, symbol,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemoveFavoriteStock removes the symbol from the user's favorites. Returns
// false when the symbol was not present.
func (r *userRepository) RemoveFavoriteStock(ctx context.Context, userID, symbol string) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE users SET favorite_stocks = array_remove(favorite_stocks, ?)
		 WHERE id = ? AND ? = ANY(favorite_stocks)`,
		symbol, userID, symbol,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
