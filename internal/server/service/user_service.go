package service

import (
	"context"
	"errors"
	"fmt"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/pkg/apperrors"
	"stock-impact-scanner/pkg/logger"
)

// UserService handles per-user favorites mutation.
type UserService interface {
	AddFavoriteStock(ctx context.Context, user *entity.User, stockKey string) (string, error)
	RemoveFavoriteStock(ctx context.Context, user *entity.User, stockKey string) (string, error)
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, stockRepo repository.StockRepository, log *logger.Logger) UserService {
	return &userService{userRepo: userRepo, stockRepo: stockRepo, logger: log}
}

type userService struct {
	userRepo  repository.UserRepository
	stockRepo repository.StockRepository
	logger    *logger.Logger
}

// AddFavoriteStock resolves the key to a stock (id first, then symbol) and
// adds its symbol to the user's favorites with set semantics. Repeating the
// call is a no-op reported distinctly from an add.
func (s *userService) AddFavoriteStock(ctx context.Context, user *entity.User, stockKey string) (string, error) {
	stock, err := s.stockRepo.FindByIDOrSymbol(ctx, stockKey)
	if err != nil {
		return "", err
	}

	added, err := s.userRepo.AddFavoriteStock(ctx, user.ID, stock.Symbol)
	if err != nil {
		s.logger.Error("Failed to add favorite stock", logger.ErrorField(err), logger.Field("username", user.Username))
		return "", err
	}
	if !added {
		return "Stock already in favorites", nil
	}
	return fmt.Sprintf("Added %s to favorites", stock.Symbol), nil
}

// RemoveFavoriteStock removes the resolved symbol from the user's favorites.
// An unknown key is treated as a raw symbol so stale favorites can always be
// cleared, even after the stock row itself is gone.
func (s *userService) RemoveFavoriteStock(ctx context.Context, user *entity.User, stockKey string) (string, error) {
	symbol := stockKey
	stock, err := s.stockRepo.FindByIDOrSymbol(ctx, stockKey)
	if err == nil {
		symbol = stock.Symbol
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	removed, err := s.userRepo.RemoveFavoriteStock(ctx, user.ID, symbol)
	if err != nil {
		s.logger.Error("Failed to remove favorite stock", logger.ErrorField(err), logger.Field("username", user.Username))
		return "", err
	}
	if !removed {
		return "Stock not in favorites", nil
	}
	return fmt.Sprintf("Removed %s from favorites", symbol), nil
}
