package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/pkg/apperrors"
	"stock-impact-scanner/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// AuthService handles registration, credential checks and bearer tokens.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
	IssueToken(username string) (string, error)
	ValidateToken(ctx context.Context, token string) (*entity.User, error)
}

// AuthConfig carries the token-signing settings.
type AuthConfig struct {
	SecretKey  string
	TokenTTL   time.Duration
	BcryptCost int
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, cfg AuthConfig, log *logger.Logger) AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{userRepo: userRepo, cfg: cfg, logger: log}
}

type authService struct {
	userRepo repository.UserRepository
	cfg      AuthConfig
	logger   *logger.Logger
}

// Register stores a new user with a bcrypt-hashed password. Duplicate
// username or email surfaces from the store's unique indexes as ErrConflict;
// there is no racy existence pre-check.
func (s *authService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hash),
		FavoriteStocks: []string{},
		FavoriteNews:   []string{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.logger.Error("Failed to create user", logger.ErrorField(err))
		}
		return nil, err
	}

	s.logger.Info("User registered", logger.Field("username", username))
	return user, nil
}

// Authenticate verifies the username/password pair against the stored hash.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("incorrect username or password: %w", apperrors.ErrAuth)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("incorrect username or password: %w", apperrors.ErrAuth)
	}
	return user, nil
}

// IssueToken signs an HS256 token with a subject and expiry claim.
func (s *authService) IssueToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

// ValidateToken checks signature and expiry, then resolves the subject to the
// current stored user. Any failure collapses into ErrAuth.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*entity.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrAuth)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("token missing subject: %w", apperrors.ErrAuth)
	}

	user, err := s.userRepo.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown token subject: %w", apperrors.ErrAuth)
		}
		return nil, err
	}
	return user, nil
}
