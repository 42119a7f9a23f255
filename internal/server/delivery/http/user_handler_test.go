package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/internal/server/dto"
	"stock-impact-scanner/pkg/apperrors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthService keeps users in memory and issues the username itself as the
// bearer token, which is enough to drive the middleware and handlers.
type stubAuthService struct {
	users map[string]*entity.User // username -> user
}

func newStubAuthService() *stubAuthService {
	return &stubAuthService{users: map[string]*entity.User{}}
}

func (s *stubAuthService) Register(_ context.Context, username, email, password string) (*entity.User, error) {
	if _, ok := s.users[username]; ok {
		return nil, fmt.Errorf("username or email: %w", apperrors.ErrConflict)
	}
	user := &entity.User{
		ID:             "user-" + username,
		Username:       username,
		Email:          email,
		HashedPassword: "hashed:" + password,
		FavoriteStocks: []string{},
	}
	s.users[username] = user
	return user, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, username, password string) (*entity.User, error) {
	user, ok := s.users[username]
	if !ok || user.HashedPassword != "hashed:"+password {
		return nil, fmt.Errorf("incorrect username or password: %w", apperrors.ErrAuth)
	}
	return user, nil
}

func (s *stubAuthService) IssueToken(username string) (string, error) {
	return "token-" + username, nil
}

func (s *stubAuthService) ValidateToken(_ context.Context, token string) (*entity.User, error) {
	username, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrAuth)
	}
	user, found := s.users[username]
	if !found {
		return nil, fmt.Errorf("unknown token subject: %w", apperrors.ErrAuth)
	}
	return user, nil
}

// stubUserService echoes the mutation it was asked for.
type stubUserService struct{}

func (stubUserService) AddFavoriteStock(_ context.Context, _ *entity.User, key string) (string, error) {
	if key == "NOPE" {
		return "", fmt.Errorf("stock %s: %w", key, apperrors.ErrNotFound)
	}
	return fmt.Sprintf("Added %s to favorites", key), nil
}

func (stubUserService) RemoveFavoriteStock(_ context.Context, _ *entity.User, key string) (string, error) {
	return fmt.Sprintf("Removed %s from favorites", key), nil
}

func newUserTestServer(t *testing.T) (*echo.Echo, *stubAuthService) {
	t.Helper()
	auth := newStubAuthService()

	e := echo.New()
	g := e.Group("/api")
	NewUserHandler(auth, stubUserService{}, testLogger()).RegisterRoutes(g, BearerAuth(auth))
	return e, auth
}

func TestCreateUser(t *testing.T) {
	e, _ := newUserTestServer(t)

	body := `{"username":"john_doe","email":"john@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var user entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "john_doe", user.Username)
	assert.NotContains(t, rec.Body.String(), "password123")

	// Registering the same username again conflicts.
	req = httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserMissingFields(t *testing.T) {
	e, _ := newUserTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func registerAndLogin(t *testing.T, e *echo.Echo) string {
	t.Helper()

	body := `{"username":"jane_smith","email":"jane@example.com","password":"password456"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	form := url.Values{"username": {"jane_smith"}, "password": {"password456"}}
	req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var token dto.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func TestLoginWrongPassword(t *testing.T) {
	e, _ := newUserTestServer(t)
	registerAndLogin(t, e)

	form := url.Values{"username": {"jane_smith"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestMeRequiresBearerToken(t *testing.T) {
	e, _ := newUserTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/users/me")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer bogus")
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.Equal(t, "Bearer", rec2.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestMeReturnsCurrentUser(t *testing.T) {
	e, _ := newUserTestServer(t)
	token := registerAndLogin(t, e)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var user entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "jane_smith", user.Username)
}

func TestFavoriteStockRoutes(t *testing.T) {
	e, _ := newUserTestServer(t)
	token := registerAndLogin(t, e)

	req := httptest.NewRequest(http.MethodPost, "/api/users/me/favorite-stocks/AAPL", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var msg dto.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Added AAPL to favorites", msg.Message)

	req = httptest.NewRequest(http.MethodPost, "/api/users/me/favorite-stocks/NOPE", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/users/me/favorite-stocks/AAPL", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Removed AAPL from favorites", msg.Message)
}
