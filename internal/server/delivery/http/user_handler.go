package http

import (
	"net/http"

	"stock-impact-scanner/internal/server/dto"
	"stock-impact-scanner/internal/server/service"
	"stock-impact-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UserHandler handles registration, login and favorites routes.
type UserHandler struct {
	authService service.AuthService
	userService service.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService service.AuthService, userService service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{authService: authService, userService: userService, logger: logger}
}

// RegisterRoutes registers the user routes on the API group.
func (h *UserHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/users", h.CreateUser)
	g.POST("/login", h.Login)

	me := g.Group("/users/me", auth)
	me.GET("", h.Me)
	me.POST("/favorite-stocks/:key", h.AddFavoriteStock)
	me.DELETE("/favorite-stocks/:key", h.RemoveFavoriteStock)
}

// CreateUser godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "User to register"
// @Success 200 {object} entity.User
// @Failure 400 {object} dto.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "username, email and password are required"})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	user, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	token, err := h.authService.IssueToken(user.Username)
	if err != nil {
		h.logger.Error("Failed to issue token", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} entity.User
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// AddFavoriteStock godoc
// @Summary Add a stock to the current user's favorites
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param key path string true "Stock id or ticker symbol"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/me/favorite-stocks/{key} [post]
func (h *UserHandler) AddFavoriteStock(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	message, err := h.userService.AddFavoriteStock(c.Request().Context(), user, c.Param("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// RemoveFavoriteStock godoc
// @Summary Remove a stock from the current user's favorites
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param key path string true "Stock id or ticker symbol"
// @Success 200 {object} dto.MessageResponse
// @Router /users/me/favorite-stocks/{key} [delete]
func (h *UserHandler) RemoveFavoriteStock(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	message, err := h.userService.RemoveFavoriteStock(c.Request().Context(), user, c.Param("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}
