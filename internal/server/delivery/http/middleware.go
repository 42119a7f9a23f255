package http

import (
	"fmt"
	"net/http"
	"strings"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/internal/server/dto"
	"stock-impact-scanner/internal/server/service"

	"github.com/labstack/echo/v4"
)

const userContextKey = "current_user"

// BearerAuth validates the Authorization header and stores the resolved user
// on the request context. Missing or invalid tokens get a 401 with a Bearer
// challenge.
func BearerAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "could not validate credentials"})
			}

			user, err := authService.ValidateToken(c.Request().Context(), token)
			if err != nil {
				return writeError(c, err)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// currentUser returns the user placed on the context by BearerAuth.
func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := c.Get(userContextKey).(*entity.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("no authenticated user on request context")
	}
	return user, nil
}
