package http

import (
	"errors"
	"net/http"

	"stock-impact-scanner/internal/server/dto"
	"stock-impact-scanner/pkg/apperrors"

	"github.com/labstack/echo/v4"
)

// writeError maps the error taxonomy onto HTTP statuses. Unrecognized errors
// never leak their text to the client.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrAuth):
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUpstream):
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}
