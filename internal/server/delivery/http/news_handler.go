package http

import (
	"net/http"
	"strconv"

	"stock-impact-scanner/internal/server/service"
	"stock-impact-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NewsHandler handles news listing and impact routes.
type NewsHandler struct {
	newsService service.NewsService
	logger      *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{newsService: newsService, logger: logger}
}

// RegisterRoutes registers the news routes on the API group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/news", h.GetNews)
	g.GET("/news/:id", h.GetNewsItem)
	g.GET("/news/:id/impacts", h.GetNewsImpacts)
}

// GetNews godoc
// @Summary List news items
// @Tags news
// @Produce json
// @Param limit query int false "Maximum items" default(10)
// @Param skip query int false "Offset" default(0)
// @Param category query string false "Exact category filter"
// @Success 200 {array} entity.NewsItem
// @Router /news [get]
func (h *NewsHandler) GetNews(c echo.Context) error {
	limit := queryInt(c, "limit", 10)
	skip := queryInt(c, "skip", 0)
	category := c.QueryParam("category")

	items, err := h.newsService.GetNews(c.Request().Context(), category, skip, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetNewsItem godoc
// @Summary Get a news item
// @Tags news
// @Produce json
// @Param id path string true "News item id"
// @Success 200 {object} entity.NewsItem
// @Failure 404 {object} dto.ErrorResponse
// @Router /news/{id} [get]
func (h *NewsHandler) GetNewsItem(c echo.Context) error {
	item, err := h.newsService.GetNewsItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// GetNewsImpacts godoc
// @Summary List impact annotations for a news item
// @Tags news
// @Produce json
// @Param id path string true "News item id"
// @Success 200 {array} entity.StockImpact
// @Failure 404 {object} dto.ErrorResponse
// @Router /news/{id}/impacts [get]
func (h *NewsHandler) GetNewsImpacts(c echo.Context) error {
	impacts, err := h.newsService.GetNewsImpacts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, impacts)
}

// queryInt parses an integer query parameter, falling back to a default on
// absence or garbage.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
