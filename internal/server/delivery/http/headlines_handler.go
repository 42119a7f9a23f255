package http

import (
	"net/http"

	"stock-impact-scanner/internal/server/dto"
	"stock-impact-scanner/internal/server/service"
	"stock-impact-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HeadlinesHandler proxies the upstream headlines API and serves mock quotes.
type HeadlinesHandler struct {
	headlinesService service.HeadlinesService
	logger           *logger.Logger
}

// NewHeadlinesHandler creates a new HeadlinesHandler.
func NewHeadlinesHandler(headlinesService service.HeadlinesService, logger *logger.Logger) *HeadlinesHandler {
	return &HeadlinesHandler{headlinesService: headlinesService, logger: logger}
}

// RegisterRoutes registers the proxy routes on the API group.
func (h *HeadlinesHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/newsapi/top-headlines", h.TopHeadlines)
	g.GET("/newsapi/everything", h.Everything)
	g.GET("/stock-quote/:symbol", h.StockQuote)
}

// TopHeadlines godoc
// @Summary Proxy the upstream top-headlines feed
// @Tags newsapi
// @Produce json
// @Param category query string false "Headline category" default(business)
// @Param country query string false "Country code" default(us)
// @Success 200 {object} object
// @Failure 502 {object} dto.ErrorResponse
// @Router /newsapi/top-headlines [get]
func (h *HeadlinesHandler) TopHeadlines(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "" {
		category = "business"
	}
	country := c.QueryParam("country")
	if country == "" {
		country = "us"
	}

	body, err := h.headlinesService.TopHeadlines(c.Request().Context(), category, country)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// Everything godoc
// @Summary Proxy the upstream everything search
// @Tags newsapi
// @Produce json
// @Param q query string true "Search query"
// @Param sortBy query string false "Sort order" default(publishedAt)
// @Param language query string false "Language code" default(en)
// @Success 200 {object} object
// @Failure 502 {object} dto.ErrorResponse
// @Router /newsapi/everything [get]
func (h *HeadlinesHandler) Everything(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "q is required"})
	}
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = "publishedAt"
	}
	language := c.QueryParam("language")
	if language == "" {
		language = "en"
	}

	body, err := h.headlinesService.Everything(c.Request().Context(), query, sortBy, language)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// StockQuote godoc
// @Summary Get a mock quote for a symbol
// @Tags newsapi
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} dto.StockQuote
// @Router /stock-quote/{symbol} [get]
func (h *HeadlinesHandler) StockQuote(c echo.Context) error {
	return c.JSON(http.StatusOK, h.headlinesService.QuoteStock(c.Param("symbol")))
}
