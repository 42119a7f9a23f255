package http

import (
	"net/http"

	"stock-impact-scanner/internal/server/service"
	"stock-impact-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles stock listing routes.
type StockHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the stock routes on the API group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stocks", h.GetStocks)
	g.GET("/stocks/:key", h.GetStock)
	g.GET("/stocks/:key/news", h.GetStockNews)
}

// GetStocks godoc
// @Summary List stocks
// @Tags stocks
// @Produce json
// @Param limit query int false "Maximum items" default(100)
// @Param exchange query string false "Exact exchange filter"
// @Success 200 {array} entity.Stock
// @Router /stocks [get]
func (h *StockHandler) GetStocks(c echo.Context) error {
	limit := queryInt(c, "limit", 100)
	exchange := c.QueryParam("exchange")

	stocks, err := h.stockService.GetStocks(c.Request().Context(), exchange, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stocks)
}

// GetStock godoc
// @Summary Get a stock by id or ticker symbol
// @Tags stocks
// @Produce json
// @Param key path string true "Stock id or ticker symbol"
// @Success 200 {object} entity.Stock
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/{key} [get]
func (h *StockHandler) GetStock(c echo.Context) error {
	stock, err := h.stockService.GetStock(c.Request().Context(), c.Param("key"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stock)
}

// GetStockNews godoc
// @Summary List news affecting a stock
// @Tags stocks
// @Produce json
// @Param key path string true "Stock id or ticker symbol"
// @Param limit query int false "Maximum items" default(10)
// @Success 200 {array} entity.NewsItem
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/{key}/news [get]
func (h *StockHandler) GetStockNews(c echo.Context) error {
	limit := queryInt(c, "limit", 10)

	items, err := h.stockService.GetStockNews(c.Request().Context(), c.Param("key"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
