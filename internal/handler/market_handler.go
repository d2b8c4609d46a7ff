package handler

import (
	"net/http"
	"net/url"

	"github.com/AntonioEsper/MarketLens/internal/catalog"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/labstack/echo/v4"
)

// MarketHandler 市场背景接口
type MarketHandler struct {
	marketService *service.MarketService
	catalog       *catalog.Catalog
}

func NewMarketHandler(marketService *service.MarketService, cat *catalog.Catalog) *MarketHandler {
	return &MarketHandler{marketService: marketService, catalog: cat}
}

// Assets GET /api/market/assets
func (h *MarketHandler) Assets(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Tradable())
}

// Score GET /api/market/score/:asset
// 品种名称可能包含斜杠（EUR/USD），使用通配路由
func (h *MarketHandler) Score(c echo.Context) error {
	asset, err := url.PathUnescape(c.Param("*"))
	if err != nil || asset == "" {
		return xe.ErrInvalidParams
	}
	result, err := h.marketService.ScoreAsset(c.Request().Context(), asset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Scanner GET /api/market/scanner?category=
func (h *MarketHandler) Scanner(c echo.Context) error {
	results, err := h.marketService.Scanner(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// RiskGauge GET /api/market/risk-gauge
func (h *MarketHandler) RiskGauge(c echo.Context) error {
	return c.JSON(http.StatusOK, h.marketService.RiskGauge(c.Request().Context()))
}

// Heatmap GET /api/market/heatmap/:currency
func (h *MarketHandler) Heatmap(c echo.Context) error {
	rows, err := h.marketService.Heatmap(c.Request().Context(), c.Param("currency"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// RegisterRoutes 注册路由
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	market := g.Group("/market")
	market.GET("/assets", h.Assets)
	market.GET("/score/*", h.Score)
	market.GET("/scanner", h.Scanner)
	market.GET("/risk-gauge", h.RiskGauge)
	market.GET("/heatmap/:currency", h.Heatmap)
}
