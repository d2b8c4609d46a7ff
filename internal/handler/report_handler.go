package handler

import (
	"fmt"
	"net/http"

	"github.com/AntonioEsper/MarketLens/internal/middleware"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/labstack/echo/v4"
)

// ReportHandler 业绩报表接口
type ReportHandler struct {
	reportService *service.ReportService
	reviewService *service.ReviewService
}

func NewReportHandler(reportService *service.ReportService, reviewService *service.ReviewService) *ReportHandler {
	return &ReportHandler{reportService: reportService, reviewService: reviewService}
}

// Dashboard GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(c echo.Context) error {
	var filter repo.TradeFilter
	if err := bind(c, &filter); err != nil {
		return err
	}
	report, err := h.reportService.Dashboard(c.Request().Context(), middleware.UserID(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Review POST /api/reports/review?horizon=&language= 大模型点评，筛选条件与 Dashboard 相同
func (h *ReportHandler) Review(c echo.Context) error {
	var req service.ReviewRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return fmt.Errorf("%w: %v", xe.ErrInvalidParams, err)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", xe.ErrInvalidParams, err)
	}
	review, err := h.reviewService.Review(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// RegisterRoutes 注册路由
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	reports := g.Group("/reports")
	reports.GET("/dashboard", h.Dashboard)
	reports.POST("/review", h.Review)
}
