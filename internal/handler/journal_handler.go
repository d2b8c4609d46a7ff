package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/middleware"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 导入文件大小上限
const maxImportSize = 5 << 20

// JournalHandler 交易日志接口
type JournalHandler struct {
	logger         *zap.Logger
	journalService *service.JournalService
}

func NewJournalHandler(journalService *service.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{logger: logger, journalService: journalService}
}

// List GET /api/journal?account_id=&asset=&setup=&status=&from=&to=
func (h *JournalHandler) List(c echo.Context) error {
	var filter repo.TradeFilter
	if err := bind(c, &filter); err != nil {
		return err
	}
	trades, err := h.journalService.List(c.Request().Context(), middleware.UserID(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trades)
}

// Get GET /api/journal/:id
func (h *JournalHandler) Get(c echo.Context) error {
	trade, err := h.journalService.Get(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// Create POST /api/journal
func (h *JournalHandler) Create(c echo.Context) error {
	var req service.TradeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	trade, err := h.journalService.Create(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trade)
}

// Update PUT /api/journal/:id
func (h *JournalHandler) Update(c echo.Context) error {
	var req service.TradeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	trade, err := h.journalService.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trade)
}

// Delete DELETE /api/journal/:id
func (h *JournalHandler) Delete(c echo.Context) error {
	if err := h.journalService.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orz.Map{"message": "deleted"})
}

// RiskPreview POST /api/journal/risk 预览所选账户的风险金额
func (h *JournalHandler) RiskPreview(c echo.Context) error {
	var req struct {
		AccountIDs  []string `json:"account_ids" validate:"required,min=1"`
		RiskPercent float64  `json:"risk_percent" validate:"gte=0,lte=100"`
	}
	if err := bind(c, &req); err != nil {
		return err
	}
	risk, err := h.journalService.CalculateRisk(c.Request().Context(), middleware.UserID(c), req.AccountIDs, req.RiskPercent)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orz.Map{
		"risk_amount": risk.Amount,
		"currency":    risk.Currency,
	})
}

// Import POST /api/journal/import
// multipart 表单：file 为 CSV 文件，account_ids 为逗号分隔的默认账户
func (h *JournalHandler) Import(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: file is required", xe.ErrInvalidCSV)
	}
	if file.Size > maxImportSize {
		return fmt.Errorf("%w: file too large", xe.ErrInvalidCSV)
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImportSize))
	if err != nil {
		return err
	}

	var accountIDs []string
	for _, id := range strings.Split(c.FormValue("account_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			accountIDs = append(accountIDs, id)
		}
	}

	result, err := h.journalService.ImportCSV(c.Request().Context(), middleware.UserID(c), accountIDs, data)
	if err != nil {
		h.logger.Warn("csv import rejected", zap.String("file", file.Filename), zap.Error(err))
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Export GET /api/journal/export
func (h *JournalHandler) Export(c echo.Context) error {
	var filter repo.TradeFilter
	if err := bind(c, &filter); err != nil {
		return err
	}
	data, err := h.journalService.ExportCSV(c.Request().Context(), middleware.UserID(c), filter)
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("journal-%s.csv", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// RegisterRoutes 注册路由
func (h *JournalHandler) RegisterRoutes(g *echo.Group) {
	journal := g.Group("/journal")
	journal.GET("", h.List)
	journal.POST("", h.Create)
	journal.POST("/risk", h.RiskPreview)
	journal.POST("/import", h.Import)
	journal.GET("/export", h.Export)
	journal.GET("/:id", h.Get)
	journal.PUT("/:id", h.Update)
	journal.DELETE("/:id", h.Delete)
}
