package handler

import (
	"net/http"

	"github.com/AntonioEsper/MarketLens/internal/middleware"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
)

// SetupHandler 策略手册接口
type SetupHandler struct {
	setupService *service.SetupService
}

func NewSetupHandler(setupService *service.SetupService) *SetupHandler {
	return &SetupHandler{setupService: setupService}
}

// List GET /api/setups
func (h *SetupHandler) List(c echo.Context) error {
	setups, err := h.setupService.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setups)
}

// Create POST /api/setups
func (h *SetupHandler) Create(c echo.Context) error {
	var req service.SetupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	setup, err := h.setupService.Create(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, setup)
}

// Update PUT /api/setups/:id
func (h *SetupHandler) Update(c echo.Context) error {
	var req service.SetupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	setup, err := h.setupService.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setup)
}

// Delete DELETE /api/setups/:id
func (h *SetupHandler) Delete(c echo.Context) error {
	if err := h.setupService.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orz.Map{"message": "deleted"})
}

// RegisterRoutes 注册路由
func (h *SetupHandler) RegisterRoutes(g *echo.Group) {
	setups := g.Group("/setups")
	setups.GET("", h.List)
	setups.POST("", h.Create)
	setups.PUT("/:id", h.Update)
	setups.DELETE("/:id", h.Delete)
}
