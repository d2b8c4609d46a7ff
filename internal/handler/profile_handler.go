package handler

import (
	"net/http"

	"github.com/AntonioEsper/MarketLens/internal/middleware"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get GET /api/profile
func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.profileService.Get(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update PUT /api/profile
func (h *ProfileHandler) Update(c echo.Context) error {
	var req service.ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	profile, err := h.profileService.Update(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// RegisterRoutes 注册路由
func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/profile", h.Get)
	g.PUT("/profile", h.Update)
}
