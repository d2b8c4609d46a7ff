package handler

import (
	"net/http"

	"github.com/AntonioEsper/MarketLens/internal/middleware"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/labstack/echo/v4"
)

// PlanHandler 周计划与每日检查清单接口
type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// GetWeekly GET /api/plans/weekly/:key
func (h *PlanHandler) GetWeekly(c echo.Context) error {
	plan, err := h.planService.GetWeekly(c.Request().Context(), middleware.UserID(c), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// PutWeekly PUT /api/plans/weekly/:key
func (h *PlanHandler) PutWeekly(c echo.Context) error {
	var req service.WeeklyPlanRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	plan, err := h.planService.UpsertWeekly(c.Request().Context(), middleware.UserID(c), c.Param("key"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// GetDaily GET /api/plans/daily/:key
func (h *PlanHandler) GetDaily(c echo.Context) error {
	checklist, err := h.planService.GetDaily(c.Request().Context(), middleware.UserID(c), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checklist)
}

// PutDaily PUT /api/plans/daily/:key
func (h *PlanHandler) PutDaily(c echo.Context) error {
	var req service.DailyChecklistRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	checklist, err := h.planService.UpsertDaily(c.Request().Context(), middleware.UserID(c), c.Param("key"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checklist)
}

// RegisterRoutes 注册路由
func (h *PlanHandler) RegisterRoutes(g *echo.Group) {
	plans := g.Group("/plans")
	plans.GET("/weekly/:key", h.GetWeekly)
	plans.PUT("/weekly/:key", h.PutWeekly)
	plans.GET("/daily/:key", h.GetDaily)
	plans.PUT("/daily/:key", h.PutDaily)
}
