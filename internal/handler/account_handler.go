package handler

import (
	"net/http"

	"github.com/AntonioEsper/MarketLens/internal/middleware"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
)

// AccountHandler 交易账户接口
type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List GET /api/accounts
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accountService.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Get GET /api/accounts/:id
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.accountService.Get(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Create POST /api/accounts
func (h *AccountHandler) Create(c echo.Context) error {
	var req service.AccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	account, err := h.accountService.Create(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

// Update PUT /api/accounts/:id
func (h *AccountHandler) Update(c echo.Context) error {
	var req service.AccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	account, err := h.accountService.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete DELETE /api/accounts/:id
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.accountService.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orz.Map{"message": "deleted"})
}

// RegisterRoutes 注册路由
func (h *AccountHandler) RegisterRoutes(g *echo.Group) {
	accounts := g.Group("/accounts")
	accounts.GET("", h.List)
	accounts.POST("", h.Create)
	accounts.GET("/:id", h.Get)
	accounts.PUT("/:id", h.Update)
	accounts.DELETE("/:id", h.Delete)
}
