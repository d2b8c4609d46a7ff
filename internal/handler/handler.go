package handler

import (
	"fmt"

	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/labstack/echo/v4"
)

// bind 绑定并校验请求参数
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: %v", xe.ErrInvalidParams, err)
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", xe.ErrInvalidParams, err)
	}
	return nil
}
