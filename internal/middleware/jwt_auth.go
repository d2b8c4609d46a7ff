package middleware

import (
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/AntonioEsper/MarketLens/pkg/nostd"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const UserIDKey = "user_id"

// JWTAuthConfig JWT认证配置
type JWTAuthConfig struct {
	AuthService *service.AuthService
	Logger      *zap.Logger
	Skipper     func(c echo.Context) bool
}

// JWTAuth JWT认证中间件，认证通过后将用户ID写入 Context
func JWTAuth(config JWTAuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper != nil && config.Skipper(c) {
				return next(c)
			}

			tokenString := nostd.GetToken(c)
			if tokenString == "" {
				config.Logger.Warn("JWT token missing",
					zap.String("path", c.Request().URL.Path),
					zap.String("remote_ip", c.RealIP()))
				return xe.ErrInvalidToken
			}

			claims, err := config.AuthService.ValidateToken(tokenString)
			if err != nil {
				config.Logger.Warn("invalid JWT token",
					zap.String("path", c.Request().URL.Path),
					zap.String("remote_ip", c.RealIP()),
					zap.Error(err))
				return xe.ErrInvalidToken
			}

			c.Set(UserIDKey, claims.Principal())

			config.Logger.Debug("JWT authenticated",
				zap.String("user_id", claims.Principal()),
				zap.String("path", c.Request().URL.Path))

			return next(c)
		}
	}
}

// UserID 当前请求的用户ID
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}
