package service

import (
	"errors"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService 校验身份提供方签发的 HS256 令牌
type AuthService struct {
	logger    *zap.Logger
	jwtSecret string
	issuer    string
}

// NewAuthService 未配置密钥时使用随机密钥，此时所有外部令牌都无法通过校验
func NewAuthService(conf *config.Config, logger *zap.Logger) *AuthService {
	secret := conf.Auth.JWTSecret
	if secret == "" {
		logger.Warn("jwt secret not configured, using a random secret")
		secret = uuid.NewString()
	}
	return &AuthService{
		logger:    logger,
		jwtSecret: secret,
		issuer:    conf.Auth.Issuer,
	}
}

// JWTClaims JWT载荷，用户ID优先取 user_id，其次取 sub
type JWTClaims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Subject 令牌对应的用户ID
func (c *JWTClaims) Principal() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}

// ValidateToken 验证JWT Token
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, options...)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.Principal() != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// IssueToken 签发令牌，供本地调试和命令行使用
func (s *AuthService) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
