package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuth(secret, issuer string) *service.AuthService {
	conf := &config.Config{Auth: config.AuthConf{JWTSecret: secret, Issuer: issuer}}
	return service.NewAuthService(conf, zap.NewNop())
}

func serve(t *testing.T, auth *service.AuthService, header string) (string, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/journal", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen string
	handler := JWTAuth(JWTAuthConfig{AuthService: auth, Logger: zap.NewNop()})(func(c echo.Context) error {
		seen = UserID(c)
		return nil
	})
	return seen, handler(c)
}

func TestJWTAuth(t *testing.T) {
	auth := newAuth("secret", "https://id.example.com")
	token, err := auth.IssueToken("user-1", time.Hour)
	require.NoError(t, err)

	user, err := serve(t, auth, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user)

	_, err = serve(t, auth, "")
	assert.ErrorIs(t, err, xe.ErrInvalidToken)

	_, err = serve(t, auth, "Bearer not-a-token")
	assert.ErrorIs(t, err, xe.ErrInvalidToken)
}

func TestJWTAuth_RejectsForeignTokens(t *testing.T) {
	auth := newAuth("secret", "https://id.example.com")

	other, err := newAuth("other-secret", "https://id.example.com").IssueToken("user-1", time.Hour)
	require.NoError(t, err)
	_, err = serve(t, auth, "Bearer "+other)
	assert.ErrorIs(t, err, xe.ErrInvalidToken)

	wrongIssuer, err := newAuth("secret", "https://evil.example.com").IssueToken("user-1", time.Hour)
	require.NoError(t, err)
	_, err = serve(t, auth, "Bearer "+wrongIssuer)
	assert.ErrorIs(t, err, xe.ErrInvalidToken)

	expired, err := auth.IssueToken("user-1", -time.Minute)
	require.NoError(t, err)
	_, err = serve(t, auth, "Bearer "+expired)
	assert.ErrorIs(t, err, xe.ErrInvalidToken)
}
