package internal

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestErrorHandlerStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"invalid token", xe.ErrInvalidToken, http.StatusUnauthorized},
		{"wrapped csv error", fmt.Errorf("%w: line 3: bad", xe.ErrInvalidCSV), http.StatusBadRequest},
		{"job running", xe.ErrJobRunning, http.StatusConflict},
		{"echo error", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too large"), http.StatusRequestEntityTooLarge},
		{"unexpected", fmt.Errorf("disk full"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/x", nil), rec)
			handler := WithErrorHandler(zap.NewNop())(func(c echo.Context) error { return tc.err })
			assert.NoError(t, handler(c))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
