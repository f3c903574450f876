package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Use(Middleware())
	e.GET("/test", handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_NoError(t *testing.T) {
	rec := performRequest(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMiddleware_StructuredErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   ErrorType
	}{
		{"validation", ValidationError("bad input"), http.StatusBadRequest, TypeValidation},
		{"not found", NotFoundError("missing"), http.StatusNotFound, TypeNotFound},
		{"external", ExternalError("store down", errors.New("timeout")), http.StatusBadGateway, TypeExternal},
		{"plain error wrapped as internal", errors.New("boom"), http.StatusInternalServerError, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performRequest(t, func(c echo.Context) error {
				return tt.err
			})

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantType, resp.Type)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestMiddleware_ContextFieldsInResponse(t *testing.T) {
	rec := performRequest(t, func(c echo.Context) error {
		return NotFoundError("no recent analysis result").WithField("user_id", "u-123")
	})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u-123", resp.Context["user_id"])
}

func TestMiddleware_EchoHTTPErrorPassesThrough(t *testing.T) {
	rec := performRequest(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
