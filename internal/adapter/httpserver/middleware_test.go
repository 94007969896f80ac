package httpserver

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewpulse/internal/platform/correlation"
	apperrors "reviewpulse/internal/platform/errors"
)

func TestCorrelationMiddleware_AttachesID(t *testing.T) {
	c, _ := newJSONContext(t, http.MethodGet, "/", "")

	var seen string
	handler := correlationMiddleware(func(c echo.Context) error {
		id, ok := correlation.ID(c.Request().Context())
		require.True(t, ok)
		seen = id
		return nil
	})

	require.NoError(t, handler(c))
	assert.Len(t, seen, 8)
}

func TestErrorHandlingMiddleware_StructuredError(t *testing.T) {
	c, rec := newJSONContext(t, http.MethodGet, "/api/reviews", "")

	handler := ErrorHandlingMiddleware()(func(echo.Context) error {
		return apperrors.ValidationError("bad input").WithField("rating", 9)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"validation"`)
	assert.Contains(t, rec.Body.String(), `"bad input"`)
}

func TestErrorHandlingMiddleware_InternalHidesDetail(t *testing.T) {
	c, rec := newJSONContext(t, http.MethodGet, "/api/analyze", "")

	handler := ErrorHandlingMiddleware()(func(echo.Context) error {
		return apperrors.InternalError("db exploded", assert.AnError).WithField("query", "secret")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestErrorHandlingMiddleware_PassesEchoHTTPErrors(t *testing.T) {
	c, _ := newJSONContext(t, http.MethodGet, "/missing", "")

	httpErr := echo.NewHTTPError(http.StatusNotFound, "route not found")
	handler := ErrorHandlingMiddleware()(func(echo.Context) error {
		return httpErr
	})

	err := handler(c)
	assert.Equal(t, httpErr, err)
}

func TestErrorHandlingMiddleware_NilError(t *testing.T) {
	c, rec := newJSONContext(t, http.MethodGet, "/", "")

	handler := ErrorHandlingMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestErrorHandlingMiddleware_UnknownErrorBecomesInternal(t *testing.T) {
	c, rec := newJSONContext(t, http.MethodGet, "/", "")

	handler := ErrorHandlingMiddleware()(func(echo.Context) error {
		return assert.AnError
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"internal"`)
}
