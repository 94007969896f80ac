package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{ScoringError("scorer failed", nil), http.StatusBadGateway},
		{ExternalError("upstream failed", nil), http.StatusBadGateway},
		{ConfigurationError("bad config", nil), http.StatusInternalServerError},
		{InternalError("boom", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.HTTPStatus(), string(tt.err.Type))
	}
}

func TestErrorString(t *testing.T) {
	plain := ValidationError("rating out of range")
	assert.Equal(t, "validation: rating out of range", plain.Error())

	withCause := ScoringError("bert failed", stderrors.New("connection refused"))
	assert.Equal(t, "scoring: bert failed: connection refused", withCause.Error())
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := InternalError("wrapper", cause)

	assert.ErrorIs(t, err, cause)
}

func TestWithField(t *testing.T) {
	err := ValidationError("bad rating").
		WithField("rating", 9).
		WithField("app", "cbe")

	assert.Equal(t, 9, err.Context["rating"])
	assert.Equal(t, "cbe", err.Context["app"])
}

func TestToResponse_ClientErrorsExposeFields(t *testing.T) {
	err := ValidationError("bad rating").WithField("rating", 9)

	resp := err.ToResponse()
	assert.Equal(t, "validation", resp.Error)
	assert.Equal(t, "bad rating", resp.Message)
	assert.Equal(t, 9, resp.Fields["rating"])
}

func TestToResponse_InternalHidesFields(t *testing.T) {
	internal := InternalError("db exploded", stderrors.New("secret detail")).
		WithField("query", "SELECT ...")
	assert.Nil(t, internal.ToResponse().Fields)

	config := ConfigurationError("bad key", nil).WithField("key", "DATABASE_URL")
	assert.Nil(t, config.ToResponse().Fields)
}

func TestAsStructuredError_PassesThrough(t *testing.T) {
	original := NotFoundError("gone")
	assert.Same(t, original, AsStructuredError(original))
}

func TestAsStructuredError_FindsWrapped(t *testing.T) {
	original := ValidationError("bad")
	wrapped := fmt.Errorf("handler: %w", original)

	assert.Same(t, original, AsStructuredError(wrapped))
}

func TestAsStructuredError_WrapsUnknown(t *testing.T) {
	cause := stderrors.New("mystery")
	structured := AsStructuredError(cause)

	require.NotNil(t, structured)
	assert.Equal(t, TypeInternal, structured.Type)
	assert.ErrorIs(t, structured, cause)
}
