package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{UnavailableError("queue full", nil), http.StatusServiceUnavailable},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{&Error{Type: "mystery"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("EAGAIN")
	err := UnavailableError("channel full", cause)

	assert.Equal(t, "unavailable: channel full: EAGAIN", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal: boom", InternalError("boom", nil).Error())
}

func TestWithField(t *testing.T) {
	err := UnavailableError("renderer queue is full", nil).WithField("check", "ipc_queue")
	assert.Equal(t, "ipc_queue", err.Context["check"])

	bare := &Error{Type: TypeInternal}
	bare.WithField("k", 1)
	assert.Equal(t, 1, bare.Context["k"])
}

func TestToResponse_OmitsContext(t *testing.T) {
	resp := InternalError("render failed", errors.New("template")).WithField("path", "/").ToResponse()
	assert.Equal(t, ErrorResponse{Error: "render failed", Type: TypeInternal}, resp)
}

func TestAsStructuredError(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))

	original := UnavailableError("renderer queue unavailable", nil)
	wrapped := fmt.Errorf("readiness: %w", original)
	require.Same(t, original, AsStructuredError(wrapped))

	plain := AsStructuredError(errors.New("disk on fire"))
	assert.Equal(t, TypeInternal, plain.Type)
	assert.Equal(t, "internal server error", plain.Message)
}
