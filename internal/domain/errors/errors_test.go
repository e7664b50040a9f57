package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	t.Run("wrapped error wins", func(t *testing.T) {
		err := NewAppError(http.StatusBadRequest, "bad amount", ErrValidation)
		assert.Equal(t, ErrValidation.Error(), err.Error())
	})

	t.Run("falls back to message", func(t *testing.T) {
		err := NewAppError(http.StatusBadRequest, "bad amount", nil)
		assert.Equal(t, "bad amount", err.Error())
	})
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NotFound("contractor not found")
	assert.True(t, stderrors.Is(err, ErrNotFound))

	var appErr *AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     int
		sentinel error
	}{
		{"NotFound", NotFound("missing"), http.StatusNotFound, ErrNotFound},
		{"BadRequest", BadRequest("nope"), http.StatusBadRequest, ErrInvalidInput},
		{"Validation", Validation("amount must be positive"), http.StatusBadRequest, ErrValidation},
		{"InvalidCredential", InvalidCredential("bad key"), http.StatusUnauthorized, ErrInvalidCredential},
		{"NotConfigured", NotConfigured(), http.StatusUnauthorized, ErrNotConfigured},
		{"Upstream nil cause", Upstream("provider down", nil), http.StatusBadGateway, ErrUpstream},
		{"Persistence", Persistence(ErrPersistence), http.StatusInternalServerError, ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.True(t, stderrors.Is(tt.err, tt.sentinel))
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestUpstreamKeepsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Upstream("send payment failed", cause)
	assert.True(t, stderrors.Is(err, cause))
	assert.False(t, stderrors.Is(err, ErrUpstream))
}
