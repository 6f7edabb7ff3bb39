package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("Accommodation"), http.StatusNotFound},
		{"unauthorized", NewUnauthorized("token expired"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("admin only"), http.StatusForbidden},
		{"validation", NewValidation("bad input", nil), http.StatusBadRequest},
		{"conflict", NewConflict("slug taken"), http.StatusConflict},
		{"rate limited", NewRateLimited("slow down"), http.StatusTooManyRequests},
		{"internal", NewInternal(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("outer: %w", NewNotFound("Review")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("Destination")
	assert.Equal(t, "Destination not found", err.Message)
	assert.Equal(t, CodeNotFound, err.Code)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternal(cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := &AppError{Code: CodeConflict, Message: "slug taken"}
	assert.Equal(t, "slug taken", err.Error())
	assert.Nil(t, err.Unwrap())
}
