package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelIdentity(t *testing.T) {
	// Sentinels must survive wrapping so handlers can rely on errors.Is.
	wrapped := fmt.Errorf("enroll: %w", ErrGroupFull)

	assert.True(t, errors.Is(wrapped, ErrGroupFull))
	assert.False(t, errors.Is(wrapped, ErrGroupDeleted))
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("delete group: %w", ErrNoDeletePermissionGroup)

	appErr, ok := From(wrapped)
	require.True(t, ok)
	assert.Equal(t, "NO_DELETE_PERMISSION_GROUP", appErr.Code)
	assert.Equal(t, http.StatusForbidden, appErr.Status)

	_, ok = From(errors.New("plain"))
	assert.False(t, ok)
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{ErrGroupNotFound, http.StatusNotFound},
		{ErrGroupDeleted, http.StatusGone},
		{ErrGroupFull, http.StatusConflict},
		{ErrEnrollmentHistoryExists, http.StatusConflict},
		{ErrNoModifyPermissionGroup, http.StatusForbidden},
		{ErrOutOfDateRange, http.StatusBadRequest},
		{ErrInvalidAddress, http.StatusBadRequest},
		{ErrChatroomNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}
