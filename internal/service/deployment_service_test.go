package service

import (
	"strings"
	"testing"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateAccessCode()
		require.Len(t, code, 8)
		assert.Equal(t, strings.ToUpper(code), code, "code must be uppercase")
		assert.False(t, seen[code], "codes must not repeat")
		seen[code] = true
	}
}

func TestWindowError(t *testing.T) {
	assert.NoError(t, windowError(model.WindowOpen))
	assert.ErrorIs(t, windowError(model.WindowNotYetOpen), ErrNotYetOpen)
	assert.ErrorIs(t, windowError(model.WindowDeactivated), ErrDeactivated)
	assert.ErrorIs(t, windowError(model.WindowClosed), ErrClosed)
}
