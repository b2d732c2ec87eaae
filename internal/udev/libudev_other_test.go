//go:build !linux || !cgo

package udev

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLibUdev_Unavailable(t *testing.T) {
	handle, err := NewLibUdev(zap.NewNop()).Open(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabaseUnavailable))
	assert.Nil(t, handle)
}
