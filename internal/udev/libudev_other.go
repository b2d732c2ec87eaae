//go:build !linux || !cgo

// internal/udev/libudev_other.go
package udev

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// LibUdev is unavailable on this platform or without cgo
type LibUdev struct {
	logger *zap.Logger
}

// NewLibUdev creates a database that always reports itself unavailable
func NewLibUdev(logger *zap.Logger) *LibUdev {
	return &LibUdev{
		logger: logger.With(zap.String("database", "libudev")),
	}
}

// Open always fails with ErrDatabaseUnavailable
func (l *LibUdev) Open(ctx context.Context) (Handle, error) {
	return nil, fmt.Errorf("%w: libudev requires linux with cgo, running %s/%s", ErrDatabaseUnavailable, runtime.GOOS, runtime.GOARCH)
}
