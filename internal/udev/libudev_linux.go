//go:build linux && cgo

// internal/udev/libudev_linux.go
package udev

import (
	"context"
	"fmt"

	libudev "github.com/jochenvg/go-udev"
	"go.uber.org/zap"
)

// LibUdev is the device database backed by the system libudev
type LibUdev struct {
	logger *zap.Logger
}

// NewLibUdev creates a libudev backed database
func NewLibUdev(logger *zap.Logger) *LibUdev {
	return &LibUdev{
		logger: logger.With(zap.String("database", "libudev")),
	}
}

// Open acquires a udev context for the lifetime of the returned handle
func (l *LibUdev) Open(ctx context.Context) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Debug("Opening udev context")
	return &libUdevHandle{
		udev:   &libudev.Udev{},
		logger: l.logger,
	}, nil
}

type libUdevHandle struct {
	udev   *libudev.Udev
	logger *zap.Logger
}

// Devices enumerates matching devices in libudev order
func (h *libUdevHandle) Devices(ctx context.Context, q Query) ([]Device, error) {
	if h.udev == nil {
		return nil, fmt.Errorf("%w: handle is closed", ErrDatabaseUnavailable)
	}

	enum := h.udev.NewEnumerate()

	if q.Subsystem != "" {
		if err := enum.AddMatchSubsystem(q.Subsystem); err != nil {
			return nil, fmt.Errorf("%w: match subsystem %q: %v", ErrDatabaseUnavailable, q.Subsystem, err)
		}
	}

	// libudev has no devtype match on enumerators, DEVTYPE is matched as a property
	if q.DevType != "" {
		if err := enum.AddMatchProperty(PropertyDevType, q.DevType); err != nil {
			return nil, fmt.Errorf("%w: match devtype %q: %v", ErrDatabaseUnavailable, q.DevType, err)
		}
	}

	devices, err := enum.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w: scan devices: %v", ErrDatabaseUnavailable, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]Device, 0, len(devices))
	for _, d := range devices {
		if d == nil {
			continue
		}
		result = append(result, NewRecord(d.Subsystem(), d.Devtype(), d.Devnode(), d.Properties()))
	}

	h.logger.Debug("udev enumeration completed",
		zap.String("subsystem", q.Subsystem),
		zap.String("devtype", q.DevType),
		zap.Int("devices", len(result)),
	)

	return result, nil
}

// Close drops the handle's udev context. go-udev has no explicit unref,
// the context itself is freed by its finalizer.
func (h *libUdevHandle) Close() error {
	h.udev = nil
	return nil
}
