// internal/udev/database.go
package udev

import (
	"context"
	"errors"
)

// ErrDatabaseUnavailable is returned when the device database cannot be opened or queried
var ErrDatabaseUnavailable = errors.New("device database unavailable")

// Common subsystem, device type and property names
const (
	SubsystemTTY     = "tty"
	DevTypeSerial    = "serial"
	PropertyDevType  = "DEVTYPE"
	PropertyIDSerial = "ID_SERIAL"
)

// Query selects devices by subsystem and device type.
// Empty fields match everything.
type Query struct {
	Subsystem string
	DevType   string
}

// Matches reports whether the device satisfies the query
func (q Query) Matches(d Device) bool {
	if q.Subsystem != "" && d.Subsystem() != q.Subsystem {
		return false
	}
	if q.DevType != "" && d.DevType() != q.DevType {
		return false
	}
	return true
}

// Device is a single device record as seen by the device database at query time
type Device interface {
	Subsystem() string
	DevType() string
	DevNode() string
	HasProperty(name string) bool
	Property(name string) string
}

// Handle is an open connection to the device database.
// Devices returned by a handle must not be used after Close.
type Handle interface {
	Devices(ctx context.Context, q Query) ([]Device, error)
	Close() error
}

// Database opens handles to the device database
type Database interface {
	Open(ctx context.Context) (Handle, error)
}
