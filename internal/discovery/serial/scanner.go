// internal/discovery/serial/scanner.go
package serial

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"serial-lister/internal/udev"
)

// SerialDevice is a serial TTY device that carries a udev serial identifier
type SerialDevice struct {
	Serial  string
	DevNode string
}

// Scanner lists serial TTY devices from the device database
type Scanner struct {
	db     udev.Database
	logger *zap.Logger
}

// NewScanner creates a new serial scanner
func NewScanner(db udev.Database, logger *zap.Logger) *Scanner {
	return &Scanner{
		db:     db,
		logger: logger.With(zap.String("scanner", "serial")),
	}
}

// Query returns the device database query used by the scanner
func (s *Scanner) Query() udev.Query {
	return udev.Query{
		Subsystem: udev.SubsystemTTY,
		DevType:   udev.DevTypeSerial,
	}
}

// Scan returns every tty/serial device that has an ID_SERIAL property,
// in device database order. Devices without the property are skipped.
func (s *Scanner) Scan(ctx context.Context) ([]SerialDevice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	handle, err := s.db.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open device database: %w", err)
	}
	defer func() {
		if cerr := handle.Close(); cerr != nil {
			s.logger.Warn("Failed to close device database", zap.Error(cerr))
		}
	}()

	query := s.Query()
	devices, err := handle.Devices(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial devices: %w", err)
	}

	found := make([]SerialDevice, 0, len(devices))
	for _, d := range devices {
		if !query.Matches(d) || !d.HasProperty(udev.PropertyIDSerial) {
			continue
		}

		found = append(found, SerialDevice{
			Serial:  d.Property(udev.PropertyIDSerial),
			DevNode: d.DevNode(),
		})
	}

	s.logger.Debug("Serial scan completed",
		zap.Int("candidates", len(devices)),
		zap.Int("devices_found", len(found)),
	)

	return found, nil
}

// ListSerials returns the ID_SERIAL values of all serial TTY devices
func (s *Scanner) ListSerials(ctx context.Context) ([]string, error) {
	devices, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}

	serials := make([]string, len(devices))
	for i, d := range devices {
		serials[i] = d.Serial
	}
	return serials, nil
}
