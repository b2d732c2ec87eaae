// internal/service/serial_service.go
package service

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"serial-lister/internal/config"
	"serial-lister/internal/discovery/serial"
	"serial-lister/internal/udev"
	"serial-lister/internal/utils"
)

// SerialService runs serial device listings
type SerialService struct {
	scanner *serial.Scanner
	config  *config.Config
	logger  *utils.ServiceLogger
}

// NewSerialService creates a new serial service
func NewSerialService(db udev.Database, cfg *config.Config, logger *zap.Logger) *SerialService {
	return &SerialService{
		scanner: serial.NewScanner(db, logger),
		config:  cfg,
		logger:  utils.NewServiceLogger(logger, "serial-service"),
	}
}

// withTimeout applies the configured discovery timeout
func (ss *SerialService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ss.config == nil || ss.config.Discovery.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, ss.config.Discovery.Timeout)
}

// ListSerials lists serial identifiers within the configured discovery timeout
func (ss *SerialService) ListSerials(ctx context.Context) ([]string, error) {
	ctx, cancel := ss.withTimeout(ctx)
	defer cancel()

	op := utils.NewOperationLogger(ss.logger.Logger, "list_serials", "")
	op.Start()

	serials, err := ss.scanner.ListSerials(ctx)
	if err != nil {
		op.Error(err)
		return nil, err
	}

	op.Success(zap.Int("devices_found", len(serials)))
	return serials, nil
}

// WriteSerials lists serial identifiers and writes one per line to w.
// Nothing is written when the listing fails.
func (ss *SerialService) WriteSerials(ctx context.Context, w io.Writer) error {
	serials, err := ss.ListSerials(ctx)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, s := range serials {
		if _, err := fmt.Fprintln(bw, s); err != nil {
			return fmt.Errorf("failed to write serial: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// NoPortsMessage is written by WritePorts when no serial device carries an ID_SERIAL
const NoPortsMessage = "No supported serial ports found."

// WritePorts writes an indexed "N : devnode => serial" line per serial device
func (ss *SerialService) WritePorts(ctx context.Context, w io.Writer) error {
	ctx, cancel := ss.withTimeout(ctx)
	defer cancel()

	op := utils.NewOperationLogger(ss.logger.Logger, "list_ports", "")
	op.Start()

	devices, err := ss.scanner.Scan(ctx)
	if err != nil {
		op.Error(err)
		return err
	}
	op.Success(zap.Int("devices_found", len(devices)))

	bw := bufio.NewWriter(w)
	if len(devices) == 0 {
		fmt.Fprintln(bw, NoPortsMessage)
	} else {
		fmt.Fprintln(bw, "found serials:")
		for i, d := range devices {
			fmt.Fprintf(bw, "%d : %s => %s\n", i, d.DevNode, d.Serial)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
