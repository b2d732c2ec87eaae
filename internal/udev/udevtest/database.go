// Package udevtest provides an in-memory device database for tests.
package udevtest

import (
	"context"
	"sync"

	"serial-lister/internal/udev"
)

// Database is an in-memory udev.Database.
// Devices are returned in insertion order, filtered by the query.
type Database struct {
	// OpenErr is returned by Open when set
	OpenErr error
	// QueryErr is returned by Handle.Devices when set
	QueryErr error

	mu      sync.Mutex
	devices []*udev.Record
	opened  int
	closed  int
	queries []udev.Query
}

// New creates a database holding the given devices
func New(devices ...*udev.Record) *Database {
	return &Database{devices: devices}
}

// Add appends a device to the enumeration order
func (db *Database) Add(d *udev.Record) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.devices = append(db.devices, d)
}

// Open returns a handle over a snapshot of the current devices
func (db *Database) Open(ctx context.Context) (udev.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if db.OpenErr != nil {
		return nil, db.OpenErr
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	db.opened++

	snapshot := make([]*udev.Record, len(db.devices))
	copy(snapshot, db.devices)
	return &handle{db: db, devices: snapshot}, nil
}

// Opened returns how many handles were opened
func (db *Database) Opened() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.opened
}

// Closed returns how many handles were closed
func (db *Database) Closed() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.closed
}

// Queries returns the queries issued so far
func (db *Database) Queries() []udev.Query {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]udev.Query(nil), db.queries...)
}

type handle struct {
	db      *Database
	devices []*udev.Record
	closed  bool
}

func (h *handle) Devices(ctx context.Context, q udev.Query) ([]udev.Device, error) {
	h.db.mu.Lock()
	h.db.queries = append(h.db.queries, q)
	h.db.mu.Unlock()

	if h.closed {
		return nil, udev.ErrDatabaseUnavailable
	}
	if h.db.QueryErr != nil {
		return nil, h.db.QueryErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result []udev.Device
	for _, d := range h.devices {
		if q.Matches(d) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (h *handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	h.db.mu.Lock()
	defer h.db.mu.Unlock()
	h.db.closed++
	return nil
}

// Serial builds a tty/serial device with ID_SERIAL set
func Serial(devNode, serial string) *udev.Record {
	return udev.NewRecord(udev.SubsystemTTY, udev.DevTypeSerial, devNode, map[string]string{
		"DEVNAME":             devNode,
		udev.PropertyDevType:  udev.DevTypeSerial,
		udev.PropertyIDSerial: serial,
	})
}

// SerialWithoutID builds a tty/serial device that has no ID_SERIAL property
func SerialWithoutID(devNode string) *udev.Record {
	return udev.NewRecord(udev.SubsystemTTY, udev.DevTypeSerial, devNode, map[string]string{
		"DEVNAME":            devNode,
		udev.PropertyDevType: udev.DevTypeSerial,
	})
}
