package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serial-lister/internal/service"
	"serial-lister/internal/udev"
	"serial-lister/internal/udev/udevtest"
	"serial-lister/pkg/version"
)

func TestRun(t *testing.T) {
	t.Setenv("LSSERIAL_LOGGING_LEVEL", "error")

	tests := []struct {
		name       string
		args       []string
		db         *udevtest.Database
		openErr    error
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "one serial device",
			db:         udevtest.New(udevtest.Serial("/dev/ttyUSB0", "ABC123")),
			wantStdout: "ABC123\n",
		},
		{
			name:       "no devices",
			db:         udevtest.New(),
			wantStdout: "",
		},
		{
			name:       "permission denied",
			db:         udevtest.New(udevtest.Serial("/dev/ttyUSB0", "ABC123")),
			openErr:    fmt.Errorf("%w: %w", udev.ErrDatabaseUnavailable, os.ErrPermission),
			wantCode:   1,
			wantStdout: "",
			wantStderr: "device database unavailable",
		},
		{
			name:       "ports listing",
			args:       []string{"-ports"},
			db:         udevtest.New(udevtest.Serial("/dev/ttyUSB0", "ABC123")),
			wantStdout: "found serials:\n0 : /dev/ttyUSB0 => ABC123\n",
		},
		{
			name:       "ports listing empty",
			args:       []string{"-ports"},
			db:         udevtest.New(udevtest.SerialWithoutID("/dev/ttyS0")),
			wantStdout: service.NoPortsMessage + "\n",
		},
		{
			name:       "help",
			args:       []string{"-h"},
			db:         udevtest.New(udevtest.Serial("/dev/ttyUSB0", "ABC123")),
			wantStdout: "",
			wantStderr: "Usage: lsserial",
		},
		{
			name:       "unknown flag",
			args:       []string{"-baudrate", "9600"},
			db:         udevtest.New(udevtest.Serial("/dev/ttyUSB0", "ABC123")),
			wantCode:   2,
			wantStdout: "",
			wantStderr: "flag provided but not defined",
		},
		{
			name:       "positional argument",
			args:       []string{"/dev/ttyUSB0"},
			db:         udevtest.New(udevtest.Serial("/dev/ttyUSB0", "ABC123")),
			wantCode:   2,
			wantStdout: "",
			wantStderr: "unexpected argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.db.OpenErr = tt.openErr

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr, tt.db)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	db := udevtest.New(udevtest.Serial("/dev/ttyUSB0", "ABC123"))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-version"}, &stdout, &stderr, db)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "lsserial "+version.Version)
	assert.NotContains(t, stdout.String(), "ABC123")
	assert.Equal(t, 0, db.Opened())
}

func TestRun_BadConfig(t *testing.T) {
	t.Setenv("LSSERIAL_LOGGING_LEVEL", "shout")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr, udevtest.New())

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Failed to initialize application")
}

func TestRun_LogsNeverOnStdout(t *testing.T) {
	t.Setenv("LSSERIAL_LOGGING_LEVEL", "debug")
	t.Setenv("LSSERIAL_LOGGING_OUTPUT", "stdout")

	db := udevtest.New(udevtest.Serial("/dev/ttyUSB0", "ABC123"))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr, db)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "logging.output cannot be stdout")
	assert.Equal(t, 0, db.Opened())
}

func TestRun_LogsServiceLifecycle(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "lsserial.log")
	t.Setenv("LSSERIAL_LOGGING_LEVEL", "debug")
	t.Setenv("LSSERIAL_LOGGING_FORMAT", "json")
	t.Setenv("LSSERIAL_LOGGING_OUTPUT", logFile)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr, udevtest.New(udevtest.Serial("/dev/ttyUSB0", "ABC123")))
	require.Equal(t, 0, code)
	assert.Equal(t, "ABC123\n", stdout.String())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Service starting")
	assert.Contains(t, string(data), "Service stopping")
}
