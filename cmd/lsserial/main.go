// cmd/lsserial/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"serial-lister/internal/config"
	"serial-lister/internal/service"
	"serial-lister/internal/udev"
	"serial-lister/internal/utils"
	"serial-lister/pkg/version"
)

// Application represents the main application
type Application struct {
	config        *config.Config
	logger        *zap.Logger
	serviceLogger *utils.ServiceLogger
	serialService *service.SerialService
}

// options are the command line flags
type options struct {
	ports   bool
	version bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
// A nil db selects the system libudev database.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, db udev.Database) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if opts.version {
		printVersion(stdout)
		return 0
	}

	app, err := NewApplication(db)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize application: %v\n", err)
		return 1
	}
	defer app.shutdown()

	if err := app.Run(ctx, opts, stdout); err != nil {
		app.logger.Error("Failed to list serial devices", zap.Error(err))
		fmt.Fprintf(stderr, "lsserial: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("lsserial", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.ports, "ports", false, "Print indexed device nodes with their serial identifiers")
	fs.BoolVar(&opts.version, "version", false, "Print version information")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Print the udev ID_SERIAL of every serial tty device, one per line.\n")
		fmt.Fprintf(stderr, "Usage: lsserial [options]\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return opts, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	return opts, nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "lsserial %s\n", version.Version)
	fmt.Fprintf(w, "Commit: %s\n", version.Commit)
	fmt.Fprintf(w, "Build date: %s\n", version.BuildDate)
}

// NewApplication creates a new application instance
func NewApplication(db udev.Database) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	serviceLogger := utils.NewServiceLogger(logger, cfg.App.Name)
	serviceLogger.LogServiceStart(version.Version, cfg)

	if db == nil {
		db = udev.NewLibUdev(logger)
	}

	return &Application{
		config:        cfg,
		logger:        logger,
		serviceLogger: serviceLogger,
		serialService: service.NewSerialService(db, cfg, logger),
	}, nil
}

// Run prints the serial identifier of every serial TTY device to stdout
func (app *Application) Run(ctx context.Context, opts options, stdout io.Writer) error {
	if opts.ports {
		return app.serialService.WritePorts(ctx, stdout)
	}
	return app.serialService.WriteSerials(ctx, stdout)
}

// shutdown flushes the logger
func (app *Application) shutdown() {
	app.serviceLogger.LogServiceStop("listing finished")
	_ = app.logger.Sync()
}
