package hjarta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-yaml/config"
	filefetcher "github.com/0xalexb/hjarta-yaml/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-yaml/config/parser/yaml"
	"github.com/0xalexb/hjarta-yaml/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// ErrNoConfigFile is returned when sections are requested without WithConfigFile.
var ErrNoConfigFile = errors.New("sections require a config file")

// ErrEmptySectionName is returned when WithSection is given an empty name.
var ErrEmptySectionName = errors.New("section name must not be empty")

// App is an Fx application with logging and, optionally, a YAML configuration document.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	logger := createLogger(options.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(logging.LoggerConfig{Level: options.LogLevel}),
		fx.Supply(logger),
		configModule(options),
		fx.Options(options.Modules...),
	)
}

// configModule provides config.DataFetcher, config.Parser and the root
// *config.Accessor, plus one name-tagged *config.Accessor per section.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func configModule(options *Options) fx.Option {
	if options.ConfigFile == "" {
		if len(options.Sections) > 0 {
			return fx.Error(ErrNoConfigFile)
		}

		return fx.Options()
	}

	accessorOpts := options.AccessorOptions

	moduleOpts := []fx.Option{
		fx.Provide(
			fx.Annotate(
				filefetcher.NewFetcher(options.ConfigFile, options.FetcherOptions...),
				fx.As(new(config.DataFetcher)),
			),
		),
		fx.Provide(
			fx.Annotate(
				func() *yamlparser.Parser { return yamlparser.NewParser(accessorOpts...) },
				fx.As(new(config.Parser)),
			),
		),
		fx.Provide(config.AccessorProvider(accessorOpts...)),
	}

	for _, section := range options.Sections {
		if section.Name == "" {
			return fx.Error(ErrEmptySectionName)
		}

		moduleOpts = append(moduleOpts, fx.Provide(
			fx.Annotate(
				config.SectionProvider(section.Path...),
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, section.Name)),
			),
		))
	}

	return fx.Module("config", moduleOpts...)
}

func createLogger(level string, w io.Writer) *slog.Logger {
	return logging.NewLogger(logging.LoggerConfig{Level: level}, w)
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
