package hjarta

import (
	"github.com/0xalexb/hjarta-yaml/config"
	filefetcher "github.com/0xalexb/hjarta-yaml/config/fetcher/file"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules         []fx.Option
	LogLevel        string
	ConfigFile      string
	FetcherOptions  []filefetcher.Option
	AccessorOptions []config.Option
	Sections        []Section
}

// Section names a part of the configuration document exposed to the container.
type Section struct {
	Name string
	Path config.Path
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithConfigFile loads the YAML document at fpath when the application starts.
// The container then holds a config.DataFetcher, a config.Parser for
// config.Provider and the root *config.Accessor.
func WithConfigFile(fpath string, fetcherOpts ...filefetcher.Option) Option {
	return func(opts *Options) {
		opts.ConfigFile = fpath
		opts.FetcherOptions = append(opts.FetcherOptions, fetcherOpts...)
	}
}

// WithAccessorOptions applies config options (enums, duration unit) to every
// Accessor and Parser built from the configuration file.
func WithAccessorOptions(accessorOpts ...config.Option) Option {
	return func(opts *Options) {
		opts.AccessorOptions = append(opts.AccessorOptions, accessorOpts...)
	}
}

// WithSection provides a *config.Accessor rooted at path, tagged `name:"<name>"`.
// Call multiple times with different names for multiple sections.
func WithSection(name string, path ...string) Option {
	return func(opts *Options) {
		opts.Sections = append(opts.Sections, Section{Name: name, Path: path})
	}
}
