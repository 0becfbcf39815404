package config

import (
	"fmt"
	"log/slog"
)

// Parser decodes raw configuration data into a target structure.
//
// The path parameter addresses a section within the data using colon (:) as the
// separator, exactly as ParsePath reads it:
//   - "api:permissions" navigates to config["api"]["permissions"]
//   - "servers:0" navigates to the first element of the servers sequence
//   - "" (empty path) means decode the entire document
//
// See config/parser/yaml for the YAML implementation built on Accessor.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher retrieves raw configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator validates a configuration structure after defaults are applied.
type Validator interface {
	Validate() error
}

// Defaulter fills zero fields of a configuration structure.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads, parses, sets defaults, and validates configuration data.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		data, err := dataSourcer.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		if targetDefaulter, isDefaulter := any(target).(Defaulter); isDefaulter {
			if targetDefaulter.SetDefaults() {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		if targetValidatable, isValidatable := any(target).(Validator); isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}

// AccessorProvider returns an Fx-friendly constructor that loads an Accessor
// from whatever DataFetcher the container holds.
func AccessorProvider(opts ...Option) func(DataFetcher, *slog.Logger) (*Accessor, error) {
	return func(fetcher DataFetcher, logger *slog.Logger) (*Accessor, error) {
		accessor, err := Load(fetcher, append([]Option{WithLogger(logger)}, opts...)...)
		if err != nil {
			return nil, err
		}

		logger.Debug("configuration document loaded")

		return accessor, nil
	}
}

// SectionProvider returns an Fx-friendly constructor for an Accessor rooted at path.
func SectionProvider(path ...string) func(*Accessor) (*Accessor, error) {
	return func(root *Accessor) (*Accessor, error) {
		return root.Sub(path...)
	}
}
