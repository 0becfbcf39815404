package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher for a file on disk.
// The file is read once at construction time and the contents are cached.
type Fetcher struct {
	filepath  string
	data      []byte
	expandEnv bool
	lookupEnv func(string) (string, bool)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithExpandEnv replaces ${VAR} and $VAR references with environment values
// before the contents are cached. Unset variables expand to the empty string.
func WithExpandEnv() Option {
	return func(f *Fetcher) {
		f.expandEnv = true
	}
}

// WithLookupEnv sets the variable source used by WithExpandEnv. Defaults to os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(f *Fetcher) {
		if lookup != nil {
			f.lookupEnv = lookup
		}
	}
}

// NewFetcher returns a constructor function that creates a Fetcher for fpath.
// The constructor form lets an Fx container decide when the file is read.
// It fails if the file cannot be read or the path is a directory.
func NewFetcher(fpath string, opts ...Option) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		fetcher := &Fetcher{
			filepath:  filepath.Clean(fpath),
			data:      nil,
			expandEnv: false,
			lookupEnv: os.LookupEnv,
		}

		for _, apply := range opts {
			apply(fetcher)
		}

		stat, err := os.Stat(fetcher.filepath)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", fetcher.filepath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", fetcher.filepath, ErrPathIsDirectory)
		}

		data, err := os.ReadFile(fetcher.filepath) // #nosec G304 -- path is cleaned and validated
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", fetcher.filepath, err)
		}

		if fetcher.expandEnv {
			data = []byte(os.Expand(string(data), func(name string) string {
				value, _ := fetcher.lookupEnv(name)

				return value
			}))
		}

		fetcher.data = data

		return fetcher, nil
	}
}

// Fetch returns a copy of the cached contents.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Path returns the cleaned path the contents were read from.
func (f *Fetcher) Path() string {
	return f.filepath
}
