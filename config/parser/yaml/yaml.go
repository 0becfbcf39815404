package yaml

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-yaml/config"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
// Errors wrapping it also match config.ErrKeyNotFound.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser for YAML data.
type Parser struct {
	opts []config.Option
}

// NewParser creates a new YAML parser instance.
// The options are applied to every Accessor the parser builds.
func NewParser(opts ...config.Option) *Parser {
	return &Parser{opts: opts}
}

// Parse parses YAML data and decodes the section at path into target.
// The path uses colon (:) as separator; an empty path decodes the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	accessor, err := config.Parse(data, p.opts...)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	err = accessor.Decode(target, config.ParsePath(path)...)
	if err != nil {
		if errors.Is(err, config.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s: %w", ErrPathNotFound, path, err)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}
