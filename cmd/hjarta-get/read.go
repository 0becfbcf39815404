package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/0xalexb/hjarta-yaml/config"

	"github.com/goccy/go-yaml"
)

const typeEnum = "enum"

type reader func(*config.Accessor, config.Path) (any, error)

type checker func(acc *config.Accessor, path config.Path, expression string) (any, error)

func read[T any](acc *config.Accessor, path config.Path) (any, error) {
	return config.Get[T](acc, path...)
}

func check[T any](acc *config.Accessor, path config.Path, expression string) (any, error) {
	return config.Check(acc, path, config.Expr[T](expression))
}

//nolint:gochecknoglobals // lookup tables keyed by --type.
var (
	readers = map[string]reader{
		"string":   read[string],
		"int":      read[int64],
		"uint":     read[uint64],
		"float":    read[float64],
		"bool":     read[bool],
		"duration": read[time.Duration],
		"list":     read[[]any],
		"any":      read[any],
	}

	checkers = map[string]checker{
		"string":   check[string],
		"int":      check[int64],
		"uint":     check[uint64],
		"float":    check[float64],
		"bool":     check[bool],
		"duration": check[time.Duration],
		"list":     check[[]any],
		"any":      check[any],
	}
)

func typeNames() string {
	names := make([]string, 0, len(readers))
	for name := range readers {
		names = append(names, name)
	}

	slices.Sort(names)

	return strings.Join(names, ", ")
}

func unknownType(name string) error {
	return fmt.Errorf("unknown type %q, possible: %s", name, typeNames())
}

// render prints scalars as is and anything else as YAML.
func render(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case string, bool, int64, uint64, float64, time.Duration, fmt.Stringer:
		return fmt.Sprint(v), nil
	}

	out, err := yaml.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("rendering value: %w", err)
	}

	return strings.TrimSuffix(string(out), "\n"), nil
}
