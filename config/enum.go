//go:build !noenum

package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-yaml/ast"
)

type enumCodec interface {
	lookup(name string) (reflect.Value, bool)
	Names() []string
}

type enumTable map[reflect.Type]enumCodec

// Enum maps member names to values of T. Names are matched case-sensitively.
type Enum[T comparable] struct {
	names  []string
	values map[string]T
}

// EnumOf builds an Enum named by each member's String method, which is what
// stringer-generated enums provide. Names keep the order of members.
func EnumOf[T interface {
	comparable
	fmt.Stringer
}](members ...T) *Enum[T] {
	e := &Enum[T]{values: make(map[string]T, len(members))}

	for _, m := range members {
		e.add(m.String(), m)
	}

	return e
}

// EnumFromMap builds an Enum from an explicit name table. Names are sorted.
func EnumFromMap[T comparable](members map[string]T) *Enum[T] {
	e := &Enum[T]{values: make(map[string]T, len(members))}

	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		e.add(name, members[name])
	}

	return e
}

func (e *Enum[T]) add(name string, value T) {
	if _, dup := e.values[name]; !dup {
		e.names = append(e.names, name)
	}

	e.values[name] = value
}

// Parse returns the member called name.
func (e *Enum[T]) Parse(name string) (T, error) {
	value, ok := e.values[name]
	if !ok {
		var zero T

		return zero, fmt.Errorf("%w %q (possible: %s)", ErrUnknownEnumValue, name, strings.Join(e.names, ", "))
	}

	return value, nil
}

// Names returns the member names.
func (e *Enum[T]) Names() []string {
	return slices.Clone(e.names)
}

func (e *Enum[T]) lookup(name string) (reflect.Value, bool) {
	value, ok := e.values[name]

	return reflect.ValueOf(&value).Elem(), ok
}

// WithEnum registers e so that reads into T match scalar names against it.
func WithEnum[T comparable](e *Enum[T]) Option {
	return func(o *options) {
		if e == nil {
			return
		}

		if o.enums == nil {
			o.enums = enumTable{}
		}

		o.enums[reflect.TypeFor[T]()] = e
	}
}

func (a *Accessor) decodeEnum(node ast.Node, rv reflect.Value, path Path) (bool, error) {
	codec, ok := a.opts.enums[rv.Type()]
	if !ok {
		return false, nil
	}

	name, ok := scalarText(node)
	if !ok {
		return true, a.mismatch(node, node, rv, path)
	}

	value, ok := codec.lookup(name)
	if !ok {
		detail := fmt.Sprintf("%q (possible: %s)", name, strings.Join(codec.Names(), ", "))

		return true, a.newError(ErrUnknownEnumValue, path, node, detail, nil)
	}

	rv.Set(value)

	return true, nil
}
