package config

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
)

var (
	durationType        = reflect.TypeFor[time.Duration]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// decode converts node into rv, which must be settable.
func (a *Accessor) decode(node ast.Node, rv reflect.Value, path Path) error {
	original := node
	node = a.resolve(node)

	handled, err := a.decodeEnum(node, rv, path)
	if handled {
		return err
	}

	if rv.Type() == durationType {
		return a.decodeDuration(original, node, rv, path)
	}

	kind := rv.Kind()
	if kind != reflect.Pointer && kind != reflect.Interface && reflect.PointerTo(rv.Type()).Implements(textUnmarshalerType) {
		return a.decodeText(original, node, rv, path)
	}

	switch kind {
	case reflect.Pointer:
		if isNull(node) {
			rv.SetZero()

			return nil
		}

		elem := reflect.New(rv.Type().Elem())

		err := a.decode(node, elem.Elem(), path)
		if err != nil {
			return err
		}

		rv.Set(elem)

		return nil
	case reflect.Interface:
		return a.decodeInterface(original, node, rv, path)
	case reflect.Bool:
		b, ok := node.(*ast.BoolNode)
		if !ok {
			return a.mismatch(original, node, rv, path)
		}

		rv.SetBool(b.Value)

		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.decodeInt(original, node, rv, path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.decodeUint(original, node, rv, path)
	case reflect.Float32, reflect.Float64:
		return a.decodeFloat(original, node, rv, path)
	case reflect.String:
		if isNull(node) {
			rv.SetString("")

			return nil
		}

		text, ok := scalarText(node)
		if !ok {
			return a.mismatch(original, node, rv, path)
		}

		rv.SetString(text)

		return nil
	case reflect.Slice:
		return a.decodeSlice(original, node, rv, path)
	case reflect.Array:
		return a.decodeArray(original, node, rv, path)
	case reflect.Map:
		return a.decodeMap(original, node, rv, path)
	case reflect.Struct:
		if isNull(node) {
			return nil
		}

		if _, ok := a.entries(node, 0); !ok {
			return a.mismatch(original, node, rv, path)
		}

		err := yaml.NodeToValue(node, rv.Addr().Interface())
		if err != nil {
			return a.newError(ErrTypeMismatch, path, original, "decoding "+rv.Type().String(), err)
		}

		return nil
	default:
		return a.newError(ErrTypeMismatch, path, original, "unsupported target type "+rv.Type().String(), nil)
	}
}

func (a *Accessor) decodeInterface(original, node ast.Node, rv reflect.Value, path Path) error {
	if rv.NumMethod() != 0 {
		return a.newError(ErrTypeMismatch, path, original, "unsupported target type "+rv.Type().String(), nil)
	}

	if isNull(node) {
		rv.SetZero()

		return nil
	}

	var value any

	err := yaml.NodeToValue(node, &value)
	if err != nil {
		return a.newError(ErrTypeMismatch, path, original, "", err)
	}

	if value == nil {
		rv.SetZero()

		return nil
	}

	rv.Set(reflect.ValueOf(value))

	return nil
}

func (a *Accessor) decodeInt(original, node ast.Node, rv reflect.Value, path Path) error {
	n, ok := node.(*ast.IntegerNode)
	if !ok {
		return a.mismatch(original, node, rv, path)
	}

	var value int64

	switch v := n.Value.(type) {
	case int64:
		value = v
	case uint64:
		if v > math.MaxInt64 {
			return a.overflow(original, node, rv, path)
		}

		value = int64(v)
	default:
		return a.mismatch(original, node, rv, path)
	}

	if rv.OverflowInt(value) {
		return a.overflow(original, node, rv, path)
	}

	rv.SetInt(value)

	return nil
}

func (a *Accessor) decodeUint(original, node ast.Node, rv reflect.Value, path Path) error {
	n, ok := node.(*ast.IntegerNode)
	if !ok {
		return a.mismatch(original, node, rv, path)
	}

	var value uint64

	switch v := n.Value.(type) {
	case int64:
		if v < 0 {
			return a.overflow(original, node, rv, path)
		}

		value = uint64(v)
	case uint64:
		value = v
	default:
		return a.mismatch(original, node, rv, path)
	}

	if rv.OverflowUint(value) {
		return a.overflow(original, node, rv, path)
	}

	rv.SetUint(value)

	return nil
}

func (a *Accessor) decodeFloat(original, node ast.Node, rv reflect.Value, path Path) error {
	var value float64

	switch n := node.(type) {
	case *ast.FloatNode:
		value = n.Value
	case *ast.InfinityNode:
		value = n.Value
	case *ast.NanNode:
		value = math.NaN()
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			value = float64(v)
		case uint64:
			value = float64(v)
		default:
			return a.mismatch(original, node, rv, path)
		}
	default:
		return a.mismatch(original, node, rv, path)
	}

	if !math.IsInf(value, 0) && !math.IsNaN(value) && rv.OverflowFloat(value) {
		return a.overflow(original, node, rv, path)
	}

	rv.SetFloat(value)

	return nil
}

func (a *Accessor) decodeDuration(original, node ast.Node, rv reflect.Value, path Path) error {
	switch n := node.(type) {
	case *ast.IntegerNode:
		v, ok := n.Value.(int64)
		if !ok || v > math.MaxInt64/int64(a.opts.durationUnit) || v < math.MinInt64/int64(a.opts.durationUnit) {
			return a.overflow(original, node, rv, path)
		}

		rv.SetInt(v * int64(a.opts.durationUnit))

		return nil
	case *ast.StringNode:
		d, err := ParseDuration(n.Value, a.opts.durationUnit)
		if err != nil {
			return a.newError(ErrTypeMismatch, path, original, "", err)
		}

		rv.SetInt(int64(d))

		return nil
	default:
		return a.mismatch(original, node, rv, path)
	}
}

func (a *Accessor) decodeText(original, node ast.Node, rv reflect.Value, path Path) error {
	text, ok := scalarText(node)
	if !ok {
		return a.mismatch(original, node, rv, path)
	}

	unmarshaler, _ := rv.Addr().Interface().(encoding.TextUnmarshaler)

	err := unmarshaler.UnmarshalText([]byte(text))
	if err != nil {
		return a.newError(ErrTypeMismatch, path, original, "decoding "+rv.Type().String(), err)
	}

	return nil
}

func (a *Accessor) decodeSlice(original, node ast.Node, rv reflect.Value, path Path) error {
	if isNull(node) {
		rv.SetZero()

		return nil
	}

	seq, ok := node.(*ast.SequenceNode)
	if !ok {
		return a.mismatch(original, node, rv, path)
	}

	out := reflect.MakeSlice(rv.Type(), len(seq.Values), len(seq.Values))

	for i, item := range seq.Values {
		err := a.decode(item, out.Index(i), path.index(i))
		if err != nil {
			return err
		}
	}

	rv.Set(out)

	return nil
}

func (a *Accessor) decodeArray(original, node ast.Node, rv reflect.Value, path Path) error {
	seq, ok := node.(*ast.SequenceNode)
	if !ok || len(seq.Values) != rv.Len() {
		return a.newError(ErrTypeMismatch, path, original, fmt.Sprintf("expected sequence of length %d", rv.Len()), nil)
	}

	for i, item := range seq.Values {
		err := a.decode(item, rv.Index(i), path.index(i))
		if err != nil {
			return err
		}
	}

	return nil
}

func (a *Accessor) decodeMap(original, node ast.Node, rv reflect.Value, path Path) error {
	if isNull(node) {
		rv.SetZero()

		return nil
	}

	entries, ok := a.entries(node, 0)
	if !ok {
		return a.mismatch(original, node, rv, path)
	}

	typ := rv.Type()
	out := reflect.MakeMapWithSize(typ, len(entries))

	for _, e := range entries {
		elemPath := path.Join(e.key)

		key := reflect.New(typ.Key()).Elem()

		err := a.decode(e.keyNode, key, elemPath)
		if err != nil {
			return err
		}

		value := reflect.New(typ.Elem()).Elem()

		err = a.decode(e.value, value, elemPath)
		if err != nil {
			return err
		}

		out.SetMapIndex(key, value)
	}

	rv.Set(out)

	return nil
}

func (a *Accessor) mismatch(original, node ast.Node, rv reflect.Value, path Path) error {
	return a.newError(ErrTypeMismatch, path, original, fmt.Sprintf("cannot convert %s to %s", describe(node), rv.Type()), nil)
}

func (a *Accessor) overflow(original, node ast.Node, rv reflect.Value, path Path) error {
	text, _ := scalarText(node)

	return a.newError(ErrTypeMismatch, path, original, fmt.Sprintf("%s overflows %s", text, rv.Type()), nil)
}

// scalarText returns the source text of a scalar node.
func scalarText(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value, true
	case *ast.LiteralNode:
		if n.Value == nil {
			return "", true
		}

		return n.Value.Value, true
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode, *ast.InfinityNode, *ast.NanNode:
		tk := node.GetToken()
		if tk == nil {
			return "", false
		}

		return tk.Value, true
	default:
		return "", false
	}
}

func describe(node ast.Node) string {
	switch node.(type) {
	case nil, *ast.NullNode:
		return "null"
	case *ast.MappingNode, *ast.MappingValueNode:
		return "mapping"
	case *ast.SequenceNode:
		return "sequence"
	case *ast.BoolNode:
		return "bool"
	case *ast.IntegerNode:
		return "integer"
	case *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		return "float"
	case *ast.StringNode, *ast.LiteralNode:
		return "string"
	default:
		return node.Type().String()
	}
}
