package config

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/expr-lang/expr"
)

// Rule inspects a decoded value and returns an error describing why it is rejected.
type Rule[T any] func(T) error

// Check reads the value at path like Get and then applies rules in order.
// The first rejection is reported as ErrValidationFailed.
func Check[T any](a *Accessor, path Path, rules ...Rule[T]) (T, error) {
	var value T

	node, err := a.lookup(path)
	if err != nil {
		return value, err
	}

	err = a.decode(node, reflect.ValueOf(&value).Elem(), path)
	if err != nil {
		var zero T

		return zero, err
	}

	for _, rule := range rules {
		ruleErr := rule(value)
		if ruleErr != nil {
			var zero T

			return zero, a.newError(ErrValidationFailed, path, node, "", ruleErr)
		}
	}

	return value, nil
}

// Message replaces the error text of rule with msg.
func Message[T any](rule Rule[T], msg string) Rule[T] {
	return func(value T) error {
		if rule(value) != nil {
			return errors.New(msg)
		}

		return nil
	}
}

// Regex accepts strings matched in full by pattern.
func Regex(pattern string) Rule[string] {
	re, compileErr := regexp.Compile(`^(?:` + pattern + `)$`)

	return func(value string) error {
		if compileErr != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, compileErr)
		}

		if !re.MatchString(value) {
			return fmt.Errorf("%q does not match %q", value, pattern)
		}

		return nil
	}
}

// Range accepts values in [lo, hi].
func Range[T cmp.Ordered](lo, hi T) Rule[T] {
	return func(value T) error {
		if value < lo || value > hi {
			return fmt.Errorf("%v is out of range [%v, %v]", value, lo, hi)
		}

		return nil
	}
}

// Minimum accepts values not below lo.
func Minimum[T cmp.Ordered](lo T) Rule[T] {
	return func(value T) error {
		if value < lo {
			return fmt.Errorf("%v is below minimum %v", value, lo)
		}

		return nil
	}
}

// Maximum accepts values not above hi.
func Maximum[T cmp.Ordered](hi T) Rule[T] {
	return func(value T) error {
		if value > hi {
			return fmt.Errorf("%v is above maximum %v", value, hi)
		}

		return nil
	}
}

// Length accepts strings whose length in characters is in [lo, hi].
func Length(lo, hi int) Rule[string] {
	return func(value string) error {
		n := utf8.RuneCountInString(value)
		if n < lo || n > hi {
			return fmt.Errorf("length %d is out of range [%d, %d]", n, lo, hi)
		}

		return nil
	}
}

// LengthMinimum accepts strings of at least lo characters.
func LengthMinimum(lo int) Rule[string] {
	return func(value string) error {
		if n := utf8.RuneCountInString(value); n < lo {
			return fmt.Errorf("length %d is below minimum %d", n, lo)
		}

		return nil
	}
}

// LengthMaximum accepts strings of at most hi characters.
func LengthMaximum(hi int) Rule[string] {
	return func(value string) error {
		if n := utf8.RuneCountInString(value); n > hi {
			return fmt.Errorf("length %d is above maximum %d", n, hi)
		}

		return nil
	}
}

// OneOf accepts only the listed values.
func OneOf[T comparable](allowed ...T) Rule[T] {
	return func(value T) error {
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("%v is not one of %v", value, allowed)
		}

		return nil
	}
}

// Expr accepts values for which the boolean expression holds. The value is
// bound to the variable "value", e.g. `value > 0 && value % 2 == 0`.
func Expr[T any](expression string) Rule[T] {
	var zero T

	program, compileErr := expr.Compile(expression, expr.Env(map[string]any{"value": zero}), expr.AsBool())

	return func(value T) error {
		if compileErr != nil {
			return fmt.Errorf("compiling rule %q: %w", expression, compileErr)
		}

		out, err := expr.Run(program, map[string]any{"value": value})
		if err != nil {
			return fmt.Errorf("evaluating rule %q: %w", expression, err)
		}

		if ok, _ := out.(bool); !ok {
			return fmt.Errorf("%v does not satisfy %q", value, expression)
		}

		return nil
	}
}
