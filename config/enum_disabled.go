//go:build noenum

package config

import (
	"reflect"

	"github.com/goccy/go-yaml/ast"
)

// enumTable is empty when enum support is compiled out with the noenum build tag.
type enumTable struct{}

func (a *Accessor) decodeEnum(ast.Node, reflect.Value, Path) (bool, error) {
	return false, nil
}
