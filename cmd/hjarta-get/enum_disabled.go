//go:build noenum

package main

import (
	"errors"

	"github.com/0xalexb/hjarta-yaml/config"
)

var errEnumDisabled = errors.New("enum support is not compiled in")

func enumSupport([]string) (config.Option, reader, error) {
	return nil, nil, errEnumDisabled
}
