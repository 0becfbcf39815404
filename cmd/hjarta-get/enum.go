//go:build !noenum

package main

import "github.com/0xalexb/hjarta-yaml/config"

type member string

func enumSupport(names []string) (config.Option, reader, error) {
	members := make(map[string]member, len(names))
	for _, name := range names {
		members[name] = member(name)
	}

	return config.WithEnum(config.EnumFromMap(members)), read[member], nil
}

func (m member) String() string {
	return string(m)
}
