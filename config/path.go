package config

import (
	"strconv"
	"strings"
)

// PathSeparator separates keys in the string form of a Path.
const PathSeparator = ":"

// Path is an ordered sequence of keys identifying a node in a document.
// Sequence elements are addressed by their decimal index.
type Path []string

// ParsePath splits a colon-separated path such as "api:permissions".
// The empty string yields the empty path, which addresses the document root.
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}

	return Path(strings.Split(s, PathSeparator))
}

// String joins the keys with PathSeparator.
func (p Path) String() string {
	return strings.Join(p, PathSeparator)
}

// Join returns a new path with keys appended. The receiver is never modified.
func (p Path) Join(keys ...string) Path {
	joined := make(Path, 0, len(p)+len(keys))
	joined = append(joined, p...)

	return append(joined, keys...)
}

func (p Path) index(i int) Path {
	return p.Join(strconv.Itoa(i))
}
