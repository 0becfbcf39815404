package config

import (
	"cmp"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strconv"
	"time"

	filefetcher "github.com/0xalexb/hjarta-yaml/config/fetcher/file"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// maxAliasDepth bounds alias and merge-key chains.
const maxAliasDepth = 32

// Accessor provides typed, path-based reads over a parsed YAML document.
//
// An Accessor never mutates the tree it wraps, so it may be shared between
// goroutines as long as nobody else modifies the underlying ast nodes. This is
// a caller contract; no locking is performed.
type Accessor struct {
	root    ast.Node
	anchors anchorTable
	prefix  Path
	opts    *options
}

type options struct {
	logger       *slog.Logger
	durationUnit time.Duration
	enums        enumTable
}

// Option configures an Accessor.
type Option func(*options)

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDurationUnit sets the unit applied to bare integers decoded into time.Duration.
// Defaults to time.Nanosecond, matching time.Duration itself.
func WithDurationUnit(unit time.Duration) Option {
	return func(o *options) {
		if unit > 0 {
			o.durationUnit = unit
		}
	}
}

// New wraps an already parsed node. A nil root behaves like an empty document.
func New(root ast.Node, opts ...Option) *Accessor {
	o := &options{
		logger:       slog.Default(),
		durationUnit: time.Nanosecond,
	}

	for _, apply := range opts {
		apply(o)
	}

	return &Accessor{
		root:    root,
		anchors: collectAnchors(root),
		prefix:  Path{},
		opts:    o,
	}
}

// Parse parses YAML text and returns an Accessor over its first document.
func Parse(data []byte, opts ...Option) (*Accessor, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var root ast.Node

	if len(file.Docs) > 0 && file.Docs[0] != nil {
		root = file.Docs[0].Body
	}

	return New(root, opts...), nil
}

// Load reads the document through fetcher and parses it.
func Load(fetcher DataFetcher, opts ...Option) (*Accessor, error) {
	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	return Parse(data, opts...)
}

// LoadFile reads and parses the YAML file at fpath.
func LoadFile(fpath string, opts ...Option) (*Accessor, error) {
	fetcher, err := filefetcher.NewFetcher(fpath)()
	if err != nil {
		return nil, err
	}

	return Load(fetcher, opts...)
}

// Get navigates path and converts the node found there to T.
//
// It fails with ErrKeyNotFound when a segment is absent, ErrTypeMismatch when the
// node cannot be converted and ErrUnknownEnumValue when T is a registered enum and
// the scalar names none of its members.
func Get[T any](a *Accessor, path ...string) (T, error) {
	var out T

	err := a.Decode(&out, path...)
	if err != nil {
		var zero T

		return zero, err
	}

	return out, nil
}

// GetOr is Get, returning def instead of any lookup or conversion error.
func GetOr[T any](a *Accessor, def T, path ...string) T {
	value, err := Get[T](a, path...)
	if err != nil {
		a.opts.logger.Debug("default applied",
			slog.String("path", a.prefix.Join(path...).String()),
			slog.String("reason", err.Error()),
		)

		return def
	}

	return value
}

// Has reports whether every segment of path exists. No conversion is attempted.
func (a *Accessor) Has(path ...string) bool {
	_, err := a.lookup(path)

	return err == nil
}

// Decode converts the node at path into target, which must be a non-nil pointer.
func (a *Accessor) Decode(target any, path ...string) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return a.newError(ErrTypeMismatch, path, nil, fmt.Sprintf("target must be a non-nil pointer, got %T", target), nil)
	}

	node, err := a.lookup(path)
	if err != nil {
		return err
	}

	return a.decode(node, rv.Elem(), path)
}

// Sub returns an Accessor rooted at the mapping or sequence found at path.
// Errors from the returned Accessor report paths from the document root.
func (a *Accessor) Sub(path ...string) (*Accessor, error) {
	node, err := a.lookup(path)
	if err != nil {
		return nil, err
	}

	switch a.resolve(node).(type) {
	case nil, *ast.NullNode, *ast.MappingNode, *ast.MappingValueNode, *ast.SequenceNode:
	default:
		return nil, a.newError(ErrTypeMismatch, path, node, "section must be a mapping or sequence", nil)
	}

	return &Accessor{
		root:    node,
		anchors: a.anchors,
		prefix:  a.prefix.Join(path...),
		opts:    a.opts,
	}, nil
}

// Keys lists the keys of the mapping at path in document order, merged keys last.
func (a *Accessor) Keys(path ...string) ([]string, error) {
	node, err := a.lookup(path)
	if err != nil {
		return nil, err
	}

	if isNull(a.resolve(node)) {
		return []string{}, nil
	}

	entries, ok := a.entries(node, 0)
	if !ok {
		return nil, a.newError(ErrTypeMismatch, path, node, "not a mapping", nil)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.key)
	}

	return keys, nil
}

// Len returns the number of elements of the sequence or mapping at path.
func (a *Accessor) Len(path ...string) (int, error) {
	node, err := a.lookup(path)
	if err != nil {
		return 0, err
	}

	resolved := a.resolve(node)

	if seq, ok := resolved.(*ast.SequenceNode); ok {
		return len(seq.Values), nil
	}

	if isNull(resolved) {
		return 0, nil
	}

	entries, ok := a.entries(node, 0)
	if !ok {
		return 0, a.newError(ErrTypeMismatch, path, node, "not a mapping or sequence", nil)
	}

	return len(entries), nil
}

// Path returns the location this Accessor is rooted at.
func (a *Accessor) Path() Path {
	return a.prefix.Join()
}

func (a *Accessor) lookup(path Path) (ast.Node, error) {
	node := a.root

	for i, key := range path {
		next, ok := a.child(node, key)
		if !ok {
			return nil, a.newError(ErrKeyNotFound, path[:i+1], node, "", nil)
		}

		node = next
	}

	return node, nil
}

func (a *Accessor) child(node ast.Node, key string) (ast.Node, bool) {
	resolved := a.resolve(node)

	if seq, ok := resolved.(*ast.SequenceNode); ok {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(seq.Values) {
			return nil, false
		}

		return seq.Values[idx], true
	}

	entries, ok := a.entries(resolved, 0)
	if !ok {
		return nil, false
	}

	for _, e := range entries {
		if e.key == key {
			return e.value, true
		}
	}

	return nil, false
}

type entry struct {
	key     string
	keyNode ast.Node
	value   ast.Node
}

// entries flattens a mapping, applying "<<" merge keys. Explicit keys win over
// merged ones and earlier merge sources win over later ones.
func (a *Accessor) entries(node ast.Node, depth int) ([]entry, bool) {
	var values []*ast.MappingValueNode

	switch n := a.resolve(node).(type) {
	case *ast.MappingNode:
		values = n.Values
	case *ast.MappingValueNode:
		values = []*ast.MappingValueNode{n}
	default:
		return nil, false
	}

	seen := make(map[string]bool, len(values))
	out := make([]entry, 0, len(values))

	var merged []entry

	for _, mv := range values {
		if mv == nil || mv.Key == nil {
			continue
		}

		if _, isMerge := mv.Key.(*ast.MergeKeyNode); isMerge {
			if depth < maxAliasDepth {
				merged = append(merged, a.mergeEntries(mv.Value, depth+1)...)
			}

			continue
		}

		key := a.keyText(mv.Key)
		seen[key] = true
		out = append(out, entry{key: key, keyNode: mv.Key, value: mv.Value})
	}

	for _, e := range merged {
		if !seen[e.key] {
			seen[e.key] = true
			out = append(out, e)
		}
	}

	return out, true
}

func (a *Accessor) mergeEntries(source ast.Node, depth int) []entry {
	resolved := a.resolve(source)

	seq, ok := resolved.(*ast.SequenceNode)
	if !ok {
		sub, _ := a.entries(resolved, depth)

		return sub
	}

	var out []entry

	for _, item := range seq.Values {
		sub, _ := a.entries(item, depth)
		out = append(out, sub...)
	}

	return out
}

// resolve looks through anchors, tags, explicit "?" keys and aliases to the node carrying the value.
func (a *Accessor) resolve(node ast.Node) ast.Node {
	for range maxAliasDepth {
		switch n := node.(type) {
		case *ast.AnchorNode:
			node = n.Value
		case *ast.TagNode:
			node = n.Value
		case *ast.MappingKeyNode:
			node = n.Value
		case *ast.AliasNode:
			target, ok := a.anchors.find(n)
			if !ok {
				return nil
			}

			node = target
		default:
			return node
		}
	}

	return nil
}

func (a *Accessor) keyText(key ast.Node) string {
	return nodeText(a.resolve(key))
}

func (a *Accessor) newError(kind error, rel Path, node ast.Node, detail string, cause error) *Error {
	e := &Error{
		Kind:   kind,
		Path:   a.prefix.Join(rel...),
		Detail: detail,
		Err:    cause,
	}

	if node != nil {
		e.Line, e.Column = position(node)
	}

	return e
}

func nodeText(node ast.Node) string {
	switch n := node.(type) {
	case nil:
		return ""
	case *ast.StringNode:
		return n.Value
	default:
		if tk := node.GetToken(); tk != nil {
			return tk.Value
		}

		return ""
	}
}

func isNull(node ast.Node) bool {
	if node == nil {
		return true
	}

	_, ok := node.(*ast.NullNode)

	return ok
}

type anchorDef struct {
	line   int
	column int
	node   ast.Node
}

// anchorTable holds every definition of each anchor name in document order.
// A name may be redefined; an alias refers to the last definition before it.
type anchorTable map[string][]anchorDef

func (t anchorTable) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok && anchor.Name != nil {
		line, column := position(anchor)
		name := nodeText(anchor.Name)
		t[name] = append(t[name], anchorDef{line: line, column: column, node: anchor.Value})
	}

	return t
}

func (t anchorTable) find(alias *ast.AliasNode) (ast.Node, bool) {
	defs := t[nodeText(alias.Value)]
	line, column := position(alias)

	found := -1

	for i, def := range defs {
		if line > 0 && (def.line > line || (def.line == line && def.column >= column)) {
			break
		}

		found = i
	}

	if found < 0 {
		return nil, false
	}

	return defs[found].node, true
}

func position(node ast.Node) (line, column int) {
	if tk := node.GetToken(); tk != nil && tk.Position != nil {
		return tk.Position.Line, tk.Position.Column
	}

	return 0, 0
}

func collectAnchors(root ast.Node) anchorTable {
	anchors := anchorTable{}
	if root == nil {
		return anchors
	}

	ast.Walk(anchors, root)

	for _, defs := range anchors {
		slices.SortStableFunc(defs, func(x, y anchorDef) int {
			if c := cmp.Compare(x.line, y.line); c != 0 {
				return c
			}

			return cmp.Compare(x.column, y.column)
		})
	}

	return anchors
}
