package config_test

import (
	"math"
	"net/netip"
	"testing"
	"time"

	"github.com/0xalexb/hjarta-yaml/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const primitivesDocument = `
int: 10
float: 3.14
double: 1.618
bool: false
char: c
long: 1234567890123456789
negative: -42
inf: .inf
text: one two three
special: "!@#$%^&*()_+-=[]{}|:;',./<>?"
empty: ""
nothing:
block: |
  line one
  line two
list: [1, 2, 3]
map:
  x: 1
  y: 2
`

func TestGet_Primitives(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, primitivesDocument)

	integer, err := config.Get[int](accessor, "int")
	require.NoError(t, err)
	assert.Equal(t, 10, integer)

	floating, err := config.Get[float32](accessor, "float")
	require.NoError(t, err)
	assert.InDelta(t, float32(3.14), floating, 0.0001)

	double, err := config.Get[float64](accessor, "double")
	require.NoError(t, err)
	assert.InDelta(t, 1.618, double, 0.000001)

	boolean, err := config.Get[bool](accessor, "bool")
	require.NoError(t, err)
	assert.False(t, boolean)

	long, err := config.Get[int64](accessor, "long")
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890123456789), long)

	negative, err := config.Get[int8](accessor, "negative")
	require.NoError(t, err)
	assert.Equal(t, int8(-42), negative)

	inf, err := config.Get[float64](accessor, "inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(inf, 1))
}

func TestGet_Strings(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, primitivesDocument)

	testCases := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "words", key: "text", expected: "one two three"},
		{name: "special characters", key: "special", expected: "!@#$%^&*()_+-=[]{}|:;',./<>?"},
		{name: "empty string", key: "empty", expected: ""},
		{name: "null is empty", key: "nothing", expected: ""},
		{name: "block literal", key: "block", expected: "line one\nline two\n"},
		{name: "integer as text", key: "int", expected: "10"},
		{name: "float as text", key: "float", expected: "3.14"},
		{name: "bool as text", key: "bool", expected: "false"},
		{name: "long as text", key: "long", expected: "1234567890123456789"},
	}

	for _, testInfo := range testCases {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			value, err := config.Get[string](accessor, testInfo.key)
			require.NoError(t, err)
			assert.Equal(t, testInfo.expected, value)
		})
	}
}

func TestGet_TypeMismatch(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, primitivesDocument)

	testCases := []struct {
		name string
		read func() error
	}{
		{name: "int from float", read: func() error { _, err := config.Get[int](accessor, "float"); return err }},
		{name: "int from bool", read: func() error { _, err := config.Get[int](accessor, "bool"); return err }},
		{name: "int from string", read: func() error { _, err := config.Get[int](accessor, "char"); return err }},
		{name: "int32 overflow", read: func() error { _, err := config.Get[int32](accessor, "long"); return err }},
		{name: "uint from negative", read: func() error { _, err := config.Get[uint](accessor, "negative"); return err }},
		{name: "bool from int", read: func() error { _, err := config.Get[bool](accessor, "int"); return err }},
		{name: "bool from string", read: func() error { _, err := config.Get[bool](accessor, "char"); return err }},
		{name: "float from bool", read: func() error { _, err := config.Get[float64](accessor, "bool"); return err }},
		{name: "float from string", read: func() error { _, err := config.Get[float64](accessor, "char"); return err }},
		{name: "int from null", read: func() error { _, err := config.Get[int](accessor, "nothing"); return err }},
		{name: "string from mapping", read: func() error { _, err := config.Get[string](accessor, "map"); return err }},
		{name: "string from sequence", read: func() error { _, err := config.Get[string](accessor, "list"); return err }},
		{name: "slice from scalar", read: func() error { _, err := config.Get[[]int](accessor, "int"); return err }},
		{name: "array of wrong length", read: func() error { _, err := config.Get[[2]int](accessor, "list"); return err }},
		{name: "map from sequence", read: func() error { _, err := config.Get[map[string]int](accessor, "list"); return err }},
		{name: "struct from scalar", read: func() error { _, err := config.Get[struct{ X int }](accessor, "int"); return err }},
		{name: "unsupported target", read: func() error { _, err := config.Get[chan int](accessor, "int"); return err }},
	}

	for _, testInfo := range testCases {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			err := testInfo.read()
			require.ErrorIs(t, err, config.ErrTypeMismatch)
		})
	}
}

func TestGet_FloatFromInteger(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, primitivesDocument)

	value, err := config.Get[float64](accessor, "long")
	require.NoError(t, err)
	assert.InDelta(t, 1234567890123456789.0, value, 1e3)

	small, err := config.Get[float32](accessor, "int")
	require.NoError(t, err)
	assert.InDelta(t, float32(10), small, 0)
}

func TestGet_Composites(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, primitivesDocument)

	list, err := config.Get[[]int](accessor, "list")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, list)

	array, err := config.Get[[3]int64](accessor, "list")
	require.NoError(t, err)
	assert.Equal(t, [3]int64{1, 2, 3}, array)

	mapping, err := config.Get[map[string]int](accessor, "map")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1, "y": 2}, mapping)

	pointer, err := config.Get[*int](accessor, "int")
	require.NoError(t, err)
	require.NotNil(t, pointer)
	assert.Equal(t, 10, *pointer)

	nilPointer, err := config.Get[*int](accessor, "nothing")
	require.NoError(t, err)
	assert.Nil(t, nilPointer)

	nilSlice, err := config.Get[[]string](accessor, "nothing")
	require.NoError(t, err)
	assert.Nil(t, nilSlice)

	generic, err := config.Get[any](accessor, "map")
	require.NoError(t, err)
	assert.IsType(t, map[string]any{}, generic)
}

func TestGet_NestedElementErrorPath(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, "ports: [80, 443, http]\n")

	_, err := config.Get[[]int](accessor, "ports")

	var cfgErr *config.Error

	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, config.Path{"ports", "2"}, cfgErr.Path)
}

func TestGet_MapOfSections(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, `
sources:
  "0.2.0":
    url: "https://example.com/v0.2.0.zip"
    sha256: "60ea8261389e4d835eabb1d247a999a59a47733657d20654bac560cef8a63b9c"
  "0.1.1":
    url: "https://example.com/v0.1.1.zip"
    sha256: "2e177025c77d96cf9ccd994008dc5281e2385e1ee1bc89ca261807ce3f32c692"
`)

	type versionSource struct {
		URL    string `yaml:"url"`
		SHA256 string `yaml:"sha256"`
	}

	versions, err := config.Get[map[string]versionSource](accessor, "sources")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "https://example.com/v0.2.0.zip", versions["0.2.0"].URL)
	assert.Equal(t, "2e177025c77d96cf9ccd994008dc5281e2385e1ee1bc89ca261807ce3f32c692", versions["0.1.1"].SHA256)
}

func TestGet_IntegerMapKeys(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, "codes:\n  404: not found\n  500: internal\n")

	codes, err := config.Get[map[int]string](accessor, "codes")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{404: "not found", 500: "internal"}, codes)
}

func TestGet_Durations(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, "milli: 15\ndayLong: 1d\ndayShort: 24h\nmixed: 1h30m\nbad: 5 parsecs\n")

	dayLong, err := config.Get[time.Duration](accessor, "dayLong")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, dayLong)

	dayShort, err := config.Get[time.Duration](accessor, "dayShort")
	require.NoError(t, err)
	assert.Equal(t, dayLong, dayShort)

	mixed, err := config.Get[time.Duration](accessor, "mixed")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, mixed)

	raw, err := config.Get[time.Duration](accessor, "milli")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Nanosecond, raw)

	milli, err := config.Get[time.Duration](mustParse(t, "milli: 15\n", config.WithDurationUnit(time.Millisecond)), "milli")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Millisecond, milli)

	_, err = config.Get[time.Duration](accessor, "bad")
	require.ErrorIs(t, err, config.ErrTypeMismatch)
}

func TestGet_TextUnmarshaler(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, "addr: 10.0.0.1\nbad: not-an-ip\n")

	addr, err := config.Get[netip.Addr](accessor, "addr")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), addr)

	_, err = config.Get[netip.Addr](accessor, "bad")
	require.ErrorIs(t, err, config.ErrTypeMismatch)
}

func TestGetOr_EqualsGetOnSuccess(t *testing.T) {
	t.Parallel()

	accessor := mustParse(t, primitivesDocument)

	for _, key := range []string{"int", "long", "negative", "float", "bool", "missing"} {
		value, err := config.Get[int64](accessor, key)

		fallback := config.GetOr[int64](accessor, -1, key)
		if err != nil {
			assert.Equal(t, int64(-1), fallback, key)
		} else {
			assert.Equal(t, value, fallback, key)
		}
	}
}
