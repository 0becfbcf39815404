//go:build !noenum

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_Enum(t *testing.T) {
	t.Parallel()

	fpath := writeDocument(t, "mode: B\nother: D\n")

	code, stdout, stderr := execute("get", fpath, "mode", "--enum", "A,B,C")
	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "B\n", stdout)

	code, stdout, stderr = execute("get", fpath, "other", "--enum", "A,B,C")
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "possible: A, B, C")

	code, stdout, _ = execute("get", fpath, "other", "--enum", "A,B,C", "--default", "A")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "A\n", stdout)
}
