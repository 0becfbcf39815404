package hjarta_test

import (
	"testing"

	hjarta "github.com/0xalexb/hjarta-yaml"

	"github.com/stretchr/testify/require"
)

func TestVersion_DefaultValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dev", hjarta.Version)
	require.Equal(t, "none", hjarta.Commit)
	require.Equal(t, "unknown", hjarta.CompiledAt)
	require.Equal(t, "dev (none, built unknown)", hjarta.VersionString())
}
