package projects

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	require.Equal(t, filepath.FromSlash("/home/dev/Game"), CleanPath(`/home/dev/Game/`))
	require.Equal(t, filepath.FromSlash("/home/dev/Game"), CleanPath(`\home\dev\Game`))
	require.Equal(t, filepath.FromSlash("/home/dev/Game"), CleanPath(" /home/dev//sub/../Game \n"))
	require.Equal(t, "", CleanPath("   "))
}

func TestPathKey(t *testing.T) {
	require.Equal(t, "/home/dev/game", PathKey("/home/dev/Game", true))
	require.Equal(t, "/home/dev/Game", PathKey("/home/dev/Game", false))
}
