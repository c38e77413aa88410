package query_test

import (
	"testing"

	"github.com/LeLocTai/unityhub-launcher/internal/editors"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
	"github.com/LeLocTai/unityhub-launcher/internal/query"
	"github.com/stretchr/testify/require"
)

func TestResolveTarget(t *testing.T) {
	reg := editors.NewRegistry(models.Editor{Version: "2021.3.5f1", Path: `C:\Hub\2021.3.5f1\Editor\Unity.exe`})
	installed := &models.Project{Name: "A", Path: `C:\Projects\A`, RequiredVersion: "2021.3.5f1"}
	missing := &models.Project{Name: "B", Path: `C:\Projects\B`, RequiredVersion: "2022.1.0f1"}

	t.Run("editor installed", func(t *testing.T) {
		target, err := query.ResolveTarget(installed, reg, `C:\Hub\Unity Hub.exe`)
		require.NoError(t, err)
		require.Equal(t, `C:\Hub\2021.3.5f1\Editor\Unity.exe`, target.Executable)
		require.Equal(t, []string{"-projectPath", `C:\Projects\A`}, target.Args)
		require.False(t, target.UsedFallback)
	})

	t.Run("fallback", func(t *testing.T) {
		target, err := query.ResolveTarget(missing, reg, `C:\Hub\Unity Hub.exe`)
		require.NoError(t, err)
		require.Equal(t, `C:\Hub\Unity Hub.exe`, target.Executable)
		require.Equal(t, []string{"-projectPath", `C:\Projects\B`}, target.Args)
		require.True(t, target.UsedFallback)
	})

	t.Run("no launcher", func(t *testing.T) {
		_, err := query.ResolveTarget(missing, reg, "")
		require.ErrorIs(t, err, models.ErrNoLauncher)
		require.Contains(t, err.Error(), "2022.1.0f1")
	})

	t.Run("nil registry", func(t *testing.T) {
		target, err := query.ResolveTarget(installed, nil, "/hub")
		require.NoError(t, err)
		require.True(t, target.UsedFallback)
	})
}
