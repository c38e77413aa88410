package plugin_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/launcher"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
	"github.com/LeLocTai/unityhub-launcher/internal/notify"
	"github.com/LeLocTai/unityhub-launcher/internal/platform"
	"github.com/LeLocTai/unityhub-launcher/internal/plugin"
	"github.com/LeLocTai/unityhub-launcher/internal/query"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	fs       *filesystem.MockFileSystem
	launcher *launcher.MockLauncher
	warnings *notify.Collector
	recent   platform.StaticRecentSource
	settings plugin.Settings
	matcher  query.Matcher
}

func testLocations() platform.Locations {
	return platform.Locations{
		HubDataDir:        "/hub-data",
		HubInstallDir:     "/hub",
		HubExecutableName: "unityhub",
		EditorsRoot:       "/editors",
		EditorExecutable:  "Editor/Unity",
	}
}

// newTestEnv lays out a Hub install, one editor (2021.3.5f1) and an empty
// projects root at /projects.
func newTestEnv() *testEnv {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/hub/unityhub", []byte("bin"))
	fs.AddFile("/hub-data/favoriteProjects.json", []byte(`"[]"`))
	fs.AddFile("/hub-data/projectDir.json", []byte(`{"directoryPath": "/projects"}`))
	fs.AddDir("/projects")
	addEditor(fs, "/editors", "2021.3.5f1")

	settings := plugin.DefaultSettings(testLocations())
	settings.CaseInsensitive = false

	return &testEnv{
		fs:       fs,
		launcher: launcher.NewMockLauncher(),
		warnings: notify.NewCollector(),
		recent:   platform.StaticRecentSource{},
		settings: settings,
	}
}

func addEditor(fs *filesystem.MockFileSystem, root, version string) {
	fs.AddFile(root+"/"+version+"/Editor/Unity", []byte("bin"))
}

func addProject(fs *filesystem.MockFileSystem, path, version string, modified time.Time) {
	fs.AddFile(path+"/ProjectSettings/ProjectVersion.txt", []byte("m_EditorVersion: "+version+"\n"))
	fs.SetModTime(path, modified)
}

func (e *testEnv) setFavorites(paths ...string) {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = fmt.Sprintf(`\"%s\"`, p)
	}
	e.fs.AddFile("/hub-data/favoriteProjects.json", []byte(`"[`+strings.Join(quoted, ",")+`]"`))
}

func (e *testEnv) plugin() *plugin.Plugin {
	store := platform.NewHubStore(e.fs, testLocations(), platform.WithRecentSource(e.recent))
	opts := []plugin.Option{
		plugin.WithFileSystem(e.fs),
		plugin.WithStore(store),
		plugin.WithLauncher(e.launcher),
		plugin.WithWarner(e.warnings),
		plugin.WithSettings(e.settings),
		plugin.WithClock(func() time.Time { return now }),
	}
	if e.matcher != nil {
		opts = append(opts, plugin.WithMatcher(e.matcher))
	}
	return plugin.New(opts...)
}

func entryByTitle(entries []plugin.Entry, title string) (plugin.Entry, bool) {
	for _, e := range entries {
		if e.Title == title {
			return e, true
		}
	}
	return plugin.Entry{}, false
}

func TestReload_VersionInstalledScenario(t *testing.T) {
	env := newTestEnv()
	addProject(env.fs, "/projects/A", "2021.3.5f1", now)
	addProject(env.fs, "/projects/B", "2022.1.0f1", now)

	p := env.plugin()
	snap := p.Reload(context.Background())
	require.Empty(t, snap.Warnings)
	require.Equal(t, []string{"2021.3.5f1"}, snap.Registry.Versions())

	a, ok := snap.Lookup("/projects/A")
	require.True(t, ok)
	require.True(t, a.IsVersionInstalled)

	b, ok := snap.Lookup("/projects/B")
	require.True(t, ok)
	require.False(t, b.IsVersionInstalled)
}

func TestQuery_FavoriteRecencyScenario(t *testing.T) {
	env := newTestEnv()
	addProject(env.fs, "/projects/Foo", "2021.3.5f1", now)
	addProject(env.fs, "/projects/Bar", "2021.3.5f1", now.Add(-30*24*time.Hour))
	env.setFavorites("/projects/Foo")
	env.matcher = query.MatcherFunc(func(q, name string) int {
		if name == "Foo" {
			return 40
		}
		return 0
	})

	p := env.plugin()
	p.Reload(context.Background())

	entries := p.Query(context.Background(), "Foo")
	require.Len(t, entries, 1)
	require.Equal(t, "Foo", entries[0].Title)
	require.Equal(t, 190, entries[0].Score)
	require.Equal(t, "★  2021.3.5f1  \t/projects/Foo", entries[0].SubTitle)
	require.Equal(t, "/projects/Foo", entries[0].Ref.Path)
	require.Equal(t, p.Snapshot().ID, entries[0].Ref.SnapshotID)
}

func TestQuery_EmptyReturnsAllRanked(t *testing.T) {
	env := newTestEnv()
	addProject(env.fs, "/projects/Old", "2021.3.5f1", now.Add(-60*24*time.Hour))
	addProject(env.fs, "/projects/New", "2022.1.0f1", now)
	addProject(env.fs, "/projects/Fav", "2021.3.5f1", now.Add(-60*24*time.Hour))
	env.setFavorites("/projects/Fav")

	p := env.plugin()
	p.Reload(context.Background())

	entries := p.Query(context.Background(), "")
	require.Len(t, entries, 3)
	require.Equal(t, "Fav", entries[0].Title)
	require.Equal(t, 100, entries[0].Score)
	require.Equal(t, "New", entries[1].Title)
	require.Equal(t, 50, entries[1].Score)
	require.Equal(t, "  ❌2022.1.0f1  \t/projects/New", entries[1].SubTitle)
	require.Equal(t, "Old", entries[2].Title)
	require.Equal(t, 0, entries[2].Score)
}

func TestQuery_Limit(t *testing.T) {
	env := newTestEnv()
	for i := 0; i < 5; i++ {
		addProject(env.fs, fmt.Sprintf("/projects/P%d", i), "2021.3.5f1", now)
	}
	env.settings.Limit = 2

	p := env.plugin()
	p.Reload(context.Background())
	require.Len(t, p.Query(context.Background(), ""), 2)
}

func TestQuery_BeforeReloadAndCancelled(t *testing.T) {
	env := newTestEnv()
	addProject(env.fs, "/projects/Game", "2021.3.5f1", now)

	p := env.plugin()
	require.Nil(t, p.Snapshot())
	require.Empty(t, p.Query(context.Background(), ""))

	p.Reload(context.Background())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Empty(t, p.Query(ctx, "game"))
}

func TestActivate_FallbackScenario(t *testing.T) {
	env := newTestEnv()
	addProject(env.fs, "/projects/B", "2022.1.0f1", now)

	p := env.plugin()
	p.Reload(context.Background())
	env.warnings.Reset()

	entries := p.Query(context.Background(), "")
	require.Len(t, entries, 1)
	require.True(t, p.Activate(entries[0].Ref))

	calls := env.launcher.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "/hub/unityhub", calls[0].Executable)
	require.Equal(t, []string{"-projectPath", "/projects/B"}, calls[0].Args)
	require.Equal(t, []string{"Unity version 2022.1.0f1 not found"}, env.warnings.Messages())
}

func TestActivate_InstalledEditor(t *testing.T) {
	env := newTestEnv()
	addProject(env.fs, "/projects/A", "2021.3.5f1", now)

	p := env.plugin()
	p.Reload(context.Background())
	env.warnings.Reset()

	require.True(t, p.Activate(plugin.Ref{Path: "/projects/A"}))

	calls := env.launcher.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "/editors/2021.3.5f1/Editor/Unity", calls[0].Executable)
	require.Equal(t, []string{"-projectPath", "/projects/A"}, calls[0].Args)
	require.Empty(t, env.warnings.Messages())
}

func TestActivate_NoLauncher(t *testing.T) {
	env := newTestEnv()
	env.fs = filesystem.NewMockFileSystem()
	env.fs.AddFile("/hub-data/projectDir.json", []byte(`{"directoryPath": "/projects"}`))
	addProject(env.fs, "/projects/B", "2022.1.0f1", now)

	p := env.plugin()
	snap := p.Reload(context.Background())
	require.Empty(t, snap.HubExecutable)
	env.warnings.Reset()

	require.True(t, p.Activate(plugin.Ref{SnapshotID: snap.ID, Path: "/projects/B"}))
	require.Empty(t, env.launcher.Calls())
	require.Equal(t, []string{"Unity version 2022.1.0f1 and Unity Hub not found"}, env.warnings.Messages())
}

func TestActivate_LaunchFailure(t *testing.T) {
	env := newTestEnv()
	addProject(env.fs, "/projects/A", "2021.3.5f1", now)
	env.launcher.StartError = errors.New("access denied")

	p := env.plugin()
	p.Reload(context.Background())
	env.warnings.Reset()

	require.True(t, p.Activate(plugin.Ref{Path: "/projects/A"}))
	require.Equal(t, []string{"Could not start /editors/2021.3.5f1/Editor/Unity: access denied"}, env.warnings.Messages())
}

func TestActivate_UnknownAndStaleRefs(t *testing.T) {
	env := newTestEnv()
	addProject(env.fs, "/projects/A", "2021.3.5f1", now)

	p := env.plugin()
	require.True(t, p.Activate(plugin.Ref{Path: "/projects/A"}))
	require.Equal(t, []string{"No projects indexed yet"}, env.warnings.Messages())

	first := p.Reload(context.Background())
	ref := p.Query(context.Background(), "")[0].Ref
	second := p.Reload(context.Background())
	require.NotEqual(t, first.ID, second.ID)

	env.warnings.Reset()
	require.True(t, p.Activate(ref))
	require.Len(t, env.launcher.Calls(), 1)

	require.True(t, p.Activate(plugin.Ref{SnapshotID: second.ID, Path: "/projects/Gone"}))
	require.Equal(t, []string{"Project /projects/Gone is no longer available"}, env.warnings.Messages())
	require.Len(t, env.launcher.Calls(), 1)
}

func TestReload_MissingPrimaryEditorRootScenario(t *testing.T) {
	env := newTestEnv()
	env.settings.EditorsRoot = "/does/not/exist"
	addProject(env.fs, "/projects/A", "2021.3.5f1", now)
	addProject(env.fs, "/projects/B", "2022.1.0f1", now)

	p := env.plugin()
	snap := p.Reload(context.Background())

	require.Zero(t, snap.Registry.Len())
	var sawMissingRoot, sawConfigMissing bool
	for _, w := range snap.Warnings {
		if errors.Is(w, models.ErrSourceUnavailable) && strings.Contains(w.Error(), "/does/not/exist") {
			sawMissingRoot = true
		}
		if errors.Is(w, models.ErrConfigurationMissing) {
			sawConfigMissing = true
		}
	}
	require.True(t, sawMissingRoot)
	require.True(t, sawConfigMissing)
	require.Len(t, env.warnings.Messages(), len(snap.Warnings))

	entries := p.Query(context.Background(), "")
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.False(t, e.Project.IsVersionInstalled)
	}
}

func TestReload_SourcesDegradeIndependently(t *testing.T) {
	env := newTestEnv()
	env.fs.AddFile("/hub-data/favoriteProjects.json", []byte(`{broken`))
	env.recent = platform.StaticRecentSource{"/elsewhere/Recent"}
	addProject(env.fs, "/projects/Root", "2021.3.5f1", now)
	addProject(env.fs, "/elsewhere/Recent", "2021.3.5f1", now)

	p := env.plugin()
	snap := p.Reload(context.Background())

	require.Len(t, snap.Projects, 2)
	require.Len(t, snap.Warnings, 1)
	require.ErrorIs(t, snap.Warnings[0], models.ErrMalformedRecord)
}

func TestReload_SecondaryAndExtraRoots(t *testing.T) {
	env := newTestEnv()
	env.fs.AddFile("/hub-data/secondaryInstallPath.json", []byte(`"/secondary"`))
	addEditor(env.fs, "/secondary", "2021.3.5f1")
	addEditor(env.fs, "/secondary", "2022.1.0f1")
	addEditor(env.fs, "/extra", "6000.0.23f1")
	env.settings.ExtraEditorRoots = []string{"/extra"}

	p := env.plugin()
	snap := p.Reload(context.Background())

	require.Equal(t, []string{"2021.3.5f1", "2022.1.0f1", "6000.0.23f1"}, snap.Registry.Versions())
	editor, ok := snap.Registry.Lookup("2021.3.5f1")
	require.True(t, ok)
	require.Equal(t, "/editors/2021.3.5f1/Editor/Unity", editor.Path)
}

func TestReload_ProjectsRootOverride(t *testing.T) {
	env := newTestEnv()
	env.settings.ProjectsRoot = "/work"
	addProject(env.fs, "/work/Game", "2021.3.5f1", now)
	addProject(env.fs, "/projects/Ignored", "2021.3.5f1", now)

	snap := env.plugin().Reload(context.Background())
	require.Len(t, snap.Projects, 1)
	require.Equal(t, "/work/Game", snap.Projects[0].Path)
}

func TestReload_CancelledKeepsPrevious(t *testing.T) {
	env := newTestEnv()
	addProject(env.fs, "/projects/A", "2021.3.5f1", now)

	p := env.plugin()
	first := p.Reload(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := p.Reload(ctx)

	require.Same(t, first, got)
	require.Same(t, first, p.Snapshot())
}

func TestReload_ConcurrentQueriesSeeWholeSnapshots(t *testing.T) {
	env := newTestEnv()
	for i := 0; i < 20; i++ {
		addProject(env.fs, fmt.Sprintf("/projects/P%02d", i), "2021.3.5f1", now)
	}

	p := env.plugin()
	p.Reload(context.Background())

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				entries := p.Query(context.Background(), "")
				if len(entries) != 20 {
					t.Errorf("saw partial index of %d projects", len(entries))
					return
				}
			}
		}()
	}

	for i := 0; i < 10; i++ {
		p.Reload(context.Background())
	}
	close(stop)
	wg.Wait()
}

func TestSubTitle(t *testing.T) {
	p := &models.Project{
		Path:               `C:\Projects\Game`,
		RequiredVersion:    "6000.0.23f1",
		IsFavorite:         false,
		IsVersionInstalled: true,
	}
	require.Equal(t, "   6000.0.23f1 \t"+`C:\Projects\Game`, plugin.SubTitle(p))
}
