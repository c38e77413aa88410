package watch

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := NewDebouncer(30*time.Millisecond, nil)
	defer d.Stop()

	d.Add("/hub/favoriteProjects.json")
	d.Add("/projects/Game")
	d.Add("/hub/favoriteProjects.json")

	select {
	case batch := <-d.Output():
		require.Equal(t, []string{"/hub/favoriteProjects.json", "/projects/Game"}, batch)
	case <-time.After(2 * time.Second):
		t.Fatal("no batch emitted")
	}

	select {
	case batch := <-d.Output():
		t.Fatalf("unexpected second batch: %v", batch)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_StopIsIdempotent(t *testing.T) {
	d := NewDebouncer(time.Hour, nil)
	d.Add("/x")
	d.Stop()
	d.Stop()
	d.Add("/y")

	_, ok := <-d.Output()
	require.False(t, ok)
}

func TestDebouncer_DroppedBatchUsesLogger(t *testing.T) {
	var logs bytes.Buffer
	d := NewDebouncer(time.Hour, slog.New(slog.NewTextHandler(&logs, nil)))
	defer d.Stop()

	for i := 0; i < cap(d.output)+1; i++ {
		d.Add("/projects/Game")
		d.flush()
	}

	require.Len(t, d.output, cap(d.output))
	require.Contains(t, logs.String(), "change batch dropped")
}

func TestNew_SkipsMissingDirectories(t *testing.T) {
	dir := t.TempDir()

	w, err := New(filesystem.NewOSFileSystem(), []string{dir, dir, filepath.Join(dir, "missing"), ""})
	require.NoError(t, err)
	require.Equal(t, []string{dir}, w.Watched())
	require.NoError(t, w.fsw.Close())

	_, err = New(filesystem.NewOSFileSystem(), []string{filepath.Join(dir, "missing")})
	require.ErrorIs(t, err, ErrNothingToWatch)
}

func TestRun_ReportsChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := New(filesystem.NewOSFileSystem(), []string{dir}, WithWindow(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, paths []string) {
			batches <- paths
		})
	}()

	target := filepath.Join(dir, "favoriteProjects.json")
	require.NoError(t, os.WriteFile(target, []byte(`"[]"`), 0o644))

	select {
	case paths := <-batches:
		require.Contains(t, paths, target)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
