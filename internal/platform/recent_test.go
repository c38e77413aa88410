package platform

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/models"
	"github.com/stretchr/testify/require"
)

func prefsDoc(prefs map[string]string) string {
	doc := `<unity_prefs version_major="1" version_minor="1">` + "\n"
	for name, value := range prefs {
		doc += fmt.Sprintf("\t<pref name=%q type=\"string\">%s</pref>\n", name, value)
	}
	return doc + "</unity_prefs>\n"
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestParsePrefs(t *testing.T) {
	doc := prefsDoc(map[string]string{
		"RecentlyUsedProjectPaths-1": b64("/home/me/Second"),
		"RecentlyUsedProjectPaths-0": b64("/home/me/First"),
		"RecentlyUsedProjectPaths-2": b64(""),
		"UnityEditor.Something":      b64("/ignored"),
		"RecentlyUsedProjectPaths-3": b64("/home/me/Third\x00"),
	})

	got, err := ParsePrefs([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"/home/me/First", "/home/me/Second", "/home/me/Third"}, got)
}

func TestParsePrefs_Malformed(t *testing.T) {
	_, err := ParsePrefs([]byte("<unity_prefs><pref"))
	require.Error(t, err)
}

func TestPrefsFileSource(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/home/me/.local/share/unity3d/prefs", []byte(prefsDoc(map[string]string{
		"RecentlyUsedProjectPaths-0": b64("/home/me/Game"),
	})))

	src := NewPrefsFileSource(fs, "/home/me/.local/share/unity3d/prefs")
	got, err := src.Recent()
	require.NoError(t, err)
	require.Equal(t, []string{"/home/me/Game"}, got)

	_, err = NewPrefsFileSource(fs, "/missing").Recent()
	require.Error(t, err)
}

func TestStaticRecentSource(t *testing.T) {
	src := StaticRecentSource{"/a", "/b"}
	got, err := src.Recent()
	require.NoError(t, err)
	require.Equal(t, []string{"/a", "/b"}, got)

	got[0] = "/changed"
	again, _ := src.Recent()
	require.Equal(t, "/a", again[0])
}

func TestReadRecentValues_UnreadableValueIsWarned(t *testing.T) {
	values := map[string][]byte{
		"RecentlyUsedProjectPaths-1": []byte("C:/Projects/Second\x00"),
		"RecentlyUsedProjectPaths-0": []byte("C:/Projects/First\x00"),
		"RecentlyUsedProjectPaths-3": []byte("\x00"),
		"UnityEditor.Something":      []byte("ignored"),
	}
	read := func(name string) ([]byte, error) {
		if name == "RecentlyUsedProjectPaths-2" {
			return nil, errors.New("unexpected value type")
		}
		return values[name], nil
	}
	names := []string{"UnityEditor.Something", "RecentlyUsedProjectPaths-2", "RecentlyUsedProjectPaths-1",
		"RecentlyUsedProjectPaths-3", "RecentlyUsedProjectPaths-0"}

	got, err := readRecentValues(`HKCU\Editor`, names, read)
	require.Equal(t, []string{"C:/Projects/First", "C:/Projects/Second"}, got)
	require.ErrorIs(t, err, models.ErrMalformedRecord)
	require.Contains(t, err.Error(), `HKCU\Editor\RecentlyUsedProjectPaths-2`)
	require.Contains(t, err.Error(), "unexpected value type")
}
