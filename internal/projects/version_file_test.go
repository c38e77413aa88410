package projects_test

import (
	"errors"
	"testing"

	"github.com/LeLocTai/unityhub-launcher/internal/filesystem"
	"github.com/LeLocTai/unityhub-launcher/internal/projects"
	"github.com/stretchr/testify/require"
)

func TestParseVersionFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		version  string
		revision string
	}{
		{"plain", "m_EditorVersion: 2021.3.5f1\n", "2021.3.5f1", ""},
		{"with revision", "m_EditorVersion: 2021.3.5f1\nm_EditorVersionWithRevision: 2021.3.5f1 (40eb3a945986)\n", "2021.3.5f1", "40eb3a945986"},
		{"crlf", "m_EditorVersion: 2022.1.0f1\r\nm_EditorVersionWithRevision: 2022.1.0f1 (abc)\r\n", "2022.1.0f1", "abc"},
		{"no trailing newline", "m_EditorVersion: 6000.0.23f1", "6000.0.23f1", ""},
		{"extra whitespace", "  m_EditorVersion:    2020.3.1f1   \n", "2020.3.1f1", ""},
		{"unknown keys ignored", "foo: bar\nm_EditorVersion: 2019.4.40f1\n", "2019.4.40f1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := projects.ParseVersionFile([]byte(tt.content))
			require.NoError(t, err)
			require.Equal(t, tt.version, info.Version)
			require.Equal(t, tt.revision, info.Revision)
		})
	}
}

func TestParseVersionFile_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"missing key", "m_EditorVersionWithRevision: 2021.3.5f1 (abc)\n"},
		{"empty value", "m_EditorVersion:\n"},
		{"binary garbage", "\x00\x01\x02"},
		{"value with spaces", "m_EditorVersion: 2021.3.5f1 extra\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := projects.ParseVersionFile([]byte(tt.content))
			require.Error(t, err)
		})
	}
}

func TestVersionFile_Read(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/projects/Game/ProjectSettings/ProjectVersion.txt", []byte("m_EditorVersion: 2021.3.5f1\n"))
	fs.AddDir("/projects/NotAProject")
	fs.AddFile("/projects/Broken/ProjectSettings/ProjectVersion.txt", []byte("garbage"))
	fs.AddFile("/projects/Locked/ProjectSettings/ProjectVersion.txt", []byte("m_EditorVersion: 2021.3.5f1\n"))
	denied := errors.New("permission denied")
	fs.FailRead("/projects/Locked/ProjectSettings/ProjectVersion.txt", denied)

	vf := projects.NewVersionFile(fs)

	info, err := vf.Read("/projects/Game")
	require.NoError(t, err)
	require.Equal(t, "2021.3.5f1", info.Version)

	_, err = vf.Read("/projects/NotAProject")
	require.ErrorIs(t, err, projects.ErrNotAProject)

	_, err = vf.Read("/projects/Broken")
	require.Error(t, err)
	require.NotErrorIs(t, err, projects.ErrNotAProject)

	_, err = vf.Read("/projects/Locked")
	require.ErrorIs(t, err, denied)
}
