package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeContent(t *testing.T) {
	content := ComposeContent("about", 3, []byte("heading: About"))
	assert.Contains(t, content, "# rogsite section: about (version 3)\n")
	assert.Contains(t, content, `\n\n starts a new paragraph`)
	assert.Contains(t, content, "\nheading: About\n")

	fresh := ComposeContent("hero", 0, nil)
	assert.Contains(t, fresh, "# rogsite section: hero\n")
	assert.NotContains(t, fresh, "version")
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank([]byte("# only\n   \n  # comments\n")))
	assert.False(t, IsBlank([]byte("# header\nheading: x\n")))
}

func TestPathForKind(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	path, err := PathForKind("get_involved")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rogsite", "get_involved.rogsite.yaml"), path)

	path, err = PathForKind("../etc")
	require.NoError(t, err)
	assert.Equal(t, "---etc.rogsite.yaml", filepath.Base(path))
}

func TestOpenAtRunsEditor(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf 'heading: Edited\\n' > \"$1\"\n"), 0o700))
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)

	path := filepath.Join(dir, "edit", "about.rogsite.yaml")
	out, changed, err := OpenAt(path, []byte("heading: Before\n"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "heading: Edited\n", string(out))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	t.Setenv("EDITOR", "true")
	_, changed, err = OpenAt(path, []byte("heading: Same\n"))
	require.NoError(t, err)
	assert.False(t, changed)
}
