package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{ lines []string }

func (m *mockLogger) add(level, format string, args ...interface{}) {
	m.lines = append(m.lines, level+" "+fmt.Sprintf(format, args...))
}
func (m *mockLogger) Info(f string, a ...interface{})    { m.add("INFO", f, a...) }
func (m *mockLogger) Success(f string, a ...interface{}) { m.add("SUCCESS", f, a...) }
func (m *mockLogger) Warn(f string, a ...interface{})    { m.add("WARN", f, a...) }
func (m *mockLogger) Error(f string, a ...interface{})   { m.add("ERROR", f, a...) }

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	got, err := ResolveRoot(dir)
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(dir)
	assert.Equal(t, want, got)

	_, err = ResolveRoot(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrPathNotFound)

	_, err = ResolveRoot("")
	assert.ErrorIs(t, err, ErrPathNotFound)

	_, err = ResolveRoot(file)
	assert.ErrorIs(t, err, ErrNotDirectory)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestTakeInventory(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "cat.xml")
	touch(t, root, "cat.jpg")
	touch(t, root, "orphan.PNG")
	touch(t, root, "lonely.xml")
	touch(t, root, "note.txt")
	touch(t, filepath.Join(root, "sub"), "dog.xml")
	touch(t, filepath.Join(root, "sub"), "dog.png")
	touch(t, filepath.Join(root, "IMG_WITHOUT_XML"), "old.jpg")

	inv, err := TakeInventory(context.Background(), root, true)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.Pairs)
	assert.Len(t, inv.ImageWithoutAnnotation, 1)
	assert.Len(t, inv.AnnotationWithoutImage, 1)
	assert.Len(t, inv.NotNeeded, 1)
	assert.Equal(t, 3, inv.Strays())
	assert.Equal(t, 2, inv.Directories)
	assert.Equal(t, 1, inv.UpperCaseExtensions)

	shallow, err := TakeInventory(context.Background(), root, false)
	require.NoError(t, err)
	assert.Equal(t, 1, shallow.Pairs)
}

func TestTakeInventory_ChangesNothing(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "orphan.jpg")
	touch(t, root, "note.txt")

	_, err := TakeInventory(context.Background(), root, true)
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunCheck(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "note.txt")

	log := &mockLogger{}
	assert.True(t, RunCheck(context.Background(), root, true, log))
	assert.Contains(t, log.lines, "WARN Unrecognized files: 1 (would move to FILES_NOT_NEEDED)")
	assert.Contains(t, log.lines, "WARN Annotation/image pairs: 0")
	assert.Contains(t, log.lines, "WARN Stray files: 1 (use --move to quarantine them)")

	log = &mockLogger{}
	assert.False(t, RunCheck(context.Background(), filepath.Join(root, "nope"), true, log))
}
