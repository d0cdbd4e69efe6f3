package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/annotrim/internal/pairing"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))
	return path
}

func recorder(seen *[]string) Handler {
	return Handler{Name: "record", Fn: func(path string) error {
		*seen = append(*seen, path)
		return nil
	}}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestWalk_Recursive(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.xml")
	touch(t, root, "a.jpg")
	touch(t, filepath.Join(root, "sub"), "c.png")
	touch(t, filepath.Join(root, "sub", "deeper"), "d.xml")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	var seen []string
	err := Walk(context.Background(), root, true, []Handler{recorder(&seen)}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.jpg", "b.xml", "sub/c.png", "sub/deeper/d.xml"}, rel(t, root, seen))
}

func TestWalk_SingleLevel(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.jpg")
	touch(t, filepath.Join(root, "sub"), "c.png")

	var seen []string
	require.NoError(t, Walk(context.Background(), root, false, []Handler{recorder(&seen)}, nil))
	assert.Equal(t, []string{"a.jpg"}, rel(t, root, seen))
}

func TestWalk_SkipsQuarantineDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "keep.jpg")
	for _, q := range Quarantines {
		touch(t, filepath.Join(root, q), "stray.jpg")
		touch(t, filepath.Join(root, "nested", q), "stray.jpg")
	}

	var seen []string
	require.NoError(t, Walk(context.Background(), root, true, []Handler{recorder(&seen)}, nil))
	assert.Equal(t, []string{"keep.jpg"}, rel(t, root, seen))
}

func TestWalk_HandlerOrderAndErrors(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "x.txt")

	var order []string
	boom := errors.New("boom")
	handlers := []Handler{
		{Name: "first", Fn: func(string) error { order = append(order, "first"); return nil }},
		{Name: "skip", Fn: func(string) error { order = append(order, "skip"); return pairing.ErrNotApplicable }},
		{Name: "fail", Fn: func(string) error { order = append(order, "fail"); return boom }},
		{Name: "last", Fn: func(string) error { order = append(order, "last"); return nil }},
	}

	var reported []string
	onErr := func(handler, path string, err error) {
		assert.ErrorIs(t, err, boom)
		reported = append(reported, handler)
	}

	require.NoError(t, Walk(context.Background(), root, true, handlers, onErr))
	assert.Equal(t, []string{"first", "skip", "fail", "last"}, order)
	assert.Equal(t, []string{"fail"}, reported)
}

func TestWalk_MissingRoot(t *testing.T) {
	err := Walk(context.Background(), filepath.Join(t.TempDir(), "nope"), true, nil, nil)
	assert.Error(t, err)
}

func TestWalk_Cancelled(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen []string
	err := Walk(ctx, root, true, []Handler{recorder(&seen)}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, seen)
}

func TestAnnotations(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.xml")
	touch(t, root, "A.XML")
	touch(t, root, "c.jpg")
	touch(t, filepath.Join(root, "sub"), "d.xml")

	files, err := Annotations(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"A.XML", "b.xml"}, rel(t, root, files))
}

func TestWalk_FollowsFileSymlinks(t *testing.T) {
	root := t.TempDir()
	target := touch(t, t.TempDir(), "real.jpg")
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link.jpg")))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link.xml")))
	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(root, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling.jpg")))

	var seen []string
	require.NoError(t, Walk(context.Background(), root, true, []Handler{recorder(&seen)}, nil))
	assert.Equal(t, []string{"link.jpg", "link.xml"}, rel(t, root, seen))

	files, err := Annotations(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"link.xml"}, rel(t, root, files))
}

func TestIsQuarantine(t *testing.T) {
	assert.True(t, IsQuarantine("IMG_WITHOUT_XML"))
	assert.True(t, IsQuarantine("XML_WITHOUT_IMG"))
	assert.True(t, IsQuarantine("FILES_NOT_NEEDED"))
	assert.False(t, IsQuarantine("img_without_xml"))
	assert.False(t, IsQuarantine("images"))
}
