package triage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtensionRule(t *testing.T) {
	tests := []struct {
		in      string
		want    ExtensionRule
		wantErr bool
	}{
		{"jpeg->jpg", ExtensionRule{From: "jpeg", To: "jpg"}, false},
		{".JPEG->.jpg", ExtensionRule{From: "JPEG", To: "jpg"}, false},
		{" png -> jpg ", ExtensionRule{From: "png", To: "jpg"}, false},
		{"jpeg", ExtensionRule{}, true},
		{"->jpg", ExtensionRule{}, true},
		{"jpeg->", ExtensionRule{}, true},
		{"a->b->c", ExtensionRule{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExtensionRule(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.From+"->"+tt.want.To, got.String())
		})
	}
}

func TestExtensionRule_Target(t *testing.T) {
	rule := ExtensionRule{From: "jpeg", To: "jpg"}
	tests := []struct {
		rule ExtensionRule
		in   string
		want string
	}{
		{rule, "/d/photo.jpeg", "/d/photo.jpg"},
		{rule, "/d/photo.Jpeg", "/d/photo.jpg"},
		{rule, "/d/photo.jpg", "/d/photo.jpg"},
		// Upper-case normalization is evaluated last and wins.
		{rule, "/d/photo.JPEG", "/d/photo.jpeg"},
		{rule, "/d/photo.PNG", "/d/photo.png"},
		{rule, "/d/noext", "/d/noext"},
		{rule, "/d/v.MP4", "/d/v.mp4"},
		{rule, "/d/v.123", "/d/v.123"},
		{ExtensionRule{}, "/d/photo.jpeg", "/d/photo.jpeg"},
		{ExtensionRule{}, "/d/photo.XML", "/d/photo.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String()+" "+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Target(tt.in))
		})
	}
}

func TestExtensionRule_NormalizeTwiceIsNoOp(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "photo.jpeg")
	rule, err := ParseExtensionRule("jpeg->jpg")
	require.NoError(t, err)

	got, err := rule.Normalize(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo.jpg"), got)
	assert.NoFileExists(t, src)
	assert.FileExists(t, got)

	// The .jpeg file is gone; a second pass changes nothing.
	again, err := rule.Normalize(src)
	require.NoError(t, err)
	assert.Equal(t, src, again)

	again, err = rule.Normalize(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.FileExists(t, got)
}
