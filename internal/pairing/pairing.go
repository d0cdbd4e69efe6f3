// Package pairing associates annotation files with their images by file
// stem. Lookups are pure existence checks; nothing on disk is modified.
//
// Outcomes are reported through sentinel errors so callers can tell a
// missing partner ([ErrImageNotFound], [ErrAnnotationNotFound]) from a
// file the lookup does not apply to ([ErrNotApplicable]) with errors.Is.
package pairing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotApplicable means the file is not of the kind the lookup
	// starts from. Callers treat it as "skip silently".
	ErrNotApplicable = errors.New("not applicable")

	// ErrImageNotFound means no image with a known extension shares the
	// annotation's stem.
	ErrImageNotFound = errors.New("image not found")

	// ErrAnnotationNotFound means no .xml file shares the image's stem.
	ErrAnnotationNotFound = errors.New("annotation not found")
)

// AnnotationExt is the only annotation extension looked up.
const AnnotationExt = ".xml"

// ImageExtensions lists the image extensions in lookup preference order.
// The first one that exists on disk wins.
var ImageExtensions = []string{".png", ".PNG", ".jpg", ".JPG", ".jpeg", ".JPEG"}

// recognized holds upper-cased extensions the tool knows how to handle.
var recognized = map[string]bool{
	".XML":  true,
	".PNG":  true,
	".JPG":  true,
	".JPEG": true,
}

// IsAnnotation reports whether path has an .xml extension (any case).
func IsAnnotation(path string) bool {
	return strings.EqualFold(filepath.Ext(path), AnnotationExt)
}

// IsImage reports whether path has a png/jpg/jpeg extension (any case).
func IsImage(path string) bool {
	ext := strings.ToUpper(filepath.Ext(path))
	return ext != ".XML" && recognized[ext]
}

// IsRecognized reports whether path is an annotation or an image. Files
// without an extension are never recognized.
func IsRecognized(path string) bool {
	return recognized[strings.ToUpper(filepath.Ext(path))]
}

// Stem returns path without its extension.
func Stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// ResolveImage returns the image belonging to annotationPath. A path with
// an extension other than .xml yields [ErrNotApplicable]; a path without
// an extension is treated as a bare stem.
func ResolveImage(annotationPath string) (string, error) {
	ext := filepath.Ext(annotationPath)
	if ext != "" && !strings.EqualFold(ext, AnnotationExt) {
		return "", ErrNotApplicable
	}
	stem := Stem(annotationPath)
	for _, imgExt := range ImageExtensions {
		candidate := filepath.Clean(stem + imgExt)
		if exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrImageNotFound, annotationPath)
}

// ResolveAnnotation returns the annotation belonging to imagePath. A path
// with a non-image extension yields [ErrNotApplicable].
func ResolveAnnotation(imagePath string) (string, error) {
	ext := filepath.Ext(imagePath)
	if ext != "" && !IsImage(imagePath) {
		return "", ErrNotApplicable
	}
	candidate := Stem(imagePath) + AnnotationExt
	if !exists(candidate) {
		return "", fmt.Errorf("%w: %s", ErrAnnotationNotFound, candidate)
	}
	return candidate, nil
}

// exists reports whether path names an existing regular file or other
// non-directory entry.
func exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
