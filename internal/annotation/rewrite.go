// Package annotation rewrites labelImg (Pascal VOC) annotation files so the
// image reference they embed follows a renamed image.
//
// Only two elements matter: "filename", holding the bare image file name,
// and "path", holding the absolute image path. Both are rewritten wherever
// they appear in the tree; everything else is written back untouched.
package annotation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/backmassage/annotrim/internal/naming"
)

// ErrParseFailed means the annotation could not be read as an XML tree.
var ErrParseFailed = errors.New("annotation parse failed")

// Element tags rewritten by [Rewrite].
const (
	TagFilename = "filename"
	TagPath     = "path"
)

// Rewrite parses annotationPath, points its filename and path elements at
// <dir>/<stem><imageExt>, writes the result to <dir>/<stem>.xml, and removes
// the original. The original is removed only after the new file has been
// written in full. It returns the path of the new annotation.
func Rewrite(annotationPath, stem, imageExt, dir string) (string, error) {
	doc, err := Parse(annotationPath)
	if err != nil {
		return "", err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	imageName := stem + imageExt
	Retarget(doc, imageName, filepath.Join(absDir, imageName))

	newPath := naming.AnnotationPath(absDir, stem)
	if err := writeFile(doc, newPath); err != nil {
		return "", err
	}

	oldAbs, err := filepath.Abs(annotationPath)
	if err == nil && oldAbs == newPath {
		return newPath, nil
	}
	if err := os.Remove(annotationPath); err != nil {
		return newPath, fmt.Errorf("remove %s: %w", annotationPath, err)
	}
	return newPath, nil
}

// Parse reads an annotation document. Syntax errors and documents without
// a root element are reported as [ErrParseFailed].
func Parse(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailed, path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: %s: no root element", ErrParseFailed, path)
	}
	return doc, nil
}

// Retarget sets the text of every filename element to name and every path
// element to path, at any depth including the root. It returns how many
// elements were changed.
func Retarget(doc *etree.Document, name, path string) int {
	changed := 0
	var visit func(e *etree.Element)
	visit = func(e *etree.Element) {
		switch e.Tag {
		case TagFilename:
			e.SetText(name)
			changed++
		case TagPath:
			e.SetText(path)
			changed++
		}
		for _, child := range e.ChildElements() {
			visit(child)
		}
	}
	if root := doc.Root(); root != nil {
		visit(root)
	}
	return changed
}

// Fields returns the text of the first filename and path elements found in
// document order. Missing elements yield empty strings.
func Fields(doc *etree.Document) (filename, path string) {
	if e := doc.FindElement("//" + TagFilename); e != nil {
		filename = e.Text()
	}
	if e := doc.FindElement("//" + TagPath); e != nil {
		path = e.Text()
	}
	return filename, path
}

// writeFile serializes doc to a temporary file beside target and renames it
// into place, so a failed write never leaves a truncated annotation.
func writeFile(doc *etree.Document, target string) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".annotrim-*.xml")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", target, err)
	}
	tmpName := tmp.Name()

	if _, err := doc.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", target, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", target, err)
	}
	return nil
}
