package naming

import "path/filepath"

// AnnotationExt is the extension written for every rewritten annotation.
const AnnotationExt = ".xml"

// AnnotationPath returns <dir>/<stem>.xml.
func AnnotationPath(dir, stem string) string {
	return filepath.Join(dir, stem+AnnotationExt)
}

// ImagePath returns <dir>/<stem><ext>. ext keeps its leading dot and
// original case.
func ImagePath(dir, stem, ext string) string {
	return filepath.Join(dir, stem+ext)
}
