// Package triage relocates stray files out of the working set and
// normalizes file extensions.
//
// Three categories are quarantined, each into its own subdirectory of the
// file's current directory, created the first time it is needed:
//
//	IMG_WITHOUT_XML   image with no annotation sharing its stem
//	XML_WITHOUT_IMG   annotation with no image sharing its stem
//	FILES_NOT_NEEDED  anything that is neither an annotation nor an image
//
// Every handler is a no-op for a file that no longer exists, so handlers
// can run after earlier ones (or a rename) have already moved the file.
package triage
