package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/annotrim/internal/pairing"
)

// Quarantine directory names.
const (
	DirImageWithoutAnnotation = "IMG_WITHOUT_XML"
	DirAnnotationWithoutImage = "XML_WITHOUT_IMG"
	DirNotNeeded              = "FILES_NOT_NEEDED"
)

// Quarantines lists every directory name the walker skips.
var Quarantines = []string{
	DirImageWithoutAnnotation,
	DirAnnotationWithoutImage,
	DirNotNeeded,
}

// IsQuarantine reports whether name is one of the quarantine directories.
// The comparison is exact; the directories are always created with these
// spellings.
func IsQuarantine(name string) bool {
	for _, q := range Quarantines {
		if name == q {
			return true
		}
	}
	return false
}

// Handler processes one file. Returning [pairing.ErrNotApplicable] (or an
// error wrapping it) means the handler does not apply and is not reported.
type Handler struct {
	Name string
	Fn   func(path string) error
}

// ErrorFunc receives handler failures. The walk continues afterwards.
type ErrorFunc func(handler, path string, err error)

// isFile reports whether e is a regular file or a symlink to one. Symlinks
// to directories are not followed.
func isFile(path string, e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Walk invokes every handler, in order, on every regular file in root,
// including symlinks to regular files.
// When recursive is set it then descends into each subdirectory except the
// quarantine directories, passing the directory being visited down
// explicitly. Directory entries are visited in name order.
//
// Walk returns an error only when a directory cannot be listed or ctx is
// cancelled; handler errors go to onErr (which may be nil).
func Walk(ctx context.Context, root string, recursive bool, handlers []Handler, onErr ErrorFunc) error {
	if onErr == nil {
		onErr = func(string, string, error) {}
	}
	return walkDir(ctx, root, recursive, handlers, onErr)
}

func walkDir(ctx context.Context, dir string, recursive bool, handlers []Handler, onErr ErrorFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}

	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			if !IsQuarantine(e.Name()) {
				subdirs = append(subdirs, filepath.Join(dir, e.Name()))
			}
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !isFile(path, e) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, h := range handlers {
			if err := h.Fn(path); err != nil && !errors.Is(err, pairing.ErrNotApplicable) {
				onErr(h.Name, path, err)
			}
		}
	}

	if !recursive {
		return nil
	}
	for _, sub := range subdirs {
		if err := walkDir(ctx, sub, recursive, handlers, onErr); err != nil {
			if ctx.Err() != nil {
				return err
			}
			// An unreadable subdirectory ends that branch only.
			onErr("scan", sub, err)
		}
	}
	return nil
}

// Annotations returns the .xml files (any case) directly under dir, sorted
// by name. It does not descend into subdirectories.
func Annotations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if isFile(path, e) && pairing.IsAnnotation(e.Name()) {
			files = append(files, path)
		}
	}
	return files, nil
}
