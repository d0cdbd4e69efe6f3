// Package check provides preflight validation of the dataset root and the
// read-only inventory behind "annotrim check".
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/annotrim/internal/pairing"
	"github.com/backmassage/annotrim/internal/scan"
)

// Sentinel errors returned by ResolveRoot.
var (
	ErrPathNotFound = errors.New("path not found")
	ErrNotDirectory = errors.New("not a directory")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// ResolveRoot returns the absolute, symlink-resolved form of path. Every
// failure matches ErrPathNotFound; a path that exists but is not a
// directory also matches ErrNotDirectory.
func ResolveRoot(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no path given", ErrPathNotFound)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrPathNotFound, path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: path <%s> not a valid path", ErrPathNotFound, path)
	}
	fi, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: path <%s> not a valid path", ErrPathNotFound, path)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%w: %w: %s", ErrPathNotFound, ErrNotDirectory, path)
	}
	return resolved, nil
}

// Inventory counts what a run would act on, without changing anything.
type Inventory struct {
	Directories            int
	Pairs                  int
	ImageWithoutAnnotation []string
	AnnotationWithoutImage []string
	NotNeeded              []string
	UpperCaseExtensions    int
}

// Strays returns the total number of files a quarantine pass would move.
func (inv *Inventory) Strays() int {
	return len(inv.ImageWithoutAnnotation) + len(inv.AnnotationWithoutImage) + len(inv.NotNeeded)
}

// TakeInventory walks root with the same traversal rules as a run and
// classifies every file.
func TakeInventory(ctx context.Context, root string, recursive bool) (*Inventory, error) {
	inv := &Inventory{}
	seenDirs := make(map[string]bool)

	classify := scan.Handler{Name: "inventory", Fn: func(path string) error {
		seenDirs[filepath.Dir(path)] = true
		if hasUpperExt(path) {
			inv.UpperCaseExtensions++
		}
		switch {
		case pairing.IsAnnotation(path):
			if _, err := pairing.ResolveImage(path); err != nil {
				inv.AnnotationWithoutImage = append(inv.AnnotationWithoutImage, path)
			} else {
				inv.Pairs++
			}
		case pairing.IsImage(path):
			if _, err := pairing.ResolveAnnotation(path); err != nil {
				inv.ImageWithoutAnnotation = append(inv.ImageWithoutAnnotation, path)
			}
		default:
			inv.NotNeeded = append(inv.NotNeeded, path)
		}
		return nil
	}}

	if err := scan.Walk(ctx, root, recursive, []scan.Handler{classify}, nil); err != nil {
		return nil, err
	}
	inv.Directories = len(seenDirs)
	return inv, nil
}

// RunCheck takes the inventory of root and logs it. It reports false when
// the inventory could not be taken.
func RunCheck(ctx context.Context, root string, recursive bool, log Logger) bool {
	log.Info("=== Dataset Check ===")
	inv, err := TakeInventory(ctx, root, recursive)
	if err != nil {
		log.Error("Cannot scan %s: %v", root, err)
		return false
	}

	log.Info("Directories with files: %d", inv.Directories)
	if inv.Pairs > 0 {
		log.Success("Annotation/image pairs: %d", inv.Pairs)
	} else {
		log.Warn("Annotation/image pairs: 0")
	}
	logGroup(log, scan.DirImageWithoutAnnotation, "Images without annotation", inv.ImageWithoutAnnotation)
	logGroup(log, scan.DirAnnotationWithoutImage, "Annotations without image", inv.AnnotationWithoutImage)
	logGroup(log, scan.DirNotNeeded, "Unrecognized files", inv.NotNeeded)
	if n := inv.Strays(); n > 0 {
		log.Warn("Stray files: %d (use --move to quarantine them)", n)
	}
	if inv.UpperCaseExtensions > 0 {
		log.Info("Files with upper-case extensions: %d", inv.UpperCaseExtensions)
	}
	return true
}

func logGroup(log Logger, dir, label string, files []string) {
	if len(files) == 0 {
		log.Success("%s: 0", label)
		return
	}
	log.Warn("%s: %d (would move to %s)", label, len(files), dir)
	for _, f := range files {
		log.Info("  %s", f)
	}
}

func hasUpperExt(path string) bool {
	ext := filepath.Ext(path)
	if len(ext) < 2 {
		return false
	}
	lower, upper := false, false
	for _, r := range ext[1:] {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		}
	}
	return upper && !lower
}
