package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/annotrim/internal/annotation"
	"github.com/backmassage/annotrim/internal/naming"
	"github.com/backmassage/annotrim/internal/pairing"
	"github.com/backmassage/annotrim/internal/scan"
)

// ErrProcessingFailed means an annotation could not be rewritten. It wraps
// the underlying cause (usually [annotation.ErrParseFailed]).
var ErrProcessingFailed = errors.New("processing failed")

// Logger is the console logging interface the pipeline needs. Defined here
// so the renamer can be driven with a test double.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Record is one processed pair: the annotation and image paths before and
// after renaming.
type Record struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	ImageFrom string `yaml:"image_from"`
	ImageTo   string `yaml:"image_to"`
}

// RenamerOptions configures a Renamer. Zero values are usable: the default
// prefix, a time-seeded source, no uniqueness check, and no logging.
type RenamerOptions struct {
	Prefix   string
	Unique   bool       // Redraw names claimed in this run or present on disk.
	Rand     *rand.Rand // Name source; nil seeds from the clock.
	Log      Logger // Console lines; *logging.Logger also mirrors them into the audit log.
	Progress io.Writer // Progress bar destination for Sweep; nil hides it.
}

// Renamer renames annotation/image pairs and keeps the run log. It is not
// safe for concurrent use.
type Renamer struct {
	gen      *naming.Generator
	claims   *naming.ClaimSet
	log      Logger
	progress io.Writer

	records      []Record
	missingImage int
	failed       int
}

// NewRenamer returns a Renamer with an empty run log.
func NewRenamer(opts RenamerOptions) *Renamer {
	r := &Renamer{
		gen:      naming.NewGenerator(opts.Prefix, opts.Rand),
		log:      opts.Log,
		progress: opts.Progress,
	}
	if opts.Unique {
		r.claims = naming.NewClaimSet()
	}
	if r.log == nil {
		r.log = nopLogger{}
	}
	return r
}

// ProcessOne renames the pair anchored at annotationPath:
//
//  1. resolve the image sharing its stem
//  2. draw a new name
//  3. rewrite the annotation under the new name (original removed)
//  4. rename the image to the new name, keeping its extension
//  5. append the pair to the run log
//
// The annotation is moved before the image, so a crash between steps 3 and
// 4 leaves the image under its old name. Lookup failures are returned as
// [pairing.ErrImageNotFound] or [pairing.ErrNotApplicable]; rewrite
// failures match [ErrProcessingFailed].
func (r *Renamer) ProcessOne(annotationPath string) (Record, error) {
	image, err := pairing.ResolveImage(annotationPath)
	if err != nil {
		return Record{}, err
	}

	dir := filepath.Dir(annotationPath)
	name := r.nextName(dir, annotationPath)
	ext := filepath.Ext(image)

	newAnnotation, err := annotation.Rewrite(annotationPath, name.String(), ext, dir)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrProcessingFailed, err)
	}

	newImage := naming.ImagePath(filepath.Dir(newAnnotation), name.String(), ext)
	if err := os.Rename(image, newImage); err != nil {
		return Record{}, fmt.Errorf("rename image %s (annotation already at %s): %w", image, newAnnotation, err)
	}

	rec := Record{From: annotationPath, To: newAnnotation, ImageFrom: image, ImageTo: newImage}
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *Renamer) nextName(dir, owner string) naming.Name {
	if r.claims != nil {
		return r.claims.Unique(r.gen, dir, owner, pairing.ImageExtensions...)
	}
	return r.gen.Next()
}

// try runs ProcessOne and absorbs the expected failures: a missing image
// or an unreadable annotation is logged, counted, and skipped. Only
// ErrNotApplicable and unexpected errors are returned.
func (r *Renamer) try(path string) error {
	rec, err := r.ProcessOne(path)
	switch {
	case err == nil:
		r.log.Debug("Renamed pair %s -> %s, image %s -> %s", rec.From, rec.To, rec.ImageFrom, rec.ImageTo)
		return nil
	case errors.Is(err, pairing.ErrNotApplicable):
		return err
	case errors.Is(err, pairing.ErrImageNotFound):
		r.missingImage++
		r.log.Warn("Image file for %s not found", path)
		return nil
	case errors.Is(err, ErrProcessingFailed):
		r.failed++
		r.log.Warn("Processing %s failed: %v", path, err)
		return nil
	default:
		r.failed++
		return err
	}
}

// Handler exposes the rename step to the directory walker. Files that are
// not annotations, or that an earlier handler already moved, are skipped.
func (r *Renamer) Handler() scan.Handler {
	return scan.Handler{Name: "rename", Fn: func(path string) error {
		if !pairing.IsAnnotation(path) {
			return pairing.ErrNotApplicable
		}
		if _, err := os.Stat(path); err != nil {
			return pairing.ErrNotApplicable
		}
		return r.try(path)
	}}
}

// Sweep renames every pair whose annotation sits directly in dir. Failures
// on individual pairs are logged and skipped; Sweep returns an error only
// when dir cannot be listed or ctx is cancelled.
func (r *Renamer) Sweep(ctx context.Context, dir string) error {
	files, err := scan.Annotations(dir)
	if err != nil {
		return err
	}
	r.log.Info("Found %d annotation files in %s", len(files), dir)
	r.log.Debug("Naming with prefix %s", r.gen.Prefix())

	bar := r.newProgressBar(len(files))
	defer func() { _ = bar.Finish() }()

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.try(path); err != nil && !errors.Is(err, pairing.ErrNotApplicable) {
			r.log.Error("%s: %v", path, err)
		}
		_ = bar.Add(1)
	}
	return nil
}

func (r *Renamer) newProgressBar(total int) *progressbar.ProgressBar {
	if r.progress == nil {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.progress),
		progressbar.OptionSetDescription("Renaming pairs"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)
}

// Records returns a copy of the run log in processing order.
func (r *Renamer) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// MissingImage returns how many annotations were skipped for lack of an image.
func (r *Renamer) MissingImage() int { return r.missingImage }

// Claimed returns how many names were claimed under the unique-names
// option; zero when it is off.
func (r *Renamer) Claimed() int {
	if r.claims == nil {
		return 0
	}
	return r.claims.Len()
}

// Failed returns how many annotations could not be processed.
func (r *Renamer) Failed() int { return r.failed }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Success(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})    {}
func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Debug(string, ...interface{})   {}
