package pipeline

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/backmassage/annotrim/internal/check"
	"github.com/backmassage/annotrim/internal/config"
	"github.com/backmassage/annotrim/internal/display"
	"github.com/backmassage/annotrim/internal/logging"
	"github.com/backmassage/annotrim/internal/scan"
	"github.com/backmassage/annotrim/internal/triage"
)

// Options carries run inputs that do not come from configuration.
type Options struct {
	Rand     *rand.Rand // Name source; nil seeds from the clock.
	Progress io.Writer  // Progress bar destination when cfg.Progress is set.
}

// Run is the top-level entry point. It resolves the root, then runs the
// passes in order:
//
//  1. extension normalization (only when a rule is configured)
//  2. renaming of every pair
//  3. quarantine of strays (only with cfg.MoveStrays)
//
// In shallow mode every pass sees only files directly under the root and
// renames go through [Renamer.Sweep]; in deep mode every pass goes through
// [scan.Walk], with renaming and quarantine sharing one traversal.
//
// Per-file failures are logged and counted in the returned stats. The
// error is non-nil only when the root is invalid, a directory cannot be
// listed, the manifest cannot be written, or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, opts Options) (RunStats, error) {
	stats := RunStats{Quarantined: make(map[triage.Category]int)}

	root, err := check.ResolveRoot(cfg.Root)
	if err != nil {
		log.Error("Path <%s> not a valid path", cfg.Root)
		return stats, err
	}
	recursive := cfg.Recursive()

	logBatchHeader(cfg, log, root)

	onErr := func(handler, path string, err error) {
		stats.Errors++
		log.Warn("%s: %s: %v", handler, path, err)
	}

	// --- Extension pass ---
	if !cfg.ExtRule.IsZero() {
		h := scan.Handler{Name: "extension", Fn: func(path string) error {
			to, err := cfg.ExtRule.Normalize(path)
			if err != nil {
				return err
			}
			if to != path {
				stats.ExtensionsChanged++
				log.Debug("Extension changed %s -> %s", path, to)
			}
			return nil
		}}
		if err := scan.Walk(ctx, root, recursive, []scan.Handler{h}, onErr); err != nil {
			return stats, interrupted(log, err)
		}
	}

	// --- Rename and quarantine ---
	var progress io.Writer
	if cfg.Progress {
		progress = opts.Progress
		if progress == nil {
			progress = log.Out()
		}
	}
	renamer := NewRenamer(RenamerOptions{
		Prefix:   cfg.Prefix,
		Unique:   cfg.UniqueNames,
		Rand:     opts.Rand,
		Log:      log,
		Progress: progress,
	})

	sorter := triage.NewSorter()
	sorter.OnMove = func(m triage.Move) {
		log.Info("Moved %s to %s", m.From, m.To)
	}

	if recursive {
		handlers := []scan.Handler{renamer.Handler()}
		if cfg.MoveStrays {
			handlers = append(handlers, sorter.Handlers()...)
		}
		err = scan.Walk(ctx, root, true, handlers, onErr)
	} else {
		err = renamer.Sweep(ctx, root)
		if err == nil && cfg.MoveStrays {
			err = scan.Walk(ctx, root, false, sorter.Handlers(), onErr)
		}
	}
	stats.Renamed = len(renamer.Records())
	stats.MissingImage = renamer.MissingImage()
	stats.Failed = renamer.Failed()
	stats.Claimed = renamer.Claimed()
	for _, c := range categories {
		if n := sorter.Count(c); n > 0 {
			stats.Quarantined[c] = n
		}
	}
	if err != nil {
		return stats, interrupted(log, err)
	}

	// --- Reporting ---
	if cfg.ManifestPath != "" {
		m := &Manifest{
			RunID:       log.RunID(),
			Root:        root,
			Generated:   time.Now().UTC(),
			Prefix:      cfg.Prefix,
			Pairs:       renamer.Records(),
			Quarantined: quarantineItems(sorter.Moves()),
		}
		if err := WriteManifest(cfg.ManifestPath, m); err != nil {
			log.Error("Cannot write manifest: %v", err)
			return stats, err
		}
		log.Info("Manifest written to %s", cfg.ManifestPath)
	}

	if cfg.ShowInfo {
		display.PrintSummary(log.Out(), conversions(renamer.Records()))
	}
	logSummary(cfg, log, &stats)
	return stats, nil
}

func interrupted(log *logging.Logger, err error) error {
	if errors.Is(err, context.Canceled) {
		log.Warn("Interrupted")
		return err
	}
	log.Error("%v", err)
	return err
}

func conversions(records []Record) []display.Conversion {
	out := make([]display.Conversion, len(records))
	for i, r := range records {
		out[i] = display.Conversion{From: r.From, To: r.To}
	}
	return out
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, root string) {
	log.Info("Root: %s", root)
	log.Info("Scan: %s, prefix: %s", cfg.ScanMode, cfg.Prefix)
	if !cfg.ExtRule.IsZero() {
		log.Info("Extensions: %s", cfg.ExtRule)
	}
	if cfg.MoveStrays {
		log.Info("Strays: move into %s, %s, %s",
			scan.DirImageWithoutAnnotation, scan.DirAnnotationWithoutImage, scan.DirNotNeeded)
	}
	if cfg.UniqueNames {
		log.Info("Names: redraw on collision")
	}
	log.Audit().Info("run settings",
		zap.String("root", root),
		zap.String("scan", string(cfg.ScanMode)),
		zap.String("prefix", cfg.Prefix),
		zap.String("change_ext", cfg.ExtRule.String()),
		zap.Bool("move", cfg.MoveStrays),
		zap.Bool("unique", cfg.UniqueNames))
}

var categories = []triage.Category{triage.ImageWithoutAnnotation, triage.AnnotationWithoutImage, triage.NotNeeded}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d renamed, %d without image, %d failed",
		stats.Renamed, stats.MissingImage, stats.Failed)
	if stats.ExtensionsChanged > 0 {
		log.Info("  Extensions changed: %d", stats.ExtensionsChanged)
	}
	if cfg.MoveStrays {
		total := stats.QuarantinedTotal()
		log.Info("  Quarantined: %d %s", total, display.Plural(total, "file", "files"))
		for _, c := range categories {
			n := stats.Quarantined[c]
			log.Info("    %s: %d", c, n)
		}
	}
	if cfg.UniqueNames {
		log.Debug("  Names claimed: %d", stats.Claimed)
	}
	if stats.Errors > 0 {
		log.Warn("  Errors: %d", stats.Errors)
	}
	if stats.Failed == 0 && stats.Errors == 0 {
		n := stats.Processed()
		log.Success("Processed %d %s", n, display.Plural(n, "annotation", "annotations"))
	}
}
