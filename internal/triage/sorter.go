package triage

import (
	"errors"
	"path/filepath"

	"github.com/backmassage/annotrim/internal/pairing"
	"github.com/backmassage/annotrim/internal/scan"
)

// Category identifies a quarantine bucket.
type Category string

const (
	ImageWithoutAnnotation Category = scan.DirImageWithoutAnnotation
	AnnotationWithoutImage Category = scan.DirAnnotationWithoutImage
	NotNeeded              Category = scan.DirNotNeeded
)

// Move records one quarantined file.
type Move struct {
	Category Category
	From     string
	To       string
}

// Sorter runs the three quarantine handlers and remembers what it moved.
// OnMove, when set, is called after each successful move.
type Sorter struct {
	OnMove func(Move)

	moves  []Move
	counts map[Category]int
}

// NewSorter returns an empty Sorter.
func NewSorter() *Sorter {
	return &Sorter{counts: make(map[Category]int)}
}

// ImageWithoutAnnotation quarantines path when it is an image and no
// annotation shares its stem.
func (s *Sorter) ImageWithoutAnnotation(path string) error {
	if !exists(path) || !pairing.IsImage(path) {
		return pairing.ErrNotApplicable
	}
	_, err := pairing.ResolveAnnotation(path)
	if !errors.Is(err, pairing.ErrAnnotationNotFound) {
		return pairing.ErrNotApplicable
	}
	return s.move(ImageWithoutAnnotation, path)
}

// AnnotationWithoutImage quarantines path when it is an annotation and no
// image shares its stem.
func (s *Sorter) AnnotationWithoutImage(path string) error {
	if !exists(path) || !pairing.IsAnnotation(path) {
		return pairing.ErrNotApplicable
	}
	_, err := pairing.ResolveImage(path)
	if !errors.Is(err, pairing.ErrImageNotFound) {
		return pairing.ErrNotApplicable
	}
	return s.move(AnnotationWithoutImage, path)
}

// Unrecognized quarantines path when it has no extension or one that is
// neither an annotation nor an image extension.
func (s *Sorter) Unrecognized(path string) error {
	if !exists(path) || pairing.IsRecognized(path) {
		return pairing.ErrNotApplicable
	}
	return s.move(NotNeeded, path)
}

// Handlers returns the three handlers in their fixed order, ready for
// [scan.Walk].
func (s *Sorter) Handlers() []scan.Handler {
	return []scan.Handler{
		{Name: string(ImageWithoutAnnotation), Fn: s.ImageWithoutAnnotation},
		{Name: string(AnnotationWithoutImage), Fn: s.AnnotationWithoutImage},
		{Name: string(NotNeeded), Fn: s.Unrecognized},
	}
}

// Moves returns a copy of every move made so far.
func (s *Sorter) Moves() []Move {
	out := make([]Move, len(s.moves))
	copy(out, s.moves)
	return out
}

// Count returns how many files were moved into c.
func (s *Sorter) Count(c Category) int { return s.counts[c] }

func (s *Sorter) move(c Category, path string) error {
	dest, err := MoveInto(path, filepath.Join(filepath.Dir(path), string(c)))
	if err != nil {
		return err
	}
	m := Move{Category: c, From: path, To: dest}
	s.moves = append(s.moves, m)
	s.counts[c]++
	if s.OnMove != nil {
		s.OnMove(m)
	}
	return nil
}
