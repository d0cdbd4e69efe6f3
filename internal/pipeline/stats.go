package pipeline

import "github.com/backmassage/annotrim/internal/triage"

// RunStats tracks aggregate counters across a run.
type RunStats struct {
	Renamed           int // Pairs renamed.
	MissingImage      int // Annotations skipped because no image shares their stem.
	Failed            int // Annotations that could not be rewritten.
	ExtensionsChanged int
	Quarantined       map[triage.Category]int
	Errors            int // Unexpected handler or walk errors.
	Claimed           int // Names claimed with unique names on.
}

// Processed returns how many annotations the rename step looked at.
func (s *RunStats) Processed() int {
	return s.Renamed + s.MissingImage + s.Failed
}

// QuarantinedTotal returns the number of files moved into any quarantine
// directory.
func (s *RunStats) QuarantinedTotal() int {
	n := 0
	for _, c := range s.Quarantined {
		n += c
	}
	return n
}
