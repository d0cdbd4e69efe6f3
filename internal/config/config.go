// Package config holds runtime configuration: defaults, flag and config-file
// binding, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/annotrim/internal/naming"
	"github.com/backmassage/annotrim/internal/triage"
)

// --- Enum types for validated string fields ---

// ScanMode selects how much of the directory tree a run covers.
type ScanMode string

const (
	ScanShallow ScanMode = "shallow" // Top-level directory only (default).
	ScanDeep    ScanMode = "deep"    // Whole tree, quarantine dirs excluded.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// AuditLogName is the file name of the default audit log in the user's
// home directory.
const AuditLogName = "annotrim.log"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [Load], and checked by [Config.Validate] before being passed
// (by pointer) to packages that need it.
type Config struct {
	// Path (set from the positional arg).
	Root string

	// Renaming.
	ScanMode    ScanMode
	Prefix      string // Default: "VVM_IMAGE".
	UniqueNames bool   // Redraw names already used in the run or present on disk.

	// Extension rewriting. ChangeExt is the raw "from->to" string; ExtRule
	// is derived from it by Validate.
	ChangeExt string
	ExtRule   triage.ExtensionRule

	// Behavior flags.
	MoveStrays bool // Relocate stray files into quarantine dirs.

	// Reporting.
	ShowInfo     bool   // Print "<old> ------convert------> <new>" lines.
	ManifestPath string // Optional YAML manifest of processed pairs.
	Progress     bool   // Progress bar during the single-level sweep.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Audit log path. Default: ~/annotrim.log. Empty disables it.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [Load] applies flags, environment, and config file values.
func DefaultConfig() Config {
	return Config{
		ScanMode:  ScanShallow,
		Prefix:    naming.DefaultPrefix,
		ColorMode: ColorAuto,
		LogFile:   defaultLogFile(),
	}
}

// defaultLogFile places the audit log in the home directory so it never
// lands inside the dataset being processed.
func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, AuditLogName)
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// ParseScanMode accepts the mode names and their long aliases
// ("single-level", "recursive"), case-insensitively.
func ParseScanMode(s string) (ScanMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shallow", "single-level", "single":
		return ScanShallow, nil
	case "deep", "recursive":
		return ScanDeep, nil
	default:
		return "", fmt.Errorf("invalid scan type %q (use 'shallow' or 'deep')", s)
	}
}

// Recursive reports whether the run covers the whole tree.
func (c *Config) Recursive() bool { return c.ScanMode == ScanDeep }

// Validate checks enum fields, the prefix, and the extension rule, and
// derives ExtRule from ChangeExt. Root is not required here; commands that
// need it check it themselves.
func (c *Config) Validate() error {
	switch c.ScanMode {
	case ScanShallow, ScanDeep:
		// valid
	default:
		return errors.New("invalid scan type (use 'shallow' or 'deep')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	c.Prefix = strings.TrimSpace(c.Prefix)
	if c.Prefix == "" {
		return errors.New("prefix must not be empty")
	}
	if strings.ContainsAny(c.Prefix, `/\`) {
		return fmt.Errorf("prefix %q must not contain path separators", c.Prefix)
	}

	c.ExtRule = triage.ExtensionRule{}
	if c.ChangeExt != "" {
		rule, err := triage.ParseExtensionRule(c.ChangeExt)
		if err != nil {
			return err
		}
		c.ExtRule = rule
	}
	return nil
}
