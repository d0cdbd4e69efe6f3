package triage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrInvalidRule is returned by [ParseExtensionRule] for malformed input.
var ErrInvalidRule = errors.New("invalid extension rule")

// ruleSeparator splits the two halves of a rule string.
const ruleSeparator = "->"

// ExtensionRule renames files whose extension matches From to To. Both are
// stored without a leading dot. The zero rule matches nothing and only the
// upper-case normalization applies.
type ExtensionRule struct {
	From string
	To   string
}

// ParseExtensionRule parses "from->to", e.g. "jpeg->jpg" or ".JPEG->.jpg".
func ParseExtensionRule(s string) (ExtensionRule, error) {
	parts := strings.Split(s, ruleSeparator)
	if len(parts) != 2 {
		return ExtensionRule{}, fmt.Errorf("%w %q (use from->to, e.g. jpeg->jpg)", ErrInvalidRule, s)
	}
	from := strings.TrimPrefix(strings.TrimSpace(parts[0]), ".")
	to := strings.TrimPrefix(strings.TrimSpace(parts[1]), ".")
	if from == "" || to == "" {
		return ExtensionRule{}, fmt.Errorf("%w %q (both extensions are required)", ErrInvalidRule, s)
	}
	return ExtensionRule{From: from, To: to}, nil
}

// IsZero reports whether the rule has no from/to pair.
func (r ExtensionRule) IsZero() bool { return r.From == "" || r.To == "" }

// String renders the rule as "from->to".
func (r ExtensionRule) String() string {
	if r.IsZero() {
		return ""
	}
	return r.From + ruleSeparator + r.To
}

// Target returns the path file would be renamed to, or file itself when
// nothing applies. A matching From yields stem.To; an extension with
// upper-case letters only yields stem plus the lower-cased extension, and
// that result wins when both apply.
func (r ExtensionRule) Target(file string) string {
	ext := filepath.Ext(file)
	if ext == "" {
		return file
	}
	stem := strings.TrimSuffix(file, ext)
	target := file
	if !r.IsZero() && strings.EqualFold(ext[1:], r.From) {
		target = stem + "." + r.To
	}
	if isUpper(ext[1:]) {
		target = stem + strings.ToLower(ext)
	}
	return target
}

// Normalize renames file according to [ExtensionRule.Target] and returns
// the resulting path. Missing files and files with nothing to change are
// left alone.
func (r ExtensionRule) Normalize(file string) (string, error) {
	if !exists(file) {
		return file, nil
	}
	target := r.Target(file)
	if target == file {
		return file, nil
	}
	if err := os.Rename(file, target); err != nil {
		return file, fmt.Errorf("rename %s: %w", file, err)
	}
	return target, nil
}

// isUpper reports whether s has at least one cased letter and no
// lower-case letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
