// Package term decides whether console output is colored and holds the
// active color palette.
package term

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/annotrim/internal/config"
)

// Palette maps each kind of console output to an ANSI sequence. The zero
// Palette renders plain text.
type Palette struct {
	Info    string
	Success string
	Warn    string
	Error   string
	Debug   string
	Accent  string // Banner.
	Reset   string
}

// ANSI is the palette used when colors are enabled.
var ANSI = Palette{
	Info:    "\033[1;94m",
	Success: "\033[1;92m",
	Warn:    "\033[1;93m",
	Error:   "\033[1;91m",
	Debug:   "\033[1;96m",
	Accent:  "\033[1;95m",
	Reset:   "\033[0m",
}

var active atomic.Pointer[Palette]

func init() { active.Store(&Palette{}) }

// Configure resolves mode against the environment and installs the
// matching palette. It reports whether colors are on.
func Configure(mode config.ColorMode) bool {
	if resolve(mode) {
		p := ANSI
		active.Store(&p)
		return true
	}
	active.Store(&Palette{})
	return false
}

// Colors returns the active palette.
func Colors() Palette { return *active.Load() }

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return Colors().Reset != "" }

// Paint wraps s in color and the reset sequence. An empty color returns s
// unchanged.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + Colors().Reset
}

// resolve honors NO_COLOR (https://no-color.org) and TERM=dumb in auto mode.
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
			return false
		}
		return IsTerminal(os.Stdout)
	}
}

// IsTerminal reports whether f is attached to a TTY, including Cygwin/MSYS
// pseudo terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
