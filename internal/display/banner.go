package display

import (
	"fmt"
	"io"

	"github.com/backmassage/annotrim/internal/term"
)

const banner = `                          _        _
  __ _ _ __  _ __   ___ | |_ _ __(_)_ __ ___
 / _` + "`" + ` | '_ \| '_ \ / _ \| __| '__| | '_ ` + "`" + ` _ \
| (_| | | | | | | | (_) | |_| |  | | | | | | |
 \__,_|_| |_|_| |_|\___/ \__|_|  |_|_| |_| |_|
`

// PrintBanner writes the ASCII art banner to w in the accent color.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, term.Paint(term.Colors().Accent, banner))
}
