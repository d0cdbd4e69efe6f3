// Package display formats human-facing output: the banner and the
// end-of-run conversion summary.
package display

import (
	"fmt"
	"io"
)

// ConvertArrow separates the old and new path in a summary line.
const ConvertArrow = " ------convert------> "

// Conversion is one old → new pair for the summary.
type Conversion struct {
	From string
	To   string
}

// FormatConversion renders "<from> ------convert------> <to>".
func FormatConversion(from, to string) string {
	return from + ConvertArrow + to
}

// PrintSummary writes the scanned-count header followed by one line per
// conversion, each followed by a blank line. Nothing is written when no
// pair was converted.
func PrintSummary(w io.Writer, conversions []Conversion) {
	if len(conversions) == 0 {
		return
	}
	fmt.Fprintf(w, "Successfully scanned %d files\n\n", len(conversions))
	for _, c := range conversions {
		fmt.Fprintf(w, "%s\n\n", FormatConversion(c.From, c.To))
	}
}

// Plural returns singular when n == 1 and plural otherwise.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
