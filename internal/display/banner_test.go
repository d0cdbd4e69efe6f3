package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/annotrim/internal/config"
	"github.com/backmassage/annotrim/internal/term"
)

func TestPrintBanner(t *testing.T) {
	t.Cleanup(func() { term.Configure(config.ColorNever) })

	var plain bytes.Buffer
	term.Configure(config.ColorNever)
	PrintBanner(&plain)
	assert.NotContains(t, plain.String(), "\033[")
	assert.True(t, strings.HasSuffix(plain.String(), "\n"))

	var colored bytes.Buffer
	term.Configure(config.ColorAlways)
	PrintBanner(&colored)
	assert.True(t, strings.HasPrefix(colored.String(), term.ANSI.Accent))
	assert.Contains(t, colored.String(), term.ANSI.Reset)
}
