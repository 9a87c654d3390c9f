// Package measure computes how many terminal cells a rendered prompt
// occupies once the shell has interpreted it.
package measure

import (
	"fmt"

	ansi "github.com/leaanthony/go-ansi-parser"
	"github.com/mattn/go-runewidth"

	"github.com/Hanaasagi/promptline/internal/shell"
)

// Visible strips the shell markers and escape sequences from prompt.
func Visible(prompt string, kind shell.Kind) (string, error) {
	text, err := ansi.Cleanse(kind.Unwrap(prompt), ansi.WithIgnoreInvalidCodes())
	if err != nil {
		return "", fmt.Errorf("failed to strip escape sequences: %w", err)
	}
	return text, nil
}

// Width returns the display width of prompt.
func Width(prompt string, kind shell.Kind) (int, error) {
	text, err := Visible(prompt, kind)
	if err != nil {
		return 0, err
	}
	return runewidth.StringWidth(text), nil
}
