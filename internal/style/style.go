// Package style produces the SGR escape sequences promptline emits for
// template colors and the cwd repository-root decorations.
package style

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fatih/color"

	"github.com/Hanaasagi/promptline/pkg/promptparser"
)

// fg256 selects a foreground color from the 256-color palette.
const fg256 color.Attribute = 38

// Palette indices of the template colors. Dark variants are the low-intensity
// half of the 16 base colors.
var paletteIndex = map[promptparser.Style]int{
	promptparser.StyleBlack:       0,
	promptparser.StyleDarkRed:     1,
	promptparser.StyleDarkGreen:   2,
	promptparser.StyleDarkYellow:  3,
	promptparser.StyleDarkBlue:    4,
	promptparser.StyleDarkMagenta: 5,
	promptparser.StyleDarkCyan:    6,
	promptparser.StyleDarkGrey:    8,
	promptparser.StyleRed:         9,
	promptparser.StyleGreen:       10,
	promptparser.StyleYellow:      11,
	promptparser.StyleBlue:        12,
	promptparser.StyleMagenta:     13,
	promptparser.StyleCyan:        14,
	promptparser.StyleWhite:       15,
}

var (
	sequenceCache = make(map[promptparser.Style]string, len(paletteIndex)+1)
	sequenceMutex sync.RWMutex
)

// sequence returns the escape that sets attrs. Color output is forced on:
// the prompt is captured by the shell, so stdout is never a terminal here.
func sequence(attrs ...color.Attribute) string {
	var buf bytes.Buffer
	c := color.New(attrs...)
	c.EnableColor()
	c.SetWriter(&buf)
	return buf.String()
}

// Escape returns the raw escape sequence for a template style. StyleReset
// yields the full attribute reset.
func Escape(s promptparser.Style) (string, error) {
	sequenceMutex.RLock()
	if cached, ok := sequenceCache[s]; ok {
		sequenceMutex.RUnlock()
		return cached, nil
	}
	sequenceMutex.RUnlock()

	var seq string
	if s.IsReset() {
		seq = Reset()
	} else {
		index, ok := paletteIndex[s]
		if !ok {
			return "", fmt.Errorf("no escape sequence for style %v", s)
		}
		seq = sequence(fg256, 5, color.Attribute(index))
	}

	sequenceMutex.Lock()
	sequenceCache[s] = seq
	sequenceMutex.Unlock()

	return seq, nil
}

// Reset clears every attribute.
func Reset() string {
	return sequence(color.Reset)
}

func Underline() string   { return sequence(color.Underline) }
func NoUnderline() string { return sequence(color.ResetUnderline) }
func Bold() string        { return sequence(color.Bold) }
func NoBold() string      { return sequence(color.ResetBold) }
