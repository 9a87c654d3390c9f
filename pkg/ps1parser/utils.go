package ps1parser

import (
	"strconv"
	"strings"
)

// Character classification utilities for parsing

// isVarStartChar checks if a character can start a variable name.
func isVarStartChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// isVarChar checks if a character can be part of a variable name.
func isVarChar(c byte) bool {
	return isVarStartChar(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanDigits returns the end of the run of digits starting at pos.
func scanDigits(s string, pos int) int {
	for pos < len(s) && isDigit(s[pos]) {
		pos++
	}
	return pos
}

// findClosing returns the index of the close byte matching an already
// consumed open byte, honoring nesting, or -1.
func findClosing(s string, pos int, open, close byte) int {
	depth := 0
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// String processing utilities

var escapeReplacer = strings.NewReplacer(
	"\\\n", "\n",
	"\\n", "\n",
	"\\t", "\t",
	"\\r", "\r",
	"\\e", "\x1b",
	"\\E", "\x1b",
	"\\033", "\x1b",
	"\\\\", "\\",
)

// unescapeString expands the backslash escapes commonly found in PS1
// assignments, including \xHH hex escapes.
func unescapeString(s string) string {
	s = escapeReplacer.Replace(s)

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) && s[i+1] == 'x' {
			if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
