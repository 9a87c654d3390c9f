package promptparser

import "unicode/utf8"

// Character classification utilities for parsing

// isSpace reports whether c separates words inside braces.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isIdentChar reports whether c can be part of a component, style or option name.
func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// isEnvNameChar reports whether c can be part of a $NAME condition.
func isEnvNameChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || c == '_'
}

// isValueChar reports whether c can be part of an option value.
func isValueChar(c byte) bool {
	return !isSpace(c) && c != '}'
}

// Scanning utilities

// scanWhile returns the first position at or after pos where accept fails.
func scanWhile(s string, pos int, accept func(byte) bool) int {
	for pos < len(s) && accept(s[pos]) {
		pos++
	}
	return pos
}

func skipSpace(s string, pos int) int {
	return scanWhile(s, pos, isSpace)
}

// describeAt returns the character at pos for error messages.
func describeAt(s string, pos int) string {
	if pos >= len(s) {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return string(r)
}
