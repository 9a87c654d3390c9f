// Package ps1parser tokenizes zsh PS1 prompt strings and converts them into
// promptline templates.
package ps1parser

// TokenType represents different types of elements in a PS1 string.
type TokenType int

// Token types used in PS1 parsing
const (
	TokenLiteral   TokenType = iota // Regular text content
	TokenPercent                    // % escape sequences like %n, %m, %~
	TokenColorSeq                   // %{...%} escape sequences and %F{color}
	TokenCondition                  // %(test.true.false) conditional expressions
	TokenCommand                    // $(command), ${variable} and $variable
)

// Token represents a parsed element from the PS1 string.
// Params stores additional metadata specific to the token type.
type Token struct {
	Type    TokenType
	Content string
	Params  map[string]string
}

// ParsedPS1 represents a fully parsed PS1 string containing all tokens.
type ParsedPS1 struct {
	Tokens []Token
}

// Parser handles parsing PS1 strings into tokens.
type Parser struct {
	options ParserOptions
}

// ParserOptions controls parsing behavior and error handling.
type ParserOptions struct {
	StrictMode bool // Whether to fail on unclosed or unknown sequences
}

// Conversion is the result of converting a PS1 string to a template.
type Conversion struct {
	Template string
	// Warnings lists the parts of the PS1 that have no exact equivalent
	// and were approximated or dropped.
	Warnings []string
}
