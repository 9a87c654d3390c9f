package ps1parser

import (
	"fmt"
	"strings"
)

// escapeMeanings names the simple %X escapes of zsh prompt expansion.
var escapeMeanings = map[byte]string{
	'n': "username",
	'm': "hostname_short",
	'M': "hostname_full",
	'~': "current_dir_tilde",
	'd': "current_dir",
	'/': "current_dir",
	'c': "current_dir_tail",
	'.': "current_dir_tail",
	'C': "current_dir_tail_no_tilde",
	'h': "history_number",
	'!': "history_number",
	'T': "time_24h",
	't': "time_12h",
	'@': "time_12h",
	'*': "time_24h_seconds",
	'w': "date_day_dd",
	'W': "date_mm_dd_yy",
	'D': "date_yy_mm_dd",
	'#': "privilege_indicator",
	'?': "exit_status",
	'j': "job_count",
	'l': "tty",
	'y': "tty_device",
	'L': "shell_level",
	'i': "script_line_number",
	'I': "source_line_number",
	'N': "script_function_name",
	'x': "source_file_name",
	'_': "parser_state",
	'^': "parser_state_reverse",
	'B': "start_bold",
	'b': "end_bold",
	'U': "start_underline",
	'u': "end_underline",
	'S': "start_standout",
	's': "end_standout",
	'F': "start_foreground_color",
	'f': "end_foreground_color",
	'K': "start_background_color",
	'k': "end_background_color",
	'E': "terminal_clear_eol",
	'v': "version",
	'V': "release_level",
	'g': "effective_gid",
	'G': "effective_group",
}

// NewParser creates a new PS1 parser with the given options.
func NewParser(options ParserOptions) *Parser {
	return &Parser{
		options: options,
	}
}

// Parse splits a PS1 string into tokens.
func (p *Parser) Parse(ps1 string) (*ParsedPS1, error) {
	var tokens []Token
	pos := 0

	for pos < len(ps1) {
		token, nextPos, err := p.parseNextToken(ps1, pos)
		if err != nil {
			return nil, fmt.Errorf("parse error at position %d: %w", pos, err)
		}

		if token.Type != TokenLiteral || len(token.Content) > 0 {
			tokens = append(tokens, token)
		}

		pos = nextPos
	}

	return &ParsedPS1{Tokens: tokens}, nil
}

func (p *Parser) parseNextToken(ps1 string, pos int) (Token, int, error) {
	switch ps1[pos] {
	case '%':
		return p.parsePercentToken(ps1, pos)
	case '$':
		if pos+1 < len(ps1) {
			switch next := ps1[pos+1]; {
			case next == '(' || next == '{':
				return p.parseCommandToken(ps1, pos)
			case isVarStartChar(next):
				return p.parseSimpleVariable(ps1, pos)
			}
		}
		return Token{Type: TokenLiteral, Content: "$"}, pos + 1, nil
	default:
		return p.parseLiteralToken(ps1, pos)
	}
}

func literal(s string) Token {
	return Token{Type: TokenLiteral, Content: s}
}

// parsePercentToken parses the % escape starting at pos.
func (p *Parser) parsePercentToken(ps1 string, pos int) (Token, int, error) {
	if pos+1 >= len(ps1) {
		return literal("%"), pos + 1, nil
	}

	switch ps1[pos+1] {
	case '{':
		return p.parseEscapeSequence(ps1, pos)
	case '%':
		return literal("%"), pos + 2, nil
	case ')':
		return literal(")"), pos + 2, nil
	}

	numberEnd := scanDigits(ps1, pos+1)
	number := ps1[pos+1 : numberEnd]
	if numberEnd >= len(ps1) {
		return literal(ps1[pos:]), len(ps1), nil
	}

	switch escape := ps1[numberEnd]; {
	case escape == '(':
		return p.parseConditionalExpression(ps1, pos, number, numberEnd)
	case escape == '{' && number != "":
		return p.parseGlyph(ps1, pos, number, numberEnd)
	case escape == '<' || escape == '>':
		return p.parseTruncation(ps1, pos, number, numberEnd)
	case (escape == 'F' || escape == 'K') && numberEnd+1 < len(ps1) && ps1[numberEnd+1] == '{':
		return p.parseZshColorSequence(ps1, pos, numberEnd)
	case escape == 'D' && numberEnd+1 < len(ps1) && ps1[numberEnd+1] == '{':
		return p.parseDateFormat(ps1, pos, numberEnd)
	default:
		return p.parseSimplePercent(ps1, pos, number, numberEnd)
	}
}

// parseEscapeSequence parses %{...%}, which holds raw terminal escapes.
func (p *Parser) parseEscapeSequence(ps1 string, pos int) (Token, int, error) {
	depth := 1
	closePos := -1

	for i := pos + 2; i < len(ps1)-1 && closePos == -1; i++ {
		if ps1[i] != '%' {
			continue
		}
		switch ps1[i+1] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				closePos = i
			}
		}
		i++
	}

	if closePos == -1 {
		if p.options.StrictMode {
			return Token{}, pos, fmt.Errorf("unclosed escape sequence")
		}
		return literal("%{"), pos + 2, nil
	}

	return Token{
		Type:    TokenColorSeq,
		Content: ps1[pos+2 : closePos],
		Params:  map[string]string{"type": "raw"},
	}, closePos + 2, nil
}

// parseGlyph parses %N{text%}, text that zsh counts as N columns wide.
func (p *Parser) parseGlyph(ps1 string, pos int, number string, open int) (Token, int, error) {
	end := strings.Index(ps1[open+1:], "%}")
	if end == -1 {
		if p.options.StrictMode {
			return Token{}, pos, fmt.Errorf("unclosed glyph sequence")
		}
		return literal(ps1[pos : open+1]), open + 1, nil
	}
	end += open + 1

	return Token{
		Type:    TokenLiteral,
		Content: ps1[open+1 : end],
		Params:  map[string]string{"width": number},
	}, end + 2, nil
}

// parseConditionalExpression parses %(test.true.false) and %N(test.true.false).
// open points at the opening parenthesis.
func (p *Parser) parseConditionalExpression(ps1 string, pos int, number string, open int) (Token, int, error) {
	closePos := findConditionalEnd(ps1, open+1)
	if closePos == -1 {
		if p.options.StrictMode {
			return Token{}, pos, fmt.Errorf("unclosed conditional expression")
		}
		return literal(ps1[pos : open+1]), open + 1, nil
	}

	content := ps1[open+1 : closePos]
	params := parseConditionalParts(content)
	if number != "" {
		params["number"] = number
	}

	return Token{
		Type:    TokenCondition,
		Content: content,
		Params:  params,
	}, closePos + 1, nil
}

// findConditionalEnd returns the index of the ')' closing a conditional
// whose body starts at pos. "%)" is an escaped parenthesis.
func findConditionalEnd(s string, pos int) int {
	depth := 0
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case '%':
			if i+1 < len(s) && s[i+1] == '(' {
				depth++
			}
			i++
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// parseConditionalParts splits "Nx.true.false" into its test, optional
// number and branches. The separator is the character after the test.
func parseConditionalParts(content string) map[string]string {
	params := make(map[string]string)

	testStart := scanDigits(content, 0)
	if testStart >= len(content) {
		return params
	}
	if testStart > 0 {
		params["number"] = content[:testStart]
	}
	params["test"] = content[testStart : testStart+1]

	rest := content[testStart+1:]
	if rest == "" {
		return params
	}

	branches := splitBranches(rest[1:], rest[0])
	params["true_text"] = branches[0]
	if len(branches) > 1 {
		params["false_text"] = branches[1]
	}
	return params
}

// splitBranches splits s at the first sep that is neither part of a %
// escape nor inside a nested conditional.
func splitBranches(s string, sep byte) []string {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '%':
			if i+1 < len(s) && s[i+1] == '(' {
				depth++
			}
			i++
		case s[i] == ')' && depth > 0:
			depth--
		case s[i] == sep && depth == 0:
			return []string{s[:i], s[i+1:]}
		}
	}
	return []string{s}
}

// parseTruncation parses %N<text< and %N>text>. Only the marker is consumed;
// the truncated content follows as ordinary tokens.
func (p *Parser) parseTruncation(ps1 string, pos int, number string, markerPos int) (Token, int, error) {
	marker := ps1[markerPos]
	end := strings.IndexByte(ps1[markerPos+1:], marker)
	if end == -1 {
		if p.options.StrictMode {
			return Token{}, pos, fmt.Errorf("unclosed truncation sequence")
		}
		return literal(ps1[pos : markerPos+1]), markerPos + 1, nil
	}
	end += markerPos + 1

	return Token{
		Type:    TokenPercent,
		Content: ps1[pos+1 : end+1],
		Params: map[string]string{
			"escape":     string(marker),
			"meaning":    "truncation",
			"number":     number,
			"truncation": string(marker),
			"dots":       ps1[markerPos+1 : end],
		},
	}, end + 1, nil
}

// parseDateFormat parses %D{format}.
func (p *Parser) parseDateFormat(ps1 string, pos int, escapePos int) (Token, int, error) {
	closePos := findClosing(ps1, escapePos+2, '{', '}')
	if closePos == -1 {
		return literal(ps1[pos : escapePos+1]), escapePos + 1, nil
	}

	return Token{
		Type:    TokenPercent,
		Content: ps1[pos+1 : closePos+1],
		Params: map[string]string{
			"escape":  "D",
			"meaning": "date_format",
			"format":  ps1[escapePos+2 : closePos],
		},
	}, closePos + 1, nil
}

// parseZshColorSequence parses %F{color} and %K{color}.
func (p *Parser) parseZshColorSequence(ps1 string, pos int, escapePos int) (Token, int, error) {
	escape := ps1[escapePos]
	colorType := "foreground"
	if escape == 'K' {
		colorType = "background"
	}

	closePos := findClosing(ps1, escapePos+2, '{', '}')
	if closePos == -1 {
		if p.options.StrictMode {
			return Token{}, pos, fmt.Errorf("unclosed color sequence")
		}
		return literal(ps1[pos : escapePos+2]), escapePos + 2, nil
	}

	color := ps1[escapePos+2 : closePos]
	return Token{
		Type:    TokenColorSeq,
		Content: color,
		Params: map[string]string{
			"escape": string(escape),
			"type":   colorType,
			"color":  color,
		},
	}, closePos + 1, nil
}

// parseSimplePercent parses %X and %NX escapes like %n, %m, %~ and %2~.
func (p *Parser) parseSimplePercent(ps1 string, pos int, number string, escapePos int) (Token, int, error) {
	escape := ps1[escapePos]

	meaning, ok := escapeMeanings[escape]
	if !ok {
		if p.options.StrictMode {
			return Token{}, pos, fmt.Errorf("unknown escape sequence: %%%s%c", number, escape)
		}
		meaning = "unknown"
	}

	params := map[string]string{
		"escape":  string(escape),
		"meaning": meaning,
	}
	if number != "" {
		params["number"] = number
	}

	return Token{
		Type:    TokenPercent,
		Content: ps1[pos+1 : escapePos+1],
		Params:  params,
	}, escapePos + 1, nil
}

// parseCommandToken parses $(command) and ${variable}.
func (p *Parser) parseCommandToken(ps1 string, pos int) (Token, int, error) {
	open := ps1[pos+1]
	closeChar, tokenType := byte(')'), "command"
	if open == '{' {
		closeChar, tokenType = '}', "variable"
	}

	closePos := findClosing(ps1, pos+2, open, closeChar)
	if closePos == -1 {
		if p.options.StrictMode {
			return Token{}, pos, fmt.Errorf("unclosed command/variable substitution")
		}
		return literal(ps1[pos : pos+2]), pos + 2, nil
	}

	command := ps1[pos+2 : closePos]
	return Token{
		Type:    TokenCommand,
		Content: command,
		Params: map[string]string{
			"command": command,
			"type":    tokenType,
		},
	}, closePos + 1, nil
}

// parseSimpleVariable parses $VAR.
func (p *Parser) parseSimpleVariable(ps1 string, pos int) (Token, int, error) {
	end := pos + 1
	for end < len(ps1) && isVarChar(ps1[end]) {
		end++
	}

	name := ps1[pos+1 : end]
	return Token{
		Type:    TokenCommand,
		Content: name,
		Params: map[string]string{
			"command": name,
			"type":    "variable",
		},
	}, end, nil
}

// parseLiteralToken parses regular text up to the next % or $.
func (p *Parser) parseLiteralToken(ps1 string, pos int) (Token, int, error) {
	end := strings.IndexAny(ps1[pos:], "%$")
	if end == -1 {
		end = len(ps1)
	} else {
		end += pos
	}

	return literal(unescapeString(ps1[pos:end])), end, nil
}
