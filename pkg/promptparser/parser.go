package promptparser

import (
	"strings"

	"github.com/Hanaasagi/promptline/pkg/fuzzymatch"
)

// terminator records which block-closing directive ended a token sequence.
type terminator int

const (
	termEOF terminator = iota
	termElse
	termEnd
)

func (t terminator) String() string {
	switch t {
	case termElse:
		return "{else}"
	case termEnd:
		return "{end}"
	default:
		return "end of input"
	}
}

// NewParser creates a new template parser with the given options.
func NewParser(options ParserOptions) *Parser {
	return &Parser{
		options: options,
	}
}

// Parse parses a template into tokens. The whole template must be consumed:
// any leftover or unmatched input is reported as a *ParseError.
func (p *Parser) Parse(template string) ([]Token, error) {
	tokens, end, err := p.parseSequence(template, 0)
	if err != nil {
		return nil, err
	}

	if end.term != termEOF {
		return nil, newParseError(end.at, ErrUnbalancedConditional, "%s without a matching {if}", end.term)
	}

	return tokens, nil
}

// blockEnd describes how a token sequence ended: at the end of input, or at
// an {else}/{end} directive spanning [at, next).
type blockEnd struct {
	term terminator
	at   int
	next int
}

// parseSequence parses tokens until the end of input or until an {else} or
// {end} directive.
func (p *Parser) parseSequence(template string, pos int) ([]Token, blockEnd, error) {
	tokens := []Token{}

	for pos < len(template) {
		if template[pos] != '{' {
			token, nextPos := p.parseLiteral(template, pos)
			tokens = append(tokens, token)
			pos = nextPos
			continue
		}

		if strings.HasPrefix(template[pos:], "{{") {
			tokens = append(tokens, Token{Type: TokenLiteral, Content: "{{"})
			pos += 2
			continue
		}

		token, nextPos, term, err := p.parseBrace(template, pos)
		if err != nil {
			return nil, blockEnd{}, err
		}

		if term != termEOF {
			return tokens, blockEnd{term: term, at: pos, next: nextPos}, nil
		}

		tokens = append(tokens, token)
		pos = nextPos
	}

	return tokens, blockEnd{term: termEOF, at: pos, next: pos}, nil
}

// parseLiteral consumes a maximal run of characters other than '{'.
func (p *Parser) parseLiteral(template string, pos int) (Token, int) {
	end := strings.IndexByte(template[pos:], '{')
	if end == -1 {
		end = len(template)
	} else {
		end += pos
	}

	return Token{Type: TokenLiteral, Content: template[pos:end]}, end
}

// parseBrace parses a directive starting at the '{' at pos.
func (p *Parser) parseBrace(template string, pos int) (Token, int, terminator, error) {
	start := skipSpace(template, pos+1)
	end := scanWhile(template, start, isIdentChar)
	if end == start {
		return Token{}, pos, termEOF, expected(template, start, "identifier")
	}

	ident := template[start:end]

	switch ident {
	case keywordIf:
		token, nextPos, err := p.parseConditional(template, pos, end)
		return token, nextPos, termEOF, err
	case keywordElse, keywordEnd:
		closePos, err := p.expectClose(template, end)
		if err != nil {
			if closePos < len(template) {
				err = newParseError(closePos, ErrReservedWord, "{%s} takes no arguments", ident)
			}
			return Token{}, pos, termEOF, err
		}
		if ident == keywordElse {
			return Token{}, closePos, termElse, nil
		}
		return Token{}, closePos, termEnd, nil
	}

	if style, ok := styleNames[ident]; ok {
		closePos, err := p.expectClose(template, end)
		if err != nil {
			return Token{}, pos, termEOF, err
		}
		return Token{Type: TokenStyle, Style: style}, closePos, termEOF, nil
	}

	if component, ok := componentNames[ident]; ok {
		options, nextPos, err := p.parseOptions(template, end)
		if err != nil {
			return Token{}, pos, termEOF, err
		}
		return Token{Type: TokenComponent, Component: component, Options: options}, nextPos, termEOF, nil
	}

	parseErr := newParseError(start, ErrUnknownIdentifier, "%q", ident)
	if p.options.Suggest {
		if suggestion, ok := fuzzymatch.Suggest(ident, identifierNames()); ok {
			parseErr.Suggestion = suggestion
		}
	}
	return Token{}, pos, termEOF, parseErr
}

// expectClose skips whitespace and requires a closing brace, returning the
// position just after it.
func (p *Parser) expectClose(template string, pos int) (int, error) {
	pos = skipSpace(template, pos)
	if pos >= len(template) || template[pos] != '}' {
		return pos, expected(template, pos, `"}"`)
	}
	return pos + 1, nil
}

// parseOptions parses whitespace separated key=value pairs up to the
// closing brace of a component invocation.
func (p *Parser) parseOptions(template string, pos int) (map[string]string, int, error) {
	options := map[string]string{}

	for {
		next := skipSpace(template, pos)
		if next >= len(template) {
			return nil, next, expected(template, next, `"}"`)
		}

		if template[next] == '}' {
			return options, next + 1, nil
		}

		// Pairs must be separated from the name and from each other.
		if next == pos {
			return nil, next, expected(template, next, `whitespace or "}"`)
		}

		keyEnd := scanWhile(template, next, isIdentChar)
		if keyEnd == next {
			return nil, next, expected(template, next, "option name")
		}
		key := template[next:keyEnd]

		if keyEnd >= len(template) || template[keyEnd] != '=' {
			return nil, keyEnd, expected(template, keyEnd, `"="`)
		}

		valueEnd := scanWhile(template, keyEnd+1, isValueChar)
		if valueEnd == keyEnd+1 {
			return nil, valueEnd, newParseError(valueEnd, ErrMissingValue, "option %q", key)
		}

		if _, exists := options[key]; exists {
			return nil, next, newParseError(next, ErrDuplicateOption, "option %q", key)
		}

		options[key] = template[keyEnd+1 : valueEnd]
		pos = valueEnd
	}
}

// parseConditional parses {if <condition>} and both of its branches. open is
// the offset of the opening brace and pos points just past the "if" keyword.
func (p *Parser) parseConditional(template string, open, pos int) (Token, int, error) {
	condStart := skipSpace(template, pos)
	if condStart == pos {
		return Token{}, pos, expected(template, pos, "whitespace after if")
	}

	condition, condEnd, err := p.parseCondition(template, condStart)
	if err != nil {
		return Token{}, condStart, err
	}

	bodyStart, err := p.expectClose(template, condEnd)
	if err != nil {
		return Token{}, condEnd, err
	}

	thenBranch, end, err := p.parseSequence(template, bodyStart)
	if err != nil {
		return Token{}, bodyStart, err
	}

	if end.term == termEOF {
		return Token{}, open, newParseError(open, ErrUnbalancedConditional, "{if} is never closed with {end}")
	}

	token := Token{
		Type:      TokenConditional,
		Condition: condition,
		Then:      thenBranch,
	}

	if end.term == termElse {
		elseBranch, elseEnd, err := p.parseSequence(template, end.next)
		if err != nil {
			return Token{}, end.next, err
		}

		switch elseEnd.term {
		case termEOF:
			return Token{}, open, newParseError(open, ErrUnbalancedConditional, "{if} is never closed with {end}")
		case termElse:
			return Token{}, elseEnd.at, newParseError(elseEnd.at, ErrUnbalancedConditional, "second {else} in the same {if}")
		}

		token.Else = elseBranch
		end = elseEnd
	}

	return token, end.next, nil
}

// parseCondition parses "success" or "$NAME".
func (p *Parser) parseCondition(template string, pos int) (Condition, int, error) {
	if pos < len(template) && template[pos] == '$' {
		end := scanWhile(template, pos+1, isEnvNameChar)
		if end == pos+1 {
			return Condition{}, pos, expected(template, end, "environment variable name")
		}
		return Condition{Kind: ConditionEnvVarSet, Name: template[pos+1 : end]}, end, nil
	}

	end := scanWhile(template, pos, isIdentChar)
	if end == pos {
		return Condition{}, pos, expected(template, pos, "condition")
	}

	name := template[pos:end]
	if name != conditionSuccess {
		parseErr := newParseError(pos, ErrUnknownCondition, "%q", name)
		if p.options.Suggest {
			if suggestion, ok := fuzzymatch.Suggest(name, []string{conditionSuccess}); ok {
				parseErr.Suggestion = suggestion
			}
		}
		return Condition{}, pos, parseErr
	}

	return Condition{Kind: ConditionExitStatusZero}, end, nil
}
