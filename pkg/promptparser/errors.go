package promptparser

import (
	"errors"
	"fmt"
)

// Parse error kinds. A *ParseError unwraps to exactly one of these.
var (
	ErrUnexpectedInput       = errors.New("unexpected input")
	ErrUnexpectedEOF         = errors.New("unexpected end of template")
	ErrUnknownIdentifier     = errors.New("unknown identifier")
	ErrUnknownCondition      = errors.New("unknown condition")
	ErrReservedWord          = errors.New("reserved word")
	ErrUnbalancedConditional = errors.New("unbalanced conditional")
	ErrDuplicateOption       = errors.New("duplicate option")
	ErrMissingValue          = errors.New("missing option value")
)

// ParseError reports a malformed template. Offset is the byte offset into
// the template where the problem was detected.
type ParseError struct {
	Offset     int
	Kind       error
	Detail     string
	Suggestion string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at offset %d: %v", e.Offset, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newParseError(offset int, kind error, format string, args ...any) *ParseError {
	return &ParseError{
		Offset: offset,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

// expected builds an error for a position where want was required.
func expected(template string, pos int, want string) *ParseError {
	if pos >= len(template) {
		return newParseError(pos, ErrUnexpectedEOF, "expected %s", want)
	}
	return newParseError(pos, ErrUnexpectedInput, "expected %s, found %q", want, describeAt(template, pos))
}
