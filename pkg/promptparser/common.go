package promptparser

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultTemplate is rendered when no template is configured.
const DefaultTemplate = "{cwd} {git_branch} $ "

// Parse parses a template with suggestions enabled. This is the recommended
// high-level API.
func Parse(template string) ([]Token, error) {
	return NewParser(ParserOptions{Suggest: true}).Parse(template)
}

// Validate checks that a template is parseable.
func Validate(template string) error {
	_, err := Parse(template)
	return err
}

// Token constructors, mostly useful for building expected values in tests.

// Literal returns a literal text token.
func Literal(text string) Token {
	return Token{Type: TokenLiteral, Content: text}
}

// Color returns a style token.
func Color(style Style) Token {
	return Token{Type: TokenStyle, Style: style}
}

// Invocation returns a component token. A nil options map is replaced with an
// empty one.
func Invocation(component Component, options map[string]string) Token {
	if options == nil {
		options = map[string]string{}
	}
	return Token{Type: TokenComponent, Component: component, Options: options}
}

// Conditional returns a conditional token. Pass a nil else branch for
// {if}...{end} without {else}.
func Conditional(condition Condition, then, otherwise []Token) Token {
	return Token{Type: TokenConditional, Condition: condition, Then: then, Else: otherwise}
}

// LookupStyle returns the style with the given template name.
func LookupStyle(name string) (Style, bool) {
	style, ok := styleNames[name]
	return style, ok
}

// LookupComponent returns the component with the given template name.
func LookupComponent(name string) (Component, bool) {
	component, ok := componentNames[name]
	return component, ok
}

// StyleNames returns every style name accepted in templates, sorted.
func StyleNames() []string {
	return sortedKeys(styleNames)
}

// ComponentNames returns every component name accepted in templates, sorted.
func ComponentNames() []string {
	return sortedKeys(componentNames)
}

func identifierNames() []string {
	names := append(StyleNames(), ComponentNames()...)
	return append(names, keywordIf)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (t TokenType) String() string {
	switch t {
	case TokenLiteral:
		return "Literal"
	case TokenStyle:
		return "Style"
	case TokenComponent:
		return "Component"
	case TokenConditional:
		return "Conditional"
	default:
		return "Unknown"
	}
}

func (s Style) String() string {
	for name, style := range styleNames {
		if style == s {
			return name
		}
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// IsReset reports whether s is the reset marker rather than a color.
func (s Style) IsReset() bool {
	return s == StyleReset
}

func (c Component) String() string {
	for name, component := range componentNames {
		if component == c {
			return name
		}
	}
	return fmt.Sprintf("Component(%d)", int(c))
}

func (c Condition) String() string {
	if c.Kind == ConditionEnvVarSet {
		return "$" + c.Name
	}
	return conditionSuccess
}

// String returns the template source form of a token.
func (t Token) String() string {
	switch t.Type {
	case TokenLiteral:
		return t.Content
	case TokenStyle:
		return "{" + t.Style.String() + "}"
	case TokenComponent:
		var b strings.Builder
		b.WriteString("{")
		b.WriteString(t.Component.String())
		for _, key := range sortedKeys(t.Options) {
			fmt.Fprintf(&b, " %s=%s", key, t.Options[key])
		}
		b.WriteString("}")
		return b.String()
	case TokenConditional:
		var b strings.Builder
		fmt.Fprintf(&b, "{if %s}", t.Condition)
		b.WriteString(Format(t.Then))
		if t.Else != nil {
			b.WriteString("{else}")
			b.WriteString(Format(t.Else))
		}
		b.WriteString("{end}")
		return b.String()
	default:
		return ""
	}
}

// Format returns the template source for a token sequence. Parsing the
// result yields an equivalent sequence.
func Format(tokens []Token) string {
	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(token.String())
	}
	return b.String()
}
