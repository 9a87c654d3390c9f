package ps1parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	ansi "github.com/leaanthony/go-ansi-parser"

	"github.com/Hanaasagi/promptline/pkg/promptparser"
)

// paletteStyles maps the 16 base terminal colors to template styles.
// Color 7 has no template style and is approximated by white.
var paletteStyles = [16]string{
	"black", "dark_red", "dark_green", "dark_yellow",
	"dark_blue", "dark_magenta", "dark_cyan", "white",
	"dark_grey", "red", "green", "yellow",
	"blue", "magenta", "cyan", "white",
}

// zshColorNames are the names accepted by %F{...} and $fg[...].
var zshColorNames = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
	"grey":    8,
	"gray":    8,
}

var (
	fgArrayRegex = regexp.MustCompile(`^\$\{?fg(_bold|_no_bold)?\[(\w+)\]\}?$`)
	resetRegex   = regexp.MustCompile(`^\$\{?reset_color\}?$`)
	envNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Convert converts a zsh PS1 string into an equivalent promptline template.
// Parts without an equivalent are dropped or approximated and reported in
// the returned warnings.
func Convert(ps1 string) (*Conversion, error) {
	c := &converter{parser: NewParser(ParserOptions{})}

	tokens, err := c.convert(ps1)
	if err != nil {
		return nil, err
	}

	template := promptparser.Format(tokens)
	if err := promptparser.Validate(template); err != nil {
		return nil, fmt.Errorf("converted template is invalid: %w", err)
	}

	return &Conversion{Template: template, Warnings: c.warnings}, nil
}

type converter struct {
	parser   *Parser
	warnings []string
}

func (c *converter) warn(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

func (c *converter) convert(ps1 string) ([]promptparser.Token, error) {
	parsed, err := c.parser.Parse(ps1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PS1: %w", err)
	}

	tokens := []promptparser.Token{}
	for _, token := range parsed.Tokens {
		converted, err := c.convertToken(token)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, converted...)
	}
	return tokens, nil
}

func (c *converter) convertToken(token Token) ([]promptparser.Token, error) {
	switch token.Type {
	case TokenLiteral:
		return c.convertLiteral(token.Content), nil
	case TokenPercent:
		return c.convertPercent(token), nil
	case TokenColorSeq:
		return c.convertColor(token), nil
	case TokenCondition:
		return c.convertCondition(token)
	case TokenCommand:
		return c.convertCommand(token), nil
	default:
		return nil, fmt.Errorf("unexpected token %s", token)
	}
}

// convertLiteral keeps text verbatim. A lone "{" cannot be expressed in a
// template, so it becomes the "{{" sequence, which renders as two braces.
func (c *converter) convertLiteral(text string) []promptparser.Token {
	var tokens []promptparser.Token
	for {
		i := strings.IndexByte(text, '{')
		if i == -1 {
			break
		}
		if i > 0 {
			tokens = append(tokens, promptparser.Literal(text[:i]))
		}
		tokens = append(tokens, promptparser.Literal("{{"))
		c.warn(`literal "{" has no template form; it is written as "{{" and the prompt will show "{{"`)
		text = text[i+1:]
	}
	if text != "" {
		tokens = append(tokens, promptparser.Literal(text))
	}
	return tokens
}

func invocation(component promptparser.Component, options map[string]string) []promptparser.Token {
	return []promptparser.Token{promptparser.Invocation(component, options)}
}

func (c *converter) convertPercent(token Token) []promptparser.Token {
	meaning := token.Params["meaning"]
	number := token.Params["number"]

	switch meaning {
	case "username":
		return invocation(promptparser.ComponentUser, nil)
	case "hostname_short", "hostname_full":
		return invocation(promptparser.ComponentHostname, nil)
	case "job_count":
		return invocation(promptparser.ComponentJobs, nil)
	case "current_dir_tilde":
		if number != "" {
			c.warn("%%%s~ approximated by {cwd style=short}", number)
			return invocation(promptparser.ComponentCwd, map[string]string{"style": "short"})
		}
		return invocation(promptparser.ComponentCwd, nil)
	case "current_dir":
		if number != "" {
			c.warn("%%%s%s approximated by {cwd style=short}", number, token.Params["escape"])
			return invocation(promptparser.ComponentCwd, map[string]string{"style": "short"})
		}
		return invocation(promptparser.ComponentCwd, map[string]string{"style": "long"})
	case "current_dir_tail", "current_dir_tail_no_tilde":
		c.warn("%%%s approximated by {cwd style=short}", token.Content)
		return invocation(promptparser.ComponentCwd, map[string]string{"style": "short"})
	case "end_foreground_color":
		return []promptparser.Token{promptparser.Color(promptparser.StyleReset)}
	case "privilege_indicator":
		c.warn("%%# is written as a literal %%")
		return []promptparser.Token{promptparser.Literal("%")}
	default:
		c.warn("%%%s (%s) has no equivalent and was dropped", token.Content, meaning)
		return nil
	}
}

func (c *converter) convertColor(token Token) []promptparser.Token {
	switch token.Params["type"] {
	case "foreground":
		if style, ok := c.namedStyle(token.Content); ok {
			return []promptparser.Token{promptparser.Color(style)}
		}
		c.warn("%%F{%s} has no equivalent color and was dropped", token.Content)
	case "background":
		c.warn("background color %%K{%s} was dropped", token.Content)
	case "raw":
		if token.Content == "" {
			return nil
		}
		if style, ok := c.rawStyle(token.Content); ok {
			return []promptparser.Token{promptparser.Color(style)}
		}
		c.warn("escape sequence %%{%s%%} was dropped", token.Content)
	}
	return nil
}

// namedStyle resolves a zsh color name or palette number.
func (c *converter) namedStyle(name string) (promptparser.Style, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "default" {
		return promptparser.StyleReset, true
	}

	index, ok := zshColorNames[name]
	if !ok {
		n, err := strconv.Atoi(name)
		if err != nil {
			return 0, false
		}
		index = n
	}
	return c.paletteStyle(index)
}

func (c *converter) paletteStyle(index int) (promptparser.Style, bool) {
	if index < 0 || index >= len(paletteStyles) {
		return 0, false
	}
	if index == 7 {
		c.warn("color 7 approximated by white")
	}
	return promptparser.LookupStyle(paletteStyles[index])
}

// rawStyle interprets the contents of %{...%}: either an oh-my-zsh color
// variable or literal SGR escapes.
func (c *converter) rawStyle(content string) (promptparser.Style, bool) {
	content = strings.TrimSpace(content)

	if resetRegex.MatchString(content) {
		return promptparser.StyleReset, true
	}
	if m := fgArrayRegex.FindStringSubmatch(content); m != nil {
		index, ok := zshColorNames[strings.ToLower(m[2])]
		if !ok {
			return 0, false
		}
		if m[1] == "_bold" && index < 8 {
			index += 8
		}
		return c.paletteStyle(index)
	}

	seq := unescapeString(content)
	if !strings.Contains(seq, "\x1b[") {
		return 0, false
	}

	// The trailing character carries the style left by the escapes.
	elements, err := ansi.Parse(seq+"x", ansi.WithIgnoreInvalidCodes())
	if err != nil || len(elements) == 0 {
		return 0, false
	}
	last := elements[len(elements)-1]
	switch {
	case last.FgCol != nil:
		return c.paletteStyle(last.FgCol.Id)
	case last.Style == 0:
		return promptparser.StyleReset, true
	default:
		return 0, false
	}
}

// convertCondition handles %(?.ok.failed). Other tests have no template
// condition.
func (c *converter) convertCondition(token Token) ([]promptparser.Token, error) {
	test := token.Params["test"]
	number := token.Params["number"]
	if test != "?" || (number != "" && number != "0") {
		c.warn("conditional %%(%s) has no equivalent and was dropped", token.Content)
		return nil, nil
	}

	then, err := c.convert(token.Params["true_text"])
	if err != nil {
		return nil, err
	}

	var otherwise []promptparser.Token
	if falseText := token.Params["false_text"]; falseText != "" {
		if otherwise, err = c.convert(falseText); err != nil {
			return nil, err
		}
	}

	condition := promptparser.Condition{Kind: promptparser.ConditionExitStatusZero}
	return []promptparser.Token{promptparser.Conditional(condition, then, otherwise)}, nil
}

func (c *converter) convertCommand(token Token) []promptparser.Token {
	if token.Params["type"] == "variable" {
		if style, ok := c.rawStyle("$" + token.Content); ok {
			return []promptparser.Token{promptparser.Color(style)}
		}
		if envNameRegex.MatchString(token.Content) {
			return invocation(promptparser.ComponentEnv, map[string]string{"name": token.Content})
		}
	}
	c.warn("substitution %q has no equivalent and was dropped", token.Content)
	return nil
}
