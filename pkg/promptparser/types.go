// Package promptparser parses promptline templates into tokens.
//
// A template mixes literal text with brace-delimited directives:
//
//	{cwd style=short} {red}{git_branch}{reset}{if $VIRTUAL_ENV} (venv){end} $
//
// Parsing is a pure function of the template string. Resolving tokens to
// text happens elsewhere.
package promptparser

// TokenType represents the kind of a parsed template element.
type TokenType int

// Token types produced by the parser
const (
	TokenLiteral     TokenType = iota // Verbatim text, including the "{{" escape
	TokenStyle                        // A color name or reset
	TokenComponent                    // A named component with options
	TokenConditional                  // {if ...}...{else}...{end}
)

// Style is one of the fixed foreground colors, or StyleReset.
type Style int

const (
	StyleBlack Style = iota
	StyleDarkGrey
	StyleBlue
	StyleDarkBlue
	StyleGreen
	StyleDarkGreen
	StyleRed
	StyleDarkRed
	StyleCyan
	StyleDarkCyan
	StyleMagenta
	StyleDarkMagenta
	StyleYellow
	StyleDarkYellow
	StyleWhite
	StyleReset
)

// Component names a built-in prompt component.
type Component int

const (
	ComponentCwd Component = iota
	ComponentGitBranch
	ComponentGitCommit
	ComponentGitStash
	ComponentGitStatus
	ComponentHostname
	ComponentJobs
	ComponentEnv
	ComponentUser
)

// ConditionKind selects what a conditional block tests.
type ConditionKind int

const (
	ConditionExitStatusZero ConditionKind = iota // {if success}
	ConditionEnvVarSet                           // {if $NAME}
)

// Condition is the test of a conditional block. Name is only set for
// ConditionEnvVarSet.
type Condition struct {
	Kind ConditionKind
	Name string
}

// Token represents one parsed template element.
//
// Only the fields relevant to Type are set. Else is nil when the conditional
// has no {else} branch and non-nil (possibly empty) when it has one.
type Token struct {
	Type      TokenType
	Content   string
	Style     Style
	Component Component
	Options   map[string]string
	Condition Condition
	Then      []Token
	Else      []Token
}

// ParserOptions controls parsing behavior.
type ParserOptions struct {
	// Suggest enables "did you mean" hints for unknown identifiers.
	Suggest bool
}

// Parser converts template strings into token sequences.
type Parser struct {
	options ParserOptions
}

// Reserved words that close conditional blocks.
const (
	keywordIf   = "if"
	keywordElse = "else"
	keywordEnd  = "end"

	conditionSuccess = "success"
)

var styleNames = map[string]Style{
	"black":        StyleBlack,
	"dark_grey":    StyleDarkGrey,
	"blue":         StyleBlue,
	"dark_blue":    StyleDarkBlue,
	"green":        StyleGreen,
	"dark_green":   StyleDarkGreen,
	"red":          StyleRed,
	"dark_red":     StyleDarkRed,
	"cyan":         StyleCyan,
	"dark_cyan":    StyleDarkCyan,
	"magenta":      StyleMagenta,
	"dark_magenta": StyleDarkMagenta,
	"yellow":       StyleYellow,
	"dark_yellow":  StyleDarkYellow,
	"white":        StyleWhite,
	"reset":        StyleReset,
}

var componentNames = map[string]Component{
	"cwd":        ComponentCwd,
	"git_branch": ComponentGitBranch,
	"git_commit": ComponentGitCommit,
	"git_stash":  ComponentGitStash,
	"git_status": ComponentGitStatus,
	"hostname":   ComponentHostname,
	"jobs":       ComponentJobs,
	"env":        ComponentEnv,
	"user":       ComponentUser,
}
