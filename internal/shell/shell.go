// Package shell knows how each supported shell expects zero-width escape
// sequences to be marked inside a prompt, and how to hook promptline into it.
package shell

import (
	"fmt"
	"strings"
)

// Kind is a target shell.
type Kind int

const (
	Zsh Kind = iota
	Bash
	// NoWrap emits escapes unmarked, for terminals and tests.
	NoWrap
)

var kindNames = map[string]Kind{
	"zsh":     Zsh,
	"bash":    Bash,
	"no_wrap": NoWrap,
}

// ParseKind returns the shell kind for name.
func ParseKind(name string) (Kind, error) {
	kind, ok := kindNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Zsh, fmt.Errorf("unsupported shell %q: valid options are bash, zsh, no_wrap", name)
	}
	return kind, nil
}

func (k Kind) String() string {
	switch k {
	case Zsh:
		return "zsh"
	case Bash:
		return "bash"
	case NoWrap:
		return "no_wrap"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Wrap marks seq as not moving the cursor, so the shell can compute the
// prompt width correctly.
func (k Kind) Wrap(seq string) string {
	switch k {
	case Zsh:
		return "%{" + seq + "%}"
	case Bash:
		return `\[` + seq + `\]`
	default:
		return seq
	}
}

var (
	// Bash decodes backslash escapes before expanding the prompt, so each
	// quoting backslash is itself doubled.
	bashEscaper = strings.NewReplacer(`\`, `\\\\`, "$", `\\$`, "`", "\\\\`")
	zshEscaper  = strings.NewReplacer("%", "%%", `\`, `\\`, "$", `\$`, "`", "\\`")
)

// Escape quotes text so the shell shows it verbatim instead of expanding
// it as a prompt sequence or substitution.
func (k Kind) Escape(text string) string {
	switch k {
	case Zsh:
		return zshEscaper.Replace(text)
	case Bash:
		return bashEscaper.Replace(text)
	default:
		return text
	}
}

// Unwrap removes the markers added by Wrap, leaving the raw escapes. For zsh
// it also turns an escaped "%%" back into "%".
func (k Kind) Unwrap(prompt string) string {
	switch k {
	case Zsh:
		return strings.NewReplacer("%%", "%", "%{", "", "%}", "").Replace(prompt)
	case Bash:
		return strings.NewReplacer(`\[`, "", `\]`, "").Replace(prompt)
	default:
		return prompt
	}
}
