package shell

import (
	"fmt"
	"strings"
)

const zshInit = `_promptline_precmd() {
  local last_status=$?
  PROMPT="$(%s --shell zsh --status "$last_status" --jobs "${${(%%):-%%j}:#0}"%s)"
}
setopt prompt_subst
typeset -ga precmd_functions
precmd_functions=(${precmd_functions:#_promptline_precmd} _promptline_precmd)
`

const bashInit = `_promptline_prompt_command() {
  local last_status=$?
  local job_count
  job_count=$(jobs -p | wc -l | tr -d ' ')
  [ "$job_count" = "0" ] && job_count=""
  PS1="$(%s --shell bash --status "$last_status" --jobs "$job_count"%s)"
}
case ";${PROMPT_COMMAND:-};" in
  *";_promptline_prompt_command;"*) ;;
  *) PROMPT_COMMAND="_promptline_prompt_command${PROMPT_COMMAND:+;$PROMPT_COMMAND}" ;;
esac
`

// InitScript returns the snippet that installs promptline as the prompt of
// the given shell. An empty template leaves template selection to the
// configuration at render time.
func InitScript(kind Kind, executable, template string) (string, error) {
	args := ""
	if template != "" {
		args = " -- " + Quote(template)
	}

	switch kind {
	case Zsh:
		return fmt.Sprintf(zshInit, Quote(executable), args), nil
	case Bash:
		return fmt.Sprintf(bashInit, Quote(executable), args), nil
	default:
		return "", fmt.Errorf("no init script for shell %s", kind)
	}
}

// Quote single-quotes s for POSIX-style shells.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
