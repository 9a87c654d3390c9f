package shell

import (
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"zsh", Zsh, false},
		{"bash", Bash, false},
		{"no_wrap", NoWrap, false},
		{" ZSH ", Zsh, false},
		{"fish", Zsh, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	green := "\x1b[38;5;10m"

	tests := []struct {
		kind Kind
		want string
	}{
		{Zsh, "%{\x1b[38;5;10m%}"},
		{Bash, "\\[\x1b[38;5;10m\\]"},
		{NoWrap, "\x1b[38;5;10m"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := tt.kind.Wrap(green)
			if got != tt.want {
				t.Errorf("Wrap() = %q, want %q", got, tt.want)
			}
			if back := tt.kind.Unwrap(got); back != green {
				t.Errorf("Unwrap(Wrap()) = %q, want %q", back, green)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		input string
		want  string
	}{
		{"bash command substitution", Bash, "$(touch x)", `\\$(touch x)`},
		{"bash backticks", Bash, "a`id`b", "a\\\\`id\\\\`b"},
		{"bash backslash", Bash, `a\w`, `a\\\\w`},
		{"bash percent untouched", Bash, "100%", "100%"},
		{"zsh percent", Zsh, "100%", "100%%"},
		{"zsh prompt sequence", Zsh, "%n%~", "%%n%%~"},
		{"zsh command substitution", Zsh, "$(touch x)", `\$(touch x)`},
		{"zsh backslash", Zsh, `a\b`, `a\\b`},
		{"no_wrap verbatim", NoWrap, "$(touch x) 100% `id`", "$(touch x) 100% `id`"},
		{"plain text", Bash, "~/proj", "~/proj"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Escape(tt.input); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{cwd} $ ", "'{cwd} $ '"},
		{"it's", `'it'\''s'`},
		{"", "''"},
	}

	for _, tt := range tests {
		if got := Quote(tt.input); got != tt.want {
			t.Errorf("Quote(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestInitScript(t *testing.T) {
	t.Run("zsh with template", func(t *testing.T) {
		script, err := InitScript(Zsh, "/usr/bin/promptline", "{cwd} $ ")
		if err != nil {
			t.Fatalf("InitScript failed: %v", err)
		}
		for _, want := range []string{
			`PROMPT="$('/usr/bin/promptline' --shell zsh`,
			`--jobs "${${(%):-%j}:#0}" -- '{cwd} $ ')"`,
			"precmd_functions",
			"setopt prompt_subst",
		} {
			if !strings.Contains(script, want) {
				t.Errorf("zsh script missing %q:\n%s", want, script)
			}
		}
	})

	t.Run("bash without template", func(t *testing.T) {
		script, err := InitScript(Bash, "/opt/promptline", "")
		if err != nil {
			t.Fatalf("InitScript failed: %v", err)
		}
		if !strings.Contains(script, `PS1="$('/opt/promptline' --shell bash --status "$last_status" --jobs "$job_count")"`) {
			t.Errorf("unexpected bash script:\n%s", script)
		}
		if strings.Contains(script, " -- ") {
			t.Errorf("bash script should not pass a template:\n%s", script)
		}
	})

	t.Run("no_wrap has no script", func(t *testing.T) {
		if _, err := InitScript(NoWrap, "promptline", ""); err == nil {
			t.Error("expected an error for no_wrap")
		}
	})
}
