package ps1parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Hanaasagi/promptline/pkg/promptparser"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		ps1      string
		template string
		warnings int
	}{
		{
			name:     "user at host",
			ps1:      "%n@%m:%~ $ ",
			template: "{user}@{hostname}:{cwd} $ ",
		},
		{
			name:     "full path",
			ps1:      "%d %# ",
			template: "{cwd style=long} % ",
			warnings: 1,
		},
		{
			name:     "named foreground",
			ps1:      "%F{green}%n%f",
			template: "{dark_green}{user}{reset}",
		},
		{
			name:     "numbered foreground",
			ps1:      "%F{10}>%f ",
			template: "{green}>{reset} ",
		},
		{
			name:     "default foreground",
			ps1:      "%F{default}x",
			template: "{reset}x",
		},
		{
			name:     "unknown foreground",
			ps1:      "%F{208}x",
			template: "x",
			warnings: 1,
		},
		{
			name:     "background is dropped",
			ps1:      "%K{red}x%k",
			template: "x",
			warnings: 2,
		},
		{
			name:     "literal escape sequences",
			ps1:      `%{\e[32m%}ok%{\e[0m%}`,
			template: "{dark_green}ok{reset}",
		},
		{
			name:     "exit status conditional",
			ps1:      "%(?.ok.failed)",
			template: "{if success}ok{else}failed{end}",
		},
		{
			name:     "conditional without else",
			ps1:      "%(?.ok.)",
			template: "{if success}ok{end}",
		},
		{
			name:     "unsupported conditional",
			ps1:      "%(!.#.$)",
			template: "",
			warnings: 1,
		},
		{
			name:     "environment variable",
			ps1:      "${VIRTUAL_ENV}",
			template: "{env name=VIRTUAL_ENV}",
		},
		{
			name:     "command substitution",
			ps1:      "$(git_prompt_info)$ ",
			template: "$ ",
			warnings: 1,
		},
		{
			name:     "literal brace",
			ps1:      "a{b",
			template: "a{{b",
			warnings: 1,
		},
		{
			name:     "trailing directories",
			ps1:      "%2~",
			template: "{cwd style=short}",
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conversion, err := Convert(tt.ps1)
			if err != nil {
				t.Fatalf("Convert(%q) failed: %v", tt.ps1, err)
			}
			if conversion.Template != tt.template {
				t.Errorf("Template = %q, want %q", conversion.Template, tt.template)
			}
			if len(conversion.Warnings) != tt.warnings {
				t.Errorf("Expected %d warnings, got %d: %q", tt.warnings, len(conversion.Warnings), conversion.Warnings)
			}
		})
	}
}

func TestConvertLiteralBraceWarnsAboutOutput(t *testing.T) {
	conversion, err := Convert("a{b")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	wantWarnings := []string{`literal "{" has no template form; it is written as "{{" and the prompt will show "{{"`}
	if diff := cmp.Diff(wantWarnings, conversion.Warnings); diff != "" {
		t.Errorf("Warnings mismatch (-want +got):\n%s", diff)
	}

	tokens, err := promptparser.Parse(conversion.Template)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", conversion.Template, err)
	}
	var shown strings.Builder
	for _, token := range tokens {
		if token.Type != promptparser.TokenLiteral {
			t.Fatalf("unexpected token %v in %q", token, conversion.Template)
		}
		shown.WriteString(token.Content)
	}
	if shown.String() != "a{{b" {
		t.Errorf("converted template shows %q, want %q", shown.String(), "a{{b")
	}
}

func TestConvertRobbyRussell(t *testing.T) {
	ps1 := `%(?:%{$fg_bold[green]%}➜ :%{$fg_bold[red]%}➜ ) %{$fg[cyan]%}%c%{$reset_color%} $(git_prompt_info)`

	conversion, err := Convert(ps1)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	want := "{if success}{green}➜ {else}{red}➜ {end} {dark_cyan}{cwd style=short}{reset} "
	if conversion.Template != want {
		t.Errorf("Template = %q, want %q", conversion.Template, want)
	}

	wantWarnings := []string{
		"%c approximated by {cwd style=short}",
		`substitution "git_prompt_info" has no equivalent and was dropped`,
	}
	if diff := cmp.Diff(wantWarnings, conversion.Warnings); diff != "" {
		t.Errorf("Warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertBrightFromBoldArray(t *testing.T) {
	conversion, err := Convert("%{$fg_bold[blue]%}x%{$fg_no_bold[blue]%}y")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if want := "{blue}x{dark_blue}y"; conversion.Template != want {
		t.Errorf("Template = %q, want %q", conversion.Template, want)
	}
}

func TestConvertOutputIsValid(t *testing.T) {
	inputs := []string{
		"{",
		"}{end}",
		"%(?.{.})",
		"%{%}%n%{%} at %{%}%m%{%} in %{%}%~%{%} $ ",
		"%30<...<%~%<< $ ",
	}

	for _, ps1 := range inputs {
		conversion, err := Convert(ps1)
		if err != nil {
			t.Errorf("Convert(%q) failed: %v", ps1, err)
			continue
		}
		if strings.Contains(conversion.Template, "{end}{end}") {
			t.Errorf("Convert(%q) produced unbalanced template %q", ps1, conversion.Template)
		}
	}
}
