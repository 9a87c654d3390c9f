package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"

	"github.com/Hanaasagi/promptline/internal/component"
	"github.com/Hanaasagi/promptline/internal/session"
	"github.com/Hanaasagi/promptline/internal/shell"
	"github.com/Hanaasagi/promptline/pkg/promptparser"
)

func newSession(dir, home string, env map[string]string) *session.Session {
	return session.New(session.Options{
		Shell: shell.NoWrap,
		Dir:   dir,
		Home:  home,
		LookupEnv: func(name string) (string, bool) {
			v, ok := env[name]
			return v, ok
		},
		Hostname: func() (string, error) { return "box", nil },
	})
}

func TestRender(t *testing.T) {
	outside := t.TempDir()

	tests := []struct {
		name     string
		template string
		dir      string
		home     string
		env      map[string]string
		want     string
	}{
		{
			name:     "cwd under home",
			template: "{cwd} $ ",
			dir:      "/home/alice/proj",
			home:     "/home/alice",
			want:     "~/proj $ ",
		},
		{
			name:     "branch outside repository",
			template: "{red}{git_branch}{reset} $ ",
			dir:      outside,
			want:     " $ ",
		},
		{
			name:     "literal only",
			template: "plain text > ",
			dir:      outside,
			want:     "plain text > ",
		},
		{
			name:     "escaped brace",
			template: "{{cwd}",
			dir:      outside,
			want:     "{{cwd}",
		},
		{
			name:     "decorative group is kept",
			template: "{blue}[{reset}x",
			dir:      outside,
			want:     "\x1b[38;5;12m[\x1b[0mx",
		},
		{
			name:     "value group is kept",
			template: "{green}{user}{reset}@{hostname}",
			dir:      outside,
			env:      map[string]string{"USER": "alice"},
			want:     "\x1b[38;5;10malice\x1b[0m@box",
		},
		{
			name:     "conditional on env",
			template: "{if $VIRTUAL_ENV}({env name=VIRTUAL_ENV}) {end}$ ",
			dir:      outside,
			env:      map[string]string{"VIRTUAL_ENV": "venv"},
			want:     "(venv) $ ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, newSession(tt.dir, tt.home, tt.env))
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestRenderShortCwdInRepository(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, "axx", "bxx", "repo")
	dir := filepath.Join(root, "cxx", "dxx")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := git.PlainInit(root, false); err != nil {
		t.Fatal(err)
	}

	got, err := Render("{cwd style=short}", newSession(dir, home, nil))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if want := "~/a/b/repo/c/dxx"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderBranchInRepository(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatal(err)
	}

	// No commit yet, so there is no branch to show.
	got, err := Render("{green}{git_branch}{reset}$ ", newSession(dir, "", nil))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "$ " {
		t.Errorf("Render() = %q, want %q", got, "$ ")
	}
}

func TestRenderQuotesDirectoryForShell(t *testing.T) {
	tests := []struct {
		name string
		kind shell.Kind
		dir  string
		want string
	}{
		{
			name: "bash command substitution",
			kind: shell.Bash,
			dir:  "/tmp/inj/$(touch x)",
			want: `/tmp/inj/\\$(touch x) $ `,
		},
		{
			name: "bash backslash",
			kind: shell.Bash,
			dir:  `/tmp/a\w`,
			want: `/tmp/a\\\\w $ `,
		},
		{
			name: "zsh percent",
			kind: shell.Zsh,
			dir:  "/home/alice/100%",
			want: "~/100%% $ ",
		},
		{
			name: "zsh backticks",
			kind: shell.Zsh,
			dir:  "/home/alice/`id`",
			want: "~/\\`id\\` $ ",
		},
		{
			name: "no_wrap verbatim",
			kind: shell.NoWrap,
			dir:  "/home/alice/$(id)%",
			want: "~/$(id)% $ ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := session.New(session.Options{
				Shell:    tt.kind,
				Dir:      tt.dir,
				Home:     "/home/alice",
				Hostname: func() (string, error) { return "box", nil },
			})
			got, err := Render("{cwd} $ ", ctx)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	ctx := newSession(t.TempDir(), "", nil)

	t.Run("invalid options", func(t *testing.T) {
		out, err := Render("{cwd bogus=1}", ctx)
		if out != "" {
			t.Errorf("Render() produced partial output %q", out)
		}
		var invalid *component.InvalidOptionsError
		if !errors.As(err, &invalid) {
			t.Fatalf("Render() error = %v, want InvalidOptionsError", err)
		}
		if !strings.Contains(err.Error(), "bogus=1") {
			t.Errorf("error %q does not name bogus=1", err)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := Render("{nope}", ctx)
		var parseErr *promptparser.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Render() error = %v, want ParseError", err)
		}
		if !errors.Is(err, promptparser.ErrUnknownIdentifier) {
			t.Errorf("Render() error = %v, want ErrUnknownIdentifier", err)
		}
	})
}
