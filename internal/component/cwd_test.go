package component

import (
	"testing"

	"github.com/Hanaasagi/promptline/internal/shell"
)

func TestReplaceHomeDir(t *testing.T) {
	tests := []struct {
		path string
		home string
		want string
	}{
		{"/home/foo/bar/baz", "/home/foo", "~/bar/baz"},
		{"/home/foo", "/home/foo", "~"},
		{"/home/foobar", "/home/foo", "/home/foobar"},
		{"/srv/home/foo", "/home/foo", "/srv/home/foo"},
		{"/home/foo/bar", "/home/foo/", "~/bar"},
		{"/home/foo/bar", "", "/home/foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := replaceHomeDir(tt.path, tt.home); got != tt.want {
				t.Errorf("replaceHomeDir(%q, %q) = %q, want %q", tt.path, tt.home, got, tt.want)
			}
		})
	}
}

func TestShortPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		home string
		root string
		want string
	}{
		{
			name: "inside repository",
			path: "/home/foo/axx/bxx/repo/cxx/dxx",
			home: "/home/foo",
			root: "/home/foo/axx/bxx/repo",
			want: "~/a/b/repo/c/dxx",
		},
		{
			name: "at repository root",
			path: "/home/foo/axx/bxx/repo",
			home: "/home/foo",
			root: "/home/foo/axx/bxx/repo",
			want: "~/a/b/repo",
		},
		{
			name: "single directory repository",
			path: "/home/foo/axx",
			home: "/home/foo",
			root: "/home/foo/axx",
			want: "~/axx",
		},
		{
			name: "outside home",
			path: "/foo/bar/axx/bxx/cxx/dxx",
			home: "/home/baz",
			root: "/foo/bar/axx",
			want: "/f/b/axx/b/c/dxx",
		},
		{
			name: "no repository",
			path: "/foo/bar/axx/bxx/cxx/dxx",
			home: "/home/baz",
			want: "/f/b/a/b/c/dxx",
		},
		{
			name: "dot directories",
			path: "/.axx/./..xx/.dxx",
			home: "/home/baz",
			want: "/.a/./../.dxx",
		},
		{
			name: "multibyte segment",
			path: "/home/foo/été/src",
			home: "/home/foo",
			want: "~/é/src",
		},
		{
			name: "home",
			path: "/home/foo",
			home: "/home/foo",
			want: "~",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shortPath(tt.path, tt.home, tt.root, repoDecoration{}, shell.Zsh)
			if got != tt.want {
				t.Errorf("shortPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortPathDecoration(t *testing.T) {
	path := "/home/foo/axx/repo/cxx"
	home := "/home/foo"
	root := "/home/foo/axx/repo"

	tests := []struct {
		name       string
		decoration repoDecoration
		kind       shell.Kind
		want       string
	}{
		{
			name:       "underline zsh",
			decoration: repoDecoration{underline: true},
			kind:       shell.Zsh,
			want:       "~/a/%{\x1b[4m%}repo%{\x1b[24m%}/cxx",
		},
		{
			name:       "bold bash",
			decoration: repoDecoration{bold: true},
			kind:       shell.Bash,
			want:       "~/a/\\[\x1b[1m\\]repo\\[\x1b[22m\\]/cxx",
		},
		{
			name:       "both no_wrap",
			decoration: repoDecoration{underline: true, bold: true},
			kind:       shell.NoWrap,
			want:       "~/a/\x1b[4m\x1b[1mrepo\x1b[22m\x1b[24m/cxx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shortPath(path, home, root, tt.decoration, tt.kind)
			if got != tt.want {
				t.Errorf("shortPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAbbreviate(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"a":       "a",
		"src":     "s",
		".":       ".",
		"..":      "..",
		".config": ".c",
		"日本語":     "日",
	}

	for input, want := range tests {
		if got := abbreviate(input); got != want {
			t.Errorf("abbreviate(%q) = %q, want %q", input, got, want)
		}
	}
}
