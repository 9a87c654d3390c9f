package component

import (
	"strings"
	"unicode/utf8"

	"github.com/Hanaasagi/promptline/internal/render"
	"github.com/Hanaasagi/promptline/internal/shell"
	"github.com/Hanaasagi/promptline/internal/style"
)

const (
	cwdStyleDefault = "default"
	cwdStyleShort   = "short"
	cwdStyleLong    = "long"
)

// repoDecoration marks the repository root segment of a short path.
type repoDecoration struct {
	underline bool
	bold      bool
}

func (d repoDecoration) apply(segment string, kind shell.Kind) string {
	if !d.underline && !d.bold {
		return segment
	}

	var b strings.Builder
	if d.underline {
		b.WriteString(kind.Wrap(style.Underline()))
	}
	if d.bold {
		b.WriteString(kind.Wrap(style.Bold()))
	}
	b.WriteString(segment)
	if d.bold {
		b.WriteString(kind.Wrap(style.NoBold()))
	}
	if d.underline {
		b.WriteString(kind.Wrap(style.NoUnderline()))
	}
	return b.String()
}

func cwd(ctx Context, opts *Options) (render.Item, error) {
	cwdStyle, err := opts.TakeChoice("style", cwdStyleDefault, cwdStyleShort, cwdStyleLong)
	if err != nil {
		return render.Item{}, err
	}
	var decoration repoDecoration
	if decoration.underline, err = opts.TakeBool("underline_repo"); err != nil {
		return render.Item{}, err
	}
	if decoration.bold, err = opts.TakeBool("bold_repo"); err != nil {
		return render.Item{}, err
	}

	dir := ctx.CurrentDir()
	kind := ctx.Shell()
	switch cwdStyle {
	case cwdStyleLong:
		return render.Value(kind.Escape(dir)), nil
	case cwdStyleShort:
		root := ""
		if repo, ok := ctx.Repository(); ok {
			root = repo.Root()
		}
		return render.Value(shortPath(dir, ctx.HomeDir(), root, decoration, kind)), nil
	default:
		return render.Value(kind.Escape(replaceHomeDir(dir, ctx.HomeDir()))), nil
	}
}

// replaceHomeDir replaces a leading home directory with "~". Only whole
// path segments match, so /home/foobar is kept for home /home/foo.
func replaceHomeDir(path, home string) string {
	home = strings.TrimSuffix(home, "/")
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}

// shortPath abbreviates every segment of path to its first character, or
// two when it starts with a dot. The last segment and the repository root
// segment are kept whole. Segments are escaped for kind before the
// decoration is applied.
func shortPath(path, home, repoRoot string, decoration repoDecoration, kind shell.Kind) string {
	repoIndex := -1
	if repoRoot != "" {
		repoIndex = len(strings.Split(replaceHomeDir(repoRoot, home), "/")) - 1
	}

	segments := strings.Split(replaceHomeDir(path, home), "/")
	last := len(segments) - 1
	for i, segment := range segments {
		switch {
		case i == repoIndex:
			segments[i] = decoration.apply(kind.Escape(segment), kind)
		case i == last:
			segments[i] = kind.Escape(segment)
		default:
			segments[i] = kind.Escape(abbreviate(segment))
		}
	}
	return strings.Join(segments, "/")
}

func abbreviate(segment string) string {
	n := 1
	if strings.HasPrefix(segment, ".") {
		n = 2
	}

	end := 0
	for i := 0; i < n && end < len(segment); i++ {
		_, size := utf8.DecodeRuneInString(segment[end:])
		end += size
	}
	return segment[:end]
}
