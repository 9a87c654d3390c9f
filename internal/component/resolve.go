package component

import (
	"fmt"
	"log/slog"

	"github.com/Hanaasagi/promptline/internal/render"
	"github.com/Hanaasagi/promptline/internal/style"
	"github.com/Hanaasagi/promptline/pkg/promptparser"
)

// handler renders one component. It must Take every option it understands.
type handler func(ctx Context, opts *Options) (render.Item, error)

var handlers = map[promptparser.Component]handler{
	promptparser.ComponentCwd:       cwd,
	promptparser.ComponentGitBranch: gitBranch,
	promptparser.ComponentGitCommit: gitCommit,
	promptparser.ComponentGitStash:  gitStash,
	promptparser.ComponentGitStatus: gitStatus,
	promptparser.ComponentHostname:  hostname,
	promptparser.ComponentJobs:      jobs,
	promptparser.ComponentEnv:       env,
	promptparser.ComponentUser:      user,
}

// quotesOwnValue lists components whose values embed wrapped escapes and
// are quoted for the shell by the handler itself.
var quotesOwnValue = map[promptparser.Component]bool{
	promptparser.ComponentCwd: true,
}

// Resolve turns tokens into render items. Conditionals contribute the items
// of the branch their condition selects. Any option error aborts the whole
// resolution.
func Resolve(tokens []promptparser.Token, ctx Context) ([]render.Item, error) {
	return resolveInto(make([]render.Item, 0, len(tokens)), tokens, ctx)
}

func resolveInto(items []render.Item, tokens []promptparser.Token, ctx Context) ([]render.Item, error) {
	for _, token := range tokens {
		switch token.Type {
		case promptparser.TokenLiteral:
			items = append(items, render.Text(token.Content))

		case promptparser.TokenStyle:
			item, err := resolveStyle(token.Style, ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, item)

		case promptparser.TokenComponent:
			item, err := invoke(token.Component, token.Options, ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, item)

		case promptparser.TokenConditional:
			branch := token.Else
			if evaluate(token.Condition, ctx) {
				branch = token.Then
			}
			var err error
			if items, err = resolveInto(items, branch, ctx); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("unexpected token type %v", token.Type)
		}
	}
	return items, nil
}

func resolveStyle(s promptparser.Style, ctx Context) (render.Item, error) {
	seq, err := style.Escape(s)
	if err != nil {
		return render.Item{}, err
	}
	wrapped := ctx.Shell().Wrap(seq)
	if s.IsReset() {
		return render.ColorReset(wrapped), nil
	}
	return render.ColorStart(wrapped), nil
}

func invoke(c promptparser.Component, options map[string]string, ctx Context) (render.Item, error) {
	h, ok := handlers[c]
	if !ok {
		return render.Item{}, fmt.Errorf("no handler for component %v", c)
	}

	opts := newOptions(c, options)
	item, err := h(ctx, opts)
	if err != nil {
		return render.Item{}, err
	}
	if err := opts.check(); err != nil {
		return render.Item{}, err
	}
	// Values come from the filesystem, git and the environment. The shell
	// must print them, never expand them.
	if item.Kind == render.KindValue && !quotesOwnValue[c] {
		item.Text = ctx.Shell().Escape(item.Text)
	}
	return item, nil
}

func evaluate(cond promptparser.Condition, ctx Context) bool {
	switch cond.Kind {
	case promptparser.ConditionExitStatusZero:
		return ctx.LastExitStatus() == 0
	case promptparser.ConditionEnvVarSet:
		_, ok := ctx.LookupEnv(cond.Name)
		return ok
	default:
		return false
	}
}

// unavailable reports a read that failed. Failures show as nothing.
func unavailable(component string, err error) render.Item {
	slog.Debug("Component unavailable", "component", component, "error", err)
	return render.Absent()
}
