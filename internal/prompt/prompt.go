// Package prompt renders a template against a Context.
package prompt

import (
	"fmt"

	"github.com/Hanaasagi/promptline/internal/component"
	"github.com/Hanaasagi/promptline/internal/render"
	"github.com/Hanaasagi/promptline/pkg/promptparser"
)

// Render parses template, resolves it against ctx and returns the prompt.
// Parse errors and option errors are returned as is so callers can match
// them with errors.As.
func Render(template string, ctx component.Context) (string, error) {
	tokens, err := promptparser.Parse(template)
	if err != nil {
		return "", err
	}
	return RenderTokens(tokens, ctx)
}

// RenderTokens renders an already parsed template.
func RenderTokens(tokens []promptparser.Token, ctx component.Context) (string, error) {
	items, err := component.Resolve(tokens, ctx)
	if err != nil {
		return "", err
	}

	out, err := render.Render(render.Squash(items))
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return out, nil
}
