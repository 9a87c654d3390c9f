package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAbsentItem is returned when an Absent item reaches Render, which means
// the items were not squashed first.
var ErrAbsentItem = errors.New("absent item in rendered output")

// Render concatenates the text of squashed items.
func Render(items []Item) (string, error) {
	var b strings.Builder

	for i, item := range items {
		if item.Kind == KindAbsent {
			return "", fmt.Errorf("item %d: %w", i, ErrAbsentItem)
		}
		b.WriteString(item.Text)
	}

	return b.String(), nil
}
