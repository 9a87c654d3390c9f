package render

// Groups partitions items into runs bounded by color markers.
//
// A ColorStart closes the current run (when it is non-empty) and opens a new
// one; a ColorReset ends the run it belongs to. Concatenating the returned
// groups always reproduces items exactly. The last group may be empty.
func Groups(items []Item) [][]Item {
	var groups [][]Item
	current := []Item{}

	for _, item := range items {
		switch item.Kind {
		case KindColorStart:
			if len(current) > 0 {
				groups = append(groups, current)
				current = []Item{}
			}
			current = append(current, item)
		case KindColorReset:
			current = append(current, item)
			groups = append(groups, current)
			current = []Item{}
		default:
			current = append(current, item)
		}
	}

	return append(groups, current)
}

// keepGroup decides whether a group survives squashing: a purely decorative
// group is always kept, anything else only when it holds a computed value.
func keepGroup(group []Item) bool {
	decorativeOnly := true
	hasValue := false

	for _, item := range group {
		if !item.IsDecorative() {
			decorativeOnly = false
		}
		if item.Kind == KindValue {
			hasValue = true
		}
	}

	return decorativeOnly || hasValue
}

// Squash drops every group whose components produced nothing and removes
// the remaining Absent items. Squash(Squash(x)) equals Squash(x).
func Squash(items []Item) []Item {
	squashed := []Item{}

	for _, group := range Groups(items) {
		if !keepGroup(group) {
			continue
		}
		for _, item := range group {
			if item.Kind != KindAbsent {
				squashed = append(squashed, item)
			}
		}
	}

	return squashed
}
