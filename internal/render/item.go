// Package render turns resolved prompt items into the final prompt string.
//
// Items are grouped by color start/reset markers. A group whose component
// produced nothing is dropped together with its colors, so the prompt never
// carries an escape sequence wrapped around empty content.
package render

import "fmt"

// Kind identifies what a resolved item carries.
type Kind int

const (
	KindText       Kind = iota // Literal template text
	KindColorStart             // A rendered "color on" escape
	KindColorReset             // A rendered "color off" escape
	KindValue                  // A successfully computed component result
	KindAbsent                 // A component with nothing to show
)

// Item is the runtime value of one template token.
type Item struct {
	Kind Kind
	Text string
}

// Text returns a literal text item.
func Text(s string) Item { return Item{Kind: KindText, Text: s} }

// ColorStart returns a color start item carrying the escape s.
func ColorStart(s string) Item { return Item{Kind: KindColorStart, Text: s} }

// ColorReset returns a color reset item carrying the escape s.
func ColorReset(s string) Item { return Item{Kind: KindColorReset, Text: s} }

// Value returns a computed component value.
func Value(s string) Item { return Item{Kind: KindValue, Text: s} }

// Absent returns the "nothing to show" item.
func Absent() Item { return Item{Kind: KindAbsent} }

// IsDecorative reports whether the item is literal text or a color marker.
func (i Item) IsDecorative() bool {
	return i.Kind == KindText || i.Kind == KindColorStart || i.Kind == KindColorReset
}

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindColorStart:
		return "ColorStart"
	case KindColorReset:
		return "ColorReset"
	case KindValue:
		return "Value"
	case KindAbsent:
		return "Absent"
	default:
		return "Unknown"
	}
}

func (i Item) String() string {
	if i.Kind == KindAbsent {
		return "Absent"
	}
	return fmt.Sprintf("%s(%q)", i.Kind, i.Text)
}
