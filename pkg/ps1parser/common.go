package ps1parser

import "fmt"

// ValidatePS1 checks if a PS1 string is valid and parseable.
// Returns an error if the PS1 contains unclosed or unknown sequences.
func ValidatePS1(ps1 string) error {
	parser := NewParser(ParserOptions{StrictMode: true})
	_, err := parser.Parse(ps1)
	return err
}

// AnalyzePS1 returns the tokens of a PS1 string, tolerating malformed
// sequences by treating them as literal text.
func AnalyzePS1(ps1 string) (*ParsedPS1, error) {
	parser := NewParser(ParserOptions{})
	return parser.Parse(ps1)
}

func (t TokenType) String() string {
	switch t {
	case TokenLiteral:
		return "Literal"
	case TokenPercent:
		return "Percent"
	case TokenColorSeq:
		return "ColorSeq"
	case TokenCondition:
		return "Condition"
	case TokenCommand:
		return "Command"
	default:
		return "Unknown"
	}
}

// String returns a string representation of a token
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Content)
}
