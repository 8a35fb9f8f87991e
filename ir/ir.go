// ==============================================================================================
// FILE: ir/ir.go
// ==============================================================================================
// PACKAGE: ir
// PURPOSE: Defines the lexer-level intermediate representation. The lexer never
//          produces a Value directly — it produces one of these three shapes, which
//          the parser and value packages later interpret. Parser-internal only; no
//          host ever sees an ir.Token directly.
// ==============================================================================================

package ir

import "strings"

// Kind distinguishes the three IR token shapes.
type Kind int

const (
	// Raw is a whitespace-trimmed, unquoted run of characters: an identifier,
	// number, boolean literal, operator, or tag.
	Raw Kind = iota
	// Quoted is the text between a matching pair of double quotes. Embedded
	// newlines are preserved verbatim.
	Quoted
	// MapLiteral is a brace-delimited, comma-separated sequence of IR tokens,
	// pre-parsed by the lexer's in_map mode.
	MapLiteral
)

// Token is one lexical unit produced while scanning a block. Raw and Quoted
// carry their text in Text; MapLiteral carries its members in Map.
type Token struct {
	Kind Kind
	Text string
	Map  []Token
}

// NewRaw builds a Raw token, trimming surrounding whitespace.
func NewRaw(text string) Token {
	return Token{Kind: Raw, Text: strings.TrimSpace(text)}
}

// NewQuoted builds a Quoted token. Unlike Raw, no trimming is performed —
// embedded whitespace and newlines are part of the literal.
func NewQuoted(text string) Token {
	return Token{Kind: Quoted, Text: text}
}

// NewMap builds a MapLiteral token from its ordered member sequence.
func NewMap(items []Token) Token {
	return Token{Kind: MapLiteral, Map: items}
}

// String renders the token back to source-ish text. Used when a Raw/Quoted
// token must be treated as a plain string (e.g. block and statement names),
// and for diagnostics. A MapLiteral renders as a brace-delimited dump — it
// is not valid in any context that calls String to get a real identifier.
func (t Token) String() string {
	switch t.Kind {
	case Quoted, Raw:
		return t.Text
	case MapLiteral:
		var b strings.Builder
		b.WriteByte('{')
		for _, n := range t.Map {
			b.WriteString(n.String())
		}
		b.WriteByte('}')
		return b.String()
	default:
		return ""
	}
}

// IsRaw reports whether t is a Raw token equal to s.
func (t Token) IsRaw(s string) bool {
	return t.Kind == Raw && t.Text == s
}
