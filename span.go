package mlsub

import "fmt"

// Span captures a half-open range [From, To) of byte offsets in REPL input,
// used by cmd/mlsubrepl's lexer to report where a surface-syntax token or a
// lexing error occurred.
type Span [2]uint64

// From returns the start offset of the span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end offset of the span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of the span.
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull reports whether the span is the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend grows s to also cover other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
