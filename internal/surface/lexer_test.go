package surface

import "testing"

func TestTokenizeKeywordsAndPunct(t *testing.T) {
	toks, err := Tokenize("Fun(Bool, Zero)")
	if err != nil {
		t.Fatalf("Tokenize: unexpected error %v", err)
	}
	want := []TokKind{TokFun, TokLParen, TokBool, TokComma, TokZero, TokRParen, TokEOF}
	if len(toks) != len(want) {
		t.Fatalf("Tokenize: got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("Tokenize: token %d is %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestTokenizeIdentVsKeyword(t *testing.T) {
	// "recurse" must lex as a single TokIdent, not TokRec followed by "urse":
	// lexmachine's longest-match rule prefers the 7-byte identifier match
	// over the 3-byte "rec" keyword match at the same starting position.
	toks, err := Tokenize("recurse")
	if err != nil {
		t.Fatalf("Tokenize: unexpected error %v", err)
	}
	if len(toks) != 2 || toks[0].Kind != TokIdent || toks[0].Text != "recurse" {
		t.Fatalf("Tokenize(recurse): got %+v, want a single TokIdent", toks)
	}
}

func TestTokenizeQuotedVar(t *testing.T) {
	toks, err := Tokenize("'a")
	if err != nil {
		t.Fatalf("Tokenize: unexpected error %v", err)
	}
	if len(toks) != 2 || toks[0].Kind != TokVar || toks[0].Text != "'a" {
		t.Fatalf("Tokenize('a): got %+v, want a single TokVar with text 'a", toks)
	}
}

func TestTokenizeUnconsumedInputIsLexError(t *testing.T) {
	_, err := Tokenize("Bool # Bool")
	if err == nil {
		t.Fatalf("Tokenize: expected an error for unrecognized input '#'")
	}
	lexErr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("Tokenize: error is %T, want *LexError", err)
	}
	if lexErr.Text == "" {
		t.Fatalf("LexError: Text should name the unconsumed input")
	}
}

func TestTokenizeSkipsWhitespace(t *testing.T) {
	toks, err := Tokenize("  Bool \t\n Zero  ")
	if err != nil {
		t.Fatalf("Tokenize: unexpected error %v", err)
	}
	if len(toks) != 3 || toks[0].Kind != TokBool || toks[1].Kind != TokZero || toks[2].Kind != TokEOF {
		t.Fatalf("Tokenize: got %+v", toks)
	}
}
