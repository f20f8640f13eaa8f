package surface

import (
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/andrewhickman/mlsub"
)

// tracer traces with key 'mlsubrepl.lexer', following the same per-package
// selector convention as the rest of this module.
func tracer() tracing.Trace {
	return tracing.Select("mlsubrepl.lexer")
}

// TokKind discriminates the lexical classes of the surface syntax.
type TokKind int

const (
	TokEOF TokKind = iota
	TokIdent
	TokVar
	TokBool
	TokZero
	TokFun
	TokRecord
	TokRec
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokComma
	TokColon
	TokDot
	TokPlus
)

func (k TokKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokIdent:
		return "ident"
	case TokVar:
		return "var"
	case TokBool, TokZero, TokFun, TokRecord, TokRec:
		return "keyword"
	default:
		return "punct"
	}
}

// Token is one lexed unit of surface syntax, carrying its source Span for
// error reporting.
type Token struct {
	Kind TokKind
	Text string
	Span mlsub.Span
}

// keywords maps the reserved identifiers to their token kind; anything else
// that matches the identifier pattern is a plain TokIdent. Declaring these as
// their own lexmachine rules (rather than post-filtering TokIdent matches),
// added before the generic identifier rule, is what the teacher's adapter
// relies on for keyword-vs-identifier disambiguation.
var keywords = map[string]TokKind{
	"Bool":   TokBool,
	"Zero":   TokZero,
	"Fun":    TokFun,
	"Record": TokRecord,
	"rec":    TokRec,
}

var (
	lexerOnce sync.Once
	lexer     *lexmachine.Lexer
	lexerErr  error
)

func makeToken(kind TokKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return &Token{
			Kind: kind,
			Text: string(m.Bytes),
			Span: mlsub.Span{uint64(m.TC), uint64(m.TC + len(m.Bytes))},
		}, nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func getLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lx := lexmachine.NewLexer()
		for word, kind := range keywords {
			lx.Add([]byte(word), makeToken(kind))
		}
		lx.Add([]byte(`'[A-Za-z_][A-Za-z0-9_]*`), makeToken(TokVar))
		lx.Add([]byte(`[A-Za-z_][A-Za-z0-9_]*`), makeToken(TokIdent))
		lx.Add([]byte(`\(`), makeToken(TokLParen))
		lx.Add([]byte(`\)`), makeToken(TokRParen))
		lx.Add([]byte(`\{`), makeToken(TokLBrace))
		lx.Add([]byte(`\}`), makeToken(TokRBrace))
		lx.Add([]byte(`,`), makeToken(TokComma))
		lx.Add([]byte(`:`), makeToken(TokColon))
		lx.Add([]byte(`\.`), makeToken(TokDot))
		lx.Add([]byte(`\+`), makeToken(TokPlus))
		lx.Add([]byte(` |\t|\n|\r`), skip)
		if err := lx.Compile(); err != nil {
			tracer().Errorf("error compiling DFA: %v", err)
			lexerErr = err
			return
		}
		lexer = lx
	})
	return lexer, lexerErr
}

// Tokenize lexes input in full and appends a trailing TokEOF, so the parser
// never has to special-case scanner exhaustion mid-parse.
func Tokenize(input string) ([]*Token, error) {
	lx, err := getLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var toks []*Token
	for {
		tok, err, eof := scanner.Next()
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				end := ui.FailTC
				if end <= ui.StartTC {
					end = ui.StartTC + 1
				}
				if end > len(input) {
					end = len(input)
				}
				return nil, &LexError{Text: strings.TrimSpace(input[ui.StartTC:end]), Span: mlsub.Span{uint64(ui.StartTC), uint64(end)}}
			}
			return nil, err
		}
		if eof {
			break
		}
		t := tok.(*Token)
		tracer().Debugf("tok is %v %q", t.Kind, t.Text)
		toks = append(toks, t)
	}
	toks = append(toks, &Token{Kind: TokEOF})
	return toks, nil
}

// LexError reports unconsumed input the lexer's DFA could not match.
type LexError struct {
	Text string
	Span mlsub.Span
}

func (e *LexError) Error() string {
	return "mlsubrepl: unrecognized input " + strconv.Quote(e.Text)
}
