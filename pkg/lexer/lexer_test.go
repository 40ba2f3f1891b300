// Copyright (c) The Laye Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package lexer_test

import (
	"testing"

	"github.com/laye-lang/layec/pkg/lexer"
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/token"
	"github.com/laye-lang/layec/pkg/util/assert"
)

func lex(t *testing.T, text string) ([]token.Token, *source.Context) {
	t.Helper()
	//
	ctx := source.NewContext()
	fid := ctx.Add("test.laye", []byte(text))
	toks := lexer.New(ctx, fid).Collect()
	//
	return toks, ctx
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	//
	return out
}

func TestLexer_Reconstructibility(t *testing.T) {
	// Every token, concatenated with the trivia preceding it, must
	// reconstruct the original source (spec §8).
	text := "foo :=  42 +bar// trailing\n"
	ctx := source.NewContext()
	fid := ctx.Add("test.laye", []byte(text))
	toks := lexer.New(ctx, fid).Collect()
	//
	file := ctx.File(fid)
	var rebuilt string
	//
	for i, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		//
		if i == 0 {
			rebuilt += text[:tok.Location.Span.Start()]
		}
		//
		rebuilt += file.Slice(tok.Location.Span)
		//
		next := len(text)
		if i+1 < len(toks) {
			next = toks[i+1].Location.Span.Start()
		}
		//
		rebuilt += text[tok.Location.Span.End():next]
	}
	//
	assert.Equal(t, text, rebuilt, "reconstructed source must match original")
}

func TestLexer_Keywords(t *testing.T) {
	toks, _ := lex(t, "if else struct variant import")
	assert.Equal(t, []token.Kind{token.KwIf, token.KwElse, token.KwStruct, token.KwVariant, token.KwImport, token.EOF}, kinds(toks), "")
}

func TestLexer_SizedPrimitives(t *testing.T) {
	toks, _ := lex(t, "i32 u64 f80 b1 i65535 f999")
	//
	assert.Equal(t, token.INTSIZED, toks[0].Kind, "")
	assert.Equal(t, uint64(32), toks[0].IntValue, "")
	assert.Equal(t, token.UINTSIZED, toks[1].Kind, "")
	assert.Equal(t, uint64(64), toks[1].IntValue, "")
	assert.Equal(t, token.FLOATSIZED, toks[2].Kind, "")
	assert.Equal(t, uint64(80), toks[2].IntValue, "")
	assert.Equal(t, token.BOOLSIZED, toks[3].Kind, "")
	assert.Equal(t, uint64(1), toks[3].IntValue, "")
	assert.Equal(t, token.INTSIZED, toks[4].Kind, "")
	// f999 is not a valid float width, so it falls back to an identifier.
	assert.Equal(t, token.IDENT, toks[5].Kind, "")
}

func TestLexer_IdentifierFallbackAfterDigits(t *testing.T) {
	// "1foo" is not a valid numeric literal suffix; it must relex as a
	// single identifier rather than an int token followed by "foo".
	toks, _ := lex(t, "1foo")
	assert.Equal(t, []token.Kind{token.IDENT, token.EOF}, kinds(toks), "")
}

func TestLexer_DecimalWithUnderscores(t *testing.T) {
	toks, ctx := lex(t, "1_000_000")
	assert.Equal(t, token.INT, toks[0].Kind, "")
	assert.Equal(t, uint64(1000000), toks[0].IntValue, "")
	assert.Equal(t, false, ctx.HasErrors(), "")
}

func TestLexer_UnderscoreAtEdgeIsDiagnosed(t *testing.T) {
	_, ctx := lex(t, "1_")
	assert.Equal(t, true, ctx.HasErrors(), "")
}

func TestLexer_RadixLiteralInteger(t *testing.T) {
	toks, ctx := lex(t, "16#ff 2#1010 36#z")
	assert.Equal(t, uint64(255), toks[0].IntValue, "")
	assert.Equal(t, uint64(10), toks[1].IntValue, "")
	assert.Equal(t, uint64(35), toks[2].IntValue, "")
	assert.Equal(t, false, ctx.HasErrors(), "")
}

func TestLexer_RadixLiteralFloat(t *testing.T) {
	toks, _ := lex(t, "16#f.8")
	assert.Equal(t, token.FLOAT, toks[0].Kind, "")
	assert.Equal(t, 15.5, toks[0].FloatValue, "")
}

func TestLexer_RadixLiteralInvalidDigitReportedOnce(t *testing.T) {
	_, ctx := lex(t, "2#1012")
	errs := 0
	//
	for _, d := range ctx.Diagnostics() {
		if d.Severity.IsError() {
			errs++
		}
	}
	//
	assert.Equal(t, 1, errs, "invalid digit should be reported exactly once per literal")
}

func TestLexer_Operators(t *testing.T) {
	toks, _ := lex(t, "<<= >>= == != <= >= << >> => <- += -= *= /= %= &= |= ~= ::")
	want := []token.Kind{
		token.LESSLESSEQUAL, token.GREATERGREATEREQUAL, token.EQUALEQUAL, token.BANGEQUAL,
		token.LESSEQUAL, token.GREATEREQUAL, token.LESSLESS, token.GREATERGREATER,
		token.EQUALGREATER, token.LESSMINUS, token.PLUSEQUAL, token.MINUSEQUAL,
		token.STAREQUAL, token.SLASHEQUAL, token.PERCENTEQUAL, token.AMPERSANDEQUAL,
		token.PIPEEQUAL, token.TILDEEQUAL, token.COLONCOLON, token.EOF,
	}
	assert.Equal(t, want, kinds(toks), "")
}

func TestLexer_SingleByteOperatorCarriesASCIIValue(t *testing.T) {
	toks, _ := lex(t, "+")
	assert.Equal(t, token.Kind('+'), toks[0].Kind, "")
}

func TestLexer_StringLiteralEscapes(t *testing.T) {
	toks, _ := lex(t, `"a\tb\n\"\\\x41"`)
	assert.Equal(t, token.STRING, toks[0].Kind, "")
	assert.Equal(t, "a\tb\n\"\\A", toks[0].StringValue, "")
}

func TestLexer_UnterminatedStringLiteral(t *testing.T) {
	_, ctx := lex(t, `"abc`)
	assert.Equal(t, true, ctx.HasErrors(), "")
}

func TestLexer_RuneLiteral(t *testing.T) {
	toks, ctx := lex(t, `'a' '\n' '\x41'`)
	assert.Equal(t, token.RUNE, toks[0].Kind, "")
	assert.Equal(t, uint64('a'), toks[0].IntValue, "")
	assert.Equal(t, uint64('\n'), toks[1].IntValue, "")
	assert.Equal(t, uint64('A'), toks[2].IntValue, "")
	assert.Equal(t, false, ctx.HasErrors(), "")
}

func TestLexer_EmptyRuneLiteralIsDiagnosed(t *testing.T) {
	_, ctx := lex(t, "''")
	assert.Equal(t, true, ctx.HasErrors(), "")
}

func TestLexer_OverlongRuneLiteralIsDiagnosed(t *testing.T) {
	_, ctx := lex(t, "'ab'")
	assert.Equal(t, true, ctx.HasErrors(), "")
}

func TestLexer_LineAndBlockComments(t *testing.T) {
	toks, _ := lex(t, "a // line\nb # shell\nc /* block /* nested */ still */ d")
	assert.Equal(t, []token.Kind{token.IDENT, token.IDENT, token.IDENT, token.IDENT, token.EOF}, kinds(toks), "")
}

func TestLexer_UnterminatedBlockComment(t *testing.T) {
	_, ctx := lex(t, "a /* never closed")
	assert.Equal(t, true, ctx.HasErrors(), "")
}

func TestLexer_MarkAndRestore(t *testing.T) {
	ctx := source.NewContext()
	fid := ctx.Add("test.laye", []byte("foo bar"))
	l := lexer.New(ctx, fid)
	//
	m := l.Mark()
	first := l.Next()
	l.Restore(m)
	again := l.Next()
	//
	assert.Equal(t, first.Kind, again.Kind, "")
	assert.Equal(t, first.Location.Span.Start(), again.Location.Span.Start(), "")
}
