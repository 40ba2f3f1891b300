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

// Package lexer performs a byte-level scan of a Laye source file into a
// stream of tokens (spec §4.2).  It never aborts: invalid bytes become an
// ILLEGAL token, a diagnostic is recorded on the owning source.Context, and
// scanning continues.
package lexer

import (
	"github.com/laye-lang/layec/internal/gen"
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/token"
)

// Lexer tokenises a single source file on demand.  It is a cursor over the
// file's immutable byte text; there is no lookahead buffering here (the
// parser owns the one-token lookahead described in spec §4.3).
type Lexer struct {
	ctx  *source.Context
	file *source.File
	fid  source.FileID
	text []byte
	pos  int
}

// New constructs a lexer over the given already-loaded file.
func New(ctx *source.Context, fid source.FileID) *Lexer {
	file := ctx.File(fid)
	//
	return &Lexer{ctx: ctx, file: file, fid: fid, text: file.Text()}
}

// Next scans and returns the next token, skipping any intervening trivia
// (whitespace and comments).  Once the end of the file is reached, Next
// returns an EOF token repeatedly.
func (l *Lexer) Next() token.Token {
	l.skipTrivia()
	//
	start := l.pos
	//
	if l.pos >= len(l.text) {
		return l.tok(token.EOF, start, start)
	}
	//
	c := l.text[l.pos]
	//
	switch {
	case isDigit(c):
		return l.scanNumber()
	case isIdentStart(c):
		return l.scanIdentOrKeyword()
	case c == '"':
		return l.scanString()
	case c == '\'':
		return l.scanRune()
	default:
		return l.scanOperator()
	}
}

// Collect scans every remaining token into a slice, always ending with
// exactly one EOF token.  Convenience wrapper used by tests and by callers
// that want the whole stream at once (spec §8's reconstructibility
// property is most easily checked this way).
func (l *Lexer) Collect() []token.Token {
	var out []token.Token
	//
	for {
		t := l.Next()
		out = append(out, t)
		//
		if t.Kind == token.EOF {
			return out
		}
	}
}

// Mark and Restore implement the lightweight save/reset primitive used by
// the parser's speculative type parsing (spec §4.3): Mark captures the
// cursor, Restore rewinds to it.  Because the lexer itself holds no other
// mutable state (no lookahead buffer, no diagnostics of its own), a Mark is
// simply the byte offset.
type Mark struct {
	pos int
}

// Mark captures the current cursor position.
func (l *Lexer) Mark() Mark {
	return Mark{l.pos}
}

// Restore rewinds the cursor to a previously captured Mark.
func (l *Lexer) Restore(m Mark) {
	l.pos = m.pos
}

func (l *Lexer) tok(kind token.Kind, start, end int) token.Token {
	return token.Token{Kind: kind, Location: source.NewLocation(l.fid, start, end)}
}

func (l *Lexer) diagnose(severity source.Severity, start, end int, format string, args ...any) {
	l.ctx.Diagnose(severity, source.NewLocation(l.fid, start, end), format, args...)
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.text) {
		return 0
	}
	//
	return l.text[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	i := l.pos + offset
	if i >= len(l.text) {
		return 0
	}
	//
	return l.text[i]
}

func (l *Lexer) advance() byte {
	c := l.text[l.pos]
	l.pos++
	//
	return c
}

// skipTrivia skips whitespace, `//` line comments, `#` line comments, and
// `/* ... */` block comments with arbitrary nesting depth (spec §4.2).
func (l *Lexer) skipTrivia() {
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		//
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '#':
			l.skipToEndOfLine()
		case c == '/' && l.peekAt(1) == '/':
			l.skipToEndOfLine()
		case c == '/' && l.peekAt(1) == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipToEndOfLine() {
	for l.pos < len(l.text) && l.text[l.pos] != '\n' {
		l.pos++
	}
}

// skipBlockComment skips a `/* ... */` comment, honouring nested comments:
// a newline encountered while still nested counts as the end of a trailing
// trivia run in the sense that it does not itself terminate the comment,
// only a matching unnested `*/` does.
func (l *Lexer) skipBlockComment() {
	start := l.pos
	l.pos += 2 // consume "/*"
	depth := 1
	//
	for l.pos < len(l.text) && depth > 0 {
		switch {
		case l.peek() == '/' && l.peekAt(1) == '*':
			depth++
			l.pos += 2
		case l.peek() == '*' && l.peekAt(1) == '/':
			depth--
			l.pos += 2
		default:
			l.pos++
		}
	}
	//
	if depth > 0 {
		l.diagnose(source.Error, start, l.pos, "unterminated block comment")
	}
}

func (l *Lexer) scanIdentOrKeyword() token.Token {
	start := l.pos
	//
	for l.pos < len(l.text) && isIdentContinue(l.text[l.pos]) {
		l.pos++
	}
	//
	text := string(l.text[start:l.pos])
	//
	if sized, kind, width := classifySized(text); sized {
		return token.Token{Kind: kind, Location: source.NewLocation(l.fid, start, l.pos), IntValue: width}
	}
	//
	if kw, ok := gen.Keywords[text]; ok {
		return l.tok(kw, start, l.pos)
	}
	//
	interned := l.ctx.Intern(l.text[start:l.pos])
	//
	return token.Token{Kind: token.IDENT, Location: source.NewLocation(l.fid, start, l.pos), StringValue: interned}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
