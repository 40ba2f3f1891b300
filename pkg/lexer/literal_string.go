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
package lexer

import (
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/token"
)

// scanString scans a `"..."` literal, decoding escapes along the way (spec
// §4.2).  An unterminated literal is diagnosed once and the token still
// spans everything consumed, so the parser can recover.
func (l *Lexer) scanString() token.Token {
	start := l.pos
	l.advance() // consume opening quote
	//
	var decoded []byte
	terminated := false
	//
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		//
		if c == '"' {
			l.advance()
			terminated = true
			break
		}
		//
		if c == '\n' {
			break
		}
		//
		if c == '\\' {
			decoded = l.scanEscape(decoded)
			continue
		}
		//
		decoded = append(decoded, c)
		l.advance()
	}
	//
	if !terminated {
		l.diagnose(source.Error, start, l.pos, "unterminated string literal")
	}
	//
	interned := l.ctx.Intern(decoded)
	//
	return token.Token{Kind: token.STRING, Location: source.NewLocation(l.fid, start, l.pos), StringValue: interned}
}

// scanRune scans a `'x'` literal.  Exactly one (possibly escaped) character
// is permitted; an empty rune, or extra characters before the closing
// quote, are diagnosed.
func (l *Lexer) scanRune() token.Token {
	start := l.pos
	l.advance() // consume opening quote
	//
	var decoded []byte
	terminated := false
	//
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		//
		if c == '\'' {
			l.advance()
			terminated = true
			break
		}
		//
		if c == '\n' {
			break
		}
		//
		if c == '\\' {
			decoded = l.scanEscape(decoded)
			continue
		}
		//
		decoded = append(decoded, c)
		l.advance()
	}
	//
	if !terminated {
		l.diagnose(source.Error, start, l.pos, "unterminated rune literal")
	} else if len(decoded) == 0 {
		l.diagnose(source.Error, start, l.pos, "empty rune literal")
	} else if len(decoded) > 1 {
		l.diagnose(source.Error, start, l.pos, "rune literal contains more than one character")
	}
	//
	var value uint64
	if len(decoded) > 0 {
		value = uint64(decoded[0])
	}
	//
	return token.Token{
		Kind:        token.RUNE,
		Location:    source.NewLocation(l.fid, start, l.pos),
		IntValue:    value,
		StringValue: l.ctx.Intern(decoded),
	}
}

// escapes maps a single-character escape to its decoded byte, covering
// spec §4.2's set: \\ \" \' \a \b \f \n \r \t \v \0.
var escapes = map[byte]byte{
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'0':  0,
}

// scanEscape decodes one `\...` escape sequence starting at the backslash,
// appending the resulting byte(s) to decoded and returning the updated
// slice.
func (l *Lexer) scanEscape(decoded []byte) []byte {
	start := l.pos
	l.advance() // consume '\'
	//
	if l.pos >= len(l.text) {
		l.diagnose(source.Error, start, l.pos, "unterminated escape sequence")
		return decoded
	}
	//
	c := l.advance()
	//
	if c == 'x' {
		return l.scanHexEscape(decoded, start)
	}
	//
	if replacement, ok := escapes[c]; ok {
		return append(decoded, replacement)
	}
	//
	l.diagnose(source.Error, start, l.pos, "unknown escape sequence '\\%c'", c)
	//
	return decoded
}

func (l *Lexer) scanHexEscape(decoded []byte, start int) []byte {
	if l.pos+2 > len(l.text) || !isHex(l.text[l.pos]) || !isHex(l.text[l.pos+1]) {
		l.diagnose(source.Error, start, l.pos, "expected exactly two hex digits after \\x")
		return decoded
	}
	//
	hi := hexValue(l.advance())
	lo := hexValue(l.advance())
	//
	return append(decoded, byte(hi<<4|lo))
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
