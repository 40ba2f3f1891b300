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
package parser

import (
	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/token"
)

// tryParseTypeSyntax implements spec §4.3's non-allocating probe mode: it
// attempts to parse a type starting at the current token, restoring the
// parser and returning false if the current token cannot start one. It
// does allocate the TypeSyntax node on success (non-allocating here refers
// to not mutating parser state on failure, the property the declaration
// probe actually depends on).
func (p *Parser) tryParseTypeSyntax() (*ast.TypeSyntax, bool) {
	start := p.Checkpoint()
	//
	loc := p.tok.Location
	mut := p.accept(token.KwMut)
	//
	base, ok := p.tryParseTypeBase()
	if !ok {
		p.Restore(start)
		return nil, false
	}
	//
	ts := &ast.TypeSyntax{
		Header:    ast.NewHeader(ast.KindTypeSyntax, loc, p.owner),
		MutPrefix: mut,
		Base:      base,
	}
	//
	for {
		postfix, ok := p.tryParseTypePostfix()
		if !ok {
			break
		}
		//
		ts.Postfixes = append(ts.Postfixes, postfix)
	}
	//
	return ts, true
}

// ParseType parses a type where one is known to be required (parameter
// types, field types, return types, cast targets): a failed probe here is
// a hard syntax error rather than a signal to try something else.
func (p *Parser) ParseType() *ast.TypeSyntax {
	ts, ok := p.tryParseTypeSyntax()
	if !ok {
		p.errorf("expected a type")
		return &ast.TypeSyntax{Header: ast.NewHeader(ast.KindTypeSyntax, p.tok.Location, p.owner)}
	}
	//
	return ts
}

// ProbeIsDeclaration implements the declaration/expression-statement
// disambiguation of spec §4.3: "If the probe fails, the parser resets and
// re-enters as an expression-statement." A declaration is recognised only
// when a type is followed by an identifier.
func (p *Parser) ProbeIsDeclaration() bool {
	mark := p.Checkpoint()
	_, ok := p.tryParseTypeSyntax()
	isDecl := ok && p.at(token.IDENT)
	p.Restore(mark)
	//
	return isDecl
}

func (p *Parser) tryParseTypeBase() (ast.TypeSyntaxBase, bool) {
	switch p.tok.Kind {
	case token.KwVoid:
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseVoid}, true
	case token.KwNoreturn:
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseNoReturn}, true
	case token.KwBool:
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseBool}, true
	case token.BOOLSIZED:
		width := p.tok.IntValue
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseSizedBool, BitWidth: uint32(width)}, true
	case token.KwInt:
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseInt}, true
	case token.INTSIZED:
		width := p.tok.IntValue
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseSizedInt, BitWidth: uint32(width)}, true
	case token.KwUint:
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseUint}, true
	case token.UINTSIZED:
		width := p.tok.IntValue
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseSizedUint, BitWidth: uint32(width)}, true
	case token.KwFloat:
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseFloat}, true
	case token.FLOATSIZED:
		width := p.tok.IntValue
		p.advance()
		return ast.TypeSyntaxBase{Kind: ast.BaseSizedFloat, BitWidth: uint32(width)}, true
	case token.IDENT:
		pieces := p.parseDottedName()
		return ast.TypeSyntaxBase{Kind: ast.BaseNameRef, Pieces: pieces}, true
	default:
		return ast.TypeSyntaxBase{}, false
	}
}

// parseDottedName parses `a::b::c`, used both by NameRef type bases and by
// NameExpr primaries.
func (p *Parser) parseDottedName() []string {
	var pieces []string
	pieces = append(pieces, p.tok.StringValue)
	p.advance()
	//
	for p.at(token.COLONCOLON) {
		p.advance()
		//
		if !p.at(token.IDENT) {
			p.errorf("expected identifier after '::'")
			break
		}
		//
		pieces = append(pieces, p.tok.StringValue)
		p.advance()
	}
	//
	return pieces
}

func (p *Parser) tryParseTypePostfix() (ast.TypePostfix, bool) {
	switch p.tok.Kind {
	case token.Kind('*'):
		p.advance()
		return p.finishPostfix(ast.PostfixPointer)
	case token.Kind('&'):
		p.advance()
		return p.finishPostfix(ast.PostfixReference)
	case token.Kind('['):
		return p.tryParseBracketPostfix()
	default:
		return ast.TypePostfix{}, false
	}
}

func (p *Parser) finishPostfix(kind ast.PostfixKind) (ast.TypePostfix, bool) {
	postfix := ast.TypePostfix{Kind: kind}
	//
	if p.accept(token.Kind('?')) {
		postfix.Nilable = true
	}
	//
	if p.accept(token.KwMut) {
		postfix.Mut = true
	}
	//
	return postfix, true
}

// tryParseBracketPostfix disambiguates `[*]` (buffer), `[]` (slice) and
// `[expr, ...]` (sized array) once the opening `[` has been seen. Because
// all three start with `[`, this is not itself speculative: the chosen
// form is fully determined by the first token after `[`.
func (p *Parser) tryParseBracketPostfix() (ast.TypePostfix, bool) {
	p.advance() // consume '['
	//
	if p.accept(token.Kind('*')) {
		if _, ok := p.expect(token.Kind(']'), "']'"); !ok {
			return ast.TypePostfix{}, false
		}
		//
		return p.finishPostfix(ast.PostfixBuffer)
	}
	//
	if p.accept(token.Kind(']')) {
		return p.finishPostfix(ast.PostfixSlice)
	}
	//
	var dims []ast.Expr
	//
	for {
		dims = append(dims, p.ParseExpr())
		//
		if !p.accept(token.Kind(',')) {
			break
		}
	}
	//
	p.expect(token.Kind(']'), "']'")
	//
	postfix, _ := p.finishPostfix(ast.PostfixArray)
	postfix.Dims = dims
	//
	return postfix, true
}
