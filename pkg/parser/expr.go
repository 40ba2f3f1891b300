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

// binOp describes one entry of the Pratt precedence table of spec §4.3:
// "ordered groups: logical or|xor < and < equality < ordered-compare <
// bitwise/shift < additive < multiplicative". Higher prec binds tighter.
type binOp struct {
	op   ast.BinaryOp
	prec int
}

var binOps = map[token.Kind]binOp{
	token.KwOr:             {ast.BinLogicalOr, 1},
	token.KwXor:            {ast.BinLogicalXor, 1},
	token.KwAnd:            {ast.BinLogicalAnd, 2},
	token.EQUALEQUAL:       {ast.BinEq, 3},
	token.BANGEQUAL:        {ast.BinNe, 3},
	token.Kind('<'):        {ast.BinLt, 4},
	token.Kind('>'):        {ast.BinGt, 4},
	token.LESSEQUAL:        {ast.BinLe, 4},
	token.GREATEREQUAL:     {ast.BinGe, 4},
	token.Kind('&'):        {ast.BinBitAnd, 5},
	token.Kind('|'):        {ast.BinBitOr, 5},
	token.Kind('~'):        {ast.BinBitXor, 5},
	token.LESSLESS:         {ast.BinShl, 5},
	token.GREATERGREATER:   {ast.BinShr, 5},
	token.Kind('+'):        {ast.BinAdd, 6},
	token.Kind('-'):        {ast.BinSub, 6},
	token.Kind('*'):        {ast.BinMul, 7},
	token.Kind('/'):        {ast.BinDiv, 7},
	token.Kind('%'):        {ast.BinMod, 7},
}

// ParseExpr parses a full expression, including assignment (spec §4.3:
// "Assignment is `=` or `<-`"), which binds looser than every operator in
// the precedence table and is right-associative.
func (p *Parser) ParseExpr() ast.Expr {
	left := p.parseBinary(1)
	//
	isRebind := p.at(token.LESSMINUS)
	//
	if p.at(token.Kind('=')) || isRebind {
		loc := p.tok.Location
		p.advance()
		value := p.ParseExpr()
		//
		return &ast.AssignExpr{
			Header:      ast.NewHeader(ast.KindAssignExpr, left.Location().Union(loc), p.owner),
			Target:      left,
			Value:       value,
			IsRefRebind: isRebind,
		}
	}
	//
	return left
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	//
	for {
		entry, ok := binOps[p.tok.Kind]
		if !ok || entry.prec < minPrec {
			return left
		}
		//
		loc := p.tok.Location
		p.advance()
		right := p.parseBinary(entry.prec + 1)
		//
		left = &ast.BinaryExpr{
			Header: ast.NewHeader(ast.KindBinaryExpr, left.Location().Union(loc), p.owner),
			Op:     entry.op,
			Left:   left,
			Right:  right,
		}
	}
}

var unaryOps = map[token.Kind]ast.UnaryOp{
	token.Kind('+'): ast.UnaryPlus,
	token.Kind('-'): ast.UnaryMinus,
	token.Kind('~'): ast.UnaryComplement,
	token.Kind('&'): ast.UnaryAddressOf,
	token.Kind('*'): ast.UnaryDeref,
	token.KwNot:     ast.UnaryLogicalNot,
}

func (p *Parser) parseUnary() ast.Expr {
	if op, ok := unaryOps[p.tok.Kind]; ok {
		loc := p.tok.Location
		p.advance()
		operand := p.parseUnary()
		//
		return &ast.UnaryExpr{
			Header:  ast.NewHeader(ast.KindUnaryExpr, loc.Union(operand.Location()), p.owner),
			Op:      op,
			Operand: operand,
		}
	}
	//
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	//
	for {
		switch p.tok.Kind {
		case token.Kind('('):
			expr = p.finishCall(expr)
		case token.Kind('['):
			expr = p.finishIndex(expr)
		case token.Kind('.'):
			expr = p.finishMember(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	p.advance() // consume '('
	var args []ast.Expr
	//
	if !p.at(token.Kind(')')) {
		for {
			args = append(args, p.ParseExpr())
			//
			if !p.accept(token.Kind(',')) {
				break
			}
		}
	}
	//
	end, _ := p.expect(token.Kind(')'), "')'")
	//
	return &ast.CallExpr{
		Header: ast.NewHeader(ast.KindCallExpr, callee.Location().Union(end.Location), p.owner),
		Callee: callee,
		Args:   args,
	}
}

func (p *Parser) finishIndex(base ast.Expr) ast.Expr {
	p.advance() // consume '['
	var indices []ast.Expr
	//
	for {
		indices = append(indices, p.ParseExpr())
		//
		if !p.accept(token.Kind(',')) {
			break
		}
	}
	//
	end, _ := p.expect(token.Kind(']'), "']'")
	//
	return &ast.IndexExpr{
		Header:  ast.NewHeader(ast.KindIndexExpr, base.Location().Union(end.Location), p.owner),
		Base:    base,
		Indices: indices,
	}
}

func (p *Parser) finishMember(base ast.Expr) ast.Expr {
	p.advance() // consume '.'
	name, _ := p.expect(token.IDENT, "a field name")
	//
	return &ast.MemberExpr{
		Header:    ast.NewHeader(ast.KindMemberExpr, base.Location().Union(name.Location), p.owner),
		Base:      base,
		FieldName: name.StringValue,
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	loc := p.tok.Location
	//
	switch p.tok.Kind {
	case token.INT:
		v := p.tok.IntValue
		p.advance()
		return &ast.IntLiteral{Header: ast.NewHeader(ast.KindIntLiteral, loc, p.owner), Value: v}
	case token.FLOAT:
		v := p.tok.FloatValue
		p.advance()
		return &ast.FloatLiteral{Header: ast.NewHeader(ast.KindFloatLiteral, loc, p.owner), Value: v}
	case token.STRING:
		return p.parseStringLiteral()
	case token.RUNE:
		v := p.tok.IntValue
		p.advance()
		return &ast.RuneLiteral{Header: ast.NewHeader(ast.KindRuneLiteral, loc, p.owner), Value: v}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLiteral{Header: ast.NewHeader(ast.KindBoolLiteral, loc, p.owner), Value: true}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLiteral{Header: ast.NewHeader(ast.KindBoolLiteral, loc, p.owner), Value: false}
	case token.KwNil:
		p.advance()
		return &ast.NilLiteral{Header: ast.NewHeader(ast.KindNilLiteral, loc, p.owner)}
	case token.IDENT:
		pieces := p.parseDottedName()
		return &ast.NameExpr{Header: ast.NewHeader(ast.KindNameExpr, loc, p.owner), Pieces: pieces}
	case token.Kind('('):
		p.advance()
		inner := p.ParseExpr()
		p.expect(token.Kind(')'), "')'")
		//
		return inner
	case token.Kind('{'):
		return p.ParseBlock()
	case token.KwIf:
		return p.parseIfExpr()
	case token.KwCast:
		return p.parseCastExpr()
	case token.KwSizeof:
		return p.parseSizeofExpr()
	case token.KwAlignof:
		return p.parseAlignofExpr()
	default:
		p.errorf("expected an expression, got %s", p.tok.Kind)
		p.advance()
		//
		return &ast.NilLiteral{Header: ast.NewGeneratedHeader(ast.KindNilLiteral, loc, p.owner)}
	}
}

// parseStringLiteral merges adjacent string-literal tokens into a single
// node (SPEC_FULL.md supplemented feature 3).
func (p *Parser) parseStringLiteral() ast.Expr {
	loc := p.tok.Location
	value := p.tok.StringValue
	p.advance()
	//
	for p.at(token.STRING) {
		loc = loc.Union(p.tok.Location)
		value += p.tok.StringValue
		p.advance()
	}
	//
	return &ast.StringLiteral{Header: ast.NewHeader(ast.KindStringLiteral, loc, p.owner), Value: value}
}

func (p *Parser) parseCastExpr() ast.Expr {
	loc := p.tok.Location
	p.advance() // 'cast'
	p.expect(token.Kind('('), "'(' after cast")
	target := p.ParseType()
	p.expect(token.Kind(')'), "')'")
	value := p.parseUnary()
	//
	return &ast.CastExpr{
		Header:       ast.NewHeader(ast.KindCastExpr, loc.Union(value.Location()), p.owner),
		TargetSyntax: target,
		Kind:         ast.CastHard,
		Value:        value,
	}
}

func (p *Parser) parseSizeofExpr() ast.Expr {
	loc := p.tok.Location
	p.advance() // 'sizeof'
	p.expect(token.Kind('('), "'(' after sizeof")
	ts := p.ParseType()
	end, _ := p.expect(token.Kind(')'), "')'")
	//
	return &ast.SizeofExpr{
		Header:     ast.NewHeader(ast.KindSizeofExpr, loc.Union(end.Location), p.owner),
		TypeSyntax: ts,
	}
}

func (p *Parser) parseAlignofExpr() ast.Expr {
	loc := p.tok.Location
	p.advance() // 'alignof'
	p.expect(token.Kind('('), "'(' after alignof")
	ts := p.ParseType()
	end, _ := p.expect(token.Kind(')'), "')'")
	//
	return &ast.AlignofExpr{
		Header:     ast.NewHeader(ast.KindAlignofExpr, loc.Union(end.Location), p.owner),
		TypeSyntax: ts,
	}
}

// parseIfExpr parses an if-expression (spec §3, §4.3): `if (cond) pass
// [else if (cond) pass ...] [else fail]`. The parallel condition/pass
// arrays and the optional else are assembled here; the arm count feeds
// directly into irgen's block-count computation (spec §4.8).
func (p *Parser) parseIfExpr() *ast.IfExpr {
	loc := p.tok.Location
	node := &ast.IfExpr{Header: ast.NewHeader(ast.KindIfExpr, loc, p.owner)}
	//
	for {
		p.expect(token.KwIf, "'if'")
		p.expect(token.Kind('('), "'(' after if")
		cond := p.ParseExpr()
		p.expect(token.Kind(')'), "')'")
		//
		node.Conds = append(node.Conds, cond)
		node.Passes = append(node.Passes, p.parseArmBody())
		//
		if !p.at(token.KwElse) {
			return node
		}
		//
		p.advance() // 'else'
		//
		if p.at(token.KwIf) {
			continue
		}
		//
		node.Else = p.parseArmBody()
		//
		return node
	}
}

// parseArmBody parses either a `{ ... }` block or a single expression
// (lowered to a one-statement block via a synthetic yield), matching the
// teacher's pattern of normalising every block-like construct to the same
// shape before later passes see it.
func (p *Parser) parseArmBody() *ast.Block {
	if p.at(token.Kind('{')) {
		return p.ParseBlock()
	}
	//
	loc := p.tok.Location
	value := p.ParseExpr()
	//
	yield := &ast.YieldStmt{Header: ast.NewGeneratedHeader(ast.KindYieldStmt, loc, p.owner), Value: value}
	//
	return &ast.Block{
		Header:   ast.NewGeneratedHeader(ast.KindBlock, loc, p.owner),
		Children: []ast.Node{yield},
	}
}
