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

// ParseBlock parses a `{ ... }` compound (spec §3, §4.3), opening a fresh
// child scope for the local bindings declared directly inside it.
func (p *Parser) ParseBlock() *ast.Block {
	loc := p.tok.Location
	p.expect(token.Kind('{'), "'{'")
	//
	outer := p.scope
	scope := ast.NewScope(outer)
	p.scope = scope
	//
	var children []ast.Node
	//
	for !p.at(token.Kind('}')) && !p.at(token.EOF) {
		children = append(children, p.parseStmt())
	}
	//
	end, _ := p.expect(token.Kind('}'), "'}'")
	p.scope = outer
	//
	return &ast.Block{
		Header:   ast.NewHeader(ast.KindBlock, loc.Union(end.Location), p.owner),
		Children: children,
		Scope:    scope,
	}
}

func (p *Parser) parseStmt() ast.Node {
	switch p.tok.Kind {
	case token.Kind('{'):
		return p.ParseBlock()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwBreak:
		return p.parseBreak()
	case token.KwContinue:
		return p.parseContinue()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwYield:
		return p.parseYield()
	case token.KwAssert:
		return p.parseAssert()
	case token.KwDiscard:
		return p.parseDiscard()
	default:
		if p.ProbeIsDeclaration() {
			return p.parseLocalBinding()
		}
		//
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLocalBinding() ast.Node {
	loc := p.tok.Location
	ts := p.ParseType()
	name, _ := p.expect(token.IDENT, "an identifier")
	//
	decl := &ast.BindingDecl{
		Header:     ast.NewHeader(ast.KindBindingDecl, loc, p.owner),
		Name:       name.StringValue,
		Mut:        ts.MutPrefix,
		TypeSyntax: ts,
	}
	//
	if p.accept(token.Kind('=')) {
		decl.Init = p.ParseExpr()
	}
	//
	p.expect(token.Kind(';'), "';'")
	p.declareTopLevel(p.scope, decl.Name, decl)
	//
	return decl
}

func (p *Parser) parseExprStmt() ast.Node {
	loc := p.tok.Location
	value := p.ParseExpr()
	// An if used as a statement ends at its closing brace; a ';' is optional.
	if _, isIf := value.(*ast.IfExpr); isIf {
		p.accept(token.Kind(';'))
	} else {
		p.expect(token.Kind(';'), "';'")
	}
	//
	return &ast.ExprStmt{Header: ast.NewHeader(ast.KindExprStmt, loc.Union(value.Location()), p.owner), Value: value}
}

func (p *Parser) parseFor() ast.Node {
	loc := p.tok.Location
	p.advance() // 'for'
	p.expect(token.Kind('('), "'(' after for")
	//
	node := &ast.ForStmt{Header: ast.NewHeader(ast.KindForStmt, loc, p.owner)}
	//
	// The init clause's variable, if any, must stay visible across the
	// condition, increment and body, so it lives in a scope enclosing all
	// three rather than the body block's own scope.
	outer := p.scope
	p.scope = ast.NewScope(outer)
	//
	if !p.at(token.Kind(';')) {
		node.Init = p.parseForClause()
	} else {
		p.advance()
	}
	//
	if !p.at(token.Kind(';')) {
		node.Cond = p.ParseExpr()
	}
	//
	p.expect(token.Kind(';'), "';'")
	//
	if !p.at(token.Kind(')')) {
		node.Inc = p.parseForIncrement()
	}
	//
	p.expect(token.Kind(')'), "')'")
	//
	p.loops = append(p.loops, node)
	node.Body = p.ParseBlock()
	p.loops = p.loops[:len(p.loops)-1]
	//
	if p.accept(token.KwElse) {
		node.Else = p.ParseBlock()
	}
	//
	p.scope = outer
	//
	return node
}

// parseForClause parses the for-loop initializer, which is either a local
// binding declaration or an expression statement, both already terminated
// by the ';' the caller expects to follow.
func (p *Parser) parseForClause() ast.Stmt {
	if p.ProbeIsDeclaration() {
		return p.parseLocalBinding().(ast.Stmt)
	}
	//
	return p.parseExprStmt().(ast.Stmt)
}

// parseForIncrement parses the for-loop increment clause: a bare
// expression, not terminated by ';' since it is followed directly by ')'.
func (p *Parser) parseForIncrement() ast.Stmt {
	loc := p.tok.Location
	value := p.ParseExpr()
	//
	return &ast.ExprStmt{Header: ast.NewHeader(ast.KindExprStmt, loc.Union(value.Location()), p.owner), Value: value}
}

func (p *Parser) parseWhile() ast.Node {
	loc := p.tok.Location
	p.advance() // 'while'
	p.expect(token.Kind('('), "'(' after while")
	cond := p.ParseExpr()
	p.expect(token.Kind(')'), "')'")
	//
	node := &ast.WhileStmt{Header: ast.NewHeader(ast.KindWhileStmt, loc, p.owner), Cond: cond}
	//
	p.loops = append(p.loops, node)
	node.Body = p.ParseBlock()
	p.loops = p.loops[:len(p.loops)-1]
	//
	if p.accept(token.KwElse) {
		node.Else = p.ParseBlock()
	}
	//
	return node
}

func (p *Parser) parseBreak() ast.Node {
	loc := p.tok.Location
	p.advance() // 'break'
	p.expect(token.Kind(';'), "';'")
	//
	node := &ast.BreakStmt{Header: ast.NewHeader(ast.KindBreakStmt, loc, p.owner)}
	//
	if len(p.loops) == 0 {
		p.errorf("break outside of a loop")
	} else {
		node.Target = p.loops[len(p.loops)-1]
		node.Target.MarkBreak()
	}
	//
	return node
}

func (p *Parser) parseContinue() ast.Node {
	loc := p.tok.Location
	p.advance() // 'continue'
	p.expect(token.Kind(';'), "';'")
	//
	node := &ast.ContinueStmt{Header: ast.NewHeader(ast.KindContinueStmt, loc, p.owner)}
	//
	if len(p.loops) == 0 {
		p.errorf("continue outside of a loop")
	} else {
		node.Target = p.loops[len(p.loops)-1]
		node.Target.MarkContinue()
	}
	//
	return node
}

func (p *Parser) parseReturn() ast.Node {
	loc := p.tok.Location
	p.advance() // 'return'
	//
	node := &ast.ReturnStmt{Header: ast.NewHeader(ast.KindReturnStmt, loc, p.owner)}
	//
	if !p.at(token.Kind(';')) {
		node.Value = p.ParseExpr()
	}
	//
	p.expect(token.Kind(';'), "';'")
	//
	return node
}

func (p *Parser) parseYield() ast.Node {
	loc := p.tok.Location
	p.advance() // 'yield'
	value := p.ParseExpr()
	p.expect(token.Kind(';'), "';'")
	//
	return &ast.YieldStmt{Header: ast.NewHeader(ast.KindYieldStmt, loc.Union(value.Location()), p.owner), Value: value}
}

func (p *Parser) parseAssert() ast.Node {
	loc := p.tok.Location
	p.advance() // 'assert'
	p.expect(token.Kind('('), "'(' after assert")
	cond := p.ParseExpr()
	//
	node := &ast.AssertStmt{Header: ast.NewHeader(ast.KindAssertStmt, loc, p.owner), Cond: cond}
	//
	if p.accept(token.Kind(',')) {
		node.Message = p.ParseExpr()
	}
	//
	p.expect(token.Kind(')'), "')'")
	p.expect(token.Kind(';'), "';'")
	//
	return node
}

func (p *Parser) parseDiscard() ast.Node {
	loc := p.tok.Location
	p.advance() // 'discard'
	value := p.ParseExpr()
	p.expect(token.Kind(';'), "';'")
	//
	return &ast.DiscardStmt{Header: ast.NewHeader(ast.KindDiscardStmt, loc.Union(value.Location()), p.owner), Value: value}
}
