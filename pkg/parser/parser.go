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

// Package parser implements the Laye recursive-descent parser (spec §4.3):
// one token of lookahead, a mark/restore primitive for speculative type
// probing, and a Pratt-style expression precedence climb.
package parser

import (
	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/lexer"
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/token"
)

// Parser holds a single file's parse state. It never panics on malformed
// input: a syntax error is recorded on the owning Context and the parser
// recovers by skipping to a plausible resumption point, matching the
// lexer's own never-abort discipline (spec §4.2, §7).
type Parser struct {
	ctx   *source.Context
	owner ast.Owner
	lex   *lexer.Lexer

	tok  token.Token
	next token.Token

	// loops is the break/continue stack named in spec §4.3: each entry is
	// the innermost-enclosing loop, consulted when parsing break/continue
	// to annotate them with their resolved target.
	loops []ast.Loop

	// scope is the lexical scope local bindings are declared into while
	// parsing a function body: the function's BodyScope, then a fresh
	// child per nested block or for-statement. nil outside a function
	// body, where only parseTopLevelDecl's explicit scope parameter is in
	// play.
	scope *ast.Scope
}

// New constructs a parser over an already-lexed file and primes its
// one-token lookahead.
func New(ctx *source.Context, fid source.FileID, owner ast.Owner) *Parser {
	p := &Parser{ctx: ctx, owner: owner, lex: lexer.New(ctx, fid)}
	p.tok = p.lex.Next()
	p.next = p.lex.Next()
	//
	return p
}

// Mark is the save/reset primitive of spec §4.3: `save = (token,
// next_token, cursor)`.
type Mark struct {
	tok, next token.Token
	lexMark   lexer.Mark
}

// Checkpoint captures the current parser position as a Mark, to be handed
// back to Restore.
func (p *Parser) Checkpoint() Mark {
	return Mark{tok: p.tok, next: p.next, lexMark: p.lex.Mark()}
}

// Restore rewinds the parser (and its lexer) to a previously captured Mark.
func (p *Parser) Restore(m Mark) {
	p.tok = m.tok
	p.next = m.next
	p.lex.Restore(m.lexMark)
}

func (p *Parser) advance() token.Token {
	cur := p.tok
	p.tok = p.next
	p.next = p.lex.Next()
	//
	return cur
}

func (p *Parser) at(kind token.Kind) bool {
	return p.tok.Kind == kind
}

// accept consumes the current token if it matches kind, returning whether
// it did.
func (p *Parser) accept(kind token.Kind) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	//
	return false
}

// expect consumes the current token, requiring it to match kind; on
// mismatch it records a diagnostic but still consumes nothing, so the
// caller's recovery (usually skipping to the next statement boundary) can
// decide what to do next.
func (p *Parser) expect(kind token.Kind, what string) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	//
	p.errorf("expected %s, got %s", what, p.tok.Kind)
	//
	return p.tok, false
}

func (p *Parser) errorf(format string, args ...any) {
	p.ctx.Diagnose(source.Error, p.tok.Location, format, args...)
}

// synchronize skips tokens until a statement boundary (`;`, `}`, or EOF) so
// that one syntax error does not cascade into an unbounded run of further
// ones (spec §7: the parser never aborts).
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		if p.tok.Kind == token.Kind(';') {
			p.advance()
			return
		}
		//
		if p.tok.Kind == token.Kind('}') {
			return
		}
		//
		p.advance()
	}
}

// ParseResult is everything a single file's parse produces, handed to the
// module resolver (pkg/module) to be attached to a Module (spec §3).
type ParseResult struct {
	TopLevel  []ast.Decl
	RootScope *ast.Scope
}

// ParseFile parses an entire source file's top-level declaration sequence.
func (p *Parser) ParseFile() ParseResult {
	root := ast.NewScope(nil)
	var decls []ast.Decl
	//
	for !p.at(token.EOF) {
		start := p.tok.Location
		decl := p.parseTopLevelDecl(root)
		if decl != nil {
			decls = append(decls, decl)
		}
		// A token no declaration could start with is skipped, so the loop
		// always makes progress.
		if p.tok.Location == start && !p.at(token.EOF) {
			p.advance()
		}
	}
	//
	return ParseResult{TopLevel: decls, RootScope: root}
}
