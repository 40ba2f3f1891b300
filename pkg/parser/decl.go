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
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/token"
)

// parseTopLevelDecl parses one top-level construct (spec §4.3): an import,
// a struct, or an attributed `<type> <ident> ...` declaration that is
// either a function or a global binding depending on what follows the name.
func (p *Parser) parseTopLevelDecl(scope *ast.Scope) ast.Decl {
	if p.at(token.KwImport) {
		return p.parseImportDecl()
	}
	//
	attrs := p.parseAttributes()
	//
	if p.at(token.KwStruct) {
		decl := p.parseStructDecl()
		decl.Export = attrs.Export
		p.declareTopLevel(scope, decl.Name, decl)
		//
		return decl
	}
	//
	loc := p.tok.Location
	ts := p.ParseType()
	name, _ := p.expect(token.IDENT, "a declaration name")
	//
	if p.at(token.Kind('(')) {
		decl := p.parseFunctionRest(loc, name.StringValue, attrs, ts, scope)
		p.declareTopLevel(scope, decl.Name, decl)
		//
		return decl
	}
	//
	decl := &ast.BindingDecl{
		Header:     ast.NewHeader(ast.KindBindingDecl, loc, p.owner),
		Name:       name.StringValue,
		Export:     attrs.Export,
		Mut:        ts.MutPrefix,
		TypeSyntax: ts,
	}
	//
	if p.accept(token.Kind('=')) {
		decl.Init = p.ParseExpr()
	}
	//
	p.expect(token.Kind(';'), "';'")
	p.declareTopLevel(scope, decl.Name, decl)
	//
	return decl
}

// declareTopLevel binds name in scope, reporting the structural
// redeclaration error named in spec §7 when the name is already bound at
// this level.
func (p *Parser) declareTopLevel(scope *ast.Scope, name string, decl ast.Decl) {
	if !scope.Declare(name, decl) {
		p.errorf("%q is already declared", name)
	}
}

// parseAttributes parses the `export discardable inline foreign[...]
// callconv(...)` prefix block (spec §4.3), in any order and any
// combination, terminated by the first token that isn't one of them.
func (p *Parser) parseAttributes() ast.Attributes {
	var attrs ast.Attributes
	//
	for {
		switch p.tok.Kind {
		case token.KwExport:
			p.advance()
			attrs.Export = true
		case token.KwDiscardable:
			p.advance()
			attrs.Discardable = true
		case token.KwInline:
			p.advance()
			attrs.Inline = true
		case token.KwForeign:
			p.advance()
			attrs.Foreign = p.parseForeignSpec()
		case token.KwCallconv:
			p.advance()
			attrs.HasCallConv = true
			attrs.CallConv = p.parseCallConv()
		default:
			return attrs
		}
	}
}

// parseForeignSpec parses the optional `(["none"|"laye"] ["string"])`
// argument list following `foreign` (spec §4.3: `foreign [("none"|"laye")]
// ["string"]`). A bare `foreign` with no parenthesised arguments at all is
// also accepted, carrying the default mangling and no name override.
func (p *Parser) parseForeignSpec() *ast.ForeignSpec {
	spec := &ast.ForeignSpec{}
	//
	if !p.accept(token.Kind('(')) {
		return spec
	}
	//
	if p.at(token.STRING) {
		switch p.tok.StringValue {
		case "none":
			spec.Mangling = ast.ForeignMangleNone
			p.advance()
		case "laye":
			spec.Mangling = ast.ForeignMangleLaye
			p.advance()
		}
	}
	//
	if p.at(token.STRING) {
		spec.Name = p.tok.StringValue
		p.advance()
	}
	//
	p.expect(token.Kind(')'), "')'")
	//
	return spec
}

// parseCallConv parses `("cdecl"|"laye")` following `callconv`.
func (p *Parser) parseCallConv() ast.CallConv {
	p.expect(token.Kind('('), "'(' after callconv")
	//
	cc := ast.CallConvLaye
	//
	if p.at(token.STRING) {
		switch p.tok.StringValue {
		case "cdecl":
			cc = ast.CallConvC
		case "laye":
			cc = ast.CallConvLaye
		default:
			p.errorf("unknown calling convention %q", p.tok.StringValue)
		}
		//
		p.advance()
	} else {
		p.errorf("expected a calling convention name")
	}
	//
	p.expect(token.Kind(')'), "')'")
	//
	return cc
}

// parseFunctionRest parses a function declaration's parameter list and
// body/arrow-body/extern tail, given its already-parsed return type, name
// and attribute block. `main` with no foreign name has its linkage forced
// to exported/C/no-mangling, per spec §4.3 and §9. enclosing is the scope
// the function itself was declared into, and becomes BodyScope's parent so
// a function body can see its module's other top-level declarations.
func (p *Parser) parseFunctionRest(loc source.Location, name string, attrs ast.Attributes, ret *ast.TypeSyntax, enclosing *ast.Scope) *ast.FunctionDecl {
	decl := &ast.FunctionDecl{
		Header:     ast.NewHeader(ast.KindFunctionDecl, loc, p.owner),
		Name:       name,
		Attrs:      attrs,
		ReturnType: ret,
	}
	//
	decl.BodyScope = ast.NewFunctionScope(enclosing, name)
	decl.Params, decl.Varargs = p.parseParams(decl.BodyScope)
	//
	if name == "main" && (decl.Attrs.Foreign == nil || decl.Attrs.Foreign.Name == "") {
		decl.Attrs.Export = true
		decl.Attrs.HasCallConv = true
		decl.Attrs.CallConv = ast.CallConvC
		//
		if decl.Attrs.Foreign == nil {
			decl.Attrs.Foreign = &ast.ForeignSpec{}
		}
		//
		decl.Attrs.Foreign.Mangling = ast.ForeignMangleNone
	}
	//
	outerScope := p.scope
	p.scope = decl.BodyScope
	//
	switch {
	case p.accept(token.Kind(';')):
		// Extern declaration: neither Body nor ArrowBody is set.
	case p.accept(token.EQUALGREATER):
		value := p.ParseExpr()
		p.expect(token.Kind(';'), "';'")
		decl.ArrowBody = value
	default:
		decl.Body = p.ParseBlock()
	}
	//
	p.scope = outerScope
	//
	return decl
}

// parseParams parses a parenthesised parameter list with an optional
// trailing `varargs` (spec §4.3: "C-style if terminating; Laye-style
// otherwise" — bare `varargs` with nothing after it is the C convention,
// `varargs <type>` captures the remainder as a typed Laye-style tail).
func (p *Parser) parseParams(scope *ast.Scope) ([]*ast.ParamDecl, ast.VarargsStyle) {
	p.expect(token.Kind('('), "'(' after function name")
	//
	var params []*ast.ParamDecl
	varargs := ast.VarargsNone
	//
	if !p.at(token.Kind(')')) {
		for {
			if p.accept(token.KwVarargs) {
				if ts, ok := p.tryParseTypeSyntax(); ok {
					varargs = ast.VarargsLaye
					//
					vloc := ts.Location()
					name := ""
					//
					if p.at(token.IDENT) {
						name = p.tok.StringValue
						p.advance()
					}
					//
					param := &ast.ParamDecl{
						Header:     ast.NewHeader(ast.KindParamDecl, vloc, p.owner),
						Name:       name,
						TypeSyntax: ts,
					}
					//
					params = append(params, param)
					//
					if name != "" {
						p.declareTopLevel(scope, name, param)
					}
				} else {
					varargs = ast.VarargsC
				}
				//
				break
			}
			//
			ploc := p.tok.Location
			ts := p.ParseType()
			pname, _ := p.expect(token.IDENT, "a parameter name")
			//
			param := &ast.ParamDecl{
				Header:     ast.NewHeader(ast.KindParamDecl, ploc, p.owner),
				Name:       pname.StringValue,
				TypeSyntax: ts,
			}
			//
			params = append(params, param)
			p.declareTopLevel(scope, param.Name, param)
			//
			if !p.accept(token.Kind(',')) {
				break
			}
		}
	}
	//
	p.expect(token.Kind(')'), "')'")
	//
	return params, varargs
}

// parseStructDecl parses `struct Name { field ... variant Name { ... } }`
// (spec §4.3). Nested variants are themselves StructDecls with IsVariant
// set; only the `variant` keyword introduces one (spec §9 Open Question 1).
func (p *Parser) parseStructDecl() *ast.StructDecl {
	loc := p.tok.Location
	p.advance() // 'struct'
	name, _ := p.expect(token.IDENT, "a struct name")
	//
	decl := &ast.StructDecl{
		Header: ast.NewHeader(ast.KindStructDecl, loc, p.owner),
		Name:   name.StringValue,
	}
	//
	p.parseStructBody(decl)
	//
	return decl
}

func (p *Parser) parseStructBody(decl *ast.StructDecl) {
	p.expect(token.Kind('{'), "'{' to open struct body")
	//
	for !p.at(token.Kind('}')) && !p.at(token.EOF) {
		if p.at(token.KwVariant) {
			decl.Variants = append(decl.Variants, p.parseVariantDecl(decl))
			continue
		}
		//
		floc := p.tok.Location
		ts := p.ParseType()
		fname, _ := p.expect(token.IDENT, "a field name")
		p.expect(token.Kind(';'), "';'")
		//
		decl.Fields = append(decl.Fields, &ast.FieldDecl{
			Header:     ast.NewHeader(ast.KindFieldDecl, floc, p.owner),
			Name:       fname.StringValue,
			TypeSyntax: ts,
		})
	}
	//
	p.expect(token.Kind('}'), "'}' to close struct body")
}

func (p *Parser) parseVariantDecl(parent *ast.StructDecl) *ast.StructDecl {
	loc := p.tok.Location
	p.advance() // 'variant'
	name, _ := p.expect(token.IDENT, "a variant name")
	//
	decl := &ast.StructDecl{
		Header:    ast.NewHeader(ast.KindVariantDecl, loc, p.owner),
		Name:      name.StringValue,
		IsVariant: true,
		Parent:    parent,
	}
	//
	p.parseStructBody(decl)
	//
	return decl
}

// parseImportDecl parses both import forms of spec §4.3/§4.4: the
// whole-file short form `import "file" [as alias];` and the query form
// `import <query-list> from "module";`, where each query may itself carry
// a `*` wildcard or a per-name `as` rename.
func (p *Parser) parseImportDecl() *ast.ImportDecl {
	loc := p.tok.Location
	p.advance() // 'import'
	//
	decl := &ast.ImportDecl{Header: ast.NewHeader(ast.KindImportDecl, loc, p.owner)}
	//
	if p.at(token.STRING) {
		decl.IsWholeFile = true
		decl.ModulePath = p.tok.StringValue
		p.advance()
		//
		if p.accept(token.KwAs) {
			alias, _ := p.expect(token.IDENT, "an alias")
			decl.Alias = alias.StringValue
		}
		//
		p.expect(token.Kind(';'), "';'")
		//
		return decl
	}
	//
	for {
		decl.Queries = append(decl.Queries, p.parseImportQuery())
		//
		if !p.accept(token.Kind(',')) {
			break
		}
	}
	//
	p.expect(token.KwFrom, "'from'")
	path, _ := p.expect(token.STRING, "a module path string")
	decl.ModulePath = path.StringValue
	//
	p.expect(token.Kind(';'), "';'")
	//
	return decl
}

func (p *Parser) parseImportQuery() ast.ImportQuery {
	if p.accept(token.Kind('*')) {
		return ast.ImportQuery{IsWildcard: true}
	}
	//
	pieces := p.parseDottedName()
	query := ast.ImportQuery{Pieces: pieces}
	//
	if p.accept(token.KwAs) {
		alias, _ := p.expect(token.IDENT, "an alias")
		query.Alias = alias.StringValue
	}
	//
	return query
}
