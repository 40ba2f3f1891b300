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

// Package module implements the Laye module/import resolver (spec §4.4): a
// two-phase pass that discovers and parses every transitively imported
// file, then builds each module's import/export symbol namespaces in
// dependency order.
package module

import (
	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/ir"
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/token"
)

// Module is one parsed, (eventually) symbol-resolved Laye source file (spec
// §3): its identity, its top-level declarations and their owning scope, its
// import/export namespaces, and the token buffer kept for diagnostics. Node
// ownership is tracked through ast.Owner rather than a physical arena slice,
// since Go's garbage collector plays the role the teacher's bump allocator
// plays in Rust/C++ front ends — the id still uniquely identifies "which
// module freed this node," which is all any pass needs.
type Module struct {
	ID     ast.Owner
	Path   string
	FileID source.FileID

	TopLevel []ast.Decl
	Scope    *ast.Scope

	// Imports is what is visible inside this module: the namespace built by
	// phase 2 from this module's own import declarations.
	Imports *ast.Symbol
	// Exports is what other modules may pull in: every top-level
	// declaration in TopLevel carrying `export`.
	Exports *ast.Symbol

	// Tokens is the full token buffer produced while parsing this file,
	// retained for diagnostics that want to print surrounding context.
	Tokens []token.Token

	// IR is this module's generated LYIR module (spec §3: "its generated IR
	// module pointer"), nil until pkg/irgen has run.
	IR *ir.Module
}

func newModule(id ast.Owner, path string, fid source.FileID, topLevel []ast.Decl, scope *ast.Scope, tokens []token.Token) *Module {
	return &Module{
		ID:       id,
		Path:     path,
		FileID:   fid,
		TopLevel: topLevel,
		Scope:    scope,
		Imports:  ast.NewNamespace(),
		Exports:  ast.NewNamespace(),
		Tokens:   tokens,
	}
}
