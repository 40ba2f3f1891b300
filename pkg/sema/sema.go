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

// Package sema implements the Laye semantic analyser (spec §4.6): a
// type-driven, single-pass-per-node walk that resolves names, assigns
// types, inserts explicit casts at every implicit conversion site, lays
// out struct fields, folds compile-time constants, and enforces the
// control-flow rules named in spec §4.6/§4.8.
package sema

import (
	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/module"
	"github.com/laye-lang/layec/pkg/source"
)

// Result is the analyser's output: the checked module, handed back so a
// caller can chain straight into IR generation without re-deriving it.
type Result struct {
	Module *module.Module
}

// checker holds one module's analysis state. Every AST node in the module
// moves Pending -> InProgress -> Ok|Errored exactly once (spec §3); nodes
// are never analysed twice, so the checker carries no expression-to-type
// side table the way a multi-module cache would need.
type checker struct {
	ctx *source.Context
	mod *module.Module

	// fn is the function currently being analysed, consulted by return
	// and yield checks. nil at module scope (between functions).
	fn *ast.FunctionDecl
}

// Check runs semantic analysis over every top-level declaration of mod, in
// the order the module resolver already placed it (§4.4's dependency
// order guarantees mod's imports have themselves been checked, so imported
// struct layouts and function types are already final).
func Check(ctx *source.Context, mod *module.Module) Result {
	c := &checker{ctx: ctx, mod: mod}
	//
	for _, decl := range mod.TopLevel {
		c.checkTopLevel(decl)
	}
	//
	return Result{Module: mod}
}

func (c *checker) checkTopLevel(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.ImportDecl:
		// Handled entirely by pkg/module; nothing left for sema to do.
	case *ast.StructDecl:
		c.checkStruct(d)
	case *ast.FunctionDecl:
		c.checkFunction(d)
	case *ast.BindingDecl:
		c.checkGlobalBinding(d)
	}
}

// enterState transitions node from Pending to InProgress, reporting the
// spec §3 compiler-assertion violation (re-entry while InProgress) as an
// Ice diagnostic rather than panicking, matching the lexer/parser's own
// never-abort discipline (spec §4.2, §7). It returns false when the node
// has already been analysed (or is mid-analysis) and the caller should
// skip re-checking it.
func (c *checker) enterState(n ast.Node) bool {
	switch n.State() {
	case ast.Ok, ast.Errored:
		return false
	case ast.InProgress:
		c.ctx.Diagnose(source.Ice, n.Location(), "re-entrant analysis of an in-progress node")
		return false
	default:
		n.SetState(ast.InProgress)
		return true
	}
}

func (c *checker) finish(n ast.Node, ok bool) {
	if ok {
		n.SetState(ast.Ok)
	} else {
		n.SetState(ast.Errored)
	}
}

func (c *checker) errorf(loc source.Location, format string, args ...any) {
	c.ctx.Diagnose(source.Error, loc, format, args...)
}
