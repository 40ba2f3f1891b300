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

// Package irgen lowers a semantically-checked module (pkg/sema's output)
// into the LYIR intermediate representation defined by pkg/ir (spec §4.8):
// a three-pass per-module translator that declares every function
// reachable from this module, then generates bodies by structurally
// lowering each statement/expression onto pkg/ir's Builder.
package irgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/ir"
	"github.com/laye-lang/layec/pkg/module"
	"github.com/laye-lang/layec/pkg/source"
)

// ice reports an internal contract violation the same way pkg/ir's builder
// does: these can only be reached by a generator bug, since sema has
// already rejected every user-facing error before irgen ever runs.
func ice(format string, args ...any) {
	panic(fmt.Sprintf("ICE: "+format, args...))
}

type loopTarget struct {
	cont *ir.BasicBlock
	brk  *ir.BasicBlock
}

// Generator holds one module's translation state: the builder, the
// function currently being lowered, and the lookup tables that let
// expression lowering turn a resolved *ast.Decl into an IR storage
// location or callee.
type Generator struct {
	ctx *source.Context
	mod *module.Module

	irMod *ir.Module
	b     *ir.Builder

	fn        *ir.Function
	irRetType ir.Type

	funcOf      map[*ast.FunctionDecl]*ir.Function
	globalOf    map[*ast.BindingDecl]*ir.Global
	slots       map[ast.Decl]ir.Value
	structCache map[*ast.TypeNode]ir.Type
	stringCache map[*ast.StringLiteral]*ir.Global
	loopBlocks  map[ast.Loop]loopTarget

	assertFailFn *ir.Function
}

// Generate runs all three passes of spec §4.8 over mod and records the
// resulting IR module on mod.IR.
func Generate(ctx *source.Context, mod *module.Module) *ir.Module {
	g := &Generator{
		ctx:         ctx,
		mod:         mod,
		irMod:       ir.NewModule(moduleName(mod.Path), mod.Path),
		funcOf:      make(map[*ast.FunctionDecl]*ir.Function),
		globalOf:    make(map[*ast.BindingDecl]*ir.Global),
		structCache: make(map[*ast.TypeNode]ir.Type),
		stringCache: make(map[*ast.StringLiteral]*ir.Global),
	}
	g.b = ir.NewBuilder(g.irMod)
	//
	g.pass1DeclareFunctions()
	g.pass2() // top-level types: see pass2's own comment
	g.pass3GenerateBodies()
	//
	mod.IR = g.irMod
	//
	return g.irMod
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// pass1DeclareFunctions creates an IR function for every declaration
// reachable from this module (spec §4.8 step 1): this module's own
// top-level functions and globals, plus every function pulled in through
// the transitive import namespace, so the printed LYIR module is a
// self-contained translation unit with an extern declaration for every
// cross-module call.
func (g *Generator) pass1DeclareFunctions() {
	for _, decl := range g.mod.TopLevel {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			g.declareOwnFunction(d)
		case *ast.BindingDecl:
			g.declareOwnGlobal(d)
		}
	}
	//
	g.declareImportedFunctions(g.mod.Imports)
}

func functionLinkage(d *ast.FunctionDecl) ir.Linkage {
	switch {
	case d.IsExtern() && d.Attrs.Export:
		return ir.ReExported
	case d.IsExtern():
		return ir.Imported
	case d.Attrs.Export:
		return ir.Exported
	default:
		return ir.Internal
	}
}

func (g *Generator) declareOwnFunction(d *ast.FunctionDecl) {
	ft := d.Type()
	//
	paramTys := make([]ir.Type, len(d.Params))
	paramNames := make([]string, len(d.Params))
	for i, p := range d.Params {
		paramTys[i] = g.lowerType(p.Type())
		paramNames[i] = p.Name
	}
	//
	fn := g.b.DeclareFunction(d.Name, g.lowerType(*ft.Node.Return), paramTys, paramNames,
		ft.Node.CallConv, ft.Node.Variadic, functionLinkage(d))
	g.funcOf[d] = fn
}

func (g *Generator) declareOwnGlobal(d *ast.BindingDecl) {
	t := g.lowerType(d.Type())
	//
	linkage := ir.Internal
	if d.Export {
		linkage = ir.Exported
	}
	//
	var init ir.Value
	if ce, ok := d.Init.(*ast.ConstantExpr); ok {
		if t.Kind() == ir.TypeFloat {
			init = ir.NewFloatConst(t, ce.FloatValue)
		} else {
			init = ir.NewIntConst(t, ce.IntValue)
		}
	}
	//
	g.globalOf[d] = g.b.DeclareGlobal(d.Name, t, linkage, init)
}

// declareImportedFunctions walks a namespace symbol tree (a module's
// Imports), declaring an Imported-linkage IR function for every
// *ast.FunctionDecl it finds that this module hasn't already declared as
// its own.
func (g *Generator) declareImportedFunctions(sym *ast.Symbol) {
	if sym == nil || sym.Kind != ast.SymbolNamespace {
		return
	}
	//
	for _, child := range sym.Children {
		switch child.Kind {
		case ast.SymbolNamespace:
			g.declareImportedFunctions(child)
		case ast.SymbolEntity:
			for _, decl := range child.Decls {
				if fd, ok := decl.(*ast.FunctionDecl); ok {
					g.resolveFunctionValue(fd)
				}
			}
		}
	}
}

// resolveFunctionValue returns the IR function for fd, declaring it as an
// Imported extern on first reference if it belongs to a different module
// (or wasn't reached by the import-namespace walk, e.g. a struct's
// variant-associated function resolved only via a NameRef).
func (g *Generator) resolveFunctionValue(fd *ast.FunctionDecl) *ir.Function {
	if fn, ok := g.funcOf[fd]; ok {
		return fn
	}
	//
	ft := fd.Type()
	//
	paramTys := make([]ir.Type, len(fd.Params))
	paramNames := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		paramTys[i] = g.lowerType(p.Type())
		paramNames[i] = p.Name
	}
	//
	fn := g.b.DeclareFunction(fd.Name, g.lowerType(*ft.Node.Return), paramTys, paramNames,
		ft.Node.CallConv, ft.Node.Variadic, ir.Imported)
	g.funcOf[fd] = fn
	//
	return fn
}

// pass2 is a no-op placeholder for top-level type declarations (spec §4.8
// step 2). Named struct types need no separate pass here: lowerType lazily
// declares each one (via the builder's DeclareStruct) the first time a
// function signature or field type references it, which covers every
// struct that could possibly matter to this module's generated IR.
func (g *Generator) pass2() {}

// pass3GenerateBodies lowers every locally-defined function's body (spec
// §4.8 step 3); extern declarations were already fully handled by pass 1.
func (g *Generator) pass3GenerateBodies() {
	for _, decl := range g.mod.TopLevel {
		fd, ok := decl.(*ast.FunctionDecl)
		if !ok || fd.IsExtern() {
			continue
		}
		//
		g.genFunctionBody(fd)
	}
}

func (g *Generator) genFunctionBody(decl *ast.FunctionDecl) {
	fn := g.funcOf[decl]
	//
	g.fn = fn
	g.irRetType = fn.ReturnType
	g.slots = make(map[ast.Decl]ir.Value)
	g.loopBlocks = make(map[ast.Loop]loopTarget)
	//
	entry := g.b.CreateBlock(fn, "entry")
	g.b.SetInsertPoint(fn, entry)
	//
	for i, p := range decl.Params {
		slot := g.b.CreateAlloca(fn.Params[i].Type(), p.Location())
		g.b.CreateStore(slot, fn.Params[i], p.Location())
		g.slots[p] = slot
	}
	//
	switch {
	case decl.Body != nil:
		g.genBlockStmts(decl.Body)
	case decl.ArrowBody != nil:
		v := g.genExpr(decl.ArrowBody)
		if !g.b.BlockTerminated() {
			if fn.ReturnType.Kind() == ir.TypeVoid {
				g.b.CreateReturnVoid(decl.Location())
			} else {
				g.b.CreateReturn(v, fn.ReturnType, decl.Location())
			}
		}
	}
	//
	// sema's checkFunctionReturns (spec §4.6) already appended a synthetic
	// return for a void body and rejected a non-void body with a missing
	// return, so an unterminated block here only happens when the body's
	// last statement was itself noreturn (e.g. an infinite loop with no
	// break): close it the way spec §3 requires a noreturn path be closed.
	if !g.b.BlockTerminated() {
		if fn.ReturnType.Kind() == ir.TypeVoid {
			g.b.CreateReturnVoid(decl.Location())
		} else {
			g.b.CreateUnreachable(decl.Location())
		}
	}
	//
	g.fn = nil
}

func (g *Generator) assertFailFunction() *ir.Function {
	if g.assertFailFn == nil {
		g.assertFailFn = g.b.DeclareFunction("__laye_assert_fail", ir.Void, []ir.Type{ir.Ptr}, []string{"message"},
			ast.CallConvC, ast.VarargsNone, ir.Imported)
	}
	//
	return g.assertFailFn
}
