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
package parser_test

import (
	"testing"

	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/parser"
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/util/assert"
)

func parse(t *testing.T, text string) (parser.ParseResult, *source.Context) {
	t.Helper()
	//
	ctx := source.NewContext()
	fid := ctx.Add("test.laye", []byte(text))
	result := parser.New(ctx, fid, ast.Owner(0)).ParseFile()
	//
	return result, ctx
}

func requireNoErrors(t *testing.T, ctx *source.Context) {
	t.Helper()
	//
	for _, d := range ctx.Diagnostics() {
		if d.Severity.IsError() {
			t.Fatalf("unexpected diagnostic: %s", d.Message)
		}
	}
}

func TestParser_SimpleFunction(t *testing.T) {
	result, ctx := parse(t, `int add(int a, int b) { return a + b; }`)
	requireNoErrors(t, ctx)
	//
	assert.Equal(t, 1, len(result.TopLevel))
	fn, ok := result.TopLevel[0].(*ast.FunctionDecl)
	assert.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, 2, len(fn.Params))
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)
	assert.True(t, fn.Body != nil)
	assert.Equal(t, 1, len(fn.Body.Children))
	//
	ret, ok := fn.Body.Children[0].(*ast.ReturnStmt)
	assert.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.BinAdd, bin.Op)
}

func TestParser_MainGetsForcedLinkage(t *testing.T) {
	result, ctx := parse(t, `int main() { return 0; }`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	assert.True(t, fn.Attrs.Export)
	assert.True(t, fn.Attrs.HasCallConv)
	assert.Equal(t, ast.CallConvC, fn.Attrs.CallConv)
	assert.True(t, fn.Attrs.Foreign != nil)
	assert.Equal(t, ast.ForeignMangleNone, fn.Attrs.Foreign.Mangling)
}

func TestParser_ArrowBodyFunction(t *testing.T) {
	result, ctx := parse(t, `int square(int x) => x * x;`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	assert.True(t, fn.Body == nil)
	assert.True(t, fn.ArrowBody != nil)
}

func TestParser_ExternFunctionDeclaration(t *testing.T) {
	result, ctx := parse(t, `foreign int puts(int8[*] s);`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	assert.True(t, fn.IsExtern())
	assert.True(t, fn.Attrs.Foreign != nil)
}

func TestParser_AttributesInAnyOrder(t *testing.T) {
	result, ctx := parse(t, `export discardable inline int f() { return 0; }`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	assert.True(t, fn.Attrs.Export)
	assert.True(t, fn.Attrs.Discardable)
	assert.True(t, fn.Attrs.Inline)
}

func TestParser_GlobalBindingVsFunctionDisambiguation(t *testing.T) {
	result, ctx := parse(t, `int counter = 0;`)
	requireNoErrors(t, ctx)
	//
	decl, ok := result.TopLevel[0].(*ast.BindingDecl)
	assert.True(t, ok)
	assert.Equal(t, "counter", decl.Name)
	assert.True(t, decl.Init != nil)
}

func TestParser_LocalBindingInsideBlock(t *testing.T) {
	result, ctx := parse(t, `int f() { int x = 1; mut int y; return x; }`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	assert.Equal(t, 3, len(fn.Body.Children))
	//
	first := fn.Body.Children[0].(*ast.BindingDecl)
	assert.Equal(t, "x", first.Name)
	assert.True(t, first.Init != nil)
	//
	second := fn.Body.Children[1].(*ast.BindingDecl)
	assert.Equal(t, "y", second.Name)
	assert.True(t, second.Mut)
	assert.True(t, second.Init == nil)
}

func TestParser_IfExprAsStatementAndExpression(t *testing.T) {
	result, ctx := parse(t, `
		int f(int x) {
			if (x > 0) { return 1; } else if (x < 0) { return -1; } else { return 0; }
		}
	`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	stmt := fn.Body.Children[0].(*ast.ExprStmt)
	ifExpr, ok := stmt.Value.(*ast.IfExpr)
	assert.True(t, ok)
	assert.Equal(t, 2, len(ifExpr.Conds))
	assert.True(t, ifExpr.Else != nil)
}

func TestParser_ForLoopWithBreakAndContinue(t *testing.T) {
	result, ctx := parse(t, `
		int f() {
			for (int i = 0; i < 10; i = i + 1) {
				if (i == 5) { break; } else if (i == 2) { continue; }
			}
			return 0;
		}
	`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	loop, ok := fn.Body.Children[0].(*ast.ForStmt)
	assert.True(t, ok)
	assert.True(t, loop.HasBreak())
	assert.True(t, loop.HasContinue())
}

func TestParser_WhileLoopWithElse(t *testing.T) {
	result, ctx := parse(t, `
		int f(int x) {
			while (x > 0) { x = x - 1; } else { return -1; }
			return 0;
		}
	`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	loop, ok := fn.Body.Children[0].(*ast.WhileStmt)
	assert.True(t, ok)
	assert.True(t, loop.Else != nil)
}

func TestParser_BreakOutsideLoopIsDiagnosed(t *testing.T) {
	_, ctx := parse(t, `int f() { break; return 0; }`)
	//
	foundError := false
	//
	for _, d := range ctx.Diagnostics() {
		if d.Severity.IsError() {
			foundError = true
		}
	}
	//
	assert.True(t, foundError)
}

func TestParser_AssertAndDiscardAndYield(t *testing.T) {
	result, ctx := parse(t, `
		int f(int x) {
			assert(x > 0, "x must be positive");
			discard g();
			int y = if (x > 0) { yield 1; } else { yield 2; };
			return y;
		}
		discardable int g() => 0;
	`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	_, ok := fn.Body.Children[0].(*ast.AssertStmt)
	assert.True(t, ok)
	_, ok = fn.Body.Children[1].(*ast.DiscardStmt)
	assert.True(t, ok)
}

func TestParser_StructWithVariants(t *testing.T) {
	result, ctx := parse(t, `
		struct Shape {
			int tag;
			variant Circle {
				int radius;
			}
			variant Square {
				int side;
			}
		}
	`)
	requireNoErrors(t, ctx)
	//
	decl := result.TopLevel[0].(*ast.StructDecl)
	assert.Equal(t, "Shape", decl.Name)
	assert.Equal(t, 1, len(decl.Fields))
	assert.Equal(t, 2, len(decl.Variants))
	assert.True(t, decl.Variants[0].IsVariant)
	assert.Equal(t, decl, decl.Variants[0].Parent)
}

func TestParser_WholeFileImport(t *testing.T) {
	result, ctx := parse(t, `import "other.laye" as other;`)
	requireNoErrors(t, ctx)
	//
	decl := result.TopLevel[0].(*ast.ImportDecl)
	assert.True(t, decl.IsWholeFile)
	assert.Equal(t, "other.laye", decl.ModulePath)
	assert.Equal(t, "other", decl.Alias)
}

func TestParser_QueryImportWithWildcardAndAlias(t *testing.T) {
	result, ctx := parse(t, `import *, helper as h from "lib.laye";`)
	requireNoErrors(t, ctx)
	//
	decl := result.TopLevel[0].(*ast.ImportDecl)
	assert.True(t, !decl.IsWholeFile)
	assert.Equal(t, "lib.laye", decl.ModulePath)
	assert.Equal(t, 2, len(decl.Queries))
	assert.True(t, decl.Queries[0].IsWildcard)
	assert.Equal(t, "h", decl.Queries[1].Alias)
}

func TestParser_CallconvAndForeignAttributes(t *testing.T) {
	result, ctx := parse(t, `callconv("cdecl") foreign("none" "memcpy") void copy();`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	assert.Equal(t, ast.CallConvC, fn.Attrs.CallConv)
	assert.Equal(t, ast.ForeignMangleNone, fn.Attrs.Foreign.Mangling)
	assert.Equal(t, "memcpy", fn.Attrs.Foreign.Name)
}

func TestParser_PointerAndArrayTypeSyntax(t *testing.T) {
	result, ctx := parse(t, `int f(int* p, int[4] arr, int[*] buf, int[] slice) { return 0; }`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	assert.Equal(t, 4, len(fn.Params))
	assert.Equal(t, ast.PostfixPointer, fn.Params[0].TypeSyntax.Postfixes[0].Kind)
	assert.Equal(t, ast.PostfixArray, fn.Params[1].TypeSyntax.Postfixes[0].Kind)
	assert.Equal(t, ast.PostfixBuffer, fn.Params[2].TypeSyntax.Postfixes[0].Kind)
	assert.Equal(t, ast.PostfixSlice, fn.Params[3].TypeSyntax.Postfixes[0].Kind)
}

func TestParser_CastSizeofAlignofExpressions(t *testing.T) {
	result, ctx := parse(t, `
		int f() {
			int a = sizeof(int);
			int b = alignof(int);
			int c = cast(int) 3.0;
			return a + b + c;
		}
	`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	a := fn.Body.Children[0].(*ast.BindingDecl)
	_, ok := a.Init.(*ast.SizeofExpr)
	assert.True(t, ok)
	//
	c := fn.Body.Children[2].(*ast.BindingDecl)
	_, ok = c.Init.(*ast.CastExpr)
	assert.True(t, ok)
}

func TestParser_AdjacentStringLiteralsMerge(t *testing.T) {
	result, ctx := parse(t, `int8[*] f() { return "abc" "def"; }`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	ret := fn.Body.Children[0].(*ast.ReturnStmt)
	str, ok := ret.Value.(*ast.StringLiteral)
	assert.True(t, ok)
	assert.Equal(t, "abcdef", str.Value)
}

func TestParser_RedeclarationIsDiagnosed(t *testing.T) {
	_, ctx := parse(t, `
		int f() { return 0; }
		int f() { return 1; }
	`)
	//
	foundError := false
	//
	for _, d := range ctx.Diagnostics() {
		if d.Severity.IsError() {
			foundError = true
		}
	}
	//
	assert.True(t, foundError)
}

func TestParser_VarargsCStyle(t *testing.T) {
	result, ctx := parse(t, `foreign int printf(int8[*] fmt, varargs);`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	assert.Equal(t, ast.VarargsC, fn.Varargs)
}

func TestParser_VarargsLayeStyle(t *testing.T) {
	result, ctx := parse(t, `int sum(varargs int[] xs) { return 0; }`)
	requireNoErrors(t, ctx)
	//
	fn := result.TopLevel[0].(*ast.FunctionDecl)
	assert.Equal(t, ast.VarargsLaye, fn.Varargs)
}
