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
package sema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/module"
	"github.com/laye-lang/layec/pkg/sema"
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/util/assert"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	//
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	//
	return path
}

// check resolves a single-file module through the public resolver entry
// point (module.Module's constructor is unexported outside pkg/module) and
// runs the semantic analyser over it.
func check(t *testing.T, text string) (*module.Module, *source.Context) {
	t.Helper()
	//
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.laye", text)
	//
	ctx := source.NewContext()
	r := module.NewResolver(ctx, module.Config{})
	mod, _ := r.Resolve(entry)
	assert.True(t, mod != nil, "resolution should succeed before sema ever runs")
	//
	sema.Check(ctx, mod)
	return mod, ctx
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

func requireError(t *testing.T, ctx *source.Context) {
	t.Helper()
	//
	for _, d := range ctx.Diagnostics() {
		if d.Severity.IsError() {
			return
		}
	}
	//
	t.Fatalf("expected a diagnostic, got none")
}

func TestCheck_ArithmeticWithImplicitAndExplicitConversion(t *testing.T) {
	mod, ctx := check(t, `
int f(int x) {
	i64 widened = x;
	int narrowed = cast(int) widened;
	return x + narrowed;
}
`)
	requireNoErrors(t, ctx)
	//
	fn := mod.TopLevel[0].(*ast.FunctionDecl)
	assert.Equal(t, ast.Ok, fn.State())
	//
	widened := fn.Body.Children[0].(*ast.BindingDecl)
	assert.Equal(t, ast.Ok, widened.State())
	cast, ok := widened.Init.(*ast.CastExpr)
	assert.True(t, ok, "widening an int into an i64 local should insert a cast node")
	assert.Equal(t, ast.CastImplicit, cast.Kind)
	//
	narrowed := fn.Body.Children[1].(*ast.BindingDecl)
	hardCast, ok := narrowed.Init.(*ast.CastExpr)
	assert.True(t, ok, "an explicit cast(int) should produce a CastExpr")
	assert.Equal(t, ast.CastHard, hardCast.Kind)
}

func TestCheck_StructFieldLayoutAndMemberAccess(t *testing.T) {
	mod, ctx := check(t, `
struct point {
	int x;
	int y;
}

int sum(point p) {
	return p.x + p.y;
}
`)
	requireNoErrors(t, ctx)
	//
	st := mod.TopLevel[0].(*ast.StructDecl)
	assert.Equal(t, ast.Ok, st.State())
	assert.True(t, st.Type().IsValid())
	assert.Equal(t, 2, len(st.Type().Node.Fields))
	//
	fn := mod.TopLevel[1].(*ast.FunctionDecl)
	ret := fn.Body.Children[0].(*ast.ReturnStmt)
	bin := ret.Value.(*ast.BinaryExpr)
	//
	lhs, ok := bin.Left.(*ast.MemberExpr)
	assert.True(t, ok)
	assert.True(t, lhs.Base.IsLValue())
}

func TestCheck_MissingReturnOnSomePathIsDiagnosed(t *testing.T) {
	_, ctx := check(t, `
int f(int x) {
	if (x > 0) {
		return 1;
	}
}
`)
	requireError(t, ctx)
}

func TestCheck_DiscardedNonDiscardableResultIsDiagnosed(t *testing.T) {
	_, ctx := check(t, `
int produce() {
	return 1;
}

int main() {
	produce();
	return 0;
}
`)
	requireError(t, ctx)
}

func TestCheck_DiscardableCallMayBeDropped(t *testing.T) {
	_, ctx := check(t, `
discardable int produce() {
	return 1;
}

int main() {
	produce();
	return 0;
}
`)
	requireNoErrors(t, ctx)
}

func TestCheck_InfiniteForLoopBodySatisfiesNonVoidReturn(t *testing.T) {
	mod, ctx := check(t, `
int f() {
	for (;;) {
	}
}
`)
	requireNoErrors(t, ctx)
	//
	fn := mod.TopLevel[0].(*ast.FunctionDecl)
	loop := fn.Body.Children[0].(*ast.ForStmt)
	assert.False(t, loop.HasBreak())
}
