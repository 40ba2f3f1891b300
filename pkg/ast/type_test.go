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
package ast_test

import (
	"testing"

	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/util/assert"
)

func TestType_StructuralEqualityIgnoresModifiable(t *testing.T) {
	a := ast.NewInt(32, true, false)
	b := ast.NewInt(32, true, false).Modifiable(true)
	//
	assert.True(t, a.StructurallyEqual(b), "int types of equal width/signedness must be structurally equal")
}

func TestType_DifferentWidthsNotEqual(t *testing.T) {
	a := ast.NewInt(32, true, false)
	b := ast.NewInt(64, true, false)
	//
	assert.False(t, a.StructurallyEqual(b), "")
}

func TestType_PointerElementMustMatch(t *testing.T) {
	a := ast.NewPointer(ast.NewInt(8, false, false), false)
	b := ast.NewPointer(ast.NewInt(16, false, false), false)
	c := ast.NewPointer(ast.NewInt(8, false, false), false)
	//
	assert.False(t, a.StructurallyEqual(b), "")
	assert.True(t, a.StructurallyEqual(c), "")
}

func TestType_NamedStructsCompareNominally(t *testing.T) {
	a := ast.NewStructType("Point", nil)
	b := ast.NewStructType("Point", nil)
	//
	assert.False(t, a.StructurallyEqual(b), "two distinct struct declarations never unify even with the same name")
	assert.True(t, a.StructurallyEqual(a), "")
}

func TestScope_LookupWalksParentChain(t *testing.T) {
	root := ast.NewScope(nil)
	decl := &ast.BindingDecl{Name: "x"}
	root.Declare("x", decl)
	//
	child := ast.NewScope(root)
	found, ok := child.Lookup("x")
	//
	assert.True(t, ok, "")
	assert.Equal(t, ast.Decl(decl), found, "")
}

func TestScope_DeclareRejectsRedeclaration(t *testing.T) {
	s := ast.NewScope(nil)
	decl := &ast.BindingDecl{Name: "x"}
	//
	assert.True(t, s.Declare("x", decl), "")
	assert.False(t, s.Declare("x", decl), "redeclaring the same name in one scope must fail")
}

func TestResolve_FallsThroughToImports(t *testing.T) {
	root := ast.NewScope(nil)
	imports := ast.NewNamespace()
	decl := &ast.FunctionDecl{Name: "puts"}
	imports.Put("puts", ast.NewEntity(decl))
	//
	found, ok := ast.Resolve(root, imports, "puts")
	assert.True(t, ok, "")
	assert.Equal(t, ast.Decl(decl), found, "")
}

func TestSymbol_ShallowCopyIntoSharesChildren(t *testing.T) {
	exports := ast.NewNamespace()
	exports.Put("foo", ast.NewEntity(&ast.FunctionDecl{Name: "foo"}))
	//
	ns := ast.NewNamespace()
	ns.ShallowCopyInto(exports)
	//
	child, ok := ns.Get("foo")
	assert.True(t, ok, "")
	assert.Equal(t, ast.SymbolEntity, child.Kind, "")
}
