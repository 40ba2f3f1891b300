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
package sema

import "github.com/laye-lang/layec/pkg/ast"

// checkStruct lays out decl's fields (spec §4.6: "Struct analysis computes
// field offsets by accumulating aligned field sizes"). Idempotent via
// enterState, since a struct may be reached both from TopLevel iteration
// and from an earlier NameRef resolution.
func (c *checker) checkStruct(decl *ast.StructDecl) {
	if !c.enterState(decl) {
		return
	}
	//
	var parentNode *ast.TypeNode
	if decl.Parent != nil {
		if pt := decl.Parent.Type(); pt.Node != nil {
			parentNode = pt.Node
		}
	}
	//
	t := ast.NewStructType(decl.Name, parentNode)
	decl.SetType(t)
	c.layoutStruct(decl, t)
	c.finish(decl, true)
}

// checkFunction resolves a function's signature, then its body (block,
// arrow expression, or nothing for an extern declaration), and applies the
// control-flow checks of spec §4.6: an appended synthetic `return` for a
// non-noreturn void body, or a "not all paths return" error otherwise.
func (c *checker) checkFunction(decl *ast.FunctionDecl) {
	if !c.enterState(decl) {
		return
	}
	//
	retType := c.resolveType(decl.ReturnType)
	//
	paramTypes := make([]ast.Type, len(decl.Params))
	for i, param := range decl.Params {
		pt := c.resolveType(param.TypeSyntax)
		param.SetType(pt)
		param.SetLValue(true)
		param.SetState(ast.Ok)
		paramTypes[i] = pt
	}
	//
	cc := ast.CallConvLaye
	if decl.Attrs.HasCallConv {
		cc = decl.Attrs.CallConv
	}
	//
	decl.SetType(ast.NewFunctionType(retType, paramTypes, cc, decl.Varargs))
	//
	outerFn := c.fn
	c.fn = decl
	//
	switch {
	case decl.Body != nil:
		c.analyseBlock(decl.Body, ast.Void)
		c.checkFunctionReturns(decl, retType)
	case decl.ArrowBody != nil:
		c.analyseExpr(decl.ArrowBody, retType)
		decl.ArrowBody = c.convertOrError(decl.ArrowBody, retType)
	}
	//
	c.fn = outerFn
	c.finish(decl, true)
}

// checkFunctionReturns implements spec §4.6's "synthetic return" /
// "not all paths return" rule for a block-bodied function.
func (c *checker) checkFunctionReturns(decl *ast.FunctionDecl, retType ast.Type) {
	bodyType := decl.Body.Type()
	if bodyType.Kind() == ast.TypeNoReturn {
		return
	}
	//
	if retType.Kind() == ast.TypeVoid {
		decl.Body.Children = append(decl.Body.Children, &ast.ReturnStmt{
			Header: ast.NewGeneratedHeader(ast.KindReturnStmt, decl.Body.Location(), decl.Owner()),
		})
		//
		return
	}
	//
	if !blockAlwaysReturns(decl.Body) {
		c.errorf(decl.Location(), "not all paths return a value")
	}
}

// blockAlwaysReturns is a conservative structural check: every path out of
// block ends in a return or a noreturn statement (break and continue do
// not count), or the last statement is an
// if-expression whose every arm (including an else) always returns.
func blockAlwaysReturns(block *ast.Block) bool {
	if len(block.Children) == 0 {
		return false
	}
	//
	last := block.Children[len(block.Children)-1]
	return nodeAlwaysReturns(last)
}

func nodeAlwaysReturns(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.ExprStmt:
		return nodeAlwaysReturns(v.Value)
	case *ast.IfExpr:
		if v.Else == nil {
			return false
		}
		//
		for _, pass := range v.Passes {
			if !blockAlwaysReturns(pass) {
				return false
			}
		}
		//
		return blockAlwaysReturns(v.Else)
	case *ast.Block:
		return blockAlwaysReturns(v)
	default:
		return n.Type().Kind() == ast.TypeNoReturn
	}
}

// checkGlobalBinding resolves a module-level `export`-able binding's type
// and, if present, checks its initialiser against it.
func (c *checker) checkGlobalBinding(decl *ast.BindingDecl) {
	if !c.enterState(decl) {
		return
	}
	//
	t := c.resolveType(decl.TypeSyntax)
	decl.SetType(t)
	decl.SetLValue(true)
	//
	if decl.Init != nil {
		c.analyseExpr(decl.Init, t)
		decl.Init = c.convertOrError(decl.Init, t)
	}
	//
	c.finish(decl, true)
}
