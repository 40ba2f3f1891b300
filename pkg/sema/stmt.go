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

// analyseBlock implements spec §3/§4.6's compound-expression semantics: a
// block's type is whatever its (at most one, by construction) YieldStmt
// child produces, against expected as the yield target; a block with no
// yield is Void unless every reachable path through it ends in a noreturn
// statement, in which case the whole block is itself noreturn.
//
// Every Block is visited exactly once by construction (the AST is a tree,
// never a DAG), so unlike expression/declaration analysis this does not
// need an enterState guard; it still records the node's final type/state so
// that a later pass reading Header fields sees the same Ok/lvalue picture.
func (c *checker) analyseBlock(block *ast.Block, expected ast.Type) ast.Type {
	// Names inside the block resolve through its own scope, whose parent
	// chain reaches the function's BodyScope.
	if fn := c.fn; fn != nil && block.Scope != nil {
		outer := fn.BodyScope
		fn.BodyScope = block.Scope
		defer func() { fn.BodyScope = outer }()
	}
	//
	var yieldType ast.Type
	yieldLValue := false
	sawNoReturn := false
	//
	for _, child := range block.Children {
		if y, ok := child.(*ast.YieldStmt); ok {
			c.analyseExpr(y.Value, expected)
			//
			if expected.IsValid() {
				y.Value = c.convertOrError(y.Value, expected)
			}
			//
			yieldType = y.Value.Type()
			yieldLValue = y.Value.IsLValue()
			y.SetType(ast.Void)
			y.SetState(ast.Ok)
			//
			continue
		}
		//
		if t := c.analyseStmt(child); t.Kind() == ast.TypeNoReturn {
			sawNoReturn = true
		}
	}
	//
	var result ast.Type
	switch {
	case yieldType.IsValid():
		result = yieldType
	case sawNoReturn:
		result = ast.NoReturn
	default:
		result = ast.Void
	}
	//
	block.SetLValue(yieldLValue)
	block.SetType(result)
	block.SetState(ast.Ok)
	//
	return result
}

// analyseStmt dispatches a single statement-position node. It returns the
// node's own analysed type, which analyseBlock consults only to detect a
// noreturn child (the call that can never return, or a loop that never
// exits, per spec §4.6).
func (c *checker) analyseStmt(stmt ast.Node) ast.Type {
	switch n := stmt.(type) {
	case *ast.Block:
		return c.analyseBlock(n, ast.Void)
	case *ast.ForStmt:
		return c.analyseForStmt(n)
	case *ast.WhileStmt:
		return c.analyseWhileStmt(n)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// Target already resolved by the parser's loop stack; spec §4.3
		// reports "break/continue outside a loop" there, not here.
		return ast.Void
	case *ast.ReturnStmt:
		return c.analyseReturnStmt(n)
	case *ast.YieldStmt:
		// Reached only for a yield outside of a block's own child list,
		// which the grammar never produces; analyse defensively and treat
		// it as a plain statement rather than panicking.
		c.analyseExpr(n.Value, ast.Unknown)
		return ast.Void
	case *ast.AssertStmt:
		return c.analyseAssertStmt(n)
	case *ast.DiscardStmt:
		c.analyseExpr(n.Value, ast.Unknown)
		return ast.Void
	case *ast.ExprStmt:
		return c.analyseExprStmt(n)
	case *ast.BindingDecl:
		return c.analyseLocalBinding(n)
	default:
		return ast.Void
	}
}

// analyseForStmt implements spec §4.6's "constant-true condition with no
// break becomes noreturn" rule; an omitted condition (`for (;;)`) is
// constant-true by construction.
func (c *checker) analyseForStmt(n *ast.ForStmt) ast.Type {
	if n.Init != nil {
		c.analyseStmt(n.Init)
	}
	//
	constTrue := n.Cond == nil
	//
	if n.Cond != nil {
		c.analyseExpr(n.Cond, ast.Bool)
		n.Cond = c.convertOrError(n.Cond, ast.Bool)
		constTrue = isConstantTrueCond(n.Cond)
	}
	//
	if n.Inc != nil {
		c.analyseStmt(n.Inc)
	}
	//
	c.analyseBlock(n.Body, ast.Void)
	//
	if n.Else != nil {
		c.analyseBlock(n.Else, ast.Void)
	}
	//
	if constTrue && !n.HasBreak() {
		return ast.NoReturn
	}
	//
	return ast.Void
}

func (c *checker) analyseWhileStmt(n *ast.WhileStmt) ast.Type {
	c.analyseExpr(n.Cond, ast.Bool)
	n.Cond = c.convertOrError(n.Cond, ast.Bool)
	constTrue := isConstantTrueCond(n.Cond)
	//
	c.analyseBlock(n.Body, ast.Void)
	//
	if n.Else != nil {
		c.analyseBlock(n.Else, ast.Void)
	}
	//
	if constTrue && !n.HasBreak() {
		return ast.NoReturn
	}
	//
	return ast.Void
}

// isConstantTrueCond recognises the literal-true loop condition the parser
// actually produces; it does not attempt general constant folding of
// boolean expressions (no boolean-only counterpart to foldConstantInt
// exists, since spec §4.6 only names integer constant folding).
func isConstantTrueCond(cond ast.Expr) bool {
	lit, ok := cond.(*ast.BoolLiteral)
	return ok && lit.Value
}

// currentReturnType reads the function currently being analysed. It is only
// ever called from within a ReturnStmt reached through that function's own
// body, so c.fn is never nil here.
func (c *checker) currentReturnType() ast.Type {
	if c.fn == nil || c.fn.Type().Node == nil {
		return ast.Void
	}
	//
	return *c.fn.Type().Node.Return
}

func (c *checker) analyseReturnStmt(n *ast.ReturnStmt) ast.Type {
	retType := c.currentReturnType()
	//
	switch {
	case n.Value == nil:
		if retType.Kind() != ast.TypeVoid && retType.Kind() != ast.TypePoison {
			c.errorf(n.Location(), "return requires a value of type %s", typeName(retType))
		}
	case retType.Kind() == ast.TypeVoid || retType.Kind() == ast.TypeNoReturn:
		c.errorf(n.Location(), "function does not return a value")
		c.analyseExpr(n.Value, ast.Unknown)
	default:
		c.analyseExpr(n.Value, retType)
		n.Value = c.convertOrError(n.Value, retType)
	}
	//
	return ast.NoReturn
}

func (c *checker) analyseAssertStmt(n *ast.AssertStmt) ast.Type {
	c.analyseExpr(n.Cond, ast.Bool)
	n.Cond = c.convertOrError(n.Cond, ast.Bool)
	//
	if n.Message != nil {
		c.analyseExpr(n.Message, ast.Unknown)
	}
	//
	return ast.Void
}

// analyseExprStmt analyses a bare expression evaluated for side effects and,
// per SPEC_FULL.md's explicit-discard supplemented feature, diagnoses a
// silently dropped result from a call to a non-`discardable`,
// non-void-returning function.
func (c *checker) analyseExprStmt(n *ast.ExprStmt) ast.Type {
	c.analyseExpr(n.Value, ast.Unknown)
	c.checkDiscardedResult(n.Value)
	return ast.Void
}

func (c *checker) checkDiscardedResult(value ast.Expr) {
	call, ok := value.(*ast.CallExpr)
	if !ok {
		return
	}
	//
	name, ok := call.Callee.(*ast.NameExpr)
	if !ok {
		return
	}
	//
	fn, ok := name.Resolved.(*ast.FunctionDecl)
	if !ok || fn.Attrs.Discardable {
		return
	}
	//
	retType := call.Type()
	if retType.Kind() == ast.TypeVoid || retType.Kind() == ast.TypePoison {
		return
	}
	//
	c.errorf(value.Location(), "result of call to %q is discarded; mark it 'discardable' or use 'discard'", fn.Name)
}

// analyseLocalBinding resolves a block-local `<type> name (= init)?;`
// declaration. Its visibility in the enclosing scope was already wired by
// the parser (pkg/parser's ParseBlock/parseLocalBinding); sema only assigns
// its type and checks its initialiser.
func (c *checker) analyseLocalBinding(n *ast.BindingDecl) ast.Type {
	if !c.enterState(n) {
		return ast.Void
	}
	//
	t := c.resolveType(n.TypeSyntax)
	n.SetType(t)
	n.SetLValue(true)
	//
	if n.Init != nil {
		c.analyseExpr(n.Init, t)
		n.Init = c.convertOrError(n.Init, t)
	}
	//
	c.finish(n, true)
	return ast.Void
}

// foldConstantInt folds a syntactic constant-integer expression (spec
// §4.6: array lengths "require compile-time-constant integer expressions").
// It works purely over literal/operator shape rather than requiring the
// operands to have already been through analyseExpr, since it is called
// from type resolution (array-dimension folding) which runs before general
// expression analysis ever sees these nodes.
func (c *checker) foldConstantInt(expr ast.Expr) (int64, bool) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return int64(n.Value), true
	case *ast.ConstantExpr:
		return int64(n.IntValue), true
	case *ast.UnaryExpr:
		v, ok := c.foldConstantInt(n.Operand)
		if !ok {
			return 0, false
		}
		//
		switch n.Op {
		case ast.UnaryPlus:
			return v, true
		case ast.UnaryMinus:
			return -v, true
		case ast.UnaryComplement:
			return ^v, true
		default:
			return 0, false
		}
	case *ast.BinaryExpr:
		l, lok := c.foldConstantInt(n.Left)
		r, rok := c.foldConstantInt(n.Right)
		//
		if !lok || !rok {
			return 0, false
		}
		//
		switch n.Op {
		case ast.BinAdd:
			return l + r, true
		case ast.BinSub:
			return l - r, true
		case ast.BinMul:
			return l * r, true
		case ast.BinDiv:
			if r == 0 {
				return 0, false
			}
			//
			return l / r, true
		case ast.BinMod:
			if r == 0 {
				return 0, false
			}
			//
			return l % r, true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}
