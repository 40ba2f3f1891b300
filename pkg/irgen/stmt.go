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
package irgen

import (
	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/ir"
)

// genBlockStmts lowers blk purely for side effects: used for loop bodies,
// if-as-statement arms, and any nested block where the final statement's
// value (if it is an expression) is not needed.
func (g *Generator) genBlockStmts(blk *ast.Block) {
	for _, child := range blk.Children {
		if g.b.BlockTerminated() {
			break
		}
		//
		if y, ok := child.(*ast.YieldStmt); ok {
			g.genExpr(y.Value)
			continue
		}
		//
		g.genStmt(child)
	}
}

// genBlockYield lowers blk in expression position (spec §3's compound
// expression): the value of the last `yield` among blk's own direct
// children becomes the block's result; yields inside nested blocks are not
// considered.
func (g *Generator) genBlockYield(blk *ast.Block) ir.Value {
	var result ir.Value
	//
	for _, child := range blk.Children {
		if g.b.BlockTerminated() {
			break
		}
		//
		if y, ok := child.(*ast.YieldStmt); ok {
			result = g.genExpr(y.Value)
			continue
		}
		//
		g.genStmt(child)
	}
	//
	return result
}

func (g *Generator) genStmt(n ast.Node) {
	switch v := n.(type) {
	case *ast.BindingDecl:
		g.genLocalBinding(v)
	case *ast.ExprStmt:
		g.genExpr(v.Value)
	case *ast.ReturnStmt:
		g.genReturn(v)
	case *ast.YieldStmt:
		// A yield outside expression-block position only reaches here via a
		// direct genStmt dispatch (genBlockStmts/genBlockYield both intercept
		// it themselves); evaluate for side effects and drop the value.
		g.genExpr(v.Value)
	case *ast.AssertStmt:
		g.genAssert(v)
	case *ast.DiscardStmt:
		g.genExpr(v.Value)
	case *ast.ForStmt:
		g.genFor(v)
	case *ast.WhileStmt:
		g.genWhile(v)
	case *ast.BreakStmt:
		g.genBreak(v)
	case *ast.ContinueStmt:
		g.genContinue(v)
	case *ast.Block:
		g.genBlockStmts(v)
	default:
		ice("unhandled statement kind %T", n)
	}
}

func (g *Generator) genLocalBinding(d *ast.BindingDecl) {
	t := g.lowerType(d.Type())
	slot := g.b.CreateAlloca(t, d.Location())
	g.slots[d] = slot
	//
	if d.Init != nil {
		v := g.genExpr(d.Init)
		g.b.CreateStore(slot, v, d.Location())
	}
}

func (g *Generator) genReturn(n *ast.ReturnStmt) {
	if n.Value == nil {
		g.b.CreateReturnVoid(n.Location())
		return
	}
	//
	v := g.genExpr(n.Value)
	g.b.CreateReturn(v, g.irRetType, n.Location())
}

// genAssert lowers `assert(cond, msg?)` into the two-block shape spec
// §4.8 names: a conditional branch to a fail block that calls the runtime
// assert-fail routine and is then unreachable, or straight through to the
// code after the assertion.
func (g *Generator) genAssert(n *ast.AssertStmt) {
	cond := g.genExpr(n.Cond)
	//
	passBlk := g.b.CreateBlock(g.fn, "assert.after")
	failBlk := g.b.CreateBlock(g.fn, "assert.fail")
	g.b.CreateCondBranch(cond, passBlk, failBlk, n.Location())
	//
	g.b.SetInsertPoint(g.fn, failBlk)
	//
	var args []ir.Value
	if n.Message != nil {
		args = append(args, g.genExpr(n.Message))
	}
	//
	g.b.CreateCall(g.assertFailFunction(), args, ast.CallConvC, ir.Void, n.Location())
	g.b.CreateUnreachable(n.Location())
	//
	g.b.SetInsertPoint(g.fn, passBlk)
}

// genFor lowers a `for (init; cond; inc) body [else tail]` loop into the
// cond/body/inc/join block shape spec §4.8 names, registering
// break/continue targets for the duration of the body.
func (g *Generator) genFor(n *ast.ForStmt) {
	fn := g.fn
	//
	if n.Init != nil {
		g.genStmt(n.Init)
	}
	//
	condBlk := g.b.CreateBlock(fn, "for.cond")
	bodyBlk := g.b.CreateBlock(fn, "for.body")
	incBlk := g.b.CreateBlock(fn, "for.inc")
	//
	var elseBlk *ir.BasicBlock
	if n.Else != nil {
		elseBlk = g.b.CreateBlock(fn, "for.else")
	}
	//
	joinBlk := g.b.CreateBlock(fn, "for.join")
	//
	if !g.b.BlockTerminated() {
		g.b.CreateBranch(condBlk, n.Location())
	}
	//
	g.b.SetInsertPoint(fn, condBlk)
	//
	failTarget := joinBlk
	if elseBlk != nil {
		failTarget = elseBlk
	}
	//
	if n.Cond != nil {
		cond := g.genExpr(n.Cond)
		g.b.CreateCondBranch(cond, bodyBlk, failTarget, n.Cond.Location())
	} else {
		g.b.CreateBranch(bodyBlk, n.Location())
	}
	//
	g.loopBlocks[n] = loopTarget{cont: incBlk, brk: joinBlk}
	//
	g.b.SetInsertPoint(fn, bodyBlk)
	g.genBlockStmts(n.Body)
	//
	if !g.b.BlockTerminated() {
		g.b.CreateBranch(incBlk, n.Location())
	}
	//
	g.b.SetInsertPoint(fn, incBlk)
	if n.Inc != nil {
		g.genStmt(n.Inc)
	}
	//
	if !g.b.BlockTerminated() {
		g.b.CreateBranch(condBlk, n.Location())
	}
	//
	if elseBlk != nil {
		g.b.SetInsertPoint(fn, elseBlk)
		g.genBlockStmts(n.Else)
		//
		if !g.b.BlockTerminated() {
			g.b.CreateBranch(joinBlk, n.Location())
		}
	}
	//
	g.b.SetInsertPoint(fn, joinBlk)
}

// genWhile lowers a `while (cond) body [else tail]` loop; it mirrors
// genFor without an initializer or increment block.
func (g *Generator) genWhile(n *ast.WhileStmt) {
	fn := g.fn
	//
	condBlk := g.b.CreateBlock(fn, "while.cond")
	bodyBlk := g.b.CreateBlock(fn, "while.body")
	//
	var elseBlk *ir.BasicBlock
	if n.Else != nil {
		elseBlk = g.b.CreateBlock(fn, "while.else")
	}
	//
	joinBlk := g.b.CreateBlock(fn, "while.join")
	//
	if !g.b.BlockTerminated() {
		g.b.CreateBranch(condBlk, n.Location())
	}
	//
	g.b.SetInsertPoint(fn, condBlk)
	//
	failTarget := joinBlk
	if elseBlk != nil {
		failTarget = elseBlk
	}
	//
	cond := g.genExpr(n.Cond)
	g.b.CreateCondBranch(cond, bodyBlk, failTarget, n.Cond.Location())
	//
	g.loopBlocks[n] = loopTarget{cont: condBlk, brk: joinBlk}
	//
	g.b.SetInsertPoint(fn, bodyBlk)
	g.genBlockStmts(n.Body)
	//
	if !g.b.BlockTerminated() {
		g.b.CreateBranch(condBlk, n.Location())
	}
	//
	if elseBlk != nil {
		g.b.SetInsertPoint(fn, elseBlk)
		g.genBlockStmts(n.Else)
		//
		if !g.b.BlockTerminated() {
			g.b.CreateBranch(joinBlk, n.Location())
		}
	}
	//
	g.b.SetInsertPoint(fn, joinBlk)
}

func (g *Generator) genBreak(n *ast.BreakStmt) {
	t, ok := g.loopBlocks[n.Target]
	if !ok {
		ice("break statement with no registered loop target")
	}
	//
	g.b.CreateBranch(t.brk, n.Location())
}

func (g *Generator) genContinue(n *ast.ContinueStmt) {
	t, ok := g.loopBlocks[n.Target]
	if !ok {
		ice("continue statement with no registered loop target")
	}
	//
	g.b.CreateBranch(t.cont, n.Location())
}
