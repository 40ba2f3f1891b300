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

// genIfExpr lowers an N-arm if into the shape spec §4.8 describes: N body
// blocks, N-1 inter-condition blocks for the else-if chain, an optional
// fail (else) block, and a join block carrying a phi when the if is used
// in value (non-void) position.
func (g *Generator) genIfExpr(n *ast.IfExpr) ir.Value {
	fn := g.fn
	wantValue := n.Type().Kind() != ast.TypeVoid
	//
	nArms := len(n.Conds)
	bodyBlks := make([]*ir.BasicBlock, nArms)
	for i := range bodyBlks {
		bodyBlks[i] = g.b.CreateBlock(fn, "if.then")
	}
	//
	var elseBlk *ir.BasicBlock
	if n.Else != nil {
		elseBlk = g.b.CreateBlock(fn, "if.else")
	}
	//
	joinBlk := g.b.CreateBlock(fn, "if.join")
	//
	for i := 0; i < nArms; i++ {
		cond := g.genExpr(n.Conds[i])
		//
		var failTarget *ir.BasicBlock
		switch {
		case i+1 < nArms:
			failTarget = g.b.CreateBlock(fn, "if.cond")
		case elseBlk != nil:
			failTarget = elseBlk
		default:
			failTarget = joinBlk
		}
		//
		g.b.CreateCondBranch(cond, bodyBlks[i], failTarget, n.Conds[i].Location())
		//
		if i+1 < nArms {
			g.b.SetInsertPoint(fn, failTarget)
		}
	}
	//
	var incomingVals []ir.Value
	var incomingBlks []*ir.BasicBlock
	// Without an else, the last condition's fail edge already reaches joinBlk.
	joinReached := elseBlk == nil
	//
	for i, blk := range bodyBlks {
		g.b.SetInsertPoint(fn, blk)
		//
		var v ir.Value
		if wantValue {
			v = g.genBlockYield(n.Passes[i])
		} else {
			g.genBlockStmts(n.Passes[i])
		}
		//
		if !g.b.BlockTerminated() {
			joinReached = true
			cur := g.b.Block()
			g.b.CreateBranch(joinBlk, n.Passes[i].Location())
			//
			if wantValue {
				incomingVals = append(incomingVals, v)
				incomingBlks = append(incomingBlks, cur)
			}
		}
	}
	//
	if elseBlk != nil {
		g.b.SetInsertPoint(fn, elseBlk)
		//
		var v ir.Value
		if wantValue {
			v = g.genBlockYield(n.Else)
		} else {
			g.genBlockStmts(n.Else)
		}
		//
		if !g.b.BlockTerminated() {
			joinReached = true
			cur := g.b.Block()
			g.b.CreateBranch(joinBlk, n.Else.Location())
			//
			if wantValue {
				incomingVals = append(incomingVals, v)
				incomingBlks = append(incomingBlks, cur)
			}
		}
	}
	//
	g.b.SetInsertPoint(fn, joinBlk)
	//
	if !joinReached {
		// Every arm terminated on its own (return/break/continue/unreachable):
		// the join block has no predecessor and is itself dead.
		g.b.CreateUnreachable(n.Location())
		return nil
	}
	//
	if !wantValue {
		return nil
	}
	//
	if len(incomingVals) == 1 {
		return incomingVals[0]
	}
	//
	phi := g.b.CreatePhi(g.lowerType(n.Type()), n.Location())
	for i, v := range incomingVals {
		phi.AddIncoming(v, incomingBlks[i])
	}
	//
	return phi
}
