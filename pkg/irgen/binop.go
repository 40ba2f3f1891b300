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

// genBinary lowers a BinaryExpr. sema's convertToCommonType (spec §4.6)
// already unified both operands' types before this point, so the
// operator's float/signedness behaviour can be read straight off the
// left operand's analysed type.
//
// The three logical operators (`and`/`or`/`xor`) are eager i1 bitwise ops
// rather than short-circuiting branches: Laye's grammar gives them no
// special lazy-evaluation treatment (xor couldn't short-circuit at all),
// so treating all three uniformly as And/Or/Xor on i1 operands keeps
// their lowering consistent with the bitwise family below.
func (g *Generator) genBinary(n *ast.BinaryExpr) ir.Value {
	l := g.genExpr(n.Left)
	r := g.genExpr(n.Right)
	loc := n.Location()
	//
	ty := n.Left.Type()
	isFloat := ty.Kind() == ast.TypeFloat
	isSigned := ty.Kind() == ast.TypeInt && ty.Node.Signed
	//
	switch n.Op {
	case ast.BinAdd:
		if isFloat {
			return g.b.CreateFAdd(l, r, loc)
		}
		//
		return g.b.CreateAdd(l, r, loc)
	case ast.BinSub:
		if isFloat {
			return g.b.CreateFSub(l, r, loc)
		}
		//
		return g.b.CreateSub(l, r, loc)
	case ast.BinMul:
		if isFloat {
			return g.b.CreateFMul(l, r, loc)
		}
		//
		return g.b.CreateMul(l, r, loc)
	case ast.BinDiv:
		switch {
		case isFloat:
			return g.b.CreateFDiv(l, r, loc)
		case isSigned:
			return g.b.CreateSDiv(l, r, loc)
		default:
			return g.b.CreateUDiv(l, r, loc)
		}
	case ast.BinMod:
		switch {
		case isFloat:
			return g.b.CreateFMod(l, r, loc)
		case isSigned:
			return g.b.CreateSMod(l, r, loc)
		default:
			return g.b.CreateUMod(l, r, loc)
		}
	case ast.BinBitAnd, ast.BinLogicalAnd:
		return g.b.CreateAnd(l, r, loc)
	case ast.BinBitOr, ast.BinLogicalOr:
		return g.b.CreateOr(l, r, loc)
	case ast.BinBitXor, ast.BinLogicalXor:
		return g.b.CreateXor(l, r, loc)
	case ast.BinShl:
		return g.b.CreateShl(l, r, loc)
	case ast.BinShr:
		if isSigned {
			return g.b.CreateSar(l, r, loc)
		}
		//
		return g.b.CreateShr(l, r, loc)
	case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		pred := comparePredicate(n.Op, isSigned)
		if isFloat {
			return g.b.CreateFCmp(pred, true, l, r, loc)
		}
		//
		return g.b.CreateICmp(pred, l, r, loc)
	}
	//
	ice("unhandled binary operator %v", n.Op)
	return nil
}

func comparePredicate(op ast.BinaryOp, signed bool) ir.Predicate {
	switch op {
	case ast.BinEq:
		return ir.PredEq
	case ast.BinNe:
		return ir.PredNe
	case ast.BinLt:
		if signed {
			return ir.PredSlt
		}
		//
		return ir.PredUlt
	case ast.BinLe:
		if signed {
			return ir.PredSle
		}
		//
		return ir.PredUle
	case ast.BinGt:
		if signed {
			return ir.PredSgt
		}
		//
		return ir.PredUgt
	case ast.BinGe:
		if signed {
			return ir.PredSge
		}
		//
		return ir.PredUge
	}
	//
	ice("unhandled comparison operator %v", op)
	return 0
}
