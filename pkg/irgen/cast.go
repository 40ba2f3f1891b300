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
	"github.com/laye-lang/layec/pkg/source"
)

// genCast maps each ast.CastKind sema can emit (spec §4.6) onto the IR
// cast instruction it corresponds to, one kind to one instruction, or to
// no instruction at all where the conversion is a representation no-op
// (spec §4.8: "the IR generator maps one cast kind to one IR instruction,
// or to a no-op where semantics are identity").
func (g *Generator) genCast(n *ast.CastExpr) ir.Value {
	loc := n.Location()
	//
	switch n.Kind {
	case ast.CastLValueToRValue:
		addr := g.genAddr(n.Value)
		return g.b.CreateLoad(addr, g.lowerType(n.Type()), loc)
	case ast.CastLValueToReference:
		// A reference IS the address of the lvalue it was formed from.
		return g.genAddr(n.Value)
	case ast.CastReferenceToLValue:
		// The reverse: the reference's own value is already that address.
		return g.genExpr(n.Value)
	}
	//
	if _, ok := n.Value.(*ast.NilLiteral); ok {
		return ir.NewNullConst(g.lowerType(n.Type()))
	}
	//
	v := g.genExpr(n.Value)
	fromTy, toTy := n.Value.Type(), n.Type()
	//
	switch n.Kind {
	case ast.CastSoft, ast.CastStructBitcast:
		fromIR, toIR := g.lowerType(fromTy), g.lowerType(toTy)
		if fromIR.Kind() == ir.TypePointer && toIR.Kind() == ir.TypePointer {
			// Pointer and reference both lower to the same opaque Ptr.
			return v
		}
		//
		return g.b.CreateBitcast(v, toIR, loc)
	case ast.CastImplicit, ast.CastHard:
		return g.genNumericConvert(v, fromTy, toTy, loc)
	}
	//
	return v
}

// genNumericConvert picks the widen/narrow/convert instruction for a
// scalar conversion between two analysed types, or returns v unchanged
// when both sides already share an IR representation.
func (g *Generator) genNumericConvert(v ir.Value, fromTy, toTy ast.Type, loc source.Location) ir.Value {
	fromIR, toIR := g.lowerType(fromTy), g.lowerType(toTy)
	//
	switch {
	case fromTy.Kind() == ast.TypeInt && toTy.Kind() == ast.TypeInt:
		switch {
		case fromIR.Bits() == toIR.Bits():
			return v
		case fromIR.Bits() < toIR.Bits():
			if fromTy.Node.Signed {
				return g.b.CreateSExt(v, toIR, loc)
			}
			//
			return g.b.CreateZExt(v, toIR, loc)
		default:
			return g.b.CreateTrunc(v, toIR, loc)
		}
	case fromTy.Kind() == ast.TypeBool && toTy.Kind() == ast.TypeInt:
		return g.b.CreateZExt(v, toIR, loc)
	case fromTy.Kind() == ast.TypeFloat && toTy.Kind() == ast.TypeFloat:
		switch {
		case fromIR.Bits() == toIR.Bits():
			return v
		case fromIR.Bits() < toIR.Bits():
			return g.b.CreateFPExt(v, toIR, loc)
		default:
			return g.b.CreateFPTrunc(v, toIR, loc)
		}
	case fromTy.Kind() == ast.TypeInt && toTy.Kind() == ast.TypeFloat:
		if fromTy.Node.Signed {
			return g.b.CreateSIToFP(v, toIR, loc)
		}
		//
		return g.b.CreateUIToFP(v, toIR, loc)
	case fromTy.Kind() == ast.TypeFloat && toTy.Kind() == ast.TypeInt:
		if toTy.Node.Signed {
			return g.b.CreateFPToSI(v, toIR, loc)
		}
		//
		return g.b.CreateFPToUI(v, toIR, loc)
	}
	//
	return v
}
