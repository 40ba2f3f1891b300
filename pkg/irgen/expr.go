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
	"fmt"

	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/ir"
	"github.com/laye-lang/layec/pkg/source"
)

// genExpr lowers expr to the IR value it evaluates to, loading through an
// lvalue's address where the expression kind denotes storage.
func (g *Generator) genExpr(expr ast.Expr) ir.Value {
	loc := expr.Location()
	//
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return ir.NewIntConst(g.lowerType(n.Type()), n.Value)
	case *ast.FloatLiteral:
		return ir.NewFloatConst(g.lowerType(n.Type()), n.Value)
	case *ast.RuneLiteral:
		return ir.NewIntConst(g.lowerType(n.Type()), n.Value)
	case *ast.BoolLiteral:
		v := uint64(0)
		if n.Value {
			v = 1
		}
		//
		return ir.NewIntConst(ir.NewInteger(1), v)
	case *ast.NilLiteral:
		return ir.NewNullConst(g.lowerType(n.Type()))
	case *ast.StringLiteral:
		return g.stringGlobal(n)
	case *ast.NameExpr:
		return g.genNameExpr(n)
	case *ast.UnaryExpr:
		return g.genUnary(n)
	case *ast.BinaryExpr:
		return g.genBinary(n)
	case *ast.AssignExpr:
		return g.genAssign(n)
	case *ast.CallExpr:
		return g.genCall(n)
	case *ast.IndexExpr:
		return g.b.CreateLoad(g.genIndexAddr(n), g.lowerType(n.Type()), loc)
	case *ast.MemberExpr:
		return g.b.CreateLoad(g.genMemberAddr(n), g.lowerType(n.Type()), loc)
	case *ast.CastExpr:
		return g.genCast(n)
	case *ast.SizeofExpr:
		return ir.NewIntConst(g.lowerType(n.Type()), n.Folded.IntValue)
	case *ast.AlignofExpr:
		return ir.NewIntConst(g.lowerType(n.Type()), n.Folded.IntValue)
	case *ast.ConstantExpr:
		t := g.lowerType(n.Type())
		if t.Kind() == ir.TypeFloat {
			return ir.NewFloatConst(t, n.FloatValue)
		}
		//
		return ir.NewIntConst(t, n.IntValue)
	case *ast.IfExpr:
		return g.genIfExpr(n)
	case *ast.Block:
		return g.genBlockYield(n)
	}
	//
	ice("unhandled expression kind %T", expr)
	return nil
}

func (g *Generator) genNameExpr(n *ast.NameExpr) ir.Value {
	if fd, ok := n.Resolved.(*ast.FunctionDecl); ok {
		return g.resolveFunctionValue(fd)
	}
	//
	addr := g.genAddr(n)
	return g.b.CreateLoad(addr, g.lowerType(n.Type()), n.Location())
}

// genAddr lowers expr to the address of the storage location it denotes;
// only lvalue-producing expression kinds reach here (spec §4.8's address-of
// and assignment-target lowering).
func (g *Generator) genAddr(expr ast.Expr) ir.Value {
	switch n := expr.(type) {
	case *ast.NameExpr:
		switch d := n.Resolved.(type) {
		case *ast.ParamDecl:
			if slot, ok := g.slots[d]; ok {
				return slot
			}
		case *ast.BindingDecl:
			if slot, ok := g.slots[d]; ok {
				return slot
			}
			if glob, ok := g.globalOf[d]; ok {
				return glob
			}
		}
		//
		ice("name %q does not resolve to a storage location", n.Pieces)
	case *ast.UnaryExpr:
		if n.Op == ast.UnaryDeref {
			// *p's address is simply p's value.
			return g.genExpr(n.Operand)
		}
	case *ast.IndexExpr:
		return g.genIndexAddr(n)
	case *ast.MemberExpr:
		return g.genMemberAddr(n)
	case *ast.CastExpr:
		// A reference value IS an address at the IR level; unwrapping one
		// back into an lvalue (spec §4.6's CastReferenceToLValue) is address
		// passthrough, not a load.
		if n.Kind == ast.CastReferenceToLValue {
			return g.genExpr(n.Value)
		}
	}
	//
	ice("expression of kind %T does not denote a storage location", expr)
	return nil
}

func (g *Generator) genUnary(n *ast.UnaryExpr) ir.Value {
	loc := n.Location()
	//
	switch n.Op {
	case ast.UnaryPlus:
		return g.genExpr(n.Operand)
	case ast.UnaryMinus:
		return g.b.CreateNeg(g.genExpr(n.Operand), loc)
	case ast.UnaryComplement:
		return g.b.CreateCompl(g.genExpr(n.Operand), loc)
	case ast.UnaryAddressOf:
		return g.genAddr(n.Operand)
	case ast.UnaryDeref:
		addr := g.genExpr(n.Operand)
		return g.b.CreateLoad(addr, g.lowerType(n.Type()), loc)
	case ast.UnaryLogicalNot:
		v := g.genExpr(n.Operand)
		return g.b.CreateICmp(ir.PredEq, v, ir.NewIntConst(ir.NewInteger(1), 0), loc)
	}
	//
	ice("unhandled unary operator %v", n.Op)
	return nil
}

func (g *Generator) genAssign(n *ast.AssignExpr) ir.Value {
	addr := g.genAddr(n.Target)
	v := g.genExpr(n.Value)
	g.b.CreateStore(addr, v, n.Location())
	//
	return v
}

func (g *Generator) genCall(n *ast.CallExpr) ir.Value {
	loc := n.Location()
	//
	var callee ir.Value
	cc := ast.CallConvLaye
	//
	if ne, ok := n.Callee.(*ast.NameExpr); ok {
		if fd, ok := ne.Resolved.(*ast.FunctionDecl); ok {
			callee = g.resolveFunctionValue(fd)
			cc = fd.Type().Node.CallConv
		}
	}
	//
	if callee == nil {
		callee = g.genExpr(n.Callee)
		if ft := n.Callee.Type(); ft.Node != nil && ft.Node.Kind == ast.TypeFunction {
			cc = ft.Node.CallConv
		}
	}
	//
	args := make([]ir.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.genExpr(a)
	}
	//
	return g.b.CreateCall(callee, args, cc, g.lowerType(n.Type()), loc)
}

// genIndexAddr computes the address of base[indices...] (spec §4.8: each
// index is multiplied by its trailing-dimensions stride then by
// sizeof(elem), and the scaled terms are summed into a single PtrAdd;
// buffer indexing is a single stride-scaled PtrAdd).
func (g *Generator) genIndexAddr(n *ast.IndexExpr) ir.Value {
	loc := n.Location()
	baseTy := n.Base.Type()
	//
	switch baseTy.Kind() {
	case ast.TypeArray:
		base := g.genAddr(n.Base)
		elemTy := *baseTy.Node.Elem
		elemSize := byteSize(elemTy)
		dims := baseTy.Node.Dims
		//
		var offset ir.Value
		for i, idxExpr := range n.Indices {
			stride := elemSize
			for _, d := range dims[i+1:] {
				if d > 0 {
					stride *= d
				}
			}
			//
			idx := g.extendIndex(g.genExpr(idxExpr), loc)
			term := g.b.CreateMul(idx, ir.NewIntConst(ir.NewInteger(64), uint64(stride)), loc)
			//
			if offset == nil {
				offset = term
			} else {
				offset = g.b.CreateAdd(offset, term, loc)
			}
		}
		//
		return g.b.CreatePtrAdd(base, offset, loc)
	case ast.TypeBuffer, ast.TypePointer:
		base := g.genExpr(n.Base)
		elemSize := byteSize(*baseTy.Node.Elem)
		idx := g.extendIndex(g.genExpr(n.Indices[0]), loc)
		term := g.b.CreateMul(idx, ir.NewIntConst(ir.NewInteger(64), uint64(elemSize)), loc)
		//
		return g.b.CreatePtrAdd(base, term, loc)
	}
	//
	ice("indexing unsupported base type kind %v", baseTy.Kind())
	return nil
}

// extendIndex widens a narrower-than-pointer-width integer index to i64 so
// every stride multiplication happens at a uniform width. Laye's array
// indices are always signed (spec §4.3's `int`), so the extension is a
// sign extension.
func (g *Generator) extendIndex(v ir.Value, loc source.Location) ir.Value {
	if v.Type().Kind() == ir.TypeInteger && v.Type().Bits() < 64 {
		return g.b.CreateSExt(v, ir.NewInteger(64), loc)
	}
	//
	return v
}

func (g *Generator) genMemberAddr(n *ast.MemberExpr) ir.Value {
	loc := n.Location()
	//
	var base ir.Value
	switch n.Base.Type().Kind() {
	case ast.TypePointer, ast.TypeReference:
		base = g.genExpr(n.Base)
	default:
		base = g.genAddr(n.Base)
	}
	//
	off := ir.NewIntConst(ir.NewInteger(64), uint64(n.FieldOffset))
	return g.b.CreatePtrAdd(base, off, loc)
}

func (g *Generator) stringGlobal(lit *ast.StringLiteral) *ir.Global {
	if glob, ok := g.stringCache[lit]; ok {
		return glob
	}
	//
	name := fmt.Sprintf(".str.%d", len(g.stringCache))
	arrTy := ir.NewArray(int64(len(lit.Value)+1), ir.NewInteger(8))
	glob := g.b.DeclareGlobal(name, arrTy, ir.Internal, nil)
	g.stringCache[lit] = glob
	//
	return glob
}
