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

// lowerType maps an analysed ast.Type onto pkg/ir's smaller type lattice
// (spec §4.7: "by the time sema has run, References/NameRefs/Template
// parameters have all resolved down to these"). Named structs are cached
// by *ast.TypeNode identity so a struct referenced from many call sites
// still gets exactly one IR declaration.
func (g *Generator) lowerType(t ast.Type) ir.Type {
	if t.Node == nil {
		return ir.Void
	}
	//
	switch t.Node.Kind {
	case ast.TypeVoid, ast.TypeNoReturn:
		return ir.Void
	case ast.TypeBool:
		return ir.NewInteger(1)
	case ast.TypeInt:
		return ir.NewInteger(t.Node.BitWidth)
	case ast.TypeFloat:
		return ir.NewFloat(t.Node.BitWidth)
	case ast.TypePointer, ast.TypeReference, ast.TypeBuffer:
		// LYIR has no pointee-typed pointer: every load/store/ptradd already
		// carries its own operand type (spec §4.7's Ptr singleton comment).
		return ir.Ptr
	case ast.TypeArray:
		return g.lowerArray(t)
	case ast.TypeStruct:
		return g.lowerStruct(t)
	case ast.TypeFunction:
		params := make([]ir.Type, len(t.Node.Params))
		for i, p := range t.Node.Params {
			params[i] = g.lowerType(p)
		}
		//
		return ir.NewFunction(g.lowerType(*t.Node.Return), params, t.Node.CallConv, t.Node.Variadic)
	case ast.TypeNameRef:
		if t.Node.Resolved != nil {
			return g.lowerType(*t.Node.Resolved)
		}
		//
		ice("unresolved name-ref type reached code generation")
	}
	//
	ice("cannot lower type kind %v to IR", t.Node.Kind)
	return ir.Void
}

func (g *Generator) lowerArray(t ast.Type) ir.Type {
	result := g.lowerType(*t.Node.Elem)
	//
	for i := len(t.Node.Dims) - 1; i >= 0; i-- {
		d := t.Node.Dims[i]
		if d < 0 {
			// An unresolved `[*]`-style dimension (spec §4.6's inferred-length
			// slice sugar) has no fixed IR representation; it never reaches a
			// concrete load/store/alloca without first being unified against a
			// sized array by sema, so zero is a safe placeholder length here.
			d = 0
		}
		//
		result = ir.NewArray(d, result)
	}
	//
	return result
}

func (g *Generator) lowerStruct(t ast.Type) ir.Type {
	if cached, ok := g.structCache[t.Node]; ok {
		return cached
	}
	//
	fields := make([]ir.Type, len(t.Node.Fields))
	for i, f := range t.Node.Fields {
		fields[i] = g.lowerType(f.Type)
	}
	//
	irT := ir.NewStruct(t.Node.Name, fields)
	g.structCache[t.Node] = irT
	g.b.DeclareStruct(irT)
	//
	return irT
}

// byteSize duplicates sema's typeSizeAlign size computation (unexported
// outside pkg/sema): index-stride lowering (spec §4.8) needs a type's byte
// size, not its alignment, and a struct's size is already cached on its
// TypeNode by sema's layout pass by the time irgen runs.
func byteSize(t ast.Type) int64 {
	if t.Node == nil {
		return 0
	}
	//
	switch t.Node.Kind {
	case ast.TypeVoid, ast.TypeNoReturn:
		return 0
	case ast.TypeBool:
		return 1
	case ast.TypeInt, ast.TypeFloat:
		return int64(t.Node.BitWidth+7) / 8
	case ast.TypePointer, ast.TypeReference, ast.TypeBuffer, ast.TypeFunction:
		return 8
	case ast.TypeArray:
		total := byteSize(*t.Node.Elem)
		//
		for _, d := range t.Node.Dims {
			if d < 0 {
				d = 0
			}
			//
			total *= d
		}
		//
		return total
	case ast.TypeStruct:
		return t.Node.CachedSize
	default:
		return 0
	}
}
