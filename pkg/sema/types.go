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

import (
	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/source"
)

// platformIntBits/platformFloatBits/platformPtrBits give the
// target-independent widths this checker resolves `int`/`uint`/`float`
// (no explicit bit count) to. A real multi-target build would source
// these from CompilationConfig (SPEC_FULL.md's ambient target
// configuration section); one fixed width keeps analysis deterministic.
const (
	platformIntBits   = 32
	platformFloatBits = 64
	platformPtrBits   = 64
)

// resolveType walks a TypeSyntax into a resolved ast.Type (spec §4.6
// "NameRef types are looked up in the scope chain then the import
// namespace"). Array dimensions are folded to integer constants as a side
// effect; a non-constant dimension is diagnosed and the array treated as
// poison.
func (c *checker) resolveType(ts *ast.TypeSyntax) ast.Type {
	if ts == nil {
		return ast.Void
	}
	//
	t := c.resolveBase(ts.Base, ts.Location())
	//
	for _, postfix := range ts.Postfixes {
		t = c.applyPostfix(t, postfix, ts.Location())
	}
	//
	return t.Modifiable(ts.MutPrefix)
}

func (c *checker) resolveBase(base ast.TypeSyntaxBase, loc source.Location) ast.Type {
	switch base.Kind {
	case ast.BaseVoid:
		return ast.Void
	case ast.BaseNoReturn:
		return ast.NoReturn
	case ast.BaseBool:
		return ast.Bool
	case ast.BaseSizedBool:
		return ast.NewInt(base.BitWidth, false, false)
	case ast.BaseInt:
		return ast.NewInt(platformIntBits, true, true)
	case ast.BaseSizedInt:
		return ast.NewInt(base.BitWidth, true, false)
	case ast.BaseUint:
		return ast.NewInt(platformIntBits, false, true)
	case ast.BaseSizedUint:
		return ast.NewInt(base.BitWidth, false, false)
	case ast.BaseFloat:
		return ast.NewFloat(platformFloatBits, true)
	case ast.BaseSizedFloat:
		return ast.NewFloat(base.BitWidth, false)
	case ast.BaseNameRef:
		return c.resolveNameRef(base.Pieces, loc)
	default:
		return ast.Poison
	}
}

// resolveNameRef resolves a dotted type name against the current scope
// chain, then the module's import namespace (spec §3/§4.4), and returns
// the referenced declaration's analysed type. Only the first piece is
// looked up through scope/imports; remaining pieces walk nested struct
// variants.
func (c *checker) resolveNameRef(pieces []string, loc source.Location) ast.Type {
	if len(pieces) == 0 {
		return ast.Poison
	}
	//
	decl, ok := ast.Resolve(c.currentScope(), c.mod.Imports, pieces[0])
	if !ok {
		c.errorf(loc, "unknown type name %q", pieces[0])
		return ast.Poison
	}
	//
	structDecl, ok := decl.(*ast.StructDecl)
	if !ok {
		c.errorf(loc, "%q does not name a type", pieces[0])
		return ast.Poison
	}
	//
	c.checkStruct(structDecl)
	//
	for _, piece := range pieces[1:] {
		variant := findVariant(structDecl, piece)
		if variant == nil {
			c.errorf(loc, "struct %q has no variant %q", structDecl.Name, piece)
			return ast.Poison
		}
		//
		structDecl = variant
	}
	//
	return structDecl.Type()
}

func findVariant(parent *ast.StructDecl, name string) *ast.StructDecl {
	for _, v := range parent.Variants {
		if v.Name == name {
			return v
		}
	}
	//
	return nil
}

// currentScope is the scope function/global analysis should resolve names
// against: the function's own BodyScope while analysing a body, else the
// module's root scope.
func (c *checker) currentScope() *ast.Scope {
	if c.fn != nil && c.fn.BodyScope != nil {
		return c.fn.BodyScope
	}
	//
	return c.mod.Scope
}

func (c *checker) applyPostfix(elem ast.Type, postfix ast.TypePostfix, loc source.Location) ast.Type {
	switch postfix.Kind {
	case ast.PostfixPointer:
		return ast.NewPointer(elem, postfix.Nilable)
	case ast.PostfixReference:
		return ast.NewReference(elem, postfix.Nilable)
	case ast.PostfixBuffer:
		return ast.NewBuffer(elem)
	case ast.PostfixSlice:
		return ast.NewArray(elem, []int64{-1})
	case ast.PostfixArray:
		dims := make([]int64, len(postfix.Dims))
		//
		for i, dimExpr := range postfix.Dims {
			n, ok := c.foldConstantInt(dimExpr)
			if !ok {
				c.errorf(loc, "array length must be a compile-time integer constant")
				dims[i] = -1
				continue
			}
			//
			dims[i] = n
		}
		//
		return ast.NewArray(elem, dims)
	default:
		return ast.Poison
	}
}

// layoutStruct computes field offsets for decl, accumulating aligned field
// sizes and inserting `array of i8` padding fields so the back end can
// treat the struct uniformly (spec §4.6). Size and alignment are cached on
// the resulting TypeNode.
func (c *checker) layoutStruct(decl *ast.StructDecl, t ast.Type) {
	var fields []ast.StructField
	var offset, maxAlign int64
	//
	for _, fd := range decl.Fields {
		fieldType := c.resolveType(fd.TypeSyntax)
		fd.SetType(fieldType)
		//
		size, align := typeSizeAlign(fieldType)
		if align > maxAlign {
			maxAlign = align
		}
		//
		if align > 0 {
			if rem := offset % align; rem != 0 {
				pad := align - rem
				fields = append(fields, ast.StructField{
					Name:      "",
					Type:      ast.NewArray(ast.NewInt(8, false, false), []int64{pad}),
					Offset:    offset,
					IsPadding: true,
				})
				//
				offset += pad
			}
		}
		//
		fields = append(fields, ast.StructField{Name: fd.Name, Type: fieldType, Offset: offset})
		offset += size
	}
	//
	for _, variant := range decl.Variants {
		c.checkStruct(variant)
	}
	//
	if maxAlign > 0 {
		if rem := offset % maxAlign; rem != 0 {
			offset += maxAlign - rem
		}
	}
	//
	t.Node.Fields = fields
	t.Node.CachedSize = offset
	t.Node.CachedAlign = maxAlign
	t.Node.SizeComputed = true
}

// typeSizeAlign returns a type's size and alignment in bytes. Struct types
// must already have been laid out (sizeComputed set) by the time this is
// called, which layoutStruct's pre-order variant recursion guarantees.
func typeSizeAlign(t ast.Type) (int64, int64) {
	if t.Node == nil {
		return 0, 0
	}
	//
	switch t.Node.Kind {
	case ast.TypeVoid, ast.TypeNoReturn:
		return 0, 1
	case ast.TypeBool:
		return 1, 1
	case ast.TypeInt, ast.TypeFloat:
		bytes := int64(t.Node.BitWidth+7) / 8
		return bytes, bytes
	case ast.TypePointer, ast.TypeReference, ast.TypeBuffer, ast.TypeFunction:
		return platformPtrBits / 8, platformPtrBits / 8
	case ast.TypeArray:
		elemSize, elemAlign := typeSizeAlign(*t.Node.Elem)
		total := elemSize
		//
		for _, d := range t.Node.Dims {
			if d < 0 {
				d = 0
			}
			//
			total *= d
		}
		//
		return total, elemAlign
	case ast.TypeStruct:
		return t.Node.CachedSize, t.Node.CachedAlign
	default:
		return 0, 1
	}
}
