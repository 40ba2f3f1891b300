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
package ast

// TypeKind enumerates the Type kinds named in spec §3, plus the additive
// Nilable sugar described in SPEC_FULL.md's supplemented-features section.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypeNoReturn
	TypeBool
	TypeInt
	TypeFloat
	TypePointer
	TypeReference
	TypeBuffer
	TypeArray
	TypeFunction
	TypeStruct
	TypeNameRef
	TypeTemplateParameter
	TypePoison
	TypeUnknown
)

// CallConv is the calling convention carried by a Function type (spec §4.3
// `callconv` attribute).
type CallConv uint8

const (
	CallConvLaye CallConv = iota
	CallConvC
)

func (c CallConv) String() string {
	if c == CallConvC {
		return "cdecl"
	}
	//
	return "laye"
}

// VarargsStyle distinguishes the two variadic-parameter conventions a
// function declaration may opt into (spec §4.3).
type VarargsStyle uint8

const (
	VarargsNone VarargsStyle = iota
	VarargsC
	VarargsLaye
)

// TypeNode is the immutable structural description of a type, shared by
// every Type value that denotes the same structural type. Struct equality
// of TypeNode pointers is intentionally not how type identity is checked;
// use Type.StructurallyEqual.
type TypeNode struct {
	Kind TypeKind

	// Int/Float.
	BitWidth          uint32
	Signed            bool
	PlatformSpecified bool

	// Pointer/Reference/Buffer/Array element, and Nilable sugar on
	// Pointer/Reference (SPEC_FULL.md supplemented feature 1).
	Elem    *Type
	Nilable bool

	// Array dimensions; each entry is a resolved constant length. A negative
	// entry (-1) marks a slice `[]` dimension or one that could not be folded
	// to a constant.
	Dims []int64

	// Function.
	Return   *Type
	Params   []Type
	CallConv CallConv
	Variadic VarargsStyle

	// Struct.
	Name         string
	Fields       []StructField
	Variants     []*TypeNode
	Parent       *TypeNode
	CachedSize   int64
	CachedAlign  int64
	SizeComputed bool

	// NameRef: an unresolved dotted type name, e.g. `a::Point`.
	Pieces   []string
	Resolved *Type
}

// StructField is one field of a Struct TypeNode, including the synthetic
// padding-array fields inserted by sema's layout pass (spec §3, §4.6).
type StructField struct {
	Name       string
	Type       Type
	Offset     int64
	IsPadding  bool
	IsVariant  bool
}

// Type pairs a structural TypeNode with the `is_modifiable` flag named in
// spec §3: "modifiability rides on the reference, not the type identity".
// Two Types naming the same TypeNode but differing only in IsModifiable
// are structurally equal.
type Type struct {
	Node          *TypeNode
	IsModifiable  bool
}

// Well-known singleton type nodes. These are safe to share across every
// module in a compilation since they carry no per-declaration state.
var (
	Void     = Type{Node: &TypeNode{Kind: TypeVoid}}
	NoReturn = Type{Node: &TypeNode{Kind: TypeNoReturn}}
	Bool     = Type{Node: &TypeNode{Kind: TypeBool}}
	Poison   = Type{Node: &TypeNode{Kind: TypePoison}}
	Unknown  = Type{}
)

// NewInt constructs an Int type of the given width and signedness.
func NewInt(width uint32, signed, platformSpecified bool) Type {
	return Type{Node: &TypeNode{Kind: TypeInt, BitWidth: width, Signed: signed, PlatformSpecified: platformSpecified}}
}

// NewFloat constructs a Float type of the given width.
func NewFloat(width uint32, platformSpecified bool) Type {
	return Type{Node: &TypeNode{Kind: TypeFloat, BitWidth: width, PlatformSpecified: platformSpecified}}
}

// NewPointer constructs a Pointer type to elem.
func NewPointer(elem Type, nilable bool) Type {
	return Type{Node: &TypeNode{Kind: TypePointer, Elem: &elem, Nilable: nilable}}
}

// NewReference constructs a Reference type to elem.
func NewReference(elem Type, nilable bool) Type {
	return Type{Node: &TypeNode{Kind: TypeReference, Elem: &elem, Nilable: nilable}}
}

// NewBuffer constructs a Buffer (`[*]T`) type over elem.
func NewBuffer(elem Type) Type {
	return Type{Node: &TypeNode{Kind: TypeBuffer, Elem: &elem}}
}

// NewArray constructs a sized/unsized Array type over elem with the given
// dimensions (spec §3, §4.6: lengths must be compile-time integer
// constants once analysed).
func NewArray(elem Type, dims []int64) Type {
	return Type{Node: &TypeNode{Kind: TypeArray, Elem: &elem, Dims: dims}}
}

// NewNameRef constructs an unresolved dotted-name type reference.
func NewNameRef(pieces []string) Type {
	return Type{Node: &TypeNode{Kind: TypeNameRef, Pieces: pieces}}
}

// IsValid reports whether this type has been populated; the zero Type
// value means "not yet analysed" (spec §3's Unknown kind).
func (t Type) IsValid() bool {
	return t.Node != nil
}

// Kind returns the structural kind, or TypeUnknown for the zero Type.
func (t Type) Kind() TypeKind {
	if t.Node == nil {
		return TypeUnknown
	}
	//
	return t.Node.Kind
}

// Modifiable returns a copy of this Type with IsModifiable set, leaving the
// underlying TypeNode shared (spec §3: "modifiability rides on the
// reference, not the type identity").
func (t Type) Modifiable(modifiable bool) Type {
	t.IsModifiable = modifiable
	return t
}

// StructurallyEqual compares two types ignoring IsModifiable, as required
// by spec §3 ("Structural equality ignores is_modifiable unless asked").
func (t Type) StructurallyEqual(other Type) bool {
	return structurallyEqual(t.Node, other.Node)
}

func structurallyEqual(a, b *TypeNode) bool {
	if a == b {
		return true
	}
	//
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	//
	switch a.Kind {
	case TypeVoid, TypeNoReturn, TypeBool, TypePoison:
		return true
	case TypeInt:
		return a.BitWidth == b.BitWidth && a.Signed == b.Signed
	case TypeFloat:
		return a.BitWidth == b.BitWidth
	case TypePointer, TypeReference, TypeBuffer:
		return a.Nilable == b.Nilable && structurallyEqual(a.Elem.Node, b.Elem.Node)
	case TypeArray:
		if len(a.Dims) != len(b.Dims) {
			return false
		}
		//
		for i := range a.Dims {
			if a.Dims[i] != b.Dims[i] {
				return false
			}
		}
		//
		return structurallyEqual(a.Elem.Node, b.Elem.Node)
	case TypeFunction:
		if a.CallConv != b.CallConv || a.Variadic != b.Variadic || len(a.Params) != len(b.Params) {
			return false
		}
		//
		for i := range a.Params {
			if !a.Params[i].StructurallyEqual(b.Params[i]) {
				return false
			}
		}
		//
		return structurallyEqual(a.Return.Node, b.Return.Node)
	case TypeStruct:
		// Named structs are compared nominally: two distinct declarations
		// never structurally unify even with identical field lists.
		return a == b
	case TypeNameRef, TypeTemplateParameter, TypeUnknown:
		return false
	default:
		return false
	}
}

// NewFunctionType constructs a Function TypeNode (spec §3).
func NewFunctionType(ret Type, params []Type, cc CallConv, variadic VarargsStyle) Type {
	return Type{Node: &TypeNode{Kind: TypeFunction, Return: &ret, Params: params, CallConv: cc, Variadic: variadic}}
}

// NewStructType constructs an (initially un-laid-out) Struct TypeNode. Size
// and alignment are filled in by sema's layout pass (spec §4.6).
func NewStructType(name string, parent *TypeNode) Type {
	return Type{Node: &TypeNode{Kind: TypeStruct, Name: name, Parent: parent}}
}
