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

// Package ir implements the LYIR intermediate representation named in spec
// §4.7: a CFG-shaped SSA-style IR with typed values, basic blocks,
// functions and modules, plus a builder that holds an insertion cursor the
// way pkg/ir's ModuleBuilder/SchemaBuilder hold a name-to-index map while a
// schema is under construction.
package ir

import (
	"strconv"
	"strings"

	"github.com/laye-lang/layec/pkg/ast"
)

// TypeKind enumerates the IR type kinds named in spec §4.7. This is a
// deliberately smaller lattice than ast.TypeKind: by the time sema has run,
// References/NameRefs/TemplateParameters have all resolved down to these.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypeInteger
	TypeFloat
	TypePointer
	TypeArray
	TypeStruct
	TypeFunction
)

// Type is the immutable structural description of an IR value's type.
// Struct types are uniqued by identity (two NewStruct calls never compare
// equal even with identical field lists), matching spec §4.7's "named
// structs are declared separately and referenced by name".
type Type struct {
	node *typeNode
}

type typeNode struct {
	kind TypeKind

	bits uint32 // Integer/Float

	elem   *Type // Pointer/Array
	length int64 // Array

	name   string // Struct
	fields []Type // Struct

	ret      *Type // Function
	params   []Type
	cc       ast.CallConv
	variadic ast.VarargsStyle
}

var (
	// Void is the singleton Void IR type.
	Void = Type{node: &typeNode{kind: TypeVoid}}
	// Ptr is the singleton opaque pointer type: LYIR, like the back ends it
	// feeds, does not distinguish pointee types at the instruction level
	// (every PtrAdd/Load/Store carries its own operand type instead).
	Ptr = Type{node: &typeNode{kind: TypePointer}}
)

// NewInteger constructs an Integer(bits) IR type.
func NewInteger(bits uint32) Type {
	return Type{node: &typeNode{kind: TypeInteger, bits: bits}}
}

// NewFloat constructs a Float(bits) IR type.
func NewFloat(bits uint32) Type {
	return Type{node: &typeNode{kind: TypeFloat, bits: bits}}
}

// NewArray constructs an Array(len, elem) IR type.
func NewArray(length int64, elem Type) Type {
	return Type{node: &typeNode{kind: TypeArray, length: length, elem: &elem}}
}

// NewStruct declares a new named struct type. Each call produces a distinct
// identity even when name and fields match an earlier declaration, per
// spec §4.7.
func NewStruct(name string, fields []Type) Type {
	return Type{node: &typeNode{kind: TypeStruct, name: name, fields: fields}}
}

// NewFunction constructs a Function(return, params, cc, variadic) IR type.
func NewFunction(ret Type, params []Type, cc ast.CallConv, variadic ast.VarargsStyle) Type {
	return Type{node: &typeNode{kind: TypeFunction, ret: &ret, params: params, cc: cc, variadic: variadic}}
}

func (t Type) Kind() TypeKind { return t.node.kind }
func (t Type) Bits() uint32   { return t.node.bits }
func (t Type) Elem() Type     { return *t.node.elem }
func (t Type) Length() int64  { return t.node.length }
func (t Type) Name() string   { return t.node.name }
func (t Type) Fields() []Type { return t.node.fields }
func (t Type) Return() Type   { return *t.node.ret }
func (t Type) Params() []Type { return t.node.params }

// IsPointerLike reports whether values of this type are addresses. Only
// pointer types count; array and struct types do not.
func (t Type) IsPointerLike() bool {
	return t.Kind() == TypePointer
}

// String renders t in the LYIR textual format (spec §6).
func (t Type) String() string {
	switch t.Kind() {
	case TypeVoid:
		return "void"
	case TypeInteger:
		return "i" + strconv.FormatUint(uint64(t.Bits()), 10)
	case TypeFloat:
		return "f" + strconv.FormatUint(uint64(t.Bits()), 10)
	case TypePointer:
		return "ptr"
	case TypeArray:
		return "[" + strconv.FormatInt(t.Length(), 10) + " x " + t.Elem().String() + "]"
	case TypeStruct:
		return "%" + t.Name()
	case TypeFunction:
		var b strings.Builder
		b.WriteString(t.Return().String())
		b.WriteByte('(')
		for i, p := range t.Params() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteByte(')')
		return b.String()
	default:
		return "<?>"
	}
}

// structDecl renders a named struct's full `%name = type { ... }` line.
func (t Type) structDecl() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range t.Fields() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.String())
	}
	b.WriteByte('}')
	return "%" + t.Name() + " = type " + b.String()
}
