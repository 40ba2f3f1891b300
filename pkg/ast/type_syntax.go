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

// TypeSyntax is the pre-resolution spelling of a type as the parser saw it
// (spec §4.3's type grammar): an optional leading `mut`, a base spelling,
// then a left-to-right chain of postfix modifiers each optionally followed
// by its own `mut`. Sema's type analysis walks this into a resolved Type.
type TypeSyntax struct {
	Header

	MutPrefix bool
	Base      TypeSyntaxBase
	Postfixes []TypePostfix
}

func (n *TypeSyntax) exprNode() {} // type syntax can appear in expression position (cast(T), sizeof(T))

// TypeSyntaxBaseKind tags which prefix production of spec §4.3 a base
// spelling came from.
type TypeSyntaxBaseKind uint8

const (
	BaseVoid TypeSyntaxBaseKind = iota
	BaseNoReturn
	BaseBool
	BaseSizedBool
	BaseInt
	BaseSizedInt
	BaseUint
	BaseSizedUint
	BaseFloat
	BaseSizedFloat
	BaseNameRef
)

// TypeSyntaxBase is the prefix production: `void`, `noreturn`, `bool`,
// `bool <N>`, `int`, `i<N>`, `uint`, `u<N>`, `float`, `f<N>`, or a dotted
// `<nameref>`.
type TypeSyntaxBase struct {
	Kind      TypeSyntaxBaseKind
	BitWidth  uint32   // for the Sized* kinds
	Pieces    []string // for BaseNameRef
}

// PostfixKind tags a single postfix modifier: `*` pointer, `&` reference,
// `[*]` buffer, `[]` slice (an unsized array), or `[expr, ...]` sized array.
type PostfixKind uint8

const (
	PostfixPointer PostfixKind = iota
	PostfixReference
	PostfixBuffer
	PostfixSlice
	PostfixArray
)

// TypePostfix is one postfix modifier in a TypeSyntax's chain, optionally
// trailed by its own `mut`.
type TypePostfix struct {
	Kind    PostfixKind
	Mut     bool
	Nilable bool  // `?` nilable sugar on Pointer/Reference (SPEC_FULL.md feature 1)
	Dims    []Expr // length expressions, only for PostfixArray
}
