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

// UnaryOp enumerates the primary-level unary operators of spec §4.3:
// `+ - ~ & * not`.
type UnaryOp uint8

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryComplement
	UnaryAddressOf
	UnaryDeref
	UnaryLogicalNot
)

// BinaryOp enumerates the precedence-climbing operators of spec §4.3's
// Pratt table, grouped loosest-to-tightest: logical or/xor, and, equality,
// ordered-compare, bitwise/shift, additive, multiplicative.
type BinaryOp uint8

const (
	BinLogicalOr BinaryOp = iota
	BinLogicalXor
	BinLogicalAnd
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
)

// NameExpr is a (possibly multi-segment) identifier reference, e.g. `x` or
// `a::b::c` (spec §4.3). Resolved is filled in by sema once the name has
// been looked up via Resolve.
type NameExpr struct {
	Header

	Pieces   []string
	Resolved Decl
}

func (n *NameExpr) exprNode() {}

// IntLiteral is an integer literal token lowered into the AST.
type IntLiteral struct {
	Header
	Value uint64
}

func (n *IntLiteral) exprNode() {}

// FloatLiteral is a floating-point literal token lowered into the AST.
type FloatLiteral struct {
	Header
	Value float64
}

func (n *FloatLiteral) exprNode() {}

// StringLiteral is a string literal, possibly the merge of several
// adjacent string-literal tokens (SPEC_FULL.md supplemented feature 3).
type StringLiteral struct {
	Header
	Value string
}

func (n *StringLiteral) exprNode() {}

// RuneLiteral is a rune literal token lowered into the AST.
type RuneLiteral struct {
	Header
	Value uint64
}

func (n *RuneLiteral) exprNode() {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Header
	Value bool
}

func (n *BoolLiteral) exprNode() {}

// NilLiteral is the `nil` primary expression, convertible to any nilable
// pointer or buffer type (SPEC_FULL.md supplemented feature 1).
type NilLiteral struct {
	Header
}

func (n *NilLiteral) exprNode() {}

// UnaryExpr applies one of spec §4.3's primary-level unary operators.
type UnaryExpr struct {
	Header

	Op      UnaryOp
	Operand Expr
}

func (n *UnaryExpr) exprNode() {}

// BinaryExpr applies one of spec §4.3's precedence-table operators.
type BinaryExpr struct {
	Header

	Op          BinaryOp
	Left, Right Expr
}

func (n *BinaryExpr) exprNode() {}

// AssignExpr is `target = value` or, for reference-reassignment,
// `target <- value` (spec §4.3).
type AssignExpr struct {
	Header

	Target      Expr
	Value       Expr
	IsRefRebind bool
}

func (n *AssignExpr) exprNode() {}

// CallExpr is a function call (spec §4.3 primaries).
type CallExpr struct {
	Header

	Callee Expr
	Args   []Expr
}

func (n *CallExpr) exprNode() {}

// IndexExpr is array/buffer indexing, possibly with multiple indices for a
// multi-dimensional array (spec §4.8's stride computation).
type IndexExpr struct {
	Header

	Base    Expr
	Indices []Expr
}

func (n *IndexExpr) exprNode() {}

// MemberExpr is `base.field` member access (spec §4.6): FieldOffset is
// populated once sema has resolved Base's struct layout.
type MemberExpr struct {
	Header

	Base        Expr
	FieldName   string
	FieldOffset int64
}

func (n *MemberExpr) exprNode() {}

// CastKind names the specific conversion sema's convert algorithm chose
// (spec §4.6), carrying enough information for the back end to emit the
// right IR instruction (or nothing, for IMPLICIT identity casts).
type CastKind uint8

const (
	CastSoft CastKind = iota
	CastHard
	CastStructBitcast
	CastImplicit
	CastLValueToRValue
	CastLValueToReference
	CastReferenceToLValue
)

// CastExpr is either an explicit `cast(T) expr` or a cast inserted by sema
// at an implicit conversion site (spec §4.6). TargetSyntax is nil for a
// compiler-inserted cast, where only the resolved Header.Type matters.
type CastExpr struct {
	Header

	TargetSyntax *TypeSyntax
	Kind         CastKind
	Value        Expr
}

func (n *CastExpr) exprNode() {}

// SizeofExpr is `sizeof(T)` (SPEC_FULL.md supplemented feature 2),
// constant-folded once T's layout is known.
type SizeofExpr struct {
	Header

	TypeSyntax *TypeSyntax
	Folded     *ConstantExpr
}

func (n *SizeofExpr) exprNode() {}

// AlignofExpr is `alignof(T)`, mirroring SizeofExpr.
type AlignofExpr struct {
	Header

	TypeSyntax *TypeSyntax
	Folded     *ConstantExpr
}

func (n *AlignofExpr) exprNode() {}

// IfExpr is an if-expression (spec §3: "If carries parallel arrays of
// condition/pass bodies plus an optional else"). A statement-position
// `if` is this same node wrapped in an ExprStmt whose value is discarded.
type IfExpr struct {
	Header

	Conds  []Expr
	Passes []*Block
	Else   *Block
}

func (n *IfExpr) exprNode() {}

// ConstantExpr wraps an expression that sema has proven to be a
// compile-time constant, caching its folded value (spec §4.6: "a Constant
// wrapper node is inserted on success"). It is used for array lengths,
// sizeof/alignof results, and any other expression sema folds.
type ConstantExpr struct {
	Header

	Source   Expr
	IntValue uint64
	FloatValue float64
}

func (n *ConstantExpr) exprNode() {}
