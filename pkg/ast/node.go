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

import "github.com/laye-lang/layec/pkg/source"

// Owner identifies the module that owns an arena of nodes. pkg/ast never
// imports pkg/module (which in turn depends on pkg/ast to describe a
// module's declarations), so a module is addressed here by an opaque index
// rather than a pointer back to a concrete Module type.
type Owner uint32

// Node is implemented by every concrete AST node.  The common header
// fields named in spec §3 (kind, location, owning module, semantic state,
// result type, lvalue flag, compiler-generated flag) live on Header, which
// every concrete node embeds; Node exposes them uniformly for passes that
// only need the header.
type Node interface {
	// Kind returns this node's syntactic category.
	Kind() Kind
	// Location returns the source span this node was parsed from (or, for
	// compiler-generated nodes, the span they were synthesised to cover).
	Location() source.Location
	// Owner returns the module that allocated this node.
	Owner() Owner
	// State returns the current semantic-analysis state.
	State() State
	// SetState transitions the node to a new analysis state. It only records
	// the new state; re-entry into a node already InProgress is detected by
	// sema's enterState, not here.
	SetState(State)
	// Type returns the node's result type, populated once State() is Ok or
	// Errored.  It is ast.Type{} (the zero value) before analysis.
	Type() Type
	// SetType records the node's analysed result type.
	SetType(Type)
	// IsLValue reports whether this node, once analysed, denotes an
	// assignable storage location rather than a transient value.
	IsLValue() bool
	// SetLValue marks (or unmarks) this node as an lvalue.
	SetLValue(bool)
	// IsCompilerGenerated reports whether this node was synthesised by a
	// compiler pass (e.g. an inserted cast or an implicit return) rather
	// than parsed from source text.
	IsCompilerGenerated() bool
}

// Header is the common node prefix every concrete AST node embeds.  It is
// exported so that irgen and sema can type-assert down to *Header when they
// only need the common fields, mirroring go/ast's embedding idiom.
type Header struct {
	kind      Kind
	loc       source.Location
	owner     Owner
	state     State
	result    Type
	isLValue  bool
	generated bool
}

// NewHeader constructs the header for a freshly parsed node.
func NewHeader(kind Kind, loc source.Location, owner Owner) Header {
	return Header{kind: kind, loc: loc, owner: owner}
}

// NewGeneratedHeader constructs the header for a node synthesised by a
// compiler pass (an inserted cast, an implicit return, a padding field).
func NewGeneratedHeader(kind Kind, loc source.Location, owner Owner) Header {
	return Header{kind: kind, loc: loc, owner: owner, generated: true}
}

func (h *Header) Kind() Kind                 { return h.kind }
func (h *Header) Location() source.Location  { return h.loc }
func (h *Header) Owner() Owner               { return h.owner }
func (h *Header) State() State               { return h.state }
func (h *Header) SetState(s State)           { h.state = s }
func (h *Header) Type() Type                 { return h.result }
func (h *Header) SetType(t Type)             { h.result = t }
func (h *Header) IsLValue() bool             { return h.isLValue }
func (h *Header) SetLValue(v bool)           { h.isLValue = v }
func (h *Header) IsCompilerGenerated() bool  { return h.generated }

// Expr is the subset of Node produced by expression grammar productions
// (spec §4.3).  It exists only to let callers narrow a `[]Node` to
// expression positions at compile time; all the interesting behaviour is
// still reached through Node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the subset of Node produced by statement grammar productions.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is the subset of Node produced by declaration grammar productions.
type Decl interface {
	Node
	declNode()
}
