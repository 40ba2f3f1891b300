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

// SymbolKind distinguishes the two things a name can resolve to (spec §3):
// a namespace holding further child symbols, or an entity holding the
// declarations of that name.
type SymbolKind uint8

const (
	SymbolNamespace SymbolKind = iota
	SymbolEntity
)

// Symbol is a named thing reachable from a Scope or from a module's
// imports/exports namespace.  Every module has exactly two root Symbols of
// kind SymbolNamespace: its imports namespace (what is visible inside) and
// its exports namespace (what other modules may pull in), per spec §3/§4.4.
type Symbol struct {
	Kind SymbolKind

	// Namespace children, keyed by unqualified name. Only meaningful when
	// Kind == SymbolNamespace.
	Children map[string]*Symbol

	// Entity declarations sharing this name, supporting future overload
	// resolution (spec §3). Only meaningful when Kind == SymbolEntity.
	Decls []Decl
}

// NewNamespace constructs an empty namespace symbol.
func NewNamespace() *Symbol {
	return &Symbol{Kind: SymbolNamespace, Children: make(map[string]*Symbol)}
}

// NewEntity constructs an entity symbol wrapping a single declaration. Use
// AddDecl to add overloads later.
func NewEntity(decl Decl) *Symbol {
	return &Symbol{Kind: SymbolEntity, Decls: []Decl{decl}}
}

// AddDecl appends another declaration sharing this entity's name.
func (s *Symbol) AddDecl(decl Decl) {
	s.Decls = append(s.Decls, decl)
}

// Get looks up an immediate child of a namespace symbol by unqualified
// name. It returns (nil, false) if s is not a namespace or has no such
// child.
func (s *Symbol) Get(name string) (*Symbol, bool) {
	if s.Kind != SymbolNamespace {
		return nil, false
	}
	//
	child, ok := s.Children[name]
	return child, ok
}

// Put inserts or replaces a child of a namespace symbol. It panics if s is
// not a namespace, since callers are expected to have checked Kind first
// (a caller inserting into an entity symbol is a compiler bug).
func (s *Symbol) Put(name string, child *Symbol) {
	if s.Kind != SymbolNamespace {
		panic("ast: Put on a non-namespace symbol")
	}
	//
	s.Children[name] = child
}

// ShallowCopyInto copies every direct child of src into dst, used by
// whole-module imports to give the importing module its own namespace
// backed by a shallow copy of the referenced module's exports (spec §4.4).
func (dst *Symbol) ShallowCopyInto(src *Symbol) {
	for name, child := range src.Children {
		dst.Children[name] = child
	}
}
