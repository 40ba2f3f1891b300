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

// Scope is a lexical binding environment: a mapping from identifier to the
// declaration that introduces it, linked to a parent scope (spec §3).
// Lookup walks the parent chain to the root, then falls through to the
// module's import namespace via Resolve's importFallback.
type Scope struct {
	Parent *Scope
	// Name optionally labels a function-body scope with the enclosing
	// function's name, used in diagnostics ("in function 'foo'").
	Name string
	decls map[string]Decl
}

// NewScope constructs a child scope of parent. parent may be nil for a
// module's root scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, decls: make(map[string]Decl)}
}

// NewFunctionScope constructs a child scope labelled with an enclosing
// function's name, for use as a function body's root scope.
func NewFunctionScope(parent *Scope, functionName string) *Scope {
	s := NewScope(parent)
	s.Name = functionName
	//
	return s
}

// Declare binds name to decl in this scope only (shadowing any binding of
// the same name in an enclosing scope). It returns false if name is
// already bound in this exact scope, which callers should treat as a
// redeclaration error.
func (s *Scope) Declare(name string, decl Decl) bool {
	if _, exists := s.decls[name]; exists {
		return false
	}
	//
	s.decls[name] = decl
	//
	return true
}

// Lookup searches this scope and its ancestors for name, returning the
// nearest binding. It does not consult the module's import namespace; use
// Resolve for the full spec §3 lookup chain (scope chain, then imports).
func (s *Scope) Lookup(name string) (Decl, bool) {
	for scope := s; scope != nil; scope = scope.Parent {
		if decl, ok := scope.decls[name]; ok {
			return decl, true
		}
	}
	//
	return nil, false
}

// Resolve performs the full spec §3/§4.4 lookup: the scope chain first,
// then (if nothing was found) the supplied import namespace.
func Resolve(s *Scope, imports *Symbol, name string) (Decl, bool) {
	if decl, ok := s.Lookup(name); ok {
		return decl, true
	}
	//
	if imports == nil {
		return nil, false
	}
	//
	sym, ok := imports.Get(name)
	if !ok || sym.Kind != SymbolEntity || len(sym.Decls) == 0 {
		return nil, false
	}
	//
	return sym.Decls[0], true
}
