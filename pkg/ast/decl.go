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

// Attributes are the prefix-block modifiers spec §4.3 allows before a
// declaration: `export`, `discardable`, `inline`, `foreign [...]`,
// `callconv (...)`.
type Attributes struct {
	Export       bool
	Discardable  bool
	Inline       bool
	Foreign      *ForeignSpec
	HasCallConv  bool
	CallConv     CallConv
}

// ForeignSpec is the parsed form of the `foreign [("none"|"laye")] ["string"]`
// attribute: an optional mangling override and an optional external symbol
// name literal.
type ForeignSpec struct {
	Mangling ForeignMangling
	Name     string // external symbol name, or "" to use the declared name
}

// ForeignMangling selects how a foreign declaration's external symbol name
// is derived.
type ForeignMangling uint8

const (
	// ForeignMangleDefault leaves mangling up to the back end's default for
	// an extern declaration (no explicit mode given).
	ForeignMangleDefault ForeignMangling = iota
	ForeignMangleNone
	ForeignMangleLaye
)

// FunctionDecl is a function declaration or definition (spec §3, §4.3).
// main's forced linkage (exported, C calling convention, no mangling) is
// applied by the parser once the name is known, per §4.3.
type FunctionDecl struct {
	Header

	Name       string
	Attrs      Attributes
	ReturnType *TypeSyntax
	Params     []*ParamDecl
	Varargs    VarargsStyle

	// Exactly one of Body or ArrowBody is set for a defined function;
	// neither is set for an extern (`;`-terminated) declaration.
	Body      *Block
	ArrowBody Expr

	// BodyScope is the function's root lexical scope, covering its
	// parameters; nil for extern declarations.
	BodyScope *Scope
}

func (n *FunctionDecl) declNode() {}

// IsExtern reports whether this is a body-less declaration (spec §4.8's
// Imported/ReExported linkage cases).
func (n *FunctionDecl) IsExtern() bool {
	return n.Body == nil && n.ArrowBody == nil
}

// ParamDecl is one function parameter (spec §3 Function "carries ...
// parameters").
type ParamDecl struct {
	Header

	Name       string
	TypeSyntax *TypeSyntax
}

func (n *ParamDecl) declNode() {}

// StructDecl is a struct or (nested, grammar-sharing) variant declaration
// (spec §4.3 "Structs"). A variant is itself a StructDecl with IsVariant
// set and Parent pointing at the enclosing struct.
type StructDecl struct {
	Header

	Name      string
	Export    bool
	Fields    []*FieldDecl
	Variants  []*StructDecl
	IsVariant bool
	Parent    *StructDecl
}

func (n *StructDecl) declNode() {}

// FieldDecl is one struct field (spec §3's Struct "fields[]"). Padding
// fields synthesised by sema's layout pass (spec §4.6) are not FieldDecls:
// they exist only as StructField entries with IsPadding set. TypeNode
// layout is a property of the analysed ast.Type, and FieldDecl is only the
// syntactic declaration that produced one real field.
type FieldDecl struct {
	Header

	Name       string
	TypeSyntax *TypeSyntax
}

func (n *FieldDecl) declNode() {}

// BindingDecl is a local variable declaration appearing in statement
// position: `<type> <ident> (= <expr>)? ;`. Top-level bindings reuse the
// same node with Owner set to the declaring module and no enclosing Scope
// parent beyond the module's root scope.
type BindingDecl struct {
	Header

	Name       string
	Export     bool
	Mut        bool
	TypeSyntax *TypeSyntax
	Init       Expr // nil if uninitialised
}

func (n *BindingDecl) declNode() {}
func (n *BindingDecl) stmtNode() {} // a local binding is also a statement

// ImportQuery is one comma-separated entry in an import's query list
// (spec §4.4): a dotted name, or `*` for the wildcard form.
type ImportQuery struct {
	Pieces     []string
	Alias      string // "" unless renamed with `as`
	IsWildcard bool
}

// ImportDecl is an `import ... from ...` or whole-file `import "file"`
// declaration (spec §4.3, §4.4).
type ImportDecl struct {
	Header

	// IsWholeFile is set for the `import "file"` short form, which imports
	// the entire referenced module as a namespace.
	IsWholeFile bool

	// ModulePath is either the quoted file path (whole-file form) or the
	// dotted module name following `from` (query form).
	ModulePath string
	Alias      string // explicit `as` alias, or "" to derive one (§4.4)
	Queries    []ImportQuery

	// Export re-publishes the imported symbol(s) via the importing
	// module's own exports namespace (spec §4.4).
	Export bool

	// ResolvedModuleID is filled in by the module resolver (pkg/module,
	// which depends on pkg/ast and so cannot be named here) once the
	// target file has been located and parsed.
	ResolvedModuleID string
}

func (n *ImportDecl) declNode() {}
