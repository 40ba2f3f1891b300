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
package module

import (
	"os"
	"path/filepath"

	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/depgraph"
	"github.com/laye-lang/layec/pkg/lexer"
	"github.com/laye-lang/layec/pkg/parser"
	"github.com/laye-lang/layec/pkg/source"
)

// statFile stats path (used by locate to probe each search-path candidate
// in turn). It does not check that path is a regular or readable file.
func statFile(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Config carries the include-directory search path consulted when an
// import can't be found relative to the importing file (spec §4.4, §6's
// `-I` flag semantics, consumed here as configuration rather than flags).
type Config struct {
	IncludeDirs []string
}

// Resolver drives both phases of spec §4.4's module resolution: locate and
// parse every transitively imported file, then build each module's
// import/export namespaces in topological order.
type Resolver struct {
	ctx    *source.Context
	config Config

	byPath  map[string]*Module
	modules []*Module
	graph   *depgraph.Graph[*Module]
}

// NewResolver constructs a resolver sharing ctx with the rest of the
// compilation (so diagnostics from parsing imported files land in the same
// sink as the entry file's).
func NewResolver(ctx *source.Context, config Config) *Resolver {
	return &Resolver{
		ctx:    ctx,
		config: config,
		byPath: make(map[string]*Module),
		graph:  depgraph.New[*Module](),
	}
}

// Resolve runs phase 1 (locate/parse transitively from entryPath) then
// phase 2 (build import/export symbol tables in topological order),
// returning the entry module and every module reachable from it in
// dependency order (an import's target always precedes its importer). A
// nil Module return means a fatal error (missing entry file, or an import
// cycle) was recorded on ctx; callers should check ctx.HasErrors().
func (r *Resolver) Resolve(entryPath string) (*Module, []*Module) {
	entry := r.parseTransitive(entryPath, "")
	if entry == nil {
		return nil, nil
	}
	//
	order, cyc, hasCycle := r.graph.Ordered()
	if hasCycle {
		r.ctx.Diagnose(source.Error, source.Location{},
			"import cycle detected between %q and %q", cyc.From.Path, cyc.To.Path)
		//
		return nil, nil
	}
	//
	for _, m := range order {
		r.buildNamespaces(m)
	}
	//
	return entry, order
}

// parseTransitive locates, loads and parses path (resolved relative to
// fromDir if given), recursing into every import it contains, and returns
// the already-parsed Module if this exact resolved path was seen before
// (spec §4.4 phase 1). It returns nil, with a diagnostic already recorded,
// if the file cannot be located or loaded.
func (r *Resolver) parseTransitive(path, fromDir string) *Module {
	resolved, ok := r.locate(path, fromDir)
	if !ok {
		r.ctx.Diagnose(source.Error, source.Location{}, "could not locate module %q", path)
		return nil
	}
	//
	if m, ok := r.byPath[resolved]; ok {
		return m
	}
	//
	fid := r.ctx.LoadOrGet(resolved)
	if fid == source.NoFile {
		return nil
	}
	//
	owner := ast.Owner(len(r.modules))
	result := parser.New(r.ctx, fid, owner).ParseFile()
	tokens := lexer.New(r.ctx, fid).Collect()
	//
	m := newModule(owner, resolved, fid, result.TopLevel, result.RootScope, tokens)
	r.byPath[resolved] = m
	r.modules = append(r.modules, m)
	r.graph.EnsureTracked(m)
	//
	dir := filepath.Dir(resolved)
	//
	for _, decl := range m.TopLevel {
		imp, ok := decl.(*ast.ImportDecl)
		if !ok {
			continue
		}
		//
		target := r.parseTransitive(imp.ModulePath, dir)
		if target == nil {
			continue
		}
		//
		imp.ResolvedModuleID = target.Path
		r.graph.AddDependency(m, target)
	}
	//
	return m
}

// locate resolves a module path first relative to fromDir (the importer's
// own directory; fromDir is "" for the entry file, in which case path is
// tried as-is), then against each configured include directory in order
// (spec §4.4).
func (r *Resolver) locate(path, fromDir string) (string, bool) {
	var candidates []string
	//
	if fromDir != "" {
		candidates = append(candidates, filepath.Join(fromDir, path))
	} else {
		candidates = append(candidates, path)
	}
	//
	for _, dir := range r.config.IncludeDirs {
		candidates = append(candidates, filepath.Join(dir, path))
	}
	//
	for _, c := range candidates {
		if _, err := statFile(c); err == nil {
			return c, true
		}
	}
	//
	return "", false
}

// buildNamespaces is phase 2 (spec §4.4): populate m.Exports from every
// `export`-attributed top-level declaration, then populate m.Imports from
// each of m's own import declarations. Called in dependency order, so
// every module m imports from has its Exports already built.
func (r *Resolver) buildNamespaces(m *Module) {
	for _, decl := range m.TopLevel {
		name, exported := exportedName(decl)
		if !exported {
			continue
		}
		//
		if existing, ok := m.Exports.Get(name); ok {
			existing.AddDecl(decl)
			continue
		}
		//
		m.Exports.Put(name, ast.NewEntity(decl))
	}
	//
	for _, decl := range m.TopLevel {
		imp, ok := decl.(*ast.ImportDecl)
		if !ok {
			continue
		}
		//
		target, ok := r.byPath[imp.ResolvedModuleID]
		if !ok {
			continue // already diagnosed during phase 1
		}
		//
		r.bindImport(m, imp, target)
	}
}

// bindImport threads one resolved import declaration's symbols into m's
// import namespace (and, when marked `export`, back out into m's export
// namespace too, per §4.4's "re-publishes via exports").
func (r *Resolver) bindImport(m *Module, imp *ast.ImportDecl, target *Module) {
	switch {
	case imp.IsWholeFile:
		alias := imp.Alias
		if alias == "" {
			alias = deriveAlias(imp.ModulePath)
		}
		//
		ns := ast.NewNamespace()
		ns.ShallowCopyInto(target.Exports)
		m.Imports.Put(alias, ns)
		//
		if imp.Export {
			m.Exports.Put(alias, ns)
		}
	default:
		for _, q := range imp.Queries {
			if q.IsWildcard {
				m.Imports.ShallowCopyInto(target.Exports)
				//
				if imp.Export {
					m.Exports.ShallowCopyInto(target.Exports)
				}
				//
				continue
			}
			//
			sym, ok := resolvePieces(target.Exports, q.Pieces)
			if !ok {
				r.ctx.Diagnose(source.Error, imp.Location(),
					"module %q does not export %q", imp.ModulePath, dotted(q.Pieces))
				continue
			}
			//
			name := q.Alias
			if name == "" {
				name = q.Pieces[len(q.Pieces)-1]
			}
			//
			m.Imports.Put(name, sym)
			//
			if imp.Export {
				m.Exports.Put(name, sym)
			}
		}
	}
}

// resolvePieces walks a dotted import query's path through nested
// namespace symbols, returning the final symbol named by the last piece.
func resolvePieces(ns *ast.Symbol, pieces []string) (*ast.Symbol, bool) {
	cur := ns
	//
	for i, piece := range pieces {
		child, ok := cur.Get(piece)
		if !ok {
			return nil, false
		}
		//
		if i == len(pieces)-1 {
			return child, true
		}
		//
		cur = child
	}
	//
	return nil, false
}

func dotted(pieces []string) string {
	out := ""
	//
	for i, p := range pieces {
		if i > 0 {
			out += "."
		}
		//
		out += p
	}
	//
	return out
}

// deriveAlias turns a whole-file import's path into its default alias: the
// file's base name with its extension stripped (spec §4.4).
func deriveAlias(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// exportedName reports the name and export flag of a top-level
// declaration, if it carries one (import declarations have no name of
// their own and are handled separately by buildNamespaces).
func exportedName(decl ast.Decl) (string, bool) {
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		return d.Name, d.Attrs.Export
	case *ast.StructDecl:
		return d.Name, d.Export
	case *ast.BindingDecl:
		return d.Name, d.Export
	default:
		return "", false
	}
}
