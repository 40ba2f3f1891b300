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

// Package compiler wires the whole front end together into the one
// library entry point a driver would call: source context, module
// resolution, semantic analysis, and IR generation (spec §2's
// A -> B -> C -> D -> C -> E -> F -> G,H pipeline). It owns no flags and
// touches no CLI surface; CompilationConfig is the only configuration
// input, matching the teacher's separation between its flag-parsing
// `pkg/cmd` and its library `pkg/corset`.
package compiler

import (
	"github.com/laye-lang/layec/pkg/irgen"
	"github.com/laye-lang/layec/pkg/module"
	"github.com/laye-lang/layec/pkg/sema"
	"github.com/laye-lang/layec/pkg/source"
)

// CompilationConfig carries the options a driver would otherwise thread
// through command-line flags (spec §6): include directories consulted
// when an import can't be found relative to its importer, and the two
// diagnostic-formatting toggles source.Context exposes.
type CompilationConfig struct {
	// IncludeDirs is the module.Config search path forwarded to the
	// resolver (spec §4.4, §6 -I).
	IncludeDirs []string
	// ByteDiagnostics selects byte-offset positions over line:col ones
	// when diagnostics are formatted (spec §6 --byte-diagnostics).
	ByteDiagnostics bool
	// NoColor disables ANSI severity colouring regardless of what
	// source.NewContext auto-detected from the output terminal.
	NoColor bool
}

// NewContext constructs a source.Context configured per config. Several
// entry points may share one context (and so one diagnostic sink, one
// file table, one string interner) by passing it to CompileSourceFile
// explicitly instead of each constructing their own.
func NewContext(config CompilationConfig) *source.Context {
	ctx := source.NewContext()
	ctx.ByteDiagnostics = config.ByteDiagnostics
	//
	if config.NoColor {
		ctx.Color = false
	}
	//
	return ctx
}

// CompileResult is one entry file's compiled translation unit: the entry
// module itself plus every module it transitively imports, in dependency
// order (an import's target always precedes its importer, matching
// module.Resolver.Resolve's own ordering guarantee). Every module in
// Modules has already run through sema.Check and irgen.Generate by the
// time CompileSourceFile returns a non-nil result; mod.IR is populated on
// each.
type CompileResult struct {
	Entry   *module.Module
	Modules []*module.Module
}

// CompileSourceFile runs the full pipeline over one entry file: locate and
// parse it and everything it imports (module.Resolver, spec §4.4, itself
// driving pkg/lexer and pkg/parser and using pkg/depgraph for cycle
// detection), type-check every resulting module in dependency order
// (pkg/sema, spec §4.6), then generate each one's LYIR (pkg/irgen, spec
// §4.8). It stops and returns nil as soon as any stage records an error on
// ctx, the same short-circuit-on-errors shape as the teacher's
// Compiler.Compile.
func CompileSourceFile(config CompilationConfig, ctx *source.Context, entryPath string) *CompileResult {
	r := module.NewResolver(ctx, module.Config{IncludeDirs: config.IncludeDirs})
	//
	entry, modules := r.Resolve(entryPath)
	if entry == nil || ctx.HasErrors() {
		return nil
	}
	//
	for _, m := range modules {
		sema.Check(ctx, m)
	}
	//
	if ctx.HasErrors() {
		return nil
	}
	//
	for _, m := range modules {
		irgen.Generate(ctx, m)
	}
	//
	return &CompileResult{Entry: entry, Modules: modules}
}

// CompileSourceFiles runs CompileSourceFile independently over each of
// entryPaths, sharing one ctx (and so one diagnostic sink) across all of
// them but resolving each entry's import graph with its own module.Resolver
// (spec §4.4's namespace-building pass is not safe to re-run over a module
// it has already namespaced, so two entries that happen to share an
// imported file each get their own freshly-parsed copy of it rather than
// reusing a resolver across entries). An entry whose compilation fails is
// simply omitted from the result; callers check ctx.HasErrors() /
// ctx.Diagnostics() to learn why.
func CompileSourceFiles(config CompilationConfig, ctx *source.Context, entryPaths []string) []*CompileResult {
	results := make([]*CompileResult, 0, len(entryPaths))
	//
	for _, path := range entryPaths {
		if res := CompileSourceFile(config, ctx, path); res != nil {
			results = append(results, res)
		}
	}
	//
	return results
}
