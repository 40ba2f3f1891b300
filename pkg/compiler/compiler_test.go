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
package compiler_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/laye-lang/layec/pkg/compiler"
	"github.com/laye-lang/layec/pkg/util/assert"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	//
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	//
	return path
}

func TestCompileSourceFile_SingleModuleProducesIR(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.laye", `
export int add(int a, int b) {
	return a + b;
}
`)
	//
	config := compiler.CompilationConfig{}
	ctx := compiler.NewContext(config)
	result := compiler.CompileSourceFile(config, ctx, entry)
	//
	assert.True(t, result != nil, "compilation should succeed")
	assert.False(t, ctx.HasErrors(), "no diagnostics expected")
	assert.Equal(t, 1, len(result.Modules))
	assert.True(t, result.Entry.IR != nil, "the entry module's IR should be populated")
	assert.True(t, strings.Contains(result.Entry.IR.String(), "define i32 @add"))
}

func TestCompileSourceFile_CrossModuleCallDeclaresExtern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "math.laye", `export int square(int x) => x * x;`)
	entry := writeFile(t, dir, "main.laye", `
import "math.laye";

int main() {
	return math::square(4);
}
`)
	//
	config := compiler.CompilationConfig{}
	ctx := compiler.NewContext(config)
	result := compiler.CompileSourceFile(config, ctx, entry)
	//
	assert.True(t, result != nil, "compilation should succeed")
	assert.False(t, ctx.HasErrors(), "no diagnostics expected")
	assert.Equal(t, 2, len(result.Modules), "math.laye and main.laye should both be compiled")
	//
	var mainMod, mathMod = result.Modules[0], result.Modules[1]
	if filepath.Base(mainMod.Path) != "main.laye" {
		mainMod, mathMod = mathMod, mainMod
	}
	//
	mainText := mainMod.IR.String()
	assert.True(t, strings.Contains(mainText, "define i32 @square"),
		"main.laye's own LYIR should carry a declaration for the imported function")
	assert.True(t, strings.Contains(mainText, "; imported"),
		"the imported function should be printed as a declaration-only, no-body signature")
	//
	assert.True(t, strings.Contains(mathMod.IR.String(), "define i32 @square"))
}

func TestCompileSourceFile_SemaErrorStopsBeforeIRGeneration(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.laye", `
int f(int x) {
	if (x > 0) {
		return 1;
	}
}
`)
	//
	config := compiler.CompilationConfig{}
	ctx := compiler.NewContext(config)
	result := compiler.CompileSourceFile(config, ctx, entry)
	//
	assert.True(t, result == nil, "a sema diagnostic should prevent a result")
	assert.True(t, ctx.HasErrors())
}

func TestCompileSourceFiles_SharesOneDiagnosticSink(t *testing.T) {
	dir := t.TempDir()
	okEntry := writeFile(t, dir, "ok.laye", `export int id(int x) => x;`)
	badEntry := writeFile(t, dir, "bad.laye", `
int f(int x) {
	if (x > 0) {
		return 1;
	}
}
`)
	//
	config := compiler.CompilationConfig{}
	ctx := compiler.NewContext(config)
	results := compiler.CompileSourceFiles(config, ctx, []string{okEntry, badEntry})
	//
	assert.Equal(t, 1, len(results), "only the well-formed entry should produce a result")
	assert.True(t, ctx.HasErrors(), "the malformed entry's diagnostic should still land on the shared context")
}
