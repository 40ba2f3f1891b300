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
package module_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/laye-lang/layec/pkg/module"
	"github.com/laye-lang/layec/pkg/source"
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

func TestResolver_WholeFileImportExposesExports(t *testing.T) {
	dir := t.TempDir()
	//
	writeFile(t, dir, "math.laye", `export int square(int x) => x * x;`)
	entry := writeFile(t, dir, "main.laye", `
import "math.laye";

int main() {
	int result = math.square(4);
	return 0;
}
`)
	//
	ctx := source.NewContext()
	r := module.NewResolver(ctx, module.Config{})
	//
	entryMod, order := r.Resolve(entry)
	assert.True(t, entryMod != nil, "resolution should succeed")
	assert.Equal(t, 2, len(order), "math.laye and main.laye should both be tracked")
	assert.False(t, ctx.HasErrors(), "no diagnostics expected")
	//
	mathMod := order[0]
	assert.Equal(t, "math.laye", filepath.Base(mathMod.Path))
	//
	_, hasSquare := mathMod.Exports.Get("square")
	assert.True(t, hasSquare, "square should be exported from math.laye")
	//
	ns, hasAlias := entryMod.Imports.Get("math")
	assert.True(t, hasAlias, "main.laye should see the default 'math' alias")
	//
	_, hasSquareViaAlias := ns.Get("square")
	assert.True(t, hasSquareViaAlias, "square should be reachable through the math alias")
}

func TestResolver_QueryImportBindsRequestedName(t *testing.T) {
	dir := t.TempDir()
	//
	writeFile(t, dir, "util.laye", `
export int add(int a, int b) => a + b;
int helper(int x) => x;
`)
	entry := writeFile(t, dir, "main.laye", `
import add from "util.laye";

int main() {
	int result = add(1, 2);
	return 0;
}
`)
	//
	ctx := source.NewContext()
	r := module.NewResolver(ctx, module.Config{})
	//
	entryMod, _ := r.Resolve(entry)
	assert.True(t, entryMod != nil, "resolution should succeed")
	//
	_, hasAdd := entryMod.Imports.Get("add")
	assert.True(t, hasAdd, "add should be bound directly into main.laye's imports")
	//
	_, hasHelper := entryMod.Imports.Get("helper")
	assert.False(t, hasHelper, "helper was never exported and so is not visible")
}

func TestResolver_MissingModuleIsDiagnosed(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.laye", `import "does_not_exist.laye";`)
	//
	ctx := source.NewContext()
	r := module.NewResolver(ctx, module.Config{})
	//
	_, _ = r.Resolve(entry)
	assert.True(t, ctx.HasErrors(), "a missing import should be diagnosed as an error")
}

func TestResolver_ImportCycleIsDiagnosed(t *testing.T) {
	dir := t.TempDir()
	//
	writeFile(t, dir, "a.laye", `import "b.laye";`)
	entry := writeFile(t, dir, "b.laye", `import "a.laye";`)
	//
	ctx := source.NewContext()
	r := module.NewResolver(ctx, module.Config{})
	//
	result, order := r.Resolve(entry)
	assert.True(t, result == nil, "a cycle must not produce a usable resolution")
	assert.True(t, order == nil, "")
	assert.True(t, ctx.HasErrors(), "the cycle must be diagnosed")
}
