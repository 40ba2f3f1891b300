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
package irgen_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/laye-lang/layec/pkg/irgen"
	"github.com/laye-lang/layec/pkg/module"
	"github.com/laye-lang/layec/pkg/sema"
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/util/assert"
)

// generate resolves a single-file module, runs sema, then irgen, and
// returns the printed LYIR text alongside the diagnostic context.
func generate(t *testing.T, text string) (string, *source.Context) {
	t.Helper()
	//
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.laye")
	if err := os.WriteFile(entry, []byte(text), 0o644); err != nil {
		t.Fatalf("writing %s: %v", entry, err)
	}
	//
	ctx := source.NewContext()
	r := module.NewResolver(ctx, module.Config{})
	mod, _ := r.Resolve(entry)
	assert.True(t, mod != nil, "resolution should succeed before sema ever runs")
	//
	sema.Check(ctx, mod)
	for _, d := range ctx.Diagnostics() {
		if d.Severity.IsError() {
			t.Fatalf("unexpected sema diagnostic: %s", d.Message)
		}
	}
	//
	irMod := irgen.Generate(ctx, mod)
	assert.True(t, mod.IR == irMod, "Generate should record its result on mod.IR")
	//
	return irMod.String(), ctx
}

func TestGenerate_ScalarArithmeticFunction(t *testing.T) {
	text, _ := generate(t, `
export int add(int a, int b) {
	return a + b;
}
`)
	assert.True(t, strings.Contains(text, "define i32 @add"))
	assert.True(t, strings.Contains(text, "add i32"))
	assert.True(t, strings.Contains(text, "ret i32"))
}

func TestGenerate_IfExpressionWithElseProducesPhi(t *testing.T) {
	text, _ := generate(t, `
int max(int a, int b) {
	return if (a > b) {
		yield a;
	} else {
		yield b;
	};
}
`)
	assert.True(t, strings.Contains(text, "icmp"))
	assert.True(t, strings.Contains(text, "phi i32"))
	assert.True(t, strings.Contains(text, "if.then"))
	assert.True(t, strings.Contains(text, "if.else"))
	assert.True(t, strings.Contains(text, "if.join"))
}

func TestGenerate_IfExpressionWithoutElseIsVoidAndUnused(t *testing.T) {
	text, _ := generate(t, `
void clamp(int *x) {
	if (*x < 0) {
		*x = 0;
	}
}
`)
	assert.True(t, strings.Contains(text, "define void @clamp"))
	assert.True(t, strings.Contains(text, "if.then"))
	assert.True(t, strings.Contains(text, "if.join"))
}

func TestGenerate_ForLoopWithBreak(t *testing.T) {
	text, _ := generate(t, `
int firstNegative(int[*] xs, int n) {
	int i = 0;
	for (i = 0; i < n; i = i + 1) {
		if (xs[i] < 0) {
			break;
		}
	}
	return i;
}
`)
	assert.True(t, strings.Contains(text, "for.cond"))
	assert.True(t, strings.Contains(text, "for.body"))
	assert.True(t, strings.Contains(text, "for.inc"))
	assert.True(t, strings.Contains(text, "for.join"))
	assert.True(t, strings.Contains(text, "br label"))
}

func TestGenerate_AssertLowersToTwoBlockShape(t *testing.T) {
	text, _ := generate(t, `
void requirePositive(int x) {
	assert(x > 0, "x must be positive");
}
`)
	assert.True(t, strings.Contains(text, "assert.after"))
	assert.True(t, strings.Contains(text, "assert.fail"))
	assert.True(t, strings.Contains(text, "__laye_assert_fail"))
	assert.True(t, strings.Contains(text, "unreachable"))
}

func TestGenerate_WhileLoopWithContinue(t *testing.T) {
	text, _ := generate(t, `
int sumPositive(int[*] xs, int n) {
	int i = 0;
	int total = 0;
	while (i < n) {
		i = i + 1;
		if (xs[i] < 0) {
			continue;
		}
		total = total + xs[i];
	}
	return total;
}
`)
	assert.True(t, strings.Contains(text, "while.cond"))
	assert.True(t, strings.Contains(text, "while.body"))
	assert.True(t, strings.Contains(text, "while.join"))
}
