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
package source

import (
	"strings"
	"testing"

	"github.com/laye-lang/layec/pkg/util/assert"
)

func TestContext_AddIsIdempotentByPath(t *testing.T) {
	ctx := NewContext()
	id1 := ctx.Add("foo.laye", []byte("void main() {}"))
	id2 := ctx.Add("foo.laye", []byte("ignored second body"))
	//
	assert.Equal(t, id1, id2)
	assert.Equal(t, "void main() {}", string(ctx.File(id1).Text()))
}

func TestContext_LineCol(t *testing.T) {
	ctx := NewContext()
	id := ctx.Add("foo.laye", []byte("int a;\nint b;\n"))
	file := ctx.File(id)
	//
	line, col := file.LineCol(7)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

func TestContext_DiagnoseSetsErrorFlag(t *testing.T) {
	ctx := NewContext()
	ctx.Color = false
	id := ctx.Add("foo.laye", []byte("int a"))
	//
	assert.Equal(t, false, ctx.HasErrors())
	ctx.Diagnose(Warning, NewLocation(id, 0, 3), "just a warning")
	assert.Equal(t, false, ctx.HasErrors())
	ctx.Diagnose(Error, NewLocation(id, 4, 5), "expected ';'")
	assert.Equal(t, true, ctx.HasErrors())
	//
	formatted := ctx.Format(ctx.Diagnostics()[1])
	if !strings.Contains(formatted, "foo.laye:1:5: error: expected ';'") {
		t.Fatalf("unexpected diagnostic format: %q", formatted)
	}
}

func TestContext_ByteDiagnostics(t *testing.T) {
	ctx := NewContext()
	ctx.Color = false
	ctx.ByteDiagnostics = true
	id := ctx.Add("foo.laye", []byte("int a"))
	ctx.Diagnose(Error, NewLocation(id, 4, 5), "boom")
	//
	formatted := ctx.Format(ctx.Diagnostics()[0])
	assert.Equal(t, "foo.laye:4: error: boom", formatted)
}

func TestInterner_DeduplicatesShortStrings(t *testing.T) {
	in := NewInterner()
	a := in.Intern([]byte("hello"))
	b := in.Intern([]byte("hello"))
	//
	if &a == &b {
		t.Fatal("expected distinct string headers")
	}
	assert.Equal(t, a, b)
	assert.Equal(t, 1, in.Count())
}
