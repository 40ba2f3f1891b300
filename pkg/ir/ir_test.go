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
package ir_test

import (
	"strings"
	"testing"

	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/ir"
	"github.com/laye-lang/layec/pkg/source"
	"github.com/laye-lang/layec/pkg/util/assert"
)

func TestBuilder_SimpleAddFunction(t *testing.T) {
	mod := ir.NewModule("add", "add.laye")
	b := ir.NewBuilder(mod)
	//
	i32 := ir.NewInteger(32)
	fn := b.DeclareFunction("add", i32, []ir.Type{i32, i32}, []string{"a", "b"}, ast.CallConvLaye, ast.VarargsNone, ir.Exported)
	entry := b.CreateBlock(fn, "entry")
	b.SetInsertPoint(fn, entry)
	//
	sum := b.CreateAdd(fn.Params[0], fn.Params[1], source.Location{})
	b.CreateReturn(sum, i32, source.Location{})
	//
	assert.True(t, b.BlockTerminated(), "the entry block should be terminated after CreateReturn")
	//
	text := mod.String()
	assert.True(t, strings.Contains(text, "; ModuleID = 'add'"))
	assert.True(t, strings.Contains(text, "define i32 @add"))
	assert.True(t, strings.Contains(text, "ret i32"))
}

func TestBuilder_AppendAfterTerminatorPanics(t *testing.T) {
	mod := ir.NewModule("bad", "bad.laye")
	b := ir.NewBuilder(mod)
	//
	void := ir.Void
	fn := b.DeclareFunction("f", void, nil, nil, ast.CallConvLaye, ast.VarargsNone, ir.Internal)
	entry := b.CreateBlock(fn, "entry")
	b.SetInsertPoint(fn, entry)
	b.CreateReturnVoid(source.Location{})
	//
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic appending after a terminator")
		}
	}()
	//
	b.CreateReturnVoid(source.Location{})
}

func TestBuilder_DeclarationOnlyFunctionHasNoBlocks(t *testing.T) {
	mod := ir.NewModule("m", "m.laye")
	b := ir.NewBuilder(mod)
	//
	fn := b.DeclareFunction("puts", ir.NewInteger(32), []ir.Type{ir.Ptr}, []string{"s"}, ast.CallConvC, ast.VarargsNone, ir.Imported)
	//
	assert.True(t, fn.IsDeclarationOnly())
	assert.Equal(t, 0, len(fn.Blocks))
}

func TestBuilder_PhiCollectsIncomingEdges(t *testing.T) {
	mod := ir.NewModule("m", "m.laye")
	b := ir.NewBuilder(mod)
	//
	i32 := ir.NewInteger(32)
	fn := b.DeclareFunction("f", i32, nil, nil, ast.CallConvLaye, ast.VarargsNone, ir.Internal)
	//
	passBlk := b.CreateBlock(fn, "pass")
	failBlk := b.CreateBlock(fn, "fail")
	joinBlk := b.CreateBlock(fn, "join")
	//
	b.SetInsertPoint(fn, passBlk)
	b.CreateBranch(joinBlk, source.Location{})
	//
	b.SetInsertPoint(fn, failBlk)
	b.CreateBranch(joinBlk, source.Location{})
	//
	b.SetInsertPoint(fn, joinBlk)
	phi := b.CreatePhi(i32, source.Location{})
	phi.AddIncoming(ir.NewIntConst(i32, 1), passBlk)
	phi.AddIncoming(ir.NewIntConst(i32, 2), failBlk)
	//
	assert.Equal(t, 2, len(phi.IncomingValues))
	assert.Equal(t, 2, len(phi.IncomingBlocks))
}
