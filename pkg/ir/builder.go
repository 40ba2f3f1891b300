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
package ir

import (
	"fmt"

	"github.com/laye-lang/layec/pkg/ast"
	"github.com/laye-lang/layec/pkg/source"
)

// Builder holds the current function and current block (spec §4.7:
// "the builder holds (current function, current block, insertion
// cursor)"), the same shape as the teacher's SchemaBuilder/ModuleBuilder
// holding the module/register currently under construction, generalised
// here from "the entity being named" to "the block being appended to".
type Builder struct {
	Module *Module

	fn  *Function
	blk *BasicBlock
}

// NewBuilder constructs a builder that will populate mod.
func NewBuilder(mod *Module) *Builder {
	return &Builder{Module: mod}
}

// ice reports an internal contract violation the way a hand-rolled
// assertion library would (AMBIENT STACK: "a package-level panic carrying
// an 'ICE: ...'-prefixed message in non-test code"); these can only be
// reached by a generator bug, never by user input, since every user-facing
// failure path goes through source.Context.Diagnose instead.
func ice(format string, args ...any) {
	panic(fmt.Sprintf("ICE: "+format, args...))
}

// DeclareStruct registers a named struct type on the builder's module.
func (b *Builder) DeclareStruct(t Type) {
	b.Module.Structs = append(b.Module.Structs, t)
}

// DeclareGlobal registers a module-level global.
func (b *Builder) DeclareGlobal(name string, t Type, linkage Linkage, init Value) *Global {
	g := &Global{Name: name, ValType: t, Linkage: linkage, Init: init}
	b.Module.Globals = append(b.Module.Globals, g)
	//
	return g
}

// DeclareFunction registers a new function signature on the builder's
// module and returns it; the caller still needs CreateBlock/SetInsertPoint
// to give it a body, unless its linkage is Imported/ReExported.
func (b *Builder) DeclareFunction(name string, ret Type, params []Type, paramNames []string,
	cc ast.CallConv, variadic ast.VarargsStyle, linkage Linkage,
) *Function {
	fn := &Function{Name: name, ReturnType: ret, CallConv: cc, Variadic: variadic, Linkage: linkage}
	//
	for i, pt := range params {
		name := ""
		if i < len(paramNames) {
			name = paramNames[i]
		}
		//
		fn.Params = append(fn.Params, &Param{Name: name, ValType: pt, id: fn.nextID()})
	}
	//
	b.Module.Functions = append(b.Module.Functions, fn)
	//
	return fn
}

// CreateBlock appends a new, empty basic block to fn and returns it. name
// may be "" to use the positional `_bb<index>` fallback label.
func (b *Builder) CreateBlock(fn *Function, name string) *BasicBlock {
	blk := &BasicBlock{name: name, Index: len(fn.Blocks)}
	fn.Blocks = append(fn.Blocks, blk)
	//
	return blk
}

// SetInsertPoint moves the builder's cursor to the end of blk, within fn.
func (b *Builder) SetInsertPoint(fn *Function, blk *BasicBlock) {
	b.fn = fn
	b.blk = blk
}

// Block returns the block the builder is currently appending to.
func (b *Builder) Block() *BasicBlock { return b.blk }

// BlockTerminated reports whether the builder's current block already has
// a terminator, for a generator to check before deciding whether a
// fallthrough branch is needed.
func (b *Builder) BlockTerminated() bool {
	return b.blk != nil && b.blk.Terminated()
}

// append places instr at the end of the current block, assigns it an SSA
// number, and returns it as a Value. Appending past a terminator is the
// exact contract violation spec §4.7 names: "After any terminator is
// built, further appending in that block is a compile-time assertion."
func (b *Builder) append(instr *Instr) *Instr {
	if b.blk == nil {
		ice("no current insertion block")
	}
	//
	if b.blk.Terminated() {
		ice("appending instruction after a terminator in block %q", b.blk.Label())
	}
	//
	if instr.ResultType.Kind() != TypeVoid || instr.Op == OpPhi {
		instr.ID = b.fn.nextID()
	}
	//
	b.blk.append(instr)
	//
	return instr
}

func (b *Builder) inst(op Op, t Type, loc source.Location, operands ...Value) *Instr {
	return b.append(&Instr{Op: op, ResultType: t, Loc: loc, Operands: operands})
}

// CreateAlloca emits a stack slot allocation for a value of type t, itself
// yielding a Pointer-typed value (the slot's address).
func (b *Builder) CreateAlloca(t Type, loc source.Location) Value {
	return b.append(&Instr{Op: OpAlloca, ResultType: Ptr, AllocaType: t, Loc: loc})
}

// CreateStore writes value to addr.
func (b *Builder) CreateStore(addr, value Value, loc source.Location) {
	b.append(&Instr{Op: OpStore, ResultType: Void, Operands: []Value{addr, value}, Loc: loc})
}

// CreateLoad reads a value of type t from addr.
func (b *Builder) CreateLoad(addr Value, t Type, loc source.Location) Value {
	return b.inst(OpLoad, t, loc, addr)
}

// CreateCall emits a call to callee with args, yielding retType (may be
// Void).
func (b *Builder) CreateCall(callee Value, args []Value, cc ast.CallConv, retType Type, loc source.Location) Value {
	return b.append(&Instr{Op: OpCall, ResultType: retType, Callee: callee, Args: args, CallCC: cc, Loc: loc})
}

// CreatePtrAdd computes addr + offset (already scaled by the caller, per
// spec §4.8's indexing-lowering rule), yielding a Pointer value.
func (b *Builder) CreatePtrAdd(addr, offset Value, loc source.Location) Value {
	return b.inst(OpPtrAdd, Ptr, loc, addr, offset)
}

// CreateBranch emits an unconditional branch to target, terminating the
// current block.
func (b *Builder) CreateBranch(target *BasicBlock, loc source.Location) {
	b.append(&Instr{Op: OpBranch, ResultType: Void, Target: target, Loc: loc})
}

// CreateCondBranch emits a conditional branch, terminating the current
// block.
func (b *Builder) CreateCondBranch(cond Value, pass, fail *BasicBlock, loc source.Location) {
	b.append(&Instr{Op: OpCondBranch, ResultType: Void, Operands: []Value{cond}, Target: pass, Else: fail, Loc: loc})
}

// CreateReturn emits a value-returning terminator.
func (b *Builder) CreateReturn(value Value, t Type, loc source.Location) {
	b.append(&Instr{Op: OpReturn, ResultType: t, Operands: []Value{value}, Loc: loc})
}

// CreateReturnVoid emits a void-returning terminator.
func (b *Builder) CreateReturnVoid(loc source.Location) {
	b.append(&Instr{Op: OpReturn, ResultType: Void, Loc: loc})
}

// CreateUnreachable terminates the current block as unreachable (spec §3:
// "a block built up but never explicitly terminated while noreturn is the
// path type must be closed with an implicit unreachable").
func (b *Builder) CreateUnreachable(loc source.Location) {
	b.append(&Instr{Op: OpUnreachable, ResultType: Void, Loc: loc})
}

// CreatePhi starts a phi node in the current block with no incoming edges
// yet; the generator calls AddIncoming once each predecessor is known.
func (b *Builder) CreatePhi(t Type, loc source.Location) *Instr {
	return b.append(&Instr{Op: OpPhi, ResultType: t, Loc: loc})
}

// AddIncoming records one (value, predecessor block) pair on a phi
// instruction (spec §3's phi invariant).
func (phi *Instr) AddIncoming(value Value, pred *BasicBlock) {
	if phi.Op != OpPhi {
		ice("AddIncoming called on a non-phi instruction")
	}
	//
	phi.IncomingValues = append(phi.IncomingValues, value)
	phi.IncomingBlocks = append(phi.IncomingBlocks, pred)
}

// Cast ops: one Create method per spec §4.7 cast instruction, each a thin
// wrapper since they all share the "one operand, one result type" shape.
func (b *Builder) CreateSExt(v Value, t Type, loc source.Location) Value    { return b.inst(OpSExt, t, loc, v) }
func (b *Builder) CreateZExt(v Value, t Type, loc source.Location) Value    { return b.inst(OpZExt, t, loc, v) }
func (b *Builder) CreateTrunc(v Value, t Type, loc source.Location) Value   { return b.inst(OpTrunc, t, loc, v) }
func (b *Builder) CreateBitcast(v Value, t Type, loc source.Location) Value { return b.inst(OpBitcast, t, loc, v) }
func (b *Builder) CreateFPExt(v Value, t Type, loc source.Location) Value   { return b.inst(OpFPExt, t, loc, v) }
func (b *Builder) CreateFPTrunc(v Value, t Type, loc source.Location) Value { return b.inst(OpFPTrunc, t, loc, v) }
func (b *Builder) CreateFPToSI(v Value, t Type, loc source.Location) Value  { return b.inst(OpFPToSI, t, loc, v) }
func (b *Builder) CreateFPToUI(v Value, t Type, loc source.Location) Value  { return b.inst(OpFPToUI, t, loc, v) }
func (b *Builder) CreateSIToFP(v Value, t Type, loc source.Location) Value  { return b.inst(OpSIToFP, t, loc, v) }
func (b *Builder) CreateUIToFP(v Value, t Type, loc source.Location) Value  { return b.inst(OpUIToFP, t, loc, v) }

// Binary arithmetic/bitwise/shift ops all share the "two operands, result
// type equals operand type" shape.
func (b *Builder) createBinary(op Op, lhs, rhs Value, loc source.Location) Value {
	return b.inst(op, lhs.Type(), loc, lhs, rhs)
}

func (b *Builder) CreateAdd(l, r Value, loc source.Location) Value  { return b.createBinary(OpAdd, l, r, loc) }
func (b *Builder) CreateSub(l, r Value, loc source.Location) Value  { return b.createBinary(OpSub, l, r, loc) }
func (b *Builder) CreateMul(l, r Value, loc source.Location) Value  { return b.createBinary(OpMul, l, r, loc) }
func (b *Builder) CreateSDiv(l, r Value, loc source.Location) Value { return b.createBinary(OpSDiv, l, r, loc) }
func (b *Builder) CreateUDiv(l, r Value, loc source.Location) Value { return b.createBinary(OpUDiv, l, r, loc) }
func (b *Builder) CreateSMod(l, r Value, loc source.Location) Value { return b.createBinary(OpSMod, l, r, loc) }
func (b *Builder) CreateUMod(l, r Value, loc source.Location) Value { return b.createBinary(OpUMod, l, r, loc) }

func (b *Builder) CreateFAdd(l, r Value, loc source.Location) Value { return b.createBinary(OpFAdd, l, r, loc) }
func (b *Builder) CreateFSub(l, r Value, loc source.Location) Value { return b.createBinary(OpFSub, l, r, loc) }
func (b *Builder) CreateFMul(l, r Value, loc source.Location) Value { return b.createBinary(OpFMul, l, r, loc) }
func (b *Builder) CreateFDiv(l, r Value, loc source.Location) Value { return b.createBinary(OpFDiv, l, r, loc) }
func (b *Builder) CreateFMod(l, r Value, loc source.Location) Value { return b.createBinary(OpFMod, l, r, loc) }

func (b *Builder) CreateAnd(l, r Value, loc source.Location) Value { return b.createBinary(OpAnd, l, r, loc) }
func (b *Builder) CreateOr(l, r Value, loc source.Location) Value  { return b.createBinary(OpOr, l, r, loc) }
func (b *Builder) CreateXor(l, r Value, loc source.Location) Value { return b.createBinary(OpXor, l, r, loc) }
func (b *Builder) CreateShl(l, r Value, loc source.Location) Value { return b.createBinary(OpShl, l, r, loc) }
func (b *Builder) CreateSar(l, r Value, loc source.Location) Value { return b.createBinary(OpSar, l, r, loc) }
func (b *Builder) CreateShr(l, r Value, loc source.Location) Value { return b.createBinary(OpShr, l, r, loc) }

// CreateICmp emits an integer comparison, always yielding i1 (spec's Bool
// maps to a one-bit Integer at the IR level).
func (b *Builder) CreateICmp(pred Predicate, l, r Value, loc source.Location) Value {
	return b.append(&Instr{Op: OpICmp, ResultType: NewInteger(1), Operands: []Value{l, r}, Pred: pred, Loc: loc})
}

// CreateFCmp emits a float comparison; ordered selects the
// NaN-is-always-false family, unordered selects NaN-is-always-true.
func (b *Builder) CreateFCmp(pred Predicate, ordered bool, l, r Value, loc source.Location) Value {
	return b.append(&Instr{
		Op: OpFCmp, ResultType: NewInteger(1), Operands: []Value{l, r},
		Pred: pred, Ordered: ordered, Loc: loc,
	})
}

func (b *Builder) CreateNeg(v Value, loc source.Location) Value {
	return b.inst(OpNeg, v.Type(), loc, v)
}

func (b *Builder) CreateCompl(v Value, loc source.Location) Value {
	return b.inst(OpCompl, v.Type(), loc, v)
}

// CreateMemcpy/CreateMemset lower the two builtins spec §4.7 names
// directly (e.g. for array-initialiser and struct-copy lowering).
func (b *Builder) CreateMemcpy(dst, src, length Value, loc source.Location) {
	b.append(&Instr{Op: OpMemcpy, ResultType: Void, Operands: []Value{dst, src}, Length: length, Loc: loc})
}

func (b *Builder) CreateMemset(dst, fill, length Value, loc source.Location) {
	b.append(&Instr{Op: OpMemset, ResultType: Void, Operands: []Value{dst, fill}, Length: length, Loc: loc})
}
