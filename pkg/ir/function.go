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
	"strings"

	"github.com/laye-lang/layec/pkg/ast"
)

// Linkage classifies a Function or Global's visibility, derived from the
// originating declaration's export/body-presence combination (spec §4.8
// step 1: "body-less exports become ReExported; body-less non-exports are
// Imported; exports with a body are Exported; non-exports with a body are
// Internal").
type Linkage uint8

const (
	Internal Linkage = iota
	Exported
	Imported
	ReExported
)

func (l Linkage) String() string {
	switch l {
	case Exported:
		return "exported"
	case Imported:
		return "imported"
	case ReExported:
		return "reexported"
	default:
		return "internal"
	}
}

// Function is an IR function: a signature plus, unless its Linkage is
// Imported/ReExported, a body of basic blocks (spec §3: "IR Value with a
// kind... instructions live in basic blocks; basic blocks live in
// functions").
type Function struct {
	Name       string
	ReturnType Type
	Params     []*Param
	CallConv   ast.CallConv
	Variadic   ast.VarargsStyle
	Linkage    Linkage

	Blocks []*BasicBlock

	nextValueID int
}

// IsDeclarationOnly reports whether this function has no body (spec §6's
// back-end interface: "externally-linked with no blocks").
func (f *Function) IsDeclarationOnly() bool {
	return f.Linkage == Imported || f.Linkage == ReExported
}

func (f *Function) ValueKind() ValueKind { return ValueFunction }
func (f *Function) Type() Type {
	params := make([]Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type()
	}
	//
	return NewFunction(f.ReturnType, params, f.CallConv, f.Variadic)
}
func (f *Function) String() string { return "@" + f.Name }

func (f *Function) nextID() int {
	id := f.nextValueID
	f.nextValueID++
	return id
}

func (f *Function) printBody() string {
	var b strings.Builder
	//
	b.WriteString("define ")
	b.WriteString(f.ReturnType.String())
	b.WriteString(" @")
	b.WriteString(f.Name)
	b.WriteByte('(')
	//
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type().String())
		b.WriteByte(' ')
		b.WriteString(p.String())
	}
	//
	b.WriteByte(')')
	//
	if f.IsDeclarationOnly() {
		b.WriteString(" ; ")
		b.WriteString(f.Linkage.String())
		b.WriteByte('\n')
		return b.String()
	}
	//
	b.WriteString(" {\n")
	//
	for _, blk := range f.Blocks {
		b.WriteString(blk.Label())
		b.WriteString(":\n")
		//
		for _, instr := range blk.Instrs {
			b.WriteString("  ")
			b.WriteString(instr.String())
			b.WriteByte('\n')
		}
	}
	//
	b.WriteString("}\n")
	//
	return b.String()
}
