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

import "strconv"

// ValueKind distinguishes the handful of things an IR Value can be (spec
// §3's IR Value: "a kind (constants, instructions, block, function, global,
// parameter)").
type ValueKind uint8

const (
	ValueConst ValueKind = iota
	ValueInstr
	ValueParam
	ValueGlobal
	ValueFunction
	ValueBlock
)

// Value is anything that can be used as an instruction operand: a constant,
// another instruction's result, a block reference (for branch targets and
// phi incoming edges), a function reference (call callees), a global, or a
// parameter.
type Value interface {
	ValueKind() ValueKind
	Type() Type
	String() string
}

// Const is a compile-time-known scalar value: an integer, float, or the
// nil/null constant for a nilable pointer (SPEC_FULL.md supplemented
// feature 1).
type Const struct {
	ValType  Type
	IntVal   uint64
	FloatVal float64
	IsFloat  bool
	IsNull   bool
}

func (c *Const) ValueKind() ValueKind { return ValueConst }
func (c *Const) Type() Type           { return c.ValType }

func (c *Const) String() string {
	switch {
	case c.IsNull:
		return "null"
	case c.IsFloat:
		return strconv.FormatFloat(c.FloatVal, 'g', -1, 64)
	default:
		return strconv.FormatUint(c.IntVal, 10)
	}
}

// NewIntConst constructs an integer constant of the given IR type.
func NewIntConst(t Type, v uint64) *Const { return &Const{ValType: t, IntVal: v} }

// NewFloatConst constructs a float constant of the given IR type.
func NewFloatConst(t Type, v float64) *Const { return &Const{ValType: t, FloatVal: v, IsFloat: true} }

// NewNullConst constructs the nil value of a nilable pointer type.
func NewNullConst(t Type) *Const { return &Const{ValType: t, IsNull: true} }

// Param is an incoming function parameter, addressable as an SSA value
// before the generator allocas and stores it (spec §4.8 step 3: "alloca
// each parameter and store the incoming parameter value").
type Param struct {
	Name    string
	ValType Type
	id      int
}

func (p *Param) ValueKind() ValueKind { return ValueParam }
func (p *Param) Type() Type           { return p.ValType }
func (p *Param) String() string       { return "%" + strconv.Itoa(p.id) }

// Global is a module-level constant or external data declaration.
type Global struct {
	Name    string
	ValType Type
	Linkage Linkage
	Init    Value // nil for an imported/external global
}

func (g *Global) ValueKind() ValueKind { return ValueGlobal }
func (g *Global) Type() Type           { return Ptr }
func (g *Global) String() string       { return "@" + g.Name }

// blockRef lets a *BasicBlock itself be used as a Value (phi incoming
// edges name both a value and the block it came from).
type blockRef struct{ b *BasicBlock }

func (r blockRef) ValueKind() ValueKind { return ValueBlock }
func (r blockRef) Type() Type           { return Ptr }
func (r blockRef) String() string       { return "%" + r.b.Label() }
