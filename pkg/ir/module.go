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

import "strings"

// Module is one Laye source module's generated IR: its named struct types,
// its globals, and its functions (spec §3: "functions live in modules").
type Module struct {
	Name           string
	SourceFilename string

	Structs   []Type
	Globals   []*Global
	Functions []*Function
}

// NewModule constructs an empty IR module.
func NewModule(name, sourceFilename string) *Module {
	return &Module{Name: name, SourceFilename: sourceFilename}
}

// FunctionByName looks up an already-declared function by name, used by
// the generator's first pass to avoid declaring the same import twice.
func (m *Module) FunctionByName(name string) *Function {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	//
	return nil
}

// String renders the module in the LYIR textual format named in spec §6:
// "; ModuleID" and "source_filename", then named struct types, then
// globals, then functions.
func (m *Module) String() string {
	var b strings.Builder
	//
	b.WriteString("; ModuleID = '")
	b.WriteString(m.Name)
	b.WriteString("'\n")
	b.WriteString("source_filename = \"")
	b.WriteString(m.SourceFilename)
	b.WriteString("\"\n\n")
	//
	for _, st := range m.Structs {
		b.WriteString(st.structDecl())
		b.WriteByte('\n')
	}
	//
	if len(m.Structs) != 0 {
		b.WriteByte('\n')
	}
	//
	for _, g := range m.Globals {
		b.WriteString("@")
		b.WriteString(g.Name)
		b.WriteString(" = ")
		b.WriteString(g.Linkage.String())
		b.WriteString(" global ")
		b.WriteString(g.ValType.String())
		//
		if g.Init != nil {
			b.WriteByte(' ')
			b.WriteString(g.Init.String())
		}
		//
		b.WriteByte('\n')
	}
	//
	if len(m.Globals) != 0 {
		b.WriteByte('\n')
	}
	//
	for _, fn := range m.Functions {
		b.WriteString(fn.printBody())
		b.WriteByte('\n')
	}
	//
	return b.String()
}
