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
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Context owns all source text loaded during a compilation, interns
// strings, numbers source files, and emits located diagnostics (spec §4.1).
// A Context is not safe for concurrent use; the compiler is single-threaded
// (spec §5).
type Context struct {
	files  []*File
	byPath map[string]FileID
	intern *Interner

	diagnostics []Diagnostic
	hasErrors   bool

	// ByteDiagnostics selects byte-offset form over line:col form when
	// formatting a diagnostic (spec §6 --byte-diagnostics).
	ByteDiagnostics bool
	// Color enables ANSI severity colouring of formatted diagnostics (spec
	// §6 --nocolor, inverted).
	Color bool
}

// NewContext constructs an empty context.  Color defaults to whatever
// golang.org/x/term reports for stderr, mirroring the teacher's CLI
// colour-auto-detection; callers wanting --nocolor semantics simply set
// Color = false afterwards.
func NewContext() *Context {
	return &Context{
		byPath: make(map[string]FileID),
		intern: NewInterner(),
		Color:  term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// LoadOrGet loads a file from disk, or returns the FileID of a
// previously-loaded file with the same path (spec §4.1 load_or_get is
// idempotent by path).  On failure, a sentinel FileID is returned and a
// Fatal diagnostic is recorded.
func (c *Context) LoadOrGet(path string) FileID {
	if id, ok := c.byPath[path]; ok {
		return id
	}
	//
	bytes, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Error("failed to load source file")
		c.Diagnose(Fatal, Location{}, "could not read source file %q: %v", path, err)
		//
		return NoFile
	}
	//
	return c.Add(path, bytes)
}

// Add registers in-memory source text under the given name, as if it had
// been loaded from disk.  Used by tests and by synthetic/embedded sources.
func (c *Context) Add(name string, text []byte) FileID {
	if id, ok := c.byPath[name]; ok {
		return id
	}
	//
	id := FileID(len(c.files) + 1)
	c.files = append(c.files, &File{id: id, name: name, text: text})
	c.byPath[name] = id
	//
	return id
}

// File returns the file with the given id, or nil if none exists (e.g. the
// NoFile sentinel).
func (c *Context) File(id FileID) *File {
	if id == NoFile || int(id) > len(c.files) {
		return nil
	}
	//
	return c.files[id-1]
}

// Intern interns a byte slice through this context's shared string arena
// (spec §4.1 intern).
func (c *Context) Intern(bytes []byte) string {
	return c.intern.Intern(bytes)
}

// Diagnose emits a located diagnostic.  Error, Fatal and Ice severities set
// the context-wide error flag that downstream passes must check before
// proceeding (spec §4.1, §7).
func (c *Context) Diagnose(severity Severity, loc Location, format string, args ...any) {
	d := Diagnostic{severity, loc, fmt.Sprintf(format, args...)}
	c.diagnostics = append(c.diagnostics, d)
	//
	if severity.IsError() {
		c.hasErrors = true
	}
}

// HasErrors reports whether any Error, Fatal or Ice diagnostic has been
// recorded yet.
func (c *Context) HasErrors() bool {
	return c.hasErrors
}

// Diagnostics returns every diagnostic recorded so far, in emission order.
func (c *Context) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Format renders a diagnostic as "<path>:<line>:<col>: <severity>: <msg>",
// or the byte-offset form "<path>:<offset>: <severity>: <msg>" when
// ByteDiagnostics is set (spec §4.1, §7).
func (c *Context) Format(d Diagnostic) string {
	file := c.File(d.Location.File)
	//
	var position string
	//
	switch {
	case file == nil:
		position = "<unknown>"
	case c.ByteDiagnostics:
		position = fmt.Sprintf("%s:%d", file.Name(), d.Location.Span.Start())
	default:
		line, col := file.LineCol(d.Location.Span.Start())
		position = fmt.Sprintf("%s:%d:%d", file.Name(), line, col)
	}
	//
	severity := d.Severity.String()
	if c.Color {
		severity = colorFor(d.Severity) + severity + colorReset
	}
	//
	return fmt.Sprintf("%s: %s: %s", position, severity, d.Message)
}

const colorReset = "\x1b[0m"

func colorFor(s Severity) string {
	switch s {
	case Warning:
		return "\x1b[33m"
	case Error, Fatal, Ice:
		return "\x1b[31m"
	default:
		return "\x1b[36m"
	}
}
