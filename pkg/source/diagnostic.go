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

// Severity classifies a diagnostic.  Error and Fatal set the owning
// Context's error flag; Fatal and Ice additionally abort further processing
// of the current module (spec §7).
type Severity uint8

const (
	// Info is a purely informational message.
	Info Severity = iota
	// Note supplements a preceding diagnostic with extra context.
	Note
	// Warning flags a likely mistake that does not prevent compilation.
	Warning
	// Error flags a definite mistake; compilation cannot succeed.
	Error
	// Fatal is an unrecoverable error; the current module's processing
	// stops immediately.
	Fatal
	// Ice is an internal compiler error: a broken invariant, not a user
	// mistake.
	Ice
)

// String renders the severity the way it appears in a formatted diagnostic.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal error"
	case Ice:
		return "internal compiler error"
	default:
		return "unknown"
	}
}

// IsError reports whether this severity represents an error condition
// (Error, Fatal or Ice) for the purposes of the context-wide error flag.
func (s Severity) IsError() bool {
	return s >= Error
}

// Diagnostic is a single located message produced by any compiler phase.
// Diagnostics flow from every component back to the owning Context (spec
// §2), which accumulates them rather than unwinding the call stack.
type Diagnostic struct {
	Severity Severity
	Location Location
	Message  string
}
