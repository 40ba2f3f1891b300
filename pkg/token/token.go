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
package token

import "github.com/laye-lang/layec/pkg/source"

// Token is (kind, location, payload), where payload is one of integer,
// floating, or interned string, depending on Kind (spec §3).
type Token struct {
	Kind     Kind
	Location source.Location
	// IntValue holds the decoded value of an INT, INTSIZED/UINTSIZED/
	// BOOLSIZED width N, or FLOATSIZED width N.
	IntValue uint64
	// FloatValue holds the decoded value of a FLOAT literal.
	FloatValue float64
	// StringValue holds the interned text of an IDENT, STRING or RUNE
	// literal (decoded, i.e. escapes already processed).
	StringValue string
}

// String renders a token for diagnostics and tests.
func (t Token) String() string {
	switch t.Kind {
	case IDENT, STRING, RUNE:
		return t.StringValue
	case INT:
		return t.Kind.String()
	default:
		return t.Kind.String()
	}
}
