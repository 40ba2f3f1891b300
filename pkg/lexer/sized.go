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
package lexer

import (
	"strconv"

	"github.com/laye-lang/layec/pkg/token"
)

// classifySized checks whether text matches the sized-primitive pattern
// `i<N>`, `u<N>`, `f<N>` or `b<N>` where the remaining characters are all
// digits, reclassifying it into the corresponding *SIZED token kind (spec
// §4.2).  f<N> is restricted to 32/64/80/128; i/u/b<N> to 1..=65535.
func classifySized(text string) (ok bool, kind token.Kind, width uint64) {
	if len(text) < 2 {
		return false, 0, 0
	}
	//
	prefix := text[0]
	digits := text[1:]
	//
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false, 0, 0
		}
	}
	//
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return false, 0, 0
	}
	//
	switch prefix {
	case 'i':
		if n >= 1 && n <= 65535 {
			return true, token.INTSIZED, n
		}
	case 'u':
		if n >= 1 && n <= 65535 {
			return true, token.UINTSIZED, n
		}
	case 'b':
		if n >= 1 && n <= 65535 {
			return true, token.BOOLSIZED, n
		}
	case 'f':
		if n == 32 || n == 64 || n == 80 || n == 128 {
			return true, token.FLOATSIZED, n
		}
	}
	//
	return false, 0, 0
}
