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

// shortInternThreshold is the maximum byte length eligible for the shared
// short-string arena; longer strings are allocated individually and merely
// tracked (spec §4.1 "longer strings are allocated freshly and tracked for
// destruction").
const shortInternThreshold = 32

// Interner deduplicates identifier, string and rune literal payloads.  Short
// strings are interned into a shared map (the "arena"); longer strings get
// their own allocation but are still tracked so a Context can account for
// everything it has interned.
type Interner struct {
	short   map[string]string
	tracked []string
}

// NewInterner constructs an empty interner.
func NewInterner() *Interner {
	return &Interner{short: make(map[string]string)}
}

// Intern returns a canonical string for the given bytes.  Calling Intern
// twice with equal bytes returns identical strings for short inputs; longer
// inputs are not deduplicated against each other, matching spec §4.1.
func (in *Interner) Intern(bytes []byte) string {
	if len(bytes) <= shortInternThreshold {
		if existing, ok := in.short[string(bytes)]; ok {
			return existing
		}
		//
		s := string(bytes)
		in.short[s] = s
		//
		return s
	}
	//
	s := string(bytes)
	in.tracked = append(in.tracked, s)
	//
	return s
}

// Count returns the number of distinct short strings plus long strings
// currently tracked by this interner; used only for diagnostics/tests.
func (in *Interner) Count() int {
	return len(in.short) + len(in.tracked)
}
