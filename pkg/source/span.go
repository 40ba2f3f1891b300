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

// FileID uniquely identifies a loaded source file within a Context.  Zero is
// reserved as the sentinel returned when a file failed to load.
type FileID uint32

// NoFile is the sentinel FileID returned by LoadOrGet on failure.
const NoFile FileID = 0

// Span identifies a contiguous byte range [Start,End) within a single
// source file.  Spans are value objects and may be combined with Union.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span covering [start,end).
func NewSpan(start, end int) Span {
	if end < start {
		end = start
	}
	//
	return Span{start, end}
}

// Start returns the byte offset of the first character in this span.
func (s Span) Start() int { return s.start }

// End returns the byte offset one past the last character in this span.
func (s Span) End() int { return s.end }

// Length returns the number of bytes covered by this span.
func (s Span) Length() int { return s.end - s.start }

// Union computes the smallest span which encloses both this span and other.
func (s Span) Union(other Span) Span {
	start := min(s.start, other.start)
	end := max(s.end, other.end)
	//
	return Span{start, end}
}

// Location identifies a span of text within a specific source file.
// Locations are value objects; see spec §3.
type Location struct {
	File FileID
	Span Span
}

// NewLocation constructs a location within the given file.
func NewLocation(file FileID, start, end int) Location {
	return Location{file, NewSpan(start, end)}
}

// Union computes the smallest location enclosing both locations, provided
// they share the same file.  If the files differ, the receiver is returned
// unchanged since there is no sensible combined span across files.
func (l Location) Union(other Location) Location {
	if l.File != other.File {
		return l
	}
	//
	return Location{l.File, l.Span.Union(other.Span)}
}
