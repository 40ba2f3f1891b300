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
package depgraph_test

import (
	"testing"

	"github.com/laye-lang/layec/pkg/depgraph"
	"github.com/laye-lang/layec/pkg/util/assert"
)

func indexOf(order []string, e string) int {
	for i, v := range order {
		if v == e {
			return i
		}
	}
	//
	return -1
}

func TestGraph_OrderedRespectsDependencies(t *testing.T) {
	g := depgraph.New[string]()
	g.AddDependency("a", "b")
	g.AddDependency("b", "c")
	//
	order, _, hasCycle := g.Ordered()
	assert.False(t, hasCycle, "")
	assert.True(t, indexOf(order, "c") < indexOf(order, "b"), "c must precede b")
	assert.True(t, indexOf(order, "b") < indexOf(order, "a"), "b must precede a")
}

func TestGraph_DetectsDirectCycle(t *testing.T) {
	g := depgraph.New[string]()
	g.AddDependency("a", "b")
	g.AddDependency("b", "a")
	//
	_, cyc, hasCycle := g.Ordered()
	assert.True(t, hasCycle, "")
	assert.True(t, cyc.From == "a" || cyc.From == "b", "")
}

func TestGraph_DetectsSelfCycle(t *testing.T) {
	g := depgraph.New[string]()
	g.AddDependency("a", "a")
	//
	_, cyc, hasCycle := g.Ordered()
	assert.True(t, hasCycle, "")
	assert.Equal(t, "a", cyc.From, "")
	assert.Equal(t, "a", cyc.To, "")
}

func TestGraph_EmptyGraphOrdersTrivially(t *testing.T) {
	g := depgraph.New[int]()
	order, _, hasCycle := g.Ordered()
	//
	assert.False(t, hasCycle, "")
	assert.Equal(t, 0, len(order), "")
}

func TestGraph_EnsureTrackedWithoutEdges(t *testing.T) {
	g := depgraph.New[int]()
	g.EnsureTracked(1)
	g.EnsureTracked(2)
	//
	order, _, hasCycle := g.Ordered()
	assert.False(t, hasCycle, "")
	assert.Equal(t, 2, len(order), "")
}
