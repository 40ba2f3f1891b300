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

// Package depgraph implements a generic dependency DAG keyed by opaque
// entities (spec §4.5). Its one user is the module/import resolver (§4.4),
// which orders modules and detects import cycles with it; semantic analysis
// does not use it.
package depgraph

// Graph is a directed graph over comparable entity keys. The zero value is
// not usable; construct with New.
type Graph[E comparable] struct {
	nodes   map[E]bool
	order   []E // insertion order, so traversal (and cycle reports) is deterministic
	edges   map[E][]E
}

// New constructs an empty graph.
func New[E comparable]() *Graph[E] {
	return &Graph[E]{nodes: make(map[E]bool), edges: make(map[E][]E)}
}

// EnsureTracked registers e as a node if it is not already one. It is safe
// to call redundantly; adding an edge to an untracked node also implicitly
// tracks it, so most callers never need to call this directly.
func (g *Graph[E]) EnsureTracked(e E) {
	if !g.nodes[e] {
		g.nodes[e] = true
		g.order = append(g.order, e)
	}
}

// AddDependency records that from depends on to (an edge from -> to). Both
// ends are tracked automatically.
func (g *Graph[E]) AddDependency(from, to E) {
	g.EnsureTracked(from)
	g.EnsureTracked(to)
	g.edges[from] = append(g.edges[from], to)
}

// Cycle names the back-edge pair that closed a cycle, so a diagnostic can
// point at the exact two entities responsible (spec §4.5, §4.4, §8).
type Cycle[E comparable] struct {
	From, To E
}

// Ordered computes a topological order over the graph's dependencies: if
// from depends on to, to precedes from in the result. On success it
// returns (order, Cycle{}, false). If the graph has a cycle, it returns
// (nil, cycle, true) naming the first back-edge DFS observed, matching the
// "(from, to) pair causing it" wording of spec §4.5.
func (g *Graph[E]) Ordered() ([]E, Cycle[E], bool) {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	//
	color := make(map[E]int, len(g.nodes))
	order := make([]E, 0, len(g.nodes))
	//
	var cyc Cycle[E]
	var hasCycle bool
	//
	var visit func(e E) bool
	visit = func(e E) bool {
		color[e] = grey
		//
		for _, dep := range g.edges[e] {
			switch color[dep] {
			case white:
				if !visit(dep) {
					return false
				}
			case grey:
				cyc = Cycle[E]{From: e, To: dep}
				hasCycle = true
				//
				return false
			}
		}
		//
		color[e] = black
		order = append(order, e)
		//
		return true
	}
	//
	for _, e := range g.order {
		if color[e] == white {
			if !visit(e) {
				return nil, cyc, hasCycle
			}
		}
	}
	//
	return order, Cycle[E]{}, false
}
