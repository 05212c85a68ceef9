// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package graph is a small weighted directed graph used by the loader to
// order module start-up.
package graph

import (
	"sort"
	"sync"
)

type Node struct {
	ID string
}

func NewNode(id string) *Node {
	return &Node{ID: id}
}

func (n *Node) String() string {
	return n.ID
}

type Data struct {
	mu sync.Mutex

	nodes map[string]*Node
	// src -> dst -> weight
	edges map[string]map[string]float64
	// dst -> src set
	reverse map[string]map[string]struct{}
}

func New() *Data {
	return &Data{
		nodes:   make(map[string]*Node),
		edges:   make(map[string]map[string]float64),
		reverse: make(map[string]map[string]struct{}),
	}
}

// AddNode returns false if a node with the same ID already exists.
func (d *Data) AddNode(n *Node) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.nodes[n.ID]; ok {
		return false
	}
	d.nodes[n.ID] = n
	return true
}

func (d *Data) GetNodeByID(id string) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nodes[id]
}

func (d *Data) NodeCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.nodes)
}

// UpdateEdgeWeight adds the edge src -> dst, or overwrites its weight.
// Both nodes are added if missing.
func (d *Data) UpdateEdgeWeight(src, dst *Node, weight float64) {
	if src == nil || dst == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.nodes[src.ID]; !ok {
		d.nodes[src.ID] = src
	}
	if _, ok := d.nodes[dst.ID]; !ok {
		d.nodes[dst.ID] = dst
	}

	out, ok := d.edges[src.ID]
	if !ok {
		out = make(map[string]float64)
		d.edges[src.ID] = out
	}
	out[dst.ID] = weight

	in, ok := d.reverse[dst.ID]
	if !ok {
		in = make(map[string]struct{})
		d.reverse[dst.ID] = in
	}
	in[src.ID] = struct{}{}
}

func (d *Data) HasEdge(src, dst *Node) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.edges[src.ID][dst.ID]
	return ok
}

// TopologicalDag returns the nodes ordered so that every edge points
// forward. ok is false when the graph contains a cycle.
// Ties are broken by ID to keep the order stable.
func (d *Data) TopologicalDag() (nodes []*Node, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	inDegree := make(map[string]int, len(d.nodes))
	for id := range d.nodes {
		inDegree[id] = len(d.reverse[id])
	}

	var ready []string
	for id, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	nodes = make([]*Node, 0, len(d.nodes))
	for len(ready) != 0 {
		id := ready[0]
		ready = ready[1:]
		nodes = append(nodes, d.nodes[id])

		var next []string
		for dst := range d.edges[id] {
			inDegree[dst]--
			if inDegree[dst] == 0 {
				next = append(next, dst)
			}
		}
		sort.Strings(next)
		ready = append(ready, next...)
	}

	if len(nodes) != len(d.nodes) {
		return nil, false
	}
	return nodes, true
}
