// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package dot renders a sealed spacegraph.TopologicalMap as a GraphViz dot
// graph, for debugging the treecode addressing a composition produces
// (SPEC_FULL.md §6).
package dot

import (
	"fmt"
	"io"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/spacegraph"
	"github.com/brightlinemedia/spacegraph/treecode"
)

// entityInfo is the subset of composition.SerializableObject every concrete
// SpaceObject entity also implements, used only to label nodes.
type entityInfo interface {
	Name() string
	SchemaName() string
}

// Write renders m as a dot graph to w. Each node is labeled
// "name.kind.path", where path is the treecode's binary path string (the
// root node, whose path is empty, is labeled with its hash instead); each
// edge runs from a space to the space reached by one AppendLeft or
// AppendRight step. Nodes with no outgoing edge (leaves of the addressing
// tree) are drawn as point-shaped dummies.
func Write(w io.Writer, m *spacegraph.TopologicalMap) error {
	refs := m.All()
	codeByRef := make(map[spacegraph.SpaceRef]treecode.Code, len(refs))
	for _, ref := range refs {
		code, err := m.CodeFor(ref)
		if err != nil {
			return err
		}
		codeByRef[ref] = code
	}

	type edge struct{ from, to string }
	var edges []edge
	hasOutgoing := make(map[string]bool, len(refs))
	for _, ref := range refs {
		code := codeByRef[ref]
		id := nodeID(code)
		for _, next := range []treecode.Code{code.AppendLeft(), code.AppendRight()} {
			if _, err := m.SpaceFor(next); err != nil {
				continue
			}
			edges = append(edges, edge{from: id, to: nodeID(next)})
			hasOutgoing[id] = true
		}
	}

	if _, err := fmt.Fprintln(w, "digraph topological_map {"); err != nil {
		return err
	}
	for _, ref := range refs {
		code := codeByRef[ref]
		id := nodeID(code)
		if hasOutgoing[id] {
			if _, err := fmt.Fprintf(w, "  %q [label=%q];\n", id, nodeLabel(ref, code)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "  %q [label=%q, shape=point];\n", id, nodeLabel(ref, code)); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "  %q -> %q;\n", e.from, e.to); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func nodeID(code treecode.Code) string {
	if code.Length() == 0 {
		return "root"
	}
	return code.Hash()
}

func nodeLabel(ref spacegraph.SpaceRef, code treecode.Code) string {
	name, kind := "?", fmt.Sprintf("%T", ref.Entity)
	if info, ok := ref.Entity.(entityInfo); ok {
		name, kind = info.Name(), info.SchemaName()
	}
	path := code.String()
	if path == "" {
		path = code.Hash()
	}
	label := fmt.Sprintf("%s.%s.%s", name, kind, path)
	if ref.Label == composition.SpaceChild {
		label = fmt.Sprintf("%s[%d]", label, ref.ChildIndex)
	}
	return label
}
