// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package spacegraph

import (
	"fmt"

	"github.com/brightlinemedia/spacegraph/composition"
	"github.com/brightlinemedia/spacegraph/treecode"
)

// TopologicalMap is the bidirectional, sealed address book of every space
// reachable from a root SpaceObject: a treecode.Code for every SpaceRef, and
// the SpaceRef for every assigned Code. It is built once by Build and never
// mutated afterward.
//
// Construction order, per SPEC_FULL.md §4.4: an entity's InternalSpaces are a
// chain, each one descending one left-step from the previous (the first
// reuses the parent's incoming code unchanged); the entity's child slots are
// a chain of right-steps off the last internal space; entering a child
// entity from its slot is one more left-step, which is also the cross-entity
// identity edge that projection.Build special-cases.
type TopologicalMap struct {
	root    SpaceRef
	codeOf  map[refKey]treecode.Code
	spaceOf map[string]SpaceRef
}

// Build walks root's SpaceObject graph depth-first and assigns a treecode.Code
// to every space it exposes, directly or through any descendant reached via
// NumChildren/ChildEntity.
func Build(root composition.SpaceObject) (*TopologicalMap, error) {
	if root == nil {
		return nil, fmt.Errorf("spacegraph: cannot build a map with a nil root")
	}
	spaces := root.InternalSpaces()
	if len(spaces) == 0 {
		return nil, fmt.Errorf("spacegraph: root exposes no internal spaces")
	}
	m := &TopologicalMap{
		codeOf:  make(map[refKey]treecode.Code),
		spaceOf: make(map[string]SpaceRef),
		root:    SpaceRef{Entity: root, Label: spaces[0]},
	}
	if err := assignEntity(root, treecode.Root(), m); err != nil {
		return nil, err
	}
	return m, nil
}

// assignEntity assigns codes to every space of entity, rooted at code, then
// recurses into each child entity.
func assignEntity(entity composition.SpaceObject, code treecode.Code, m *TopologicalMap) error {
	spaces := entity.InternalSpaces()
	cur := code
	for i, label := range spaces {
		if i > 0 {
			cur = cur.AppendLeft()
		}
		m.assign(SpaceRef{Entity: entity, Label: label}, cur)
	}

	n := entity.NumChildren()
	if n == 0 {
		return nil
	}
	slotCode := cur
	for i := 0; i < n; i++ {
		slotCode = slotCode.AppendRight()
		m.assign(SpaceRef{Entity: entity, Label: composition.SpaceChild, ChildIndex: i}, slotCode)

		child := entity.ChildEntity(i)
		if child == nil {
			continue
		}
		childSpace, ok := child.(composition.SpaceObject)
		if !ok {
			return fmt.Errorf("spacegraph: child %T of %T does not implement SpaceObject", child, entity)
		}
		if err := assignEntity(childSpace, slotCode.AppendLeft(), m); err != nil {
			return err
		}
	}
	return nil
}

func (m *TopologicalMap) assign(ref SpaceRef, code treecode.Code) {
	m.codeOf[keyOf(ref)] = code
	m.spaceOf[code.Hash()] = ref
}

// Root returns the map's root SpaceRef: the root entity's first internal
// space.
func (m *TopologicalMap) Root() SpaceRef { return m.root }

// All returns every SpaceRef assigned a code, in no particular order. It
// exists for diagnostic consumers (e.g. the dot package) that need to walk
// the whole map rather than a single path.
func (m *TopologicalMap) All() []SpaceRef {
	out := make([]SpaceRef, 0, len(m.codeOf))
	for key := range m.codeOf {
		out = append(out, key.ref())
	}
	return out
}

// CodeFor returns the treecode.Code assigned to ref, or ErrSpaceNotInMap.
func (m *TopologicalMap) CodeFor(ref SpaceRef) (treecode.Code, error) {
	code, ok := m.codeOf[keyOf(ref)]
	if !ok {
		return treecode.Code{}, ErrSpaceNotInMap
	}
	return code, nil
}

// SpaceFor returns the SpaceRef assigned to code, or ErrTreeCodeNotInMap.
func (m *TopologicalMap) SpaceFor(code treecode.Code) (SpaceRef, error) {
	ref, ok := m.spaceOf[code.Hash()]
	if !ok {
		return SpaceRef{}, ErrTreeCodeNotInMap
	}
	return ref, nil
}

// PathExists reports whether a and b lie on a common ancestor-descendant
// line, per treecode.PathExists.
func (m *TopologicalMap) PathExists(a, b SpaceRef) (bool, error) {
	ca, err := m.CodeFor(a)
	if err != nil {
		return false, err
	}
	cb, err := m.CodeFor(b)
	if err != nil {
		return false, err
	}
	return treecode.PathExists(ca, cb), nil
}

// descendantOrEqual reports whether c names a space at or below ancestor in
// the tree, using the fact that treecode.Code.String() is the MSB-first bit
// path from root: c is at-or-below ancestor iff ancestor's path string is a
// literal string-prefix of c's.
func descendantOrEqual(ancestor, c treecode.Code) bool {
	as, cs := ancestor.String(), c.String()
	if len(as) > len(cs) {
		return false
	}
	return as == cs[:len(as)]
}

// subtreeSpaces returns every SpaceRef in m whose code lies at or below
// ancestor, ordered by treecode.Code.Less (length, then bit pattern): a
// stable order in which shorter (shallower) codes come before longer ones.
func (m *TopologicalMap) subtreeSpaces(ancestor treecode.Code) []SpaceRef {
	type entry struct {
		code treecode.Code
		ref  SpaceRef
	}
	var entries []entry
	for key, code := range m.codeOf {
		if descendantOrEqual(ancestor, code) {
			entries = append(entries, entry{code: code, ref: key.ref()})
		}
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].code.Less(entries[j-1].code); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	out := make([]SpaceRef, len(entries))
	for i, e := range entries {
		out[i] = e.ref
	}
	return out
}
