// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

// Composition is an Item that owns an ordered list of heterogeneous
// children (Track and Stack).
type Composition interface {
	Item

	// CompositionKind names the concrete kind ("Track", "Stack") for
	// diagnostics and dot-format node labels.
	CompositionKind() string

	Children() []Composable
	SetChildren(children []Composable) error
	AppendChild(child Composable) error
	IndexOfChild(child Composable) (int, error)
}

// CompositionBase is the embeddable base implementation shared by Track and
// Stack. Reparenting uses the embedded ComposableBase's Self() so that a
// child's Parent() resolves to the concrete *Track/*Stack value rather than
// to this base struct; concrete types must call SetSelf immediately after
// construction, per the Composable contract.
type CompositionBase struct {
	ItemBase
	children []Composable
}

// NewCompositionBase builds a CompositionBase.
func NewCompositionBase(name string, metadata AnyDictionary, effects []Effect, markers []*Marker, color *Color) CompositionBase {
	return CompositionBase{
		ItemBase: NewItemBase(name, nil, metadata, effects, markers, color),
		children: make([]Composable, 0),
	}
}

// Children returns the composition's ordered children.
func (c *CompositionBase) Children() []Composable { return c.children }

// SetChildren replaces all children, reparenting each one to Self().
func (c *CompositionBase) SetChildren(children []Composable) error {
	for _, old := range c.children {
		old.SetParent(nil)
	}
	c.children = make([]Composable, 0, len(children))
	for _, child := range children {
		if err := c.AppendChild(child); err != nil {
			return err
		}
	}
	return nil
}

// AppendChild appends child, reparenting it to Self().
func (c *CompositionBase) AppendChild(child Composable) error {
	if child.Parent() != nil {
		return ErrChildAlreadyHasParent
	}
	self, _ := c.Self().(SpaceObject)
	child.SetParent(self)
	c.children = append(c.children, child)
	return nil
}

// IndexOfChild returns the index of child, or ErrNotFound.
func (c *CompositionBase) IndexOfChild(child Composable) (int, error) {
	for i, ch := range c.children {
		if ch == child {
			return i, nil
		}
	}
	return -1, ErrNotFound
}
