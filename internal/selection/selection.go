package selection

import (
	"fmt"
	"strings"

	"propmatch/internal/descriptor"
)

// PropertySelection is one node of a chain of property accesses, e.g. the
// Name of Customer.Address.Name. The selection is referenced by its leaf and
// Parent leads back to the root. Nodes are never modified once built.
type PropertySelection struct {
	property *descriptor.Property
	parent   *PropertySelection
}

// extend appends p to the chain. A nil receiver starts a new chain.
func (s *PropertySelection) extend(p *descriptor.Property) *PropertySelection {
	return &PropertySelection{property: p, parent: s}
}

// Property returns the selected (leaf) property.
func (s *PropertySelection) Property() *descriptor.Property {
	return s.property
}

// Parent returns the selection of the preceding path segment, nil at the root.
func (s *PropertySelection) Parent() *PropertySelection {
	return s.parent
}

// PropertyType returns the type of the selected property.
func (s *PropertySelection) PropertyType() *descriptor.Type {
	return s.property.Type
}

// Root returns the first node of the chain.
func (s *PropertySelection) Root() *PropertySelection {
	for s.parent != nil {
		s = s.parent
	}

	return s
}

// RootDeclaringType returns the type declaring the first property of the chain.
func (s *PropertySelection) RootDeclaringType() *descriptor.Type {
	return s.Root().property.DeclaringType
}

// Len returns the number of properties in the chain.
func (s *PropertySelection) Len() int {
	n := 0
	for ; s != nil; s = s.parent {
		n++
	}

	return n
}

// Path returns the nodes of the chain, root first.
func (s *PropertySelection) Path() []*PropertySelection {
	out := make([]*PropertySelection, s.Len())
	for i := len(out) - 1; s != nil; s, i = s.parent, i-1 {
		out[i] = s
	}

	return out
}

// Properties returns the properties of the chain, root first.
func (s *PropertySelection) Properties() []*descriptor.Property {
	path := s.Path()
	out := make([]*descriptor.Property, len(path))
	for i, n := range path {
		out[i] = n.property
	}

	return out
}

// WritePropertyPath writes the dot separated path, root first.
func (s *PropertySelection) WritePropertyPath(sb *strings.Builder) {
	if s.parent != nil {
		s.parent.WritePropertyPath(sb)
		sb.WriteByte('.')
	}
	sb.WriteString(s.property.Name)
}

// String returns the dot separated path, e.g. "Bar.Name".
func (s *PropertySelection) String() string {
	var sb strings.Builder
	s.WritePropertyPath(&sb)

	return sb.String()
}

// FlattenedPath returns the property names concatenated, e.g. "BarName".
func (s *PropertySelection) FlattenedPath() string {
	var sb strings.Builder
	for _, p := range s.Properties() {
		sb.WriteString(p.Name)
	}

	return sb.String()
}

// CanSetValue reports whether every property of the chain can be written.
func (s *PropertySelection) CanSetValue() bool {
	for ; s != nil; s = s.parent {
		if !s.property.CanWrite {
			return false
		}
	}

	return true
}

// Equal reports whether both chains select the same property at every position.
func (s *PropertySelection) Equal(other *PropertySelection) bool {
	for s != nil && other != nil {
		if s == other {
			return true
		}
		if !s.property.Equal(other.property) {
			return false
		}
		s, other = s.parent, other.parent
	}

	return s == nil && other == nil
}

// SelectChild resolves name against the selected property type and returns
// the longer chain, or nil when name cannot be resolved. Every property of
// the property type is eligible; name may be dotted or PascalCase.
func (s *PropertySelection) SelectChild(name string) *PropertySelection {
	return s.selectChild(name, NewTypeInfo(s.PropertyType(), AllRetriever))
}

// SelectChildIn is SelectChild with an explicit property retriever.
func (s *PropertySelection) SelectChildIn(name string, retriever PropertiesRetriever) *PropertySelection {
	return s.selectChild(name, NewTypeInfo(s.PropertyType(), retriever))
}

func (s *PropertySelection) selectChild(name string, info TypeInfo) *PropertySelection {
	child := Select(name, info)
	if child == nil {
		return nil
	}

	return child.WithParent(s)
}

// SelectChildProperty appends p to the chain. p must be declared by, or
// promoted into, the selected property type.
func (s *PropertySelection) SelectChildProperty(p *descriptor.Property) (*PropertySelection, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil property", ErrPropertyNotFound)
	}

	current := s.PropertyType()
	if !current.Deref().Declares(p) {
		return nil, fmt.Errorf("%w: %s was expected but was found %s",
			ErrDeclaringTypeMismatch, displayName(current), displayName(p.DeclaringType))
	}

	return s.extend(p), nil
}

// WithParent returns a copy of the chain whose root is attached under parent.
// Neither s nor parent is modified.
func (s *PropertySelection) WithParent(parent *PropertySelection) *PropertySelection {
	if parent == nil {
		return s
	}

	out := parent
	for _, n := range s.Path() {
		out = out.extend(n.property)
	}

	return out
}
