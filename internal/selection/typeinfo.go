package selection

import (
	"propmatch/internal/descriptor"
)

// TypeInfo is a type together with the properties that may be selected on it.
// It remembers the retriever that produced the properties so that nested
// lookups into property types follow the same rule.
type TypeInfo struct {
	Type       *descriptor.Type
	Properties []*descriptor.Property

	retriever PropertiesRetriever
	maxDepth  int
}

// NewTypeInfo retrieves the properties of t. A nil retriever selects all properties.
func NewTypeInfo(t *descriptor.Type, retriever PropertiesRetriever) TypeInfo {
	if retriever == nil {
		retriever = AllRetriever
	}

	return TypeInfo{
		Type:       t,
		Properties: retriever.Properties(t),
		retriever:  retriever,
		maxDepth:   DefaultMaxDepth,
	}
}

// WithMaxDepth returns a copy of the TypeInfo with a different decomposition depth bound.
func (ti TypeInfo) WithMaxDepth(depth int) TypeInfo {
	if depth > 0 {
		ti.maxDepth = depth
	}

	return ti
}

func (ti TypeInfo) child(t *descriptor.Type) TypeInfo {
	next := NewTypeInfo(t, ti.retriever)
	next.maxDepth = ti.depthLimit()

	return next
}

func (ti TypeInfo) depthLimit() int {
	if ti.maxDepth <= 0 {
		return DefaultMaxDepth
	}

	return ti.maxDepth
}

func (ti TypeInfo) lookup(name string) *descriptor.Property {
	for _, p := range ti.Properties {
		if p.Name == name {
			return p
		}
	}

	return nil
}

func (ti TypeInfo) typeName() string {
	return displayName(ti.Type)
}

// displayName returns the bare type name used in messages.
func displayName(t *descriptor.Type) string {
	if t == nil {
		return "<nil>"
	}
	if d := t.Deref(); d != nil && d.IsNamed() {
		return d.Name
	}

	return t.String()
}
