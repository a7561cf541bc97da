package selection

import (
	"fmt"

	"propmatch/internal/descriptor"
)

// Flow tells which side of a match is read from.
type Flow int

const (
	// FlowForward reads origin properties and writes target properties.
	FlowForward Flow = iota
	// FlowBackward writes origin properties from target properties. It is
	// used to populate a new instance of the origin type.
	FlowBackward
)

// String returns "forward" or "backward".
func (f Flow) String() string {
	if f == FlowBackward {
		return "backward"
	}

	return "forward"
}

// MatchSelection pairs every origin property with a selection on the target.
type MatchSelection struct {
	origin  *descriptor.Type
	target  *descriptor.Type
	matches []*PropertyMatch
	flow    Flow

	conv descriptor.Converter
	opts *MatchOptions
}

// Match retrieves the properties of origin and target with the configured
// retrievers and matches them.
func Match(origin, target *descriptor.Type, conv descriptor.Converter, opts *MatchOptions) *MatchSelection {
	s := newSession(conv, opts)

	return s.match(origin, s.opts.OriginRetriever.Properties(origin), s.opts.TargetInfo(target), FlowForward, "")
}

// NewMatch matches explicit property lists. targetProps are the properties
// eligible on target itself; nested decomposition into property types uses
// the configured target retriever.
func NewMatch(
	origin *descriptor.Type,
	originProps []*descriptor.Property,
	target *descriptor.Type,
	targetProps []*descriptor.Property,
	conv descriptor.Converter,
	opts *MatchOptions,
) *MatchSelection {
	s := newSession(conv, opts)
	info := s.opts.TargetInfo(target)
	info.Properties = targetProps

	return s.match(origin, originProps, info, FlowForward, "")
}

// Origin returns the origin type.
func (m *MatchSelection) Origin() *descriptor.Type {
	return m.origin
}

// Target returns the target type.
func (m *MatchSelection) Target() *descriptor.Type {
	return m.target
}

// Flow returns the direction of the match.
func (m *MatchSelection) Flow() Flow {
	return m.flow
}

// Options returns the effective options of the match.
func (m *MatchSelection) Options() *MatchOptions {
	return m.opts
}

// PropertyMatches returns one match per origin property, in origin order.
func (m *MatchSelection) PropertyMatches() []*PropertyMatch {
	return m.matches
}

// HasMissingProperties returns the origin properties without a target selection.
func (m *MatchSelection) HasMissingProperties() ([]*descriptor.Property, bool) {
	var missing []*descriptor.Property
	for _, pm := range m.matches {
		if pm.IsMissing() {
			missing = append(missing, pm.Origin)
		}
	}

	return missing, len(missing) > 0
}

// HasNotAssignableProperties returns the matches found on the target whose
// types cannot be assigned.
func (m *MatchSelection) HasNotAssignableProperties() ([]*PropertyMatch, bool) {
	var out []*PropertyMatch
	for _, pm := range m.matches {
		if !pm.IsMissing() && !pm.CanAssign() {
			out = append(out, pm)
		}
	}

	return out, len(out) > 0
}

// EnsureAllMatched returns a *MismatchError listing every missing property.
func (m *MatchSelection) EnsureAllMatched() error {
	var missing []*PropertyMatch
	for _, pm := range m.matches {
		if pm.IsMissing() {
			missing = append(missing, pm)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return &MismatchError{Origin: m.origin, Target: m.target, Missing: missing}
}

// NestedAssignment describes how the intermediate object at Path is built
// from the origin, e.g. the Bar of a BarId matched to Bar.Id.
type NestedAssignment struct {
	Path *PropertySelection
	// Assign is nil when the intermediate object cannot be built from the origin.
	Assign *AssignDescriptor
}

// NestedAssignments resolves every intermediate path segment reached by a
// decomposed match. The properties of the segment type are looked up on the
// origin with the flattened segment path as prefix, so that Bar.Id reads
// BarId. Segments that are themselves the target of a match are skipped.
func (m *MatchSelection) NestedAssignments() []NestedAssignment {
	if m.flow != FlowForward {
		return nil
	}

	direct := make(map[string]bool, len(m.matches))
	for _, pm := range m.matches {
		if !pm.IsMissing() {
			direct[pm.Target.String()] = true
		}
	}

	s := newSession(m.conv, m.opts)
	seen := make(map[string]bool)

	var out []NestedAssignment
	for _, pm := range m.matches {
		if pm.IsMissing() || pm.Target.Len() < 2 {
			continue
		}

		path := pm.Target.Path()
		for _, node := range path[:len(path)-1] {
			key := node.String()
			if seen[key] || direct[key] {
				continue
			}
			seen[key] = true

			out = append(out, NestedAssignment{
				Path:   node,
				Assign: s.nestedInstance(node.PropertyType(), m.origin, node.FlattenedPath()),
			})
		}
	}

	return out
}

func (s *session) nestedInstance(left, origin *descriptor.Type, prefix string) *AssignDescriptor {
	if left.IsPointer() {
		elem := s.nestedInstance(left.Elem, origin, prefix)
		if elem == nil {
			return nil
		}

		return &AssignDescriptor{
			Type:     AssignNullableUnwrap,
			Left:     left,
			Right:    origin,
			Nullable: NullableWrap,
			Elem:     elem,
		}
	}

	if !left.IsStruct() {
		return nil
	}

	d, ok := s.newInstance(left, origin, prefix)
	if !ok {
		return nil
	}

	return d
}

// PropertyMatch pairs an origin property with its target selection.
type PropertyMatch struct {
	Origin *descriptor.Property
	// Target is nil when the origin property has no counterpart.
	Target *PropertySelection

	originType *descriptor.Type
	targetType *descriptor.Type
	flow       Flow
	assign     *AssignDescriptor

	conv descriptor.Converter
	opts *MatchOptions
}

// IsMissing reports whether no target selection was found.
func (pm *PropertyMatch) IsMissing() bool {
	return pm.Target == nil
}

// Assign returns how the value is assigned, nil when missing or not assignable.
func (pm *PropertyMatch) Assign() *AssignDescriptor {
	return pm.assign
}

// CanAssign reports whether a target was found and the types are compatible.
func (pm *PropertyMatch) CanAssign() bool {
	return pm.assign != nil
}

// InverseAssign classifies the assignment in the opposite direction, from
// the selected target value back into the origin property. It is nil when
// the property is missing or the reverse assignment does not exist.
func (pm *PropertyMatch) InverseAssign() *AssignDescriptor {
	if pm.IsMissing() {
		return nil
	}

	s := newSession(pm.conv, pm.opts)
	if pm.flow == FlowBackward {
		return s.resolve(pm.Target.PropertyType(), pm.Origin.Type)
	}

	return s.resolve(pm.Origin.Type, pm.Target.PropertyType())
}

// TypeMatch is CanAssign.
func (pm *PropertyMatch) TypeMatch() bool {
	return pm.CanAssign()
}

// OriginType returns the type whose properties were matched.
func (pm *PropertyMatch) OriginType() *descriptor.Type {
	return pm.originType
}

// TargetType returns the type the properties were matched against.
func (pm *PropertyMatch) TargetType() *descriptor.Type {
	return pm.targetType
}

// NoMatchMessage describes a missing property.
func (pm *PropertyMatch) NoMatchMessage() string {
	declaring := pm.Origin.DeclaringType
	if declaring == nil {
		declaring = pm.originType
	}

	return fmt.Sprintf("The property '%s' of type '%s' has no-match to a property of type '%s'.",
		pm.Origin.Name, displayName(declaring), displayName(pm.targetType))
}

// String renders "Origin -> Target.Path" or "Origin -> <missing>".
func (pm *PropertyMatch) String() string {
	if pm.IsMissing() {
		return pm.Origin.Name + " -> <missing>"
	}

	return pm.Origin.Name + " -> " + pm.Target.String()
}
