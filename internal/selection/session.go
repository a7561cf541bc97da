package selection

import (
	"math"

	"propmatch/internal/descriptor"
)

// session holds the state of one Match or Assign call. Nothing outlives it,
// so concurrent calls never share state.
type session struct {
	conv  descriptor.Converter
	opts  *MatchOptions
	depth int

	// inProgress holds the NewInstance descriptors being resolved. A pair met
	// again while its own properties are being matched resolves to the pending
	// descriptor, which is completed once the outer resolution succeeds.
	inProgress map[pairKey]pending
	// resolved holds finished NewInstance outcomes, nil for a failure. Only
	// outcomes that relied on no enclosing pending pair and on no depth cut
	// are stored.
	resolved map[pairKey]*AssignDescriptor

	// low is the lowest stack position of a pending pair the resolution in
	// progress relied on, math.MaxInt when none.
	low int
	// cut is set when the depth guard rejected a pair.
	cut bool
}

type pairKey struct {
	left, right, prefix string
}

type pending struct {
	desc *AssignDescriptor
	pos  int
}

func newSession(conv descriptor.Converter, opts *MatchOptions) *session {
	if conv == nil {
		conv = descriptor.NameConverter{}
	}

	return &session{
		conv:       conv,
		opts:       opts.withDefaults(),
		inProgress: make(map[pairKey]pending),
		resolved:   make(map[pairKey]*AssignDescriptor),
		low:        math.MaxInt,
	}
}

func (s *session) resolve(left, right *descriptor.Type) *AssignDescriptor {
	if left == nil || right == nil {
		return nil
	}
	if s.depth >= s.opts.MaxDepth {
		s.cut = true
		return nil
	}

	s.depth++
	defer func() { s.depth-- }()

	ctx := &AssignContext{s: s}
	for _, r := range s.opts.AssignResolvers {
		if d, ok := r.TryResolve(left, right, ctx); ok {
			return d
		}
	}
	for _, r := range builtinResolvers {
		if d, ok := r.TryResolve(left, right, ctx); ok {
			return d
		}
	}

	return nil
}

// newInstance matches the writable properties of left against the readable
// properties of right. prefix is prepended to every lookup name, so that
// with prefix "Bar" the property Id of left is looked up as BarId in right.
func (s *session) newInstance(left, right *descriptor.Type, prefix string) (*AssignDescriptor, bool) {
	key := pairKey{left: left.QualifiedName(), right: right.QualifiedName(), prefix: prefix}
	if d, ok := s.resolved[key]; ok {
		return d, d != nil
	}
	if p, ok := s.inProgress[key]; ok {
		s.low = min(s.low, p.pos)
		return p.desc, true
	}

	leftProps := s.opts.TargetRetriever.Properties(left)
	if len(leftProps) == 0 {
		s.resolved[key] = nil
		return nil, false
	}

	rightInfo := NewTypeInfo(right, s.opts.OriginRetriever).WithMaxDepth(s.opts.MaxDepth)
	if len(rightInfo.Properties) == 0 {
		s.resolved[key] = nil
		return nil, false
	}

	pos := len(s.inProgress)
	d := &AssignDescriptor{Type: AssignNewInstance, Left: left, Right: right}
	s.inProgress[key] = pending{desc: d, pos: pos}

	outerLow, outerCut := s.low, s.cut
	s.low, s.cut = math.MaxInt, false

	inner := s.match(left, leftProps, rightInfo, FlowBackward, prefix)
	delete(s.inProgress, key)

	_, missing := inner.HasMissingProperties()
	_, notAssignable := inner.HasNotAssignableProperties()
	ok := !missing && !notAssignable
	if ok {
		d.InnerSelection = inner
	} else {
		d = nil
	}

	if s.low >= pos && !s.cut {
		s.resolved[key] = d
	}
	s.low, s.cut = min(outerLow, s.low), outerCut || s.cut

	return d, ok
}

func (s *session) match(
	origin *descriptor.Type,
	originProps []*descriptor.Property,
	target TypeInfo,
	flow Flow,
	prefix string,
) *MatchSelection {
	m := &MatchSelection{
		origin:  origin,
		target:  target.Type,
		flow:    flow,
		conv:    s.conv,
		opts:    s.opts,
		matches: make([]*PropertyMatch, 0, len(originProps)),
	}

	for _, p := range originProps {
		// name resolvers rename origin properties; a backward match holds
		// target properties here
		name := p.Name
		if flow == FlowForward {
			name = s.opts.lookupName(p)
		}
		name = prefix + name

		pm := &PropertyMatch{
			Origin:     p,
			Target:     Select(name, target),
			originType: origin,
			targetType: target.Type,
			flow:       flow,
			conv:       s.conv,
			opts:       s.opts,
		}
		if pm.Target != nil {
			pm.assign = s.resolvePair(pm)
		}
		m.matches = append(m.matches, pm)
	}

	return m
}

func (s *session) resolvePair(pm *PropertyMatch) *AssignDescriptor {
	if pm.flow == FlowBackward {
		return s.resolve(pm.Origin.Type, pm.Target.PropertyType())
	}

	return s.resolve(pm.Target.PropertyType(), pm.Origin.Type)
}
