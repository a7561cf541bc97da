package selection

import (
	"propmatch/internal/descriptor"
)

// AssignType is the strategy used to move a right-hand value into a left-hand location.
type AssignType int

const (
	// AssignDirect assigns the value as is.
	AssignDirect AssignType = iota
	// AssignCast converts the value with a conversion expression.
	AssignCast
	// AssignNullableUnwrap dereferences, takes the address of, or lifts a pointer.
	AssignNullableUnwrap
	// AssignEnumerableProjection projects a sequence element by element.
	AssignEnumerableProjection
	// AssignNewInstance builds a new left-hand value property by property.
	AssignNewInstance
)

// String returns a human-readable name for the assign type.
func (a AssignType) String() string {
	switch a {
	case AssignDirect:
		return "direct"
	case AssignCast:
		return "cast"
	case AssignNullableUnwrap:
		return "nullable_unwrap"
	case AssignEnumerableProjection:
		return "enumerable_projection"
	case AssignNewInstance:
		return "new_instance"
	default:
		return descriptor.UnknownStr
	}
}

// NullableMode tells which side of a NullableUnwrap assignment is a pointer.
type NullableMode int

const (
	// NullableUnwrap dereferences a pointer right-hand value (*T -> T).
	NullableUnwrap NullableMode = iota
	// NullableWrap takes the address of the right-hand value (T -> *T).
	NullableWrap
	// NullableLift maps a pointer to a pointer, keeping nil (*T -> *U).
	NullableLift
)

// String returns a human-readable name for the mode.
func (m NullableMode) String() string {
	switch m {
	case NullableUnwrap:
		return "unwrap"
	case NullableWrap:
		return "wrap"
	case NullableLift:
		return "lift"
	default:
		return descriptor.UnknownStr
	}
}

// AssignDescriptor describes how a right-hand value is assigned to a left-hand location.
type AssignDescriptor struct {
	Type  AssignType
	Left  *descriptor.Type
	Right *descriptor.Type

	// Nullable is set for AssignNullableUnwrap.
	Nullable NullableMode
	// Elem is the element assignment of AssignNullableUnwrap and AssignEnumerableProjection.
	Elem *AssignDescriptor
	// InnerSelection populates the new instance of AssignNewInstance. For a
	// recursive type graph it may refer back to an enclosing descriptor.
	InnerSelection *MatchSelection
}

// AssignResolver recognizes one assignment strategy.
type AssignResolver interface {
	TryResolve(left, right *descriptor.Type, ctx *AssignContext) (*AssignDescriptor, bool)
}

// AssignResolverFunc adapts a function to the AssignResolver interface.
type AssignResolverFunc func(left, right *descriptor.Type, ctx *AssignContext) (*AssignDescriptor, bool)

// TryResolve implements AssignResolver.
func (f AssignResolverFunc) TryResolve(left, right *descriptor.Type, ctx *AssignContext) (*AssignDescriptor, bool) {
	return f(left, right, ctx)
}

// AssignContext gives resolvers access to the host model, the options and
// recursive resolution within the same resolution session.
type AssignContext struct {
	s *session
}

// Converter returns the host conversion model.
func (c *AssignContext) Converter() descriptor.Converter {
	return c.s.conv
}

// Options returns the effective options.
func (c *AssignContext) Options() *MatchOptions {
	return c.s.opts
}

// Resolve classifies a nested pair, e.g. slice elements.
func (c *AssignContext) Resolve(left, right *descriptor.Type) *AssignDescriptor {
	return c.s.resolve(left, right)
}

// NewInstance tries to build left property by property from right.
func (c *AssignContext) NewInstance(left, right *descriptor.Type) (*AssignDescriptor, bool) {
	return c.s.newInstance(left, right, "")
}

// Assign classifies how a value of type right is assigned to a location of
// type left. It returns nil when no strategy applies, which is the normal
// outcome for unrelated types.
func Assign(left, right *descriptor.Type, conv descriptor.Converter, opts *MatchOptions) *AssignDescriptor {
	return newSession(conv, opts).resolve(left, right)
}

// DefaultAssignResolvers returns the built-in resolvers in the order they run.
func DefaultAssignResolvers() []AssignResolver {
	return []AssignResolver{
		directResolver{},
		castResolver{},
		nullableResolver{},
		enumerableResolver{},
		innerTypeResolver{},
	}
}

var builtinResolvers = DefaultAssignResolvers()

type directResolver struct{}

func (directResolver) TryResolve(left, right *descriptor.Type, ctx *AssignContext) (*AssignDescriptor, bool) {
	if !left.Equal(right) && !ctx.Converter().Classify(right, left).IsImplicit() {
		return nil, false
	}

	return &AssignDescriptor{Type: AssignDirect, Left: left, Right: right}, true
}

type castResolver struct{}

func (castResolver) TryResolve(left, right *descriptor.Type, ctx *AssignContext) (*AssignDescriptor, bool) {
	if ctx.Options().StrictConversions {
		return nil, false
	}
	if ctx.Converter().Classify(right, left) != descriptor.ConversionExplicit {
		return nil, false
	}

	return &AssignDescriptor{Type: AssignCast, Left: left, Right: right}, true
}

type nullableResolver struct{}

func (nullableResolver) TryResolve(left, right *descriptor.Type, ctx *AssignContext) (*AssignDescriptor, bool) {
	var (
		mode        NullableMode
		inner, from *descriptor.Type
	)

	switch {
	case left.IsPointer() && right.IsPointer():
		mode, inner, from = NullableLift, left.Elem, right.Elem
	case right.IsPointer():
		mode, inner, from = NullableUnwrap, left, right.Elem
	case left.IsPointer():
		mode, inner, from = NullableWrap, left.Elem, right
	default:
		return nil, false
	}

	elem := ctx.Resolve(inner, from)
	if elem == nil {
		return nil, false
	}

	return &AssignDescriptor{
		Type:     AssignNullableUnwrap,
		Left:     left,
		Right:    right,
		Nullable: mode,
		Elem:     elem,
	}, true
}

type enumerableResolver struct{}

func (enumerableResolver) TryResolve(left, right *descriptor.Type, ctx *AssignContext) (*AssignDescriptor, bool) {
	if !left.IsSequence() || !right.IsSequence() {
		return nil, false
	}

	elem := ctx.Resolve(left.Elem, right.Elem)
	if elem == nil {
		return nil, false
	}

	return &AssignDescriptor{
		Type:  AssignEnumerableProjection,
		Left:  left,
		Right: right,
		Elem:  elem,
	}, true
}

type innerTypeResolver struct{}

func (innerTypeResolver) TryResolve(left, right *descriptor.Type, ctx *AssignContext) (*AssignDescriptor, bool) {
	if !left.IsStruct() {
		return nil, false
	}

	return ctx.NewInstance(left, right)
}
