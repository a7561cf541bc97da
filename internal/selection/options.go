package selection

import (
	"propmatch/internal/descriptor"
)

// DefaultMaxDepth bounds PascalCase decomposition depth and nested
// NewInstance resolution on self-referential type graphs.
const DefaultMaxDepth = 32

// PropertiesRetriever selects the properties of a type that take part in matching.
type PropertiesRetriever interface {
	Properties(t *descriptor.Type) []*descriptor.Property
}

// RetrieverFunc adapts a function to the PropertiesRetriever interface.
type RetrieverFunc func(t *descriptor.Type) []*descriptor.Property

// Properties implements PropertiesRetriever.
func (f RetrieverFunc) Properties(t *descriptor.Type) []*descriptor.Property {
	return f(t)
}

var (
	// ReadableRetriever returns the properties that can be read from. It is
	// the default origin retriever.
	ReadableRetriever PropertiesRetriever = RetrieverFunc(func(t *descriptor.Type) []*descriptor.Property {
		return filterProperties(t, func(p *descriptor.Property) bool { return p.CanRead })
	})

	// WritableRetriever returns the properties that can be written to. It is
	// the default target retriever.
	WritableRetriever PropertiesRetriever = RetrieverFunc(func(t *descriptor.Type) []*descriptor.Property {
		return filterProperties(t, func(p *descriptor.Property) bool { return p.CanWrite })
	})

	// AllRetriever returns every property.
	AllRetriever PropertiesRetriever = RetrieverFunc(func(t *descriptor.Type) []*descriptor.Property {
		return t.Properties()
	})
)

func filterProperties(t *descriptor.Type, keep func(*descriptor.Property) bool) []*descriptor.Property {
	all := t.Properties()
	out := make([]*descriptor.Property, 0, len(all))
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}

	return out
}

// NameResolver supplies the name used to look up an origin property in the
// target. Returning false defers to the next resolver, then to the property name.
type NameResolver interface {
	ResolveName(p *descriptor.Property) (string, bool)
}

// TagNameResolver reads the lookup name from a struct tag, e.g. `map:"Customer.Name"`.
type TagNameResolver struct {
	Key string
}

// ResolveName implements NameResolver.
func (r TagNameResolver) ResolveName(p *descriptor.Property) (string, bool) {
	name := p.TagName(r.Key)

	return name, name != ""
}

// AliasResolver maps origin property names to lookup names.
type AliasResolver map[string]string

// ResolveName implements NameResolver.
func (r AliasResolver) ResolveName(p *descriptor.Property) (string, bool) {
	name, ok := r[p.Name]

	return name, ok && name != ""
}

// MatchOptions controls property retrieval, name resolution and assignment
// classification. A nil *MatchOptions means DefaultOptions.
type MatchOptions struct {
	// OriginRetriever selects origin properties. Defaults to ReadableRetriever.
	OriginRetriever PropertiesRetriever
	// TargetRetriever selects target properties. Defaults to WritableRetriever.
	TargetRetriever PropertiesRetriever
	// NameResolvers are asked in order for the lookup name of an origin property.
	NameResolvers []NameResolver
	// AssignResolvers run before the built-in resolvers, in order.
	AssignResolvers []AssignResolver
	// MaxDepth bounds recursion. Zero means DefaultMaxDepth.
	MaxDepth int
	// StrictConversions disables the Cast assignment (explicit conversions).
	StrictConversions bool
}

// DefaultOptions returns a new MatchOptions with default settings.
func DefaultOptions() *MatchOptions {
	return &MatchOptions{
		OriginRetriever: ReadableRetriever,
		TargetRetriever: WritableRetriever,
		MaxDepth:        DefaultMaxDepth,
	}
}

// withDefaults returns a copy of o with unset fields filled in.
func (o *MatchOptions) withDefaults() *MatchOptions {
	if o == nil {
		return DefaultOptions()
	}

	out := *o
	if out.OriginRetriever == nil {
		out.OriginRetriever = ReadableRetriever
	}
	if out.TargetRetriever == nil {
		out.TargetRetriever = WritableRetriever
	}
	if out.MaxDepth <= 0 {
		out.MaxDepth = DefaultMaxDepth
	}

	return &out
}

// OriginInfo builds the TypeInfo of an origin type.
func (o *MatchOptions) OriginInfo(t *descriptor.Type) TypeInfo {
	opts := o.withDefaults()

	return NewTypeInfo(t, opts.OriginRetriever).WithMaxDepth(opts.MaxDepth)
}

// TargetInfo builds the TypeInfo of a target type.
func (o *MatchOptions) TargetInfo(t *descriptor.Type) TypeInfo {
	opts := o.withDefaults()

	return NewTypeInfo(t, opts.TargetRetriever).WithMaxDepth(opts.MaxDepth)
}

func (o *MatchOptions) lookupName(p *descriptor.Property) string {
	for _, r := range o.NameResolvers {
		if name, ok := r.ResolveName(p); ok {
			return name
		}
	}

	return p.Name
}
