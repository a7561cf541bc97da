package reflectmodel

import (
	"reflect"
	"sync"

	"propmatch/internal/descriptor"
)

// Options controls how reflect types are described.
type Options struct {
	// Methods folds X()/GetX()/SetX(v) methods of struct types into properties.
	Methods bool
}

// Registry describes reflect types and caches the result. The same
// reflect.Type always yields the same *descriptor.Type, which makes
// recursive types finite. A Registry is safe for concurrent use.
type Registry struct {
	opts Options

	mu    sync.Mutex
	cache map[reflect.Type]*descriptor.Type
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:  opts,
		cache: make(map[reflect.Type]*descriptor.Type),
	}
}

// TypeOf describes t. A nil t yields nil.
func (r *Registry) TypeOf(t reflect.Type) *descriptor.Type {
	if t == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.describe(t)
}

// Of describes T.
func Of[T any](r *Registry) *descriptor.Type {
	return r.TypeOf(reflect.TypeFor[T]())
}

func (r *Registry) describe(t reflect.Type) *descriptor.Type {
	if cached, ok := r.cache[t]; ok {
		return cached
	}

	d := &descriptor.Type{
		Name:    t.Name(),
		PkgPath: t.PkgPath(),
		Origin:  t,
	}
	// cache before descending so that recursive types terminate
	r.cache[t] = d

	switch t.Kind() {
	case reflect.Pointer:
		d.Kind = descriptor.KindPointer
		d.Elem = r.describe(t.Elem())
	case reflect.Slice:
		d.Kind = descriptor.KindSlice
		d.Elem = r.describe(t.Elem())
	case reflect.Array:
		d.Kind = descriptor.KindArray
		d.Len = t.Len()
		d.Elem = r.describe(t.Elem())
	case reflect.Map:
		d.Kind = descriptor.KindMap
		d.Key = r.describe(t.Key())
		d.Elem = r.describe(t.Elem())
	case reflect.Struct:
		d.Kind = descriptor.KindStruct
		fields := r.describeFields(t, d)
		if r.opts.Methods && t.Name() != "" {
			d.Props = descriptor.FoldMethods(d, fields, r.methods(reflect.PointerTo(t), true))
		} else {
			d.Props = fields
		}
	case reflect.Interface:
		d.Kind = descriptor.KindInterface
		d.Props = descriptor.FoldMethods(d, nil, r.methods(t, false))
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Invalid:
		d.Kind = descriptor.KindUnknown
		if d.Name == "" {
			d.Name = t.String()
		}
	default:
		d.Kind = descriptor.KindBasic
	}

	return d
}

func (r *Registry) describeFields(t reflect.Type, d *descriptor.Type) []*descriptor.Property {
	var out []*descriptor.Property

	for i := range t.NumField() {
		f := t.Field(i)

		if f.Anonymous {
			d.Embedded = append(d.Embedded, r.describe(f.Type))
			continue
		}
		if !f.IsExported() {
			continue
		}

		out = append(out, &descriptor.Property{
			Name:          f.Name,
			Type:          r.describe(f.Type),
			CanRead:       true,
			CanWrite:      true,
			DeclaringType: d,
			Tag:           f.Tag,
		})
	}

	return out
}

// methods lists the exported methods of t. Method types of a concrete
// method set carry the receiver as first parameter, interface methods do not.
func (r *Registry) methods(t reflect.Type, hasReceiver bool) []descriptor.Method {
	skip := 0
	if hasReceiver {
		skip = 1
	}

	out := make([]descriptor.Method, 0, t.NumMethod())
	for i := range t.NumMethod() {
		m := t.Method(i)
		if !m.IsExported() || m.Type.IsVariadic() {
			continue
		}

		method := descriptor.Method{Name: m.Name}
		for j := skip; j < m.Type.NumIn(); j++ {
			method.Params = append(method.Params, r.describe(m.Type.In(j)))
		}
		for j := range m.Type.NumOut() {
			method.Results = append(method.Results, r.describe(m.Type.Out(j)))
		}
		out = append(out, method)
	}

	return out
}
