package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"propmatch/internal/descriptor"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

var (
	// ErrTypeNotFound is returned by Lookup and Resolve for an unknown type.
	ErrTypeNotFound = errors.New("type not found")
	// ErrAmbiguousType is returned by Resolve when a short package name
	// matches more than one loaded package.
	ErrAmbiguousType = errors.New("ambiguous type reference")
)

// Options controls how types are described.
type Options struct {
	// Methods folds X()/GetX()/SetX(v) methods of named struct types into properties.
	Methods bool
}

// Analyzer loads Go packages and describes their types.
type Analyzer struct {
	opts      Options
	graph     *TypeGraph
	typeCache map[types.Type]*descriptor.Type // Cache to handle recursive types
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{
		opts:      opts,
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*descriptor.Type),
	}
}

// LoadPackages loads the specified packages and adds their types to the graph.
// Patterns are standard Go package patterns (e.g., "./store", "propmatch/warehouse").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.AddPackage(pkg.Types)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// AddPackage describes the exported named types of pkg.
func (a *Analyzer) AddPackage(pkg *types.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.Path(),
		Name: pkg.Name(),
	}

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		id := TypeID{PkgPath: pkg.Path(), Name: name}
		a.graph.Types[id] = a.Describe(typeName.Type())
		pkgInfo.Types = append(pkgInfo.Types, id)
	}

	a.graph.Packages[pkg.Path()] = pkgInfo
}

// Lookup returns the descriptor of a named type of a loaded package.
func (a *Analyzer) Lookup(pkgPath, name string) (*descriptor.Type, error) {
	id := TypeID{PkgPath: pkgPath, Name: name}
	t := a.graph.GetType(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, id)
	}

	return t, nil
}

// Resolve looks up a type reference of the form "pkg.Name", where pkg is the
// package name, import path or last import path element of a loaded package.
func (a *Analyzer) Resolve(ref string) (*descriptor.Type, error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return nil, fmt.Errorf("%w: %q is not of the form pkg.Name", ErrTypeNotFound, ref)
	}
	pkgRef, name := ref[:i], ref[i+1:]

	var found []*descriptor.Type
	var paths []string
	for _, p := range a.graph.PackagesByName(pkgRef) {
		if t := a.graph.GetType(TypeID{PkgPath: p.Path, Name: name}); t != nil {
			found = append(found, t)
			paths = append(paths, p.Path)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s matches %s", ErrAmbiguousType, ref, strings.Join(paths, ", "))
	}
}

// Describe returns the descriptor of t. Named types are described once, so
// recursive types share their descriptor.
func (a *Analyzer) Describe(t types.Type) *descriptor.Type {
	t = types.Unalias(t)

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &descriptor.Type{
		Origin: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.describeNamed(tt, info)

	case *types.Basic:
		info.Kind = descriptor.KindBasic
		info.Name = tt.Name()

	default:
		a.describeUnderlying(tt, info)
	}

	return info
}

func (a *Analyzer) describeNamed(named *types.Named, info *descriptor.Type) {
	obj := named.Obj()
	info.Name = obj.Name()
	if obj.Pkg() != nil {
		info.PkgPath = obj.Pkg().Path()
	}

	a.describeUnderlying(named.Underlying(), info)

	switch info.Kind {
	case descriptor.KindStruct:
		if a.opts.Methods {
			info.Props = descriptor.FoldMethods(info, info.Props, a.methods(types.NewPointer(named)))
		}
	case descriptor.KindInterface:
		info.Props = descriptor.FoldMethods(info, nil, a.methods(named))
	}
}

// describeUnderlying fills the shape of info from t. Names are set by the caller.
func (a *Analyzer) describeUnderlying(t types.Type, info *descriptor.Type) {
	switch tt := t.(type) {
	case *types.Basic:
		info.Kind = descriptor.KindBasic

	case *types.Pointer:
		info.Kind = descriptor.KindPointer
		info.Elem = a.Describe(tt.Elem())

	case *types.Slice:
		info.Kind = descriptor.KindSlice
		info.Elem = a.Describe(tt.Elem())

	case *types.Array:
		info.Kind = descriptor.KindArray
		info.Len = int(tt.Len())
		info.Elem = a.Describe(tt.Elem())

	case *types.Map:
		info.Kind = descriptor.KindMap
		info.Key = a.Describe(tt.Key())
		info.Elem = a.Describe(tt.Elem())

	case *types.Struct:
		info.Kind = descriptor.KindStruct
		info.Props = a.describeFields(tt, info)

	case *types.Interface:
		info.Kind = descriptor.KindInterface
		if info.Name == "" {
			info.Props = descriptor.FoldMethods(info, nil, a.methods(tt))
		}

	default:
		// Channels, functions, type parameters, etc. are not matched
		info.Kind = descriptor.KindUnknown
		if info.Name == "" {
			info.Name = t.String()
		}
	}
}

// describeFields extracts exported fields and embedded types from a struct type.
func (a *Analyzer) describeFields(st *types.Struct, info *descriptor.Type) []*descriptor.Property {
	var props []*descriptor.Property

	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		if field.Embedded() {
			info.Embedded = append(info.Embedded, a.Describe(field.Type()))
			continue
		}
		if !field.Exported() {
			continue
		}

		props = append(props, &descriptor.Property{
			Name:          field.Name(),
			Type:          a.Describe(field.Type()),
			CanRead:       true,
			CanWrite:      true,
			DeclaringType: info,
			Tag:           reflect.StructTag(st.Tag(i)),
		})
	}

	return props
}

// methods lists the exported, non-variadic methods in the method set of t.
func (a *Analyzer) methods(t types.Type) []descriptor.Method {
	mset := types.NewMethodSet(t)

	out := make([]descriptor.Method, 0, mset.Len())
	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok || sig.Variadic() {
			continue
		}

		m := descriptor.Method{Name: fn.Name()}
		for j := 0; j < sig.Params().Len(); j++ {
			m.Params = append(m.Params, a.Describe(sig.Params().At(j).Type()))
		}
		for j := 0; j < sig.Results().Len(); j++ {
			m.Results = append(m.Results, a.Describe(sig.Results().At(j).Type()))
		}
		out = append(out, m)
	}

	return out
}
