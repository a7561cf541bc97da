package descriptor

import (
	"path"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// UnknownStr is used when a value has no readable representation.
const UnknownStr = "unknown"

// Kind represents the shape of a type.
type Kind int

const (
	KindUnknown   Kind = iota
	KindBasic          // int, string, bool, etc. (named or not)
	KindStruct         // struct type
	KindPointer        // pointer to another type
	KindSlice          // slice of another type
	KindArray          // array of another type
	KindMap            // map from Key to Elem
	KindInterface      // interface type, properties come from methods
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindStruct:
		return "struct"
	case KindPointer:
		return "pointer"
	case KindSlice:
		return "slice"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindInterface:
		return "interface"
	default:
		return UnknownStr
	}
}

// Type describes a type in the model.
type Type struct {
	Name     string      // Type name for named and basic types, empty for composites
	PkgPath  string      // Import path of a named type, empty for builtins and composites
	Kind     Kind        // Shape of the type
	Elem     *Type       // Pointer, slice, array and map element
	Key      *Type       // Map key
	Len      int         // Array length
	Embedded []*Type     // Embedded (base) types in declaration order
	Props    []*Property // Properties declared by this type, in declaration order
	Origin   any         // Backing go/types.Type or reflect.Type, nil for synthetic types
}

// IsNamed reports whether the type has a name.
func (t *Type) IsNamed() bool {
	return t.Name != ""
}

// QualifiedName returns the identity of the type, e.g. "*example.com/store.Order".
func (t *Type) QualifiedName() string {
	if t == nil {
		return "<nil>"
	}

	return t.render(func(n *Type) string {
		if n.PkgPath == "" {
			return n.Name
		}
		return n.PkgPath + "." + n.Name
	})
}

// String returns the short form of the type, qualified by package alias, e.g. "*store.Order".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	return t.render(func(n *Type) string {
		if n.PkgPath == "" {
			return n.Name
		}
		return path.Base(n.PkgPath) + "." + n.Name
	})
}

func (t *Type) render(named func(*Type) string) string {
	if t.IsNamed() {
		return named(t)
	}

	switch t.Kind {
	case KindPointer:
		return "*" + t.Elem.render(named)
	case KindSlice:
		return "[]" + t.Elem.render(named)
	case KindArray:
		return "[" + strconv.Itoa(t.Len) + "]" + t.Elem.render(named)
	case KindMap:
		return "map[" + t.Key.render(named) + "]" + t.Elem.render(named)
	case KindStruct:
		parts := make([]string, 0, len(t.Props))
		for _, p := range t.Props {
			parts = append(parts, p.Name+" "+p.Type.render(named))
		}
		return "struct{" + strings.Join(parts, "; ") + "}"
	case KindInterface:
		parts := make([]string, 0, len(t.Props))
		for _, p := range t.Props {
			parts = append(parts, p.Name)
		}
		return "interface{" + strings.Join(parts, "; ") + "}"
	default:
		return UnknownStr
	}
}

// Equal reports whether both types have the same qualified name.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t == other {
		return true
	}

	return t.QualifiedName() == other.QualifiedName()
}

// Imports returns the sorted package paths needed to reference the type.
func (t *Type) Imports() []string {
	set := make(map[string]struct{})
	t.collectImports(set)

	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	slices.Sort(out)

	return out
}

func (t *Type) collectImports(set map[string]struct{}) {
	if t == nil {
		return
	}
	if t.IsNamed() {
		if t.PkgPath != "" {
			set[t.PkgPath] = struct{}{}
		}
		return
	}

	t.Key.collectImports(set)
	t.Elem.collectImports(set)
	for _, p := range t.Props {
		p.Type.collectImports(set)
	}
}

// Deref strips every pointer level.
func (t *Type) Deref() *Type {
	for t != nil && t.Kind == KindPointer {
		t = t.Elem
	}

	return t
}

// IsPointer reports whether the type is a pointer.
func (t *Type) IsPointer() bool {
	return t != nil && t.Kind == KindPointer
}

// IsStruct reports whether the type is a struct.
func (t *Type) IsStruct() bool {
	return t != nil && t.Kind == KindStruct
}

// IsSequence reports whether the type is a slice or an array.
func (t *Type) IsSequence() bool {
	return t != nil && (t.Kind == KindSlice || t.Kind == KindArray)
}

// Properties returns the declared properties followed by the promoted
// properties of embedded types. Pointers are dereferenced first.
//
// Promotion follows Go selector rules: the shallowest declaration of a name
// wins, and a name declared by two embedded types at the same depth is
// ambiguous and hidden, along with any deeper declaration.
func (t *Type) Properties() []*Property {
	root := t.Deref()
	if root == nil {
		return nil
	}

	var out []*Property
	seen := make(map[string]struct{})
	visited := map[*Type]struct{}{root: {}}
	level := []*Type{root}

	for len(level) > 0 {
		found := make(map[string]int)
		var candidates []*Property

		for _, lt := range level {
			for _, p := range lt.Props {
				if _, ok := seen[p.Name]; ok {
					continue
				}
				if found[p.Name] == 0 {
					candidates = append(candidates, p)
				}
				found[p.Name]++
			}
		}

		for _, p := range candidates {
			if found[p.Name] == 1 {
				out = append(out, p)
			}
		}
		for name := range found {
			seen[name] = struct{}{}
		}

		var next []*Type
		for _, lt := range level {
			for _, e := range lt.Embedded {
				e = e.Deref()
				if e == nil {
					continue
				}
				if _, ok := visited[e]; ok {
					continue
				}
				visited[e] = struct{}{}
				next = append(next, e)
			}
		}
		level = next
	}

	return out
}

// Lookup returns the property with the given name, searching declared
// properties first and then the embedded types.
func (t *Type) Lookup(name string) *Property {
	for _, p := range t.Properties() {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// Declares reports whether p is declared by t or promoted into t from an embedded type.
func (t *Type) Declares(p *Property) bool {
	if p == nil {
		return false
	}

	found := t.Lookup(p.Name)

	return found != nil && found.Equal(p)
}

// Property describes a member of a type.
type Property struct {
	Name          string            // Member name
	Type          *Type             // Declared type
	CanRead       bool              // Whether the member can be read
	CanWrite      bool              // Whether the member can be written
	DeclaringType *Type             // Type that declares the member
	Tag           reflect.StructTag // Raw struct tag, empty for methods
}

// Equal reports whether both properties have the same name, type and declaring type.
func (p *Property) Equal(other *Property) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p == other {
		return true
	}

	return p.Name == other.Name &&
		p.Type.Equal(other.Type) &&
		p.DeclaringType.Equal(other.DeclaringType)
}

// String returns "Declaring.Name".
func (p *Property) String() string {
	if p.DeclaringType == nil {
		return p.Name
	}

	return p.DeclaringType.String() + "." + p.Name
}

// TagName returns the first element of the tag value for key, or "" when
// the tag is absent or set to "-".
func (p *Property) TagName(key string) string {
	tag := p.Tag.Get(key)
	if tag == "" || tag == "-" {
		return ""
	}

	name, _, _ := strings.Cut(tag, ",")

	return name
}
