package descriptor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Method is the part of a method signature relevant to property discovery.
// Params and Results exclude the receiver.
type Method struct {
	Name    string
	Params  []*Type
	Results []*Type
}

// FoldMethods turns getter and setter methods into properties of declaring
// and returns them after the given field properties.
//
//   - X() T and GetX() T declare a readable property X of type T
//   - SetX(T) declares a writable property X of type T
//
// A field with the same name wins over methods. A setter whose parameter
// type differs from the getter result is ignored.
func FoldMethods(declaring *Type, fields []*Property, methods []Method) []*Property {
	out := make([]*Property, 0, len(fields)+len(methods))
	out = append(out, fields...)

	byName := make(map[string]*Property, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	fromField := make(map[string]bool, len(fields))
	for _, f := range fields {
		fromField[f.Name] = true
	}

	var setters []Method
	for _, m := range methods {
		if len(m.Params) == 1 && len(m.Results) == 0 && accessorName(m.Name, "Set") != "" {
			setters = append(setters, m)
			continue
		}
		if len(m.Params) != 0 || len(m.Results) != 1 {
			continue
		}

		name := m.Name
		if stripped := accessorName(m.Name, "Get"); stripped != "" {
			name = stripped
		}
		if _, ok := byName[name]; ok {
			continue
		}

		p := &Property{
			Name:          name,
			Type:          m.Results[0],
			CanRead:       true,
			DeclaringType: declaring,
		}
		byName[name] = p
		out = append(out, p)
	}

	for _, m := range setters {
		name := accessorName(m.Name, "Set")
		if fromField[name] {
			continue
		}

		if p, ok := byName[name]; ok {
			if p.Type.Equal(m.Params[0]) {
				p.CanWrite = true
			}
			continue
		}

		p := &Property{
			Name:          name,
			Type:          m.Params[0],
			CanWrite:      true,
			DeclaringType: declaring,
		}
		byName[name] = p
		out = append(out, p)
	}

	return out
}

// accessorName strips prefix from an accessor method name, e.g. GetName -> Name.
// Returns "" when the remainder does not start with an upper case letter.
func accessorName(method, prefix string) string {
	rest, ok := strings.CutPrefix(method, prefix)
	if !ok || rest == "" {
		return ""
	}

	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return ""
	}

	return rest
}
