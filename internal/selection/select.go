package selection

import (
	"fmt"
	"strings"

	"propmatch/internal/descriptor"
	"propmatch/internal/match"
)

// Select resolves propertyName against target and returns the selection,
// or nil when it cannot be resolved.
//
// Resolution order:
//  1. a name containing '.' or '-' is split and every segment is resolved
//     against the type selected by the previous one
//  2. an exact, case sensitive property name
//  3. PascalCase decomposition: "BarName" resolves to Bar.Name when Bar is a
//     property whose type has a Name property. Leading words are assembled
//     shortest first; a candidate whose remaining words cannot be resolved is
//     abandoned for the next longer one.
func Select(propertyName string, target TypeInfo) *PropertySelection {
	if propertyName == "" {
		return nil
	}

	if strings.ContainsAny(propertyName, ".-") {
		return selectSegments(splitSegments(propertyName), target)
	}

	return selectName(propertyName, target, nil)
}

// SelectRequired is Select returning an error wrapping ErrPropertyNotFound
// when the property cannot be resolved.
func SelectRequired(propertyName string, target TypeInfo) (*PropertySelection, error) {
	if s := Select(propertyName, target); s != nil {
		return s, nil
	}

	return nil, fmt.Errorf("%w: the type '%s' does not have the property '%s'",
		ErrPropertyNotFound, target.typeName(), propertyName)
}

// SelectType resolves path against every property of t.
func SelectType(t *descriptor.Type, path string) (*PropertySelection, error) {
	return SelectRequired(path, NewTypeInfo(t, AllRetriever))
}

// TrySelectType resolves path against every property of t, nil when not found.
func TrySelectType(t *descriptor.Type, path string) *PropertySelection {
	return Select(path, NewTypeInfo(t, AllRetriever))
}

// splitSegments splits on '.' and '-', keeping empty segments so that
// "A..B" fails instead of resolving as "A.B".
func splitSegments(name string) []string {
	var segments []string

	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '.' || name[i] == '-' {
			segments = append(segments, name[start:i])
			start = i + 1
		}
	}

	return append(segments, name[start:])
}

func selectSegments(segments []string, target TypeInfo) *PropertySelection {
	var sel *PropertySelection
	info := target

	for _, seg := range segments {
		if seg == "" {
			return nil
		}

		next := selectName(seg, info, sel)
		if next == nil {
			return nil
		}

		sel = next
		info = info.child(sel.PropertyType())
	}

	return sel
}

// selectName resolves a single segment, appending the result to parent.
func selectName(name string, target TypeInfo, parent *PropertySelection) *PropertySelection {
	if p := target.lookup(name); p != nil {
		return parent.extend(p)
	}

	parts := match.SplitPascalCase(name)
	if len(parts) < 2 {
		return nil
	}

	return selectParts(parts, 0, target, parent, 0)
}

func selectParts(
	parts []string,
	position int,
	target TypeInfo,
	parent *PropertySelection,
	depth int,
) *PropertySelection {
	if depth >= target.depthLimit() {
		return nil
	}

	var current strings.Builder
	for i := position; i < len(parts); i++ {
		current.WriteString(parts[i])

		p := target.lookup(current.String())
		if p == nil {
			continue
		}

		sel := parent.extend(p)
		if i+1 == len(parts) {
			return sel
		}

		if next := selectParts(parts, i+1, target.child(p.Type), sel, depth+1); next != nil {
			return next
		}
	}

	return nil
}
