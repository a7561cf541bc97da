package selection

import (
	"propmatch/internal/descriptor"
)

// EnumeratePaths lists every selectable path of info, parents before
// children, in property order. Paths have at most maxDepth segments
// (DefaultMaxDepth when maxDepth <= 0). Sequence and map elements are not
// entered, and a type already on the current path is not entered again.
//
// Example: for Order{ID, Customer{Name}} it returns
//   - ID
//   - Customer
//   - Customer.Name
func EnumeratePaths(info TypeInfo, maxDepth int) []*PropertySelection {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var out []*PropertySelection
	onPath := map[string]bool{}
	if info.Type != nil {
		onPath[info.Type.Deref().QualifiedName()] = true
	}

	enumeratePaths(info, nil, onPath, 1, maxDepth, &out)

	return out
}

func enumeratePaths(
	info TypeInfo,
	parent *PropertySelection,
	onPath map[string]bool,
	depth, maxDepth int,
	out *[]*PropertySelection,
) {
	for _, p := range info.Properties {
		sel := parent.extend(p)
		*out = append(*out, sel)

		if depth >= maxDepth {
			continue
		}

		t := p.Type.Deref()
		if t == nil || (!t.IsStruct() && t.Kind != descriptor.KindInterface) {
			continue
		}

		key := t.QualifiedName()
		if onPath[key] {
			continue
		}

		onPath[key] = true
		enumeratePaths(info.child(t), sel, onPath, depth+1, maxDepth, out)
		delete(onPath, key)
	}
}
