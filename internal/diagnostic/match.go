package diagnostic

import (
	"fmt"

	"propmatch/internal/descriptor"
	"propmatch/internal/match"
	"propmatch/internal/selection"
)

// Diagnostic codes.
const (
	CodeMissing       = "PM001"
	CodeNotAssignable = "PM002"
	CodeConversion    = "PM003"
	CodeNestedBuild   = "PM004"
)

const (
	maxSuggestions  = 3
	suggestionDepth = 4
)

// FromMatch reports every missing and not assignable property of m, the
// assignments that convert or dereference, and the intermediate objects of
// decomposed paths that cannot be built from the origin.
func FromMatch(m *selection.MatchSelection) Diagnostics {
	var d Diagnostics
	pair := TypePair(m.Origin(), m.Target())

	var candidates *suggester
	for _, pm := range m.PropertyMatches() {
		switch {
		case pm.IsMissing():
			if candidates == nil {
				candidates = newSuggester(m)
			}
			d.AddError(CodeMissing, pm.NoMatchMessage(), pair, pm.Origin.Name, candidates.suggest(pm.Origin.Name)...)

		case !pm.CanAssign():
			d.AddWarning(CodeNotAssignable,
				fmt.Sprintf("cannot assign %s to %s %s", pm.Origin.Type, pm.Target, pm.Target.PropertyType()),
				pair, pm.Origin.Name)

		default:
			if note := conversionNote(pm.Assign()); note != "" {
				d.AddInfo(CodeConversion, note, pair, pm.Origin.Name)
			}
		}
	}

	for _, n := range m.NestedAssignments() {
		if n.Assign != nil {
			continue
		}
		d.AddWarning(CodeNestedBuild,
			fmt.Sprintf("%s %s cannot be built from %s", n.Path, n.Path.PropertyType(), m.Origin()),
			pair, n.Path.String())
	}

	return d
}

// conversionNote describes assignments that are not plain copies.
func conversionNote(a *selection.AssignDescriptor) string {
	if a == nil {
		return ""
	}

	switch a.Type {
	case selection.AssignCast:
		return fmt.Sprintf("converts %s to %s", a.Right, a.Left)
	case selection.AssignNullableUnwrap:
		if a.Nullable == selection.NullableUnwrap {
			return fmt.Sprintf("dereferences %s, nil yields the zero %s", a.Right, a.Left)
		}
		return conversionNote(a.Elem)
	case selection.AssignEnumerableProjection:
		return conversionNote(a.Elem)
	default:
		return ""
	}
}

// suggester ranks the target paths of a match by similarity to a name.
type suggester struct {
	flattened []string
	dotted    map[string]string
}

func newSuggester(m *selection.MatchSelection) *suggester {
	paths := selection.EnumeratePaths(m.Options().TargetInfo(m.Target()), suggestionDepth)

	s := &suggester{dotted: make(map[string]string, len(paths))}
	for _, p := range paths {
		flat := p.FlattenedPath()
		if _, ok := s.dotted[flat]; ok {
			continue
		}
		s.dotted[flat] = p.String()
		s.flattened = append(s.flattened, flat)
	}

	return s
}

func (s *suggester) suggest(name string) []string {
	ranked := match.Suggest(name, s.flattened, maxSuggestions)

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, s.dotted[r.Name])
	}

	return out
}

// TypePair renders the pair of a match the way FromMatch does.
func TypePair(origin, target *descriptor.Type) string {
	return origin.String() + " -> " + target.String()
}
