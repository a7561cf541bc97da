package match

import (
	"sort"
)

// Suggestion is a candidate name with its similarity to the requested name.
type Suggestion struct {
	Name  string
	Score float64 // Normalized Levenshtein similarity (0-1)
}

// SuggestionList is a list of suggestions sorted by score.
type SuggestionList []Suggestion

// DefaultMinScore is the similarity below which a candidate is not suggested.
const DefaultMinScore = 0.5

// Suggest ranks candidates by similarity to name and returns at most limit
// entries scoring at least DefaultMinScore. A candidate whose normalized form
// ends with the normalized name (e.g. "BarName" for "Name") scores at least
// DefaultMinScore, since decomposed paths often end with the requested name.
func Suggest(name string, candidates []string, limit int) SuggestionList {
	target := NormalizeIdent(name)

	var out SuggestionList
	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}

		norm := NormalizeIdent(c)
		score := LevenshteinNormalized(norm, target)
		if score < DefaultMinScore && target != "" && hasSuffix(norm, target) {
			score = DefaultMinScore
		}
		if score < DefaultMinScore {
			continue
		}

		out = append(out, Suggestion{Name: c, Score: score})
	}

	sort.Sort(out)

	return out.Top(limit)
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

// Names returns the suggested names in rank order.
func (l SuggestionList) Names() []string {
	names := make([]string, 0, len(l))
	for _, s := range l {
		names = append(names, s.Name)
	}

	return names
}

// Top returns the first n suggestions; n <= 0 returns all of them.
func (l SuggestionList) Top(n int) SuggestionList {
	if n <= 0 || n >= len(l) {
		return l
	}

	return l[:n]
}

// Len implements sort.Interface.
func (l SuggestionList) Len() int { return len(l) }

// Swap implements sort.Interface.
func (l SuggestionList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (l SuggestionList) Less(i, j int) bool {
	if l[i].Score != l[j].Score {
		return l[i].Score > l[j].Score
	}

	return l[i].Name < l[j].Name
}
