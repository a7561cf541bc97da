package match

import (
	"strings"
	"unicode"
)

// SplitPascalCase splits an identifier into words at capital letters.
// A capital starts a new word when the previous rune is not upper case,
// or when it ends a run of capitals and is followed by a lower case rune.
// '-' and ' ' also split and are dropped. '_' is kept and glues the words
// around it, so that a field named Foo_Bar can lead "Foo_BarName".
//
// Examples:
//   - "BethaGammaName" -> ["Betha", "Gamma", "Name"]
//   - "IDNumber" -> ["ID", "Number"]
//   - "IdNumber" -> ["Id", "Number"]
//   - "Item2Name" -> ["Item2", "Name"]
//   - "Foo_BarName" -> ["Foo_Bar", "Name"]
func SplitPascalCase(s string) []string {
	return tokenizeCamelCase(s, true)
}

// NormalizeIdent normalizes an identifier for fuzzy comparison:
// tokens are joined, lower-cased and stripped of separators.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s, false), ""))
}

// TokenizeIdent splits an identifier into lower case tokens.
func TokenizeIdent(s string) []string {
	tokens := tokenizeCamelCase(s, false)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

func tokenizeCamelCase(s string, keepUnderscore bool) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) && (r != '_' || !keepUnderscore) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	if !unicode.IsUpper(r) {
		return false
	}

	prev := runes[i-1]
	if isSeparator(prev) {
		return false
	}
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": the P closes the acronym
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
