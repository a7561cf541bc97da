package analyze

import (
	"path"
	"slices"
	"strings"

	"propmatch/internal/descriptor"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "propmatch/store"
	Name    string // e.g., "OrderSummary"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeGraph holds all described types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to the descriptor of every exported named type.
	Types map[TypeID]*descriptor.Type
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*descriptor.Type),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the descriptor for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *descriptor.Type {
	return g.Types[id]
}

// PackagesByName returns the loaded packages whose name, import path or
// last import path element equals ref.
func (g *TypeGraph) PackagesByName(ref string) []*PackageInfo {
	if p, ok := g.Packages[ref]; ok {
		return []*PackageInfo{p}
	}

	var out []*PackageInfo
	for _, p := range g.Packages {
		if p.Name == ref || path.Base(p.Path) == ref {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b *PackageInfo) int { return strings.Compare(a.Path, b.Path) })

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
