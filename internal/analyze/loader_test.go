package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propmatch/internal/descriptor"
)

const modelSrc = `package model

type Status string

type Node struct {
	Name   string
	Next   *Node
	hidden int
}

type Base struct {
	ID int
}

type Entity struct {
	Base
	Title  string ` + "`map:\"Name\"`" + `
	Tags   []string
	Scores map[string]int
	Grid   [2]int
	Status Status
}

type Named interface {
	GetName() string
	SetName(name string)
}

type Account struct {
	name string
}

func (a *Account) GetName() string     { return a.name }
func (a *Account) SetName(name string) { a.name = name }
func (a *Account) Balance() int64      { return 0 }
func (a *Account) Log(args ...any)     {}

type Public = Node

type hidden struct{}
`

func checkSource(t *testing.T, path, src string) *types.Package {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "model.go", src, 0)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check(path, fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	return pkg
}

func newModel(t *testing.T, opts Options) *Analyzer {
	t.Helper()

	a := NewAnalyzer(opts)
	a.AddPackage(checkSource(t, "example.com/model", modelSrc))

	return a
}

func propertyNames(props []*descriptor.Property) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.Name)
	}

	return out
}

func TestAnalyzer_AddPackage(t *testing.T) {
	a := newModel(t, Options{})
	graph := a.Graph()

	require.Contains(t, graph.Packages, "example.com/model")
	pkg := graph.Packages["example.com/model"]
	assert.Equal(t, "model", pkg.Name)
	assert.Contains(t, pkg.Types, TypeID{PkgPath: "example.com/model", Name: "Entity"})
	assert.NotContains(t, pkg.Types, TypeID{PkgPath: "example.com/model", Name: "hidden"})

	public := graph.GetType(TypeID{PkgPath: "example.com/model", Name: "Public"})
	node := graph.GetType(TypeID{PkgPath: "example.com/model", Name: "Node"})
	require.NotNil(t, node)
	assert.Same(t, node, public, "aliases share the descriptor of the aliased type")
}

func TestAnalyzer_StructFields(t *testing.T) {
	a := newModel(t, Options{})

	entity, err := a.Lookup("example.com/model", "Entity")
	require.NoError(t, err)

	assert.Equal(t, descriptor.KindStruct, entity.Kind)
	assert.Equal(t, []string{"Title", "Tags", "Scores", "Grid", "Status"}, propertyNames(entity.Props))
	assert.Equal(t, []string{"Title", "Tags", "Scores", "Grid", "Status", "ID"}, propertyNames(entity.Properties()))

	require.Len(t, entity.Embedded, 1)
	assert.Equal(t, "Base", entity.Embedded[0].Name)

	title := entity.Lookup("Title")
	assert.Equal(t, "Name", title.TagName("map"))
	assert.True(t, title.CanRead)
	assert.True(t, title.CanWrite)
	assert.Same(t, entity, title.DeclaringType)

	assert.Equal(t, "[]string", entity.Lookup("Tags").Type.String())
	assert.Equal(t, "map[string]int", entity.Lookup("Scores").Type.String())
	assert.Equal(t, "[2]int", entity.Lookup("Grid").Type.String())
	assert.Equal(t, "example.com/model.Status", entity.Lookup("Status").Type.QualifiedName())
	assert.Equal(t, descriptor.KindBasic, entity.Lookup("Status").Type.Kind)
}

func TestAnalyzer_RecursiveType(t *testing.T) {
	a := newModel(t, Options{})

	node, err := a.Lookup("example.com/model", "Node")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Next"}, propertyNames(node.Props))
	assert.Same(t, node, node.Lookup("Next").Type.Elem)
}

func TestAnalyzer_Interface(t *testing.T) {
	a := newModel(t, Options{})

	named, err := a.Lookup("example.com/model", "Named")
	require.NoError(t, err)

	assert.Equal(t, descriptor.KindInterface, named.Kind)
	require.Len(t, named.Props, 1)
	assert.Equal(t, "Name", named.Props[0].Name)
	assert.True(t, named.Props[0].CanRead)
	assert.True(t, named.Props[0].CanWrite)
}

func TestAnalyzer_Methods(t *testing.T) {
	without, err := newModel(t, Options{}).Lookup("example.com/model", "Account")
	require.NoError(t, err)
	assert.Empty(t, without.Props)

	with, err := newModel(t, Options{Methods: true}).Lookup("example.com/model", "Account")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Balance", "Name"}, propertyNames(with.Props))

	balance := with.Lookup("Balance")
	assert.True(t, balance.CanRead)
	assert.False(t, balance.CanWrite)
	assert.True(t, with.Lookup("Name").CanWrite)
}

func TestAnalyzer_Lookup_NotFound(t *testing.T) {
	a := newModel(t, Options{})

	_, err := a.Lookup("example.com/model", "Missing")
	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestAnalyzer_Resolve(t *testing.T) {
	a := newModel(t, Options{})

	tests := []struct {
		name    string
		ref     string
		wantErr error
	}{
		{"package name", "model.Entity", nil},
		{"import path", "example.com/model.Entity", nil},
		{"unknown type", "model.Missing", ErrTypeNotFound},
		{"unknown package", "other.Entity", ErrTypeNotFound},
		{"no package", "Entity", ErrTypeNotFound},
		{"trailing dot", "model.", ErrTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Resolve(tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Entity", got.Name)
		})
	}
}

func TestAnalyzer_Resolve_Ambiguous(t *testing.T) {
	a := newModel(t, Options{})
	a.AddPackage(checkSource(t, "example.com/legacy/model", modelSrc))

	_, err := a.Resolve("model.Entity")
	require.ErrorIs(t, err, ErrAmbiguousType)
	assert.Contains(t, err.Error(), "example.com/legacy/model, example.com/model")

	got, err := a.Resolve("example.com/legacy/model.Entity")
	require.NoError(t, err)
	assert.Equal(t, "example.com/legacy/model", got.PkgPath)
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: "propmatch/store", Name: "OrderSummary"}
	assert.Equal(t, "propmatch/store.OrderSummary", id.String())

	// Empty package path
	idNoPkg := TypeID{Name: "int"}
	assert.Equal(t, "int", idNoPkg.String())
}
