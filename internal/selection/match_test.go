package selection_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propmatch/internal/descriptor"
	"propmatch/internal/reflectmodel"
	"propmatch/internal/selection"
)

var conv = reflectmodel.Converter{}

func matchByOrigin(m *selection.MatchSelection) map[string]*selection.PropertyMatch {
	out := make(map[string]*selection.PropertyMatch)
	for _, pm := range m.PropertyMatches() {
		out[pm.Origin.Name] = pm
	}

	return out
}

func TestMatch_EndToEnd(t *testing.T) {
	r := newRegistry()

	m := selection.Match(typeOf[OriginFoo](r), typeOf[TargetFoo](r), conv, nil)

	require.NoError(t, m.EnsureAllMatched())
	require.Len(t, m.PropertyMatches(), 3)

	byName := matchByOrigin(m)
	assert.Equal(t, "Name", byName["Name"].Target.String())
	assert.Equal(t, "Bar", byName["Bar"].Target.String())
	assert.Equal(t, "Bar.Name", byName["BarName"].Target.String())

	for _, pm := range m.PropertyMatches() {
		assert.True(t, pm.CanAssign(), pm.String())
		assert.Equal(t, selection.AssignDirect, pm.Assign().Type, pm.String())
	}

	_, notAssignable := m.HasNotAssignableProperties()
	assert.False(t, notAssignable)
	assert.Empty(t, m.NestedAssignments(), "Bar is assigned directly")
}

func TestMatch_CountsEveryReadableOriginProperty(t *testing.T) {
	r := newRegistry()

	tests := []struct {
		name   string
		origin *descriptor.Type
		target *descriptor.Type
	}{
		{"all matched", typeOf[OriginFoo](r), typeOf[TargetFoo](r)},
		{"some missing", typeOf[Hello](r), typeOf[Bar](r)},
		{"none matched", typeOf[Counter](r), typeOf[Bar](r)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := selection.Match(tt.origin, tt.target, conv, nil)

			assert.Len(t, m.PropertyMatches(), len(selection.ReadableRetriever.Properties(tt.origin)))
			assert.Same(t, tt.origin, m.Origin())
			assert.Same(t, tt.target, m.Target())
			assert.Equal(t, selection.FlowForward, m.Flow())
		})
	}
}

func TestMatch_MissingProperties(t *testing.T) {
	r := newRegistry()

	m := selection.Match(typeOf[Hello](r), typeOf[Bar](r), conv, nil)

	missing, ok := m.HasMissingProperties()
	require.True(t, ok)
	require.Len(t, missing, 1)
	assert.Equal(t, "Hello", missing[0].Name)

	byName := matchByOrigin(m)
	assert.False(t, byName["Name"].IsMissing())
	assert.True(t, byName["Hello"].IsMissing())
	assert.False(t, byName["Hello"].CanAssign())
	assert.Nil(t, byName["Hello"].Assign())
	assert.Equal(t, "Hello -> <missing>", byName["Hello"].String())

	err := m.EnsureAllMatched()
	require.Error(t, err)
	assert.ErrorIs(t, err, selection.ErrNoMatch)
	assert.Equal(t, "The property 'Hello' of type 'Hello' has no-match to a property of type 'Bar'.", err.Error())

	var mismatch *selection.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Len(t, mismatch.Missing, 1)
}

func TestMatch_AggregatesAllMissing(t *testing.T) {
	r := newRegistry()

	m := selection.Match(typeOf[Pointers](r), typeOf[Bar](r), conv, nil)

	err := m.EnsureAllMatched()
	require.Error(t, err)

	var mismatch *selection.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Len(t, mismatch.Missing, 3)
	assert.Contains(t, err.Error(), "'A' of type 'Pointers'")
	assert.Contains(t, err.Error(), "'C' of type 'Pointers'")
}

func TestMatch_TypeMismatch(t *testing.T) {
	r := newRegistry()

	m := selection.Match(typeOf[Dated](r), typeOf[DateTime](r), conv, nil)

	pm := m.PropertyMatches()[0]
	assert.False(t, pm.IsMissing())
	assert.False(t, pm.CanAssign())
	assert.False(t, pm.TypeMatch())
	assert.NoError(t, m.EnsureAllMatched())

	notAssignable, ok := m.HasNotAssignableProperties()
	require.True(t, ok)
	assert.Equal(t, []*selection.PropertyMatch{pm}, notAssignable)
}

func TestMatch_NestedInstanceFromFlattenedNames(t *testing.T) {
	r := newRegistry()
	filter := typeOf[Filter](r)

	m := selection.Match(filter, typeOf[FooBar](r), conv, nil)
	require.NoError(t, m.EnsureAllMatched())

	byName := matchByOrigin(m)
	barID := byName["BarId"]
	assert.Equal(t, "Bar.Id", barID.Target.String())
	require.NotNil(t, barID.Assign())
	assert.Equal(t, selection.AssignNullableUnwrap, barID.Assign().Type)
	assert.Equal(t, selection.NullableUnwrap, barID.Assign().Nullable)
	assert.Equal(t, selection.AssignDirect, barID.Assign().Elem.Type)

	nested := m.NestedAssignments()
	require.Len(t, nested, 1)
	assert.Equal(t, "Bar", nested[0].Path.String())

	d := nested[0].Assign
	require.NotNil(t, d)
	assert.Equal(t, selection.AssignNewInstance, d.Type)
	assert.Equal(t, "FooBarBar", d.Left.Name)
	assert.Same(t, filter, d.Right)

	inner := d.InnerSelection
	require.NotNil(t, inner)
	assert.Equal(t, selection.FlowBackward, inner.Flow())
	require.Len(t, inner.PropertyMatches(), 1)
	assert.Equal(t, "Id", inner.PropertyMatches()[0].Origin.Name)
	assert.Equal(t, "BarId", inner.PropertyMatches()[0].Target.String())
	assert.Nil(t, inner.NestedAssignments())
}

func TestMatch_NestedPointerInstance(t *testing.T) {
	r := newRegistry()

	m := selection.Match(typeOf[Filter](r), typeOf[FooBarPtr](r), conv, nil)

	nested := m.NestedAssignments()
	require.Len(t, nested, 1)

	d := nested[0].Assign
	require.NotNil(t, d)
	assert.Equal(t, selection.AssignNullableUnwrap, d.Type)
	assert.Equal(t, selection.NullableWrap, d.Nullable)
	assert.Equal(t, selection.AssignNewInstance, d.Elem.Type)
}

func TestMatch_NestedInterfaceCannotBeBuilt(t *testing.T) {
	r := newRegistry()

	m := selection.Match(typeOf[OnlyBarName](r), typeOf[TargetFoo](r), conv, nil)

	nested := m.NestedAssignments()
	require.Len(t, nested, 1)
	assert.Equal(t, "Bar", nested[0].Path.String())
	assert.Nil(t, nested[0].Assign)
}

func TestNewMatch_ExplicitProperties(t *testing.T) {
	r := newRegistry()
	hello := typeOf[Hello](r)
	bar := typeOf[Bar](r)

	m := selection.NewMatch(hello, []*descriptor.Property{hello.Lookup("Name")},
		bar, []*descriptor.Property{bar.Lookup("Code")}, conv, nil)

	require.Len(t, m.PropertyMatches(), 1)
	assert.True(t, m.PropertyMatches()[0].IsMissing())
	assert.Same(t, hello, m.PropertyMatches()[0].OriginType())
	assert.Same(t, bar, m.PropertyMatches()[0].TargetType())
}

func TestMatch_NameResolvers(t *testing.T) {
	r := newRegistry()

	opts := &selection.MatchOptions{
		NameResolvers: []selection.NameResolver{
			selection.TagNameResolver{Key: "map"},
			selection.AliasResolver{"Other": "BarCode", "Customer": "Id"},
		},
	}

	m := selection.Match(typeOf[Tagged](r), typeOf[Foo](r), conv, opts)
	byName := matchByOrigin(m)

	assert.Equal(t, "Bar.Name", byName["Customer"].Target.String(), "tag wins over alias")
	assert.Equal(t, "Bar.Code", byName["Other"].Target.String())
	assert.False(t, byName["Other"].CanAssign())
}

func TestMatch_NameResolversOnlyRenameOriginProperties(t *testing.T) {
	r := newRegistry()

	opts := &selection.MatchOptions{
		NameResolvers: []selection.NameResolver{
			selection.TagNameResolver{Key: "map"},
			selection.AliasResolver{"Id": "Code"},
		},
	}

	m := selection.Match(typeOf[CodedSource](r), typeOf[CodedTarget](r), conv, opts)
	require.NoError(t, m.EnsureAllMatched())
	byName := matchByOrigin(m)

	assert.Equal(t, "Code", byName["Id"].Target.String())
	assert.True(t, byName["Id"].CanAssign())

	inner := byName["Inner"].Assign()
	require.NotNil(t, inner, "Inner.Id is read as Id, not through the alias or the tag")
	assert.Equal(t, selection.AssignNewInstance, inner.Type)
	assert.Equal(t, "Id", matchByOrigin(inner.InnerSelection)["Id"].Target.String())
}

func TestMatch_RecursiveTypes(t *testing.T) {
	r := newRegistry()

	m := selection.Match(typeOf[NodeDTO](r), typeOf[Node](r), conv, nil)
	require.NoError(t, m.EnsureAllMatched())

	next := matchByOrigin(m)["Next"].Assign()
	require.NotNil(t, next)
	assert.Equal(t, selection.AssignNullableUnwrap, next.Type)
	assert.Equal(t, selection.NullableLift, next.Nullable)

	instance := next.Elem
	require.NotNil(t, instance)
	assert.Equal(t, selection.AssignNewInstance, instance.Type)
	require.NotNil(t, instance.InnerSelection)

	innerNext := matchByOrigin(instance.InnerSelection)["Next"].Assign()
	require.NotNil(t, innerNext)
	assert.Same(t, instance, innerNext.Elem, "recursion reuses the enclosing descriptor")
}

func TestMatch_WriteOnlyTargetAndReadOnlyOrigin(t *testing.T) {
	r := newRegistry()

	m := selection.Match(typeOf[Holder](r), typeOf[Holder](r), conv, nil)
	require.Len(t, m.PropertyMatches(), 1)
	assert.True(t, m.PropertyMatches()[0].CanAssign())

	readOnly := typeOf[ReadOnly](r)
	assert.Empty(t, selection.WritableRetriever.Properties(readOnly))
	assert.Len(t, selection.ReadableRetriever.Properties(readOnly), 1)
}

func TestPropertyMatch_InverseAssign(t *testing.T) {
	r := newRegistry()

	m := selection.Match(typeOf[Pointers](r), typeOf[Values](r), conv, nil)
	byName := matchByOrigin(m)

	a := byName["A"].InverseAssign()
	require.NotNil(t, a)
	assert.Equal(t, selection.AssignNullableUnwrap, a.Type)
	assert.Equal(t, selection.NullableWrap, a.Nullable, "int back into *int")

	c := byName["C"].InverseAssign()
	require.NotNil(t, c)
	assert.Equal(t, selection.NullableLift, c.Nullable)
	assert.Equal(t, selection.AssignCast, c.Elem.Type)

	foo := matchByOrigin(selection.Match(typeOf[OriginFoo](r), typeOf[TargetFoo](r), conv, nil))
	require.True(t, foo["Bar"].CanAssign())
	assert.Nil(t, foo["Bar"].InverseAssign(), "an interface does not go back into *TargetBar")
	assert.Equal(t, selection.AssignDirect, foo["Name"].InverseAssign().Type)

	missing := selection.Match(typeOf[Hello](r), typeOf[Delta](r), conv, nil)
	assert.Nil(t, matchByOrigin(missing)["Hello"].InverseAssign())
}
