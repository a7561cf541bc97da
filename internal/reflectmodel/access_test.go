package reflectmodel

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propmatch/internal/selection"
)

type Profile struct {
	Owner Named
	Label string
}

func mustSelect(t *testing.T, r *Registry, v any, path string) *selection.PropertySelection {
	t.Helper()

	sel, err := selection.SelectType(r.TypeOf(reflect.TypeOf(v)), path)
	require.NoError(t, err)

	return sel
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry(Options{})
	c := Customer{
		audit:  audit{CreatedBy: "ops"},
		Name:   "Ann",
		Parent: &Customer{Name: "Bob"},
	}

	tests := []struct {
		path string
		want any
	}{
		{"Name", "Ann"},
		{"ParentName", "Bob"},
		{"Parent.Name", "Bob"},
		{"CreatedBy", "ops"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			sel := mustSelect(t, r, c, tt.path)

			got, err := r.Get(sel, reflect.ValueOf(c))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interface())

			got, err = r.Get(sel, reflect.ValueOf(&c))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestRegistry_GetNilAlongThePath(t *testing.T) {
	r := NewRegistry(Options{})
	sel := mustSelect(t, r, Customer{}, "ParentName")

	_, err := r.Get(sel, reflect.ValueOf(Customer{}))
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestRegistry_Set(t *testing.T) {
	r := NewRegistry(Options{})

	var c Customer
	require.NoError(t, r.Set(mustSelect(t, r, c, "ParentName"), reflect.ValueOf(&c), reflect.ValueOf("Eve")))
	require.NotNil(t, c.Parent, "nil pointers on the path are allocated")
	assert.Equal(t, "Eve", c.Parent.Name)

	require.NoError(t, r.Set(mustSelect(t, r, c, "CreatedBy"), reflect.ValueOf(&c), reflect.ValueOf("ci")))
	assert.Equal(t, "ci", c.CreatedBy)

	email := "eve@example.com"
	require.NoError(t, r.Set(mustSelect(t, r, c, "Email"), reflect.ValueOf(&c), reflect.ValueOf(&email)))
	assert.Same(t, &email, c.Email)

	require.NoError(t, r.Set(mustSelect(t, r, c, "Email"), reflect.ValueOf(&c), reflect.Value{}))
	assert.Nil(t, c.Email, "an invalid value sets the zero value")
}

func TestRegistry_SetErrors(t *testing.T) {
	r := NewRegistry(Options{})
	name := mustSelect(t, r, Customer{}, "Name")

	var c Customer
	assert.ErrorIs(t, r.Set(name, reflect.ValueOf(c), reflect.ValueOf("x")), ErrNotAddressable)
	assert.ErrorIs(t, r.Set(name, reflect.ValueOf(&c), reflect.ValueOf(42)), ErrValueType)

	var nilCustomer *Customer
	assert.ErrorIs(t, r.Set(name, reflect.ValueOf(nilCustomer), reflect.ValueOf("x")), ErrNilValue)
}

func TestRegistry_DeclaringTypeMismatch(t *testing.T) {
	r := NewRegistry(Options{})
	name := mustSelect(t, r, Customer{}, "Name")

	_, err := r.Get(name, reflect.ValueOf(Profile{}))
	assert.ErrorIs(t, err, selection.ErrDeclaringTypeMismatch)

	err = r.Set(name, reflect.ValueOf(&Account{}), reflect.ValueOf("x"))
	assert.ErrorIs(t, err, selection.ErrDeclaringTypeMismatch)

	_, err = r.Get(nil, reflect.ValueOf(Customer{}))
	assert.ErrorIs(t, err, selection.ErrPropertyNotFound)
}

func TestRegistry_AccessThroughMethods(t *testing.T) {
	r := NewRegistry(Options{Methods: true})
	a := &Account{id: 7}

	name := mustSelect(t, r, Account{}, "Name")
	require.NoError(t, r.Set(name, reflect.ValueOf(a), reflect.ValueOf("Zed")))
	assert.Equal(t, "Zed", a.name)

	got, err := r.Get(name, reflect.ValueOf(a))
	require.NoError(t, err)
	assert.Equal(t, "Zed", got.Interface())

	id := mustSelect(t, r, Account{}, "ID")
	got, err = r.Get(id, reflect.ValueOf(*a))
	require.NoError(t, err, "pointer receiver getters work on a copy")
	assert.Equal(t, 7, got.Interface())

	assert.ErrorIs(t, r.Set(id, reflect.ValueOf(a), reflect.ValueOf(8)), ErrNoAccessor, "ID has no matching setter")
}

func TestRegistry_AccessThroughInterface(t *testing.T) {
	r := NewRegistry(Options{})
	sel := mustSelect(t, r, Profile{}, "OwnerName")
	assert.Equal(t, "Owner.Name", sel.String())

	p := Profile{Owner: &Account{name: "Kim"}}
	got, err := r.Get(sel, reflect.ValueOf(p))
	require.NoError(t, err)
	assert.Equal(t, "Kim", got.Interface())

	require.NoError(t, r.Set(sel, reflect.ValueOf(&p), reflect.ValueOf("Lee")))
	assert.Equal(t, "Lee", p.Owner.GetName())

	var empty Profile
	_, err = r.Get(sel, reflect.ValueOf(empty))
	assert.ErrorIs(t, err, ErrNilValue)
	assert.ErrorIs(t, r.Set(sel, reflect.ValueOf(&empty), reflect.ValueOf("x")), ErrNilValue)
}
