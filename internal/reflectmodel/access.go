package reflectmodel

import (
	"errors"
	"fmt"
	"reflect"

	"propmatch/internal/descriptor"
	"propmatch/internal/selection"
)

var (
	// ErrNilValue is returned when a nil pointer or interface is met along a path.
	ErrNilValue = errors.New("nil value along the path")
	// ErrNotAddressable is returned by Set when the value to modify is a copy.
	ErrNotAddressable = errors.New("value is not addressable")
	// ErrNoAccessor is returned when a property has no field or method to access it.
	ErrNoAccessor = errors.New("no accessor for property")
	// ErrValueType is returned by Set when the new value is not assignable to the property.
	ErrValueType = errors.New("value type is not assignable")
)

// Get reads the value selected by sel from v. v must be a value, or a
// pointer to a value, of a type that declares the root of sel.
func (r *Registry) Get(sel *selection.PropertySelection, v reflect.Value) (reflect.Value, error) {
	if err := r.checkRoot(sel, v); err != nil {
		return reflect.Value{}, err
	}

	cur := v
	for _, node := range sel.Path() {
		in, err := indirect(cur, false)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%s: %w", node.Property().Name, err)
		}

		if cur, err = readProperty(in, node.Property()); err != nil {
			return reflect.Value{}, err
		}
	}

	return cur, nil
}

// Set writes x to the property selected by sel in v. v must be a pointer.
// Nil pointers along the path are allocated.
func (r *Registry) Set(sel *selection.PropertySelection, v, x reflect.Value) error {
	if err := r.checkRoot(sel, v); err != nil {
		return err
	}

	path := sel.Path()

	cur, err := indirect(v, true)
	if err != nil {
		return err
	}
	for _, node := range path[:len(path)-1] {
		next, err := readProperty(cur, node.Property())
		if err != nil {
			return err
		}

		if cur, err = indirect(next, true); err != nil {
			return fmt.Errorf("%s: %w", node.Property().Name, err)
		}
	}

	return writeProperty(cur, sel.Property(), x)
}

// checkRoot verifies that the type of v exposes the first property of sel.
func (r *Registry) checkRoot(sel *selection.PropertySelection, v reflect.Value) error {
	if sel == nil {
		return fmt.Errorf("%w: empty selection", selection.ErrPropertyNotFound)
	}
	if !v.IsValid() {
		return fmt.Errorf("%w: invalid value", ErrNilValue)
	}

	root := sel.Root().Property()
	t := r.TypeOf(v.Type()).Deref()
	if found := t.Lookup(root.Name); found == nil || !found.Equal(root) {
		return fmt.Errorf("%w: expected %s, found %s",
			selection.ErrDeclaringTypeMismatch, root.DeclaringType, t)
	}

	return nil
}

// indirect follows pointers and interfaces. With alloc, settable nil
// pointers are set to a new zero value.
func indirect(v reflect.Value, alloc bool) (reflect.Value, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			if !alloc || v.Kind() == reflect.Interface || !v.CanSet() {
				return reflect.Value{}, ErrNilValue
			}
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}

	return v, nil
}

func readProperty(v reflect.Value, p *descriptor.Property) (reflect.Value, error) {
	if !p.CanRead {
		return reflect.Value{}, fmt.Errorf("%w: %s is write-only", ErrNoAccessor, p.Name)
	}

	f, ok, err := field(v, p.Name)
	if err != nil {
		return reflect.Value{}, err
	}
	if ok {
		return f, nil
	}

	for _, name := range []string{"Get" + p.Name, p.Name} {
		m := method(v, name, true)
		if m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
			return m.Call(nil)[0], nil
		}
	}

	return reflect.Value{}, fmt.Errorf("%w: %s.%s", ErrNoAccessor, v.Type(), p.Name)
}

func writeProperty(v reflect.Value, p *descriptor.Property, x reflect.Value) error {
	if !p.CanWrite {
		return fmt.Errorf("%w: %s is read-only", ErrNoAccessor, p.Name)
	}
	if !v.CanAddr() {
		return fmt.Errorf("%w: %s", ErrNotAddressable, v.Type())
	}

	f, ok, err := field(v, p.Name)
	if err != nil {
		return err
	}
	if ok {
		val, err := assignable(x, f.Type())
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		f.Set(val)

		return nil
	}

	m := method(v, "Set"+p.Name, false)
	if !m.IsValid() || m.Type().NumIn() != 1 || m.Type().NumOut() != 0 {
		return fmt.Errorf("%w: %s.%s", ErrNoAccessor, v.Type(), p.Name)
	}

	val, err := assignable(x, m.Type().In(0))
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	m.Call([]reflect.Value{val})

	return nil
}

// field returns the exported field name of struct v, following embedded structs.
func field(v reflect.Value, name string) (reflect.Value, bool, error) {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false, nil
	}

	sf, ok := v.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, false, nil
	}

	f, err := v.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, false, fmt.Errorf("%s: %w", name, ErrNilValue)
	}

	return f, true, nil
}

// method looks name up in the pointer method set when v is addressable.
// With copyValue, a value that is not addressable is copied so that
// pointer receiver getters can still be called.
func method(v reflect.Value, name string, copyValue bool) reflect.Value {
	if v.CanAddr() {
		return v.Addr().MethodByName(name)
	}
	if m := v.MethodByName(name); m.IsValid() || !copyValue {
		return m
	}

	p := reflect.New(v.Type())
	p.Elem().Set(v)

	return p.MethodByName(name)
}

func assignable(x reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !x.IsValid() {
		return reflect.Zero(t), nil
	}
	if !x.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrValueType, x.Type(), t)
	}

	return x, nil
}
