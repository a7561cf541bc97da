package reflectmodel

import (
	"reflect"

	"propmatch/internal/descriptor"
)

// Converter classifies conversions with the reflect assignability and
// convertibility rules. Types without a backing reflect.Type fall back to
// descriptor.NameConverter.
type Converter struct{}

// Classify implements descriptor.Converter.
func (Converter) Classify(from, to *descriptor.Type) descriptor.Conversion {
	rf, okFrom := reflectType(from)
	rt, okTo := reflectType(to)
	if !okFrom || !okTo {
		return descriptor.NameConverter{}.Classify(from, to)
	}

	switch {
	case rf == rt:
		return descriptor.ConversionIdentity
	case rf.AssignableTo(rt):
		return descriptor.ConversionImplicit
	case rf.ConvertibleTo(rt) && !isIntegerToString(rf, rt):
		return descriptor.ConversionExplicit
	default:
		return descriptor.ConversionNone
	}
}

func reflectType(t *descriptor.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}

	rt, ok := t.Origin.(reflect.Type)

	return rt, ok && rt != nil
}

// isIntegerToString reports string(int) conversions, which yield a rune
// instead of the decimal representation.
func isIntegerToString(from, to reflect.Type) bool {
	if to.Kind() != reflect.String {
		return false
	}

	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}
