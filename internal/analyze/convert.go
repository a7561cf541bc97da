package analyze

import (
	"go/types"

	"propmatch/internal/descriptor"
)

// Converter classifies conversions with the go/types assignability and
// convertibility rules. Types without a backing types.Type fall back to
// descriptor.NameConverter.
type Converter struct{}

// Classify implements descriptor.Converter.
func (Converter) Classify(from, to *descriptor.Type) descriptor.Conversion {
	tf, okFrom := goType(from)
	tt, okTo := goType(to)
	if !okFrom || !okTo {
		return descriptor.NameConverter{}.Classify(from, to)
	}

	switch {
	case types.Identical(tf, tt):
		return descriptor.ConversionIdentity
	case types.AssignableTo(tf, tt):
		return descriptor.ConversionImplicit
	case types.ConvertibleTo(tf, tt) && !isIntegerToString(tf, tt):
		return descriptor.ConversionExplicit
	default:
		return descriptor.ConversionNone
	}
}

func goType(t *descriptor.Type) (types.Type, bool) {
	if t == nil {
		return nil, false
	}

	gt, ok := t.Origin.(types.Type)

	return gt, ok && gt != nil
}

// isIntegerToString reports string(int) conversions, which yield a rune
// instead of the decimal representation.
func isIntegerToString(from, to types.Type) bool {
	fb, ok := from.Underlying().(*types.Basic)
	if !ok || fb.Info()&types.IsInteger == 0 {
		return false
	}

	tb, ok := to.Underlying().(*types.Basic)

	return ok && tb.Info()&types.IsString != 0
}
