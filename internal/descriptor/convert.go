package descriptor

// Conversion classifies how a value of one type converts to another.
type Conversion int

const (
	// ConversionNone means no conversion exists.
	ConversionNone Conversion = iota
	// ConversionExplicit means a conversion expression T(x) is required.
	ConversionExplicit
	// ConversionImplicit means the value is assignable without conversion.
	ConversionImplicit
	// ConversionIdentity means both types are the same.
	ConversionIdentity
)

// String returns a human-readable name for the conversion.
func (c Conversion) String() string {
	switch c {
	case ConversionNone:
		return "none"
	case ConversionExplicit:
		return "explicit"
	case ConversionImplicit:
		return "implicit"
	case ConversionIdentity:
		return "identity"
	default:
		return UnknownStr
	}
}

// Exists reports whether any conversion exists.
func (c Conversion) Exists() bool {
	return c != ConversionNone
}

// IsImplicit reports whether the value can be assigned without a conversion expression.
func (c Conversion) IsImplicit() bool {
	return c == ConversionImplicit || c == ConversionIdentity
}

// Converter classifies conversions between two types of a host model.
type Converter interface {
	Classify(from, to *Type) Conversion
}

// NameConverter recognizes identity only, by qualified name. It is the
// fallback for synthetic types that have no backing host model.
type NameConverter struct{}

// Classify implements Converter.
func (NameConverter) Classify(from, to *Type) Conversion {
	if from.Equal(to) {
		return ConversionIdentity
	}

	return ConversionNone
}
