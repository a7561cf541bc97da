package selection

import (
	"errors"
	"strings"

	"propmatch/internal/descriptor"
)

var (
	// ErrPropertyNotFound is returned when a path cannot be resolved against a type.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrDeclaringTypeMismatch is returned when a property is appended to, or
	// applied on, a type that does not declare it.
	ErrDeclaringTypeMismatch = errors.New("property is not declared by the selected type")
	// ErrNoMatch is matched by every *MismatchError.
	ErrNoMatch = errors.New("properties without match")
)

// MismatchError lists every origin property without a target counterpart.
type MismatchError struct {
	Origin  *descriptor.Type
	Target  *descriptor.Type
	Missing []*PropertyMatch
}

// Error joins one sentence per missing property.
func (e *MismatchError) Error() string {
	msgs := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		msgs = append(msgs, m.NoMatchMessage())
	}

	return strings.Join(msgs, " ")
}

// Is reports ErrNoMatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrNoMatch
}
