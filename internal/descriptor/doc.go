// Package descriptor provides the abstract type model the matching engine
// works on.
//
// A Type is identified by its qualified name and exposes an ordered list of
// properties. Embedded types act as bases: their properties are promoted
// into the embedding type following Go's depth rules (shallowest wins, two
// candidates at the same depth hide each other).
//
// Key types:
//   - Type: a named, basic or composite type with its declared properties
//   - Property: a member with a name, a type and read/write capability
//   - Converter: classifies conversions between two types for a host model
//
// Types are produced by a host provider (see internal/analyze and
// internal/reflectmodel) and are immutable once the provider returns them.
package descriptor
