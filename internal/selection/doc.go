// Package selection resolves property paths against a type and matches the
// properties of one type against another.
//
// The entry points are:
//   - Select / SelectRequired: resolve "Customer.Address", "CustomerAddress"
//     or "Customer-AddressZip" into a PropertySelection chain
//   - Match / NewMatch: pair every origin property with a target selection
//     and classify how the value can be assigned
//   - Assign: classify how a right-hand type is assigned to a left-hand type
//
// Selections are persistent linked lists referenced by their leaf: extending
// a selection never changes it, so a selection can be shared by any number of
// longer selections. Matching and assignment never fail with an error when a
// property has no counterpart; absence is reported as data (a nil selection,
// IsMissing) and left to the caller to judge.
package selection
