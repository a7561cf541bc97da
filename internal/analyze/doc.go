// Package analyze provides package loading and descriptor extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to describe the named
// types of the loaded packages as descriptor.Type values. Exported fields
// become properties, embedded fields become bases, and getter/setter methods
// are folded into properties when Options.Methods is set. Interface types
// always expose their methods.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeGraph: every named type of the loaded packages
//   - Converter: go/types assignability and convertibility
package analyze
