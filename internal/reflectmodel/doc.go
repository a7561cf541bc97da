// Package reflectmodel builds descriptor types from reflect.Type values.
//
// It is the runtime counterpart of package analyze: types compiled into the
// calling program are described without loading source code. Exported fields
// become properties, embedded fields become bases, and with Options.Methods
// getter and setter methods of the pointer method set are folded into
// properties. Interface types always expose their methods as properties.
package reflectmodel
