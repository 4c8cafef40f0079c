// Package world holds host application state and the type metadata needed to
// introspect it at runtime.
//
// # Overview
//
// A World is a container of resources: one value per Go type, stored behind a
// pointer and kept in insertion order. Alongside the resources the World owns
// a Registry, which maps a TypeID to a TypeInfo describing the type's shape and
// any custom attributes the host attached to it, and a ChangeFlag recording
// whether persisted state changed since the last save.
//
// # Shapes
//
// The Registry derives a Shape for every Go type:
//
//   - ShapeOptional: pointer types (nil means "no value")
//   - ShapeEnum: types implementing Enum
//   - ShapeStruct: struct types with named fields
//   - ShapeWrapper: defined non-struct types such as `type Volume float32`,
//     which wrap exactly one underlying value
//   - ShapeScalar: predeclared numeric and string types
//   - ShapeUnsupported: everything else
//
// # Attributes
//
// Attributes are arbitrary values attached at registration time:
//
//	world.RegisterType[Video](w.Registry(), prefs.Group{Name: "video"})
//
// and read back with the generic Attr helper:
//
//	group, ok := world.Attr[prefs.Group](info)
//
// # Finite-state resources
//
// State[S] holds the current selection of a named state machine. Its type path
// starts with StatePathPrefix, and its Selected method exposes the current value
// without reflection on unexported fields.
//
// # Concurrency
//
// Insert and Mutate take the World's lock. Each and Get do not: callers that
// need a consistent view of every resource run inside Exclusive, which holds
// the write lock for the duration of the callback.
package world
