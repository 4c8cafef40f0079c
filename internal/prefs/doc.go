// Package prefs persists tagged host resources to a human-editable TOML file.
//
// # Overview
//
// Resources in a world.World opt in to persistence with custom attributes
// attached at registration:
//
//	world.RegisterType[Video](reg, prefs.Group{Name: "video"})
//	world.RegisterType[Volume](reg, prefs.Key{Name: "volume"})
//
// Saver.Save builds a fresh document from every tagged resource and commits
// it to <dir>/prefs.toml:
//
//	[video]
//	height = 1080
//	width = 1920
//
//	volume = 0.8
//
// # Destinations
//
//   - Struct + Group: fields go directly into the group table
//   - Wrapper + Key: the wrapped value goes under Key, inside the group
//     table when Group is also set
//   - Unit enum + Key: the variant name goes under Key, inside the group
//     table when Group is also set
//   - world.State[S]: classified as S, using S's own attributes
//
// Any other combination is skipped with a warning.
//
// # Encoding
//
// Nested structs become sub-tables. Pointers are optional values: nil omits
// the key, non-nil encodes the pointee under the same key. Signed integers
// and unsigned integers up to 32 bits become TOML integers; uint64, uint
// and uintptr are encoded only when they fit in an int64. Floats and strings
// map directly. Slices, arrays, maps, booleans and data-carrying enum
// variants are not encoded.
//
// Nothing in this package aborts a save because of a single value: the
// entry is logged, recorded as a Diagnostic and left out.
//
// # Atomic writes
//
// Commit creates the directory, writes prefs.toml.new and renames it over
// prefs.toml. A failure before the rename leaves the previous file intact.
//
// # Concurrency
//
// Save expects exclusive access to the world for its whole duration; use
// SaveWorld or the Autosaver when not already inside world.Exclusive.
package prefs
