// ABOUTME: Custom attributes that mark host types as preferences
// ABOUTME: Group names a sub-table, Key names a single entry

package prefs

// Group places a resource in the named table under the document root.
type Group struct {
	Name string
}

// Key places a resource's single value under the named entry.
type Key struct {
	Name string
}
