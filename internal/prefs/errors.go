// ABOUTME: Error values for preference encoding and persistence
// ABOUTME: Diagnostics describe entries that were skipped without aborting a save

package prefs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedShape marks a value whose shape cannot be encoded yet.
	ErrUnsupportedShape = errors.New("unsupported shape")

	// ErrNumericOverflow marks an unsigned value above the signed 64-bit range.
	ErrNumericOverflow = errors.New("numeric overflow")

	// ErrKeyConflict marks a group whose key already holds a non-table value.
	ErrKeyConflict = errors.New("key conflict")

	ErrCreateDir = errors.New("could not create preferences directory")
	ErrSerialize = errors.New("could not serialize preferences")
	ErrWrite     = errors.New("could not write preferences file")
	ErrRename    = errors.New("could not replace preferences file")

	// ErrNotFound is returned when no preferences file exists yet.
	ErrNotFound = errors.New("preferences file not found")
)

// Diagnostic records one entry that was left out of the document.
type Diagnostic struct {
	// Path is the dotted location of the entry, or the resource type path.
	Path string
	// Type is the Go type of the offending value.
	Type string
	Err  error
}

func (d *Diagnostic) Error() string {
	if d.Type == "" {
		return fmt.Sprintf("%s: %v", d.Path, d.Err)
	}
	return fmt.Sprintf("%s (%s): %v", d.Path, d.Type, d.Err)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}
