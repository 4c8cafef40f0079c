// ABOUTME: Atomic writer committing the preferences document to disk
// ABOUTME: Writes prefs.toml.new then renames it over prefs.toml

package prefs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// FileName is the name of the preferences file inside its directory.
	FileName = "prefs.toml"
	// TempSuffix is appended to FileName for the file written before the rename.
	TempSuffix = ".new"
)

// Marshal serializes doc as TOML. Keys are emitted in sorted order, so
// unchanged documents always produce identical bytes.
func Marshal(doc *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc.ToMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}

// Commit writes doc to dir/prefs.toml. The previous file is only touched by
// the final rename, which runs after the new content is completely written.
func Commit(doc *Table, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w %s: %w", ErrCreateDir, dir, err)
	}

	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	target := filepath.Join(dir, FileName)
	tmp := target + TempSuffix
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, tmp, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("%w %s: %w", ErrRename, target, err)
	}
	return nil
}
