// ABOUTME: Persistence gate deciding whether a save runs
// ABOUTME: Clears the change flag, builds the document and commits it

package prefs

import (
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/2389/coven-prefs/internal/world"
)

// SaveMode selects when Save writes.
type SaveMode int

const (
	// IfChanged saves only when the world's change flag is set.
	IfChanged SaveMode = iota
	// Always saves unconditionally.
	Always
)

func (m SaveMode) String() string {
	if m == Always {
		return "always"
	}
	return "if_changed"
}

// Saver persists the preferences of a World into a directory.
type Saver struct {
	world  *world.World
	dir    string
	logger *slog.Logger
}

// NewSaver creates a Saver writing w's preferences to dir.
func NewSaver(w *world.World, dir string, logger *slog.Logger) *Saver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Saver{world: w, dir: dir, logger: logger}
}

// Dir returns the directory the Saver writes to.
func (s *Saver) Dir() string {
	return s.dir
}

// Path returns the full path of the preferences file.
func (s *Saver) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Save writes the preferences file according to mode. The caller must hold
// exclusive access to the world for the whole call; SaveWorld does that.
//
// The change flag is cleared before the document is built, so a mutation
// made after this point re-arms the next save instead of being lost.
// Filesystem errors are logged and returned; they leave any previous file intact.
func (s *Saver) Save(mode SaveMode) error {
	changed := s.world.Changed()
	if mode == IfChanged && !changed.IsSet() {
		return nil
	}
	changed.Clear()

	logger := s.logger.With("save_id", uuid.NewString(), "mode", mode.String())

	doc, err := BuildDocument(s.world, logger)
	if err != nil {
		skipped := 1
		if merr, ok := err.(*multierror.Error); ok {
			skipped = len(merr.Errors)
		}
		logger.Debug("preferences: some entries were skipped", "skipped", skipped)
	}

	if err := Commit(doc, s.dir); err != nil {
		logger.Warn("preferences: save failed", "dir", s.dir, "error", err)
		return err
	}

	logger.Debug("preferences: saved", "path", s.Path(), "keys", doc.Len())
	return nil
}

// SaveWorld runs Save while holding the world's exclusive lock.
func (s *Saver) SaveWorld(mode SaveMode) error {
	var err error
	s.world.Exclusive(func() {
		err = s.Save(mode)
	})
	return err
}
