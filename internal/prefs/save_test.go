// ABOUTME: Tests for the persistence gate and atomic writer
// ABOUTME: Covers dirty-flag gating, idempotent writes and failure at each commit step

package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/coven-prefs/internal/world"
)

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New()
	world.RegisterType[Video](w.Registry(), Group{Name: "video"})
	world.RegisterType[Volume](w.Registry(), Key{Name: "volume"})
	world.RegisterType[Quality](w.Registry(), Key{Name: "graphics_quality"})
	w.Insert(Video{Width: 1920, Height: 1080})
	w.Insert(Volume(0.5))
	world.InsertState(w, High)
	return w
}

func TestSave_IfChangedWithoutChangesDoesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prefs")
	w := newTestWorld(t)
	saver := NewSaver(w, dir, nil)

	require.NoError(t, saver.Save(IfChanged))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "directory must not be created")
	assert.False(t, w.Changed().IsSet())
}

func TestSave_IfChangedLeavesExistingFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	original := []byte("# hand edited\nvolume = 0.1\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	w := newTestWorld(t)
	require.NoError(t, NewSaver(w, dir, nil).Save(IfChanged))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestSave_WritesWhenChanged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "prefs")
	w := newTestWorld(t)
	w.Changed().Mark()
	saver := NewSaver(w, dir, nil)

	require.NoError(t, saver.Save(IfChanged))

	assert.False(t, w.Changed().IsSet())
	_, err := os.Stat(saver.Path() + TempSuffix)
	assert.True(t, os.IsNotExist(err), "temp file must be gone")

	doc, err := ReadDocument(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"graphics_quality": "High",
		"video":            map[string]any{"width": int64(1920), "height": int64(1080)},
		"volume":           0.5,
	}, doc.ToMap())
}

func TestSave_Float32WrittenAsDecimal(t *testing.T) {
	dir := t.TempDir()
	w := world.New()
	world.RegisterType[Volume](w.Registry(), Key{Name: "volume"})
	w.Insert(Volume(0.8))

	require.NoError(t, NewSaver(w, dir, nil).Save(Always))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, "volume = 0.8\n", string(data))
}

func TestSave_AlwaysIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := newTestWorld(t)
	saver := NewSaver(w, dir, nil)

	require.NoError(t, saver.Save(Always))
	first, err := os.ReadFile(saver.Path())
	require.NoError(t, err)

	require.NoError(t, saver.Save(Always))
	second, err := os.ReadFile(saver.Path())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSave_MutationAfterSaveRearmsFlag(t *testing.T) {
	dir := t.TempDir()
	w := newTestWorld(t)
	saver := NewSaver(w, dir, nil)

	world.Mutate(w, func(v *Volume) { *v = 0.75 })
	require.NoError(t, saver.SaveWorld(IfChanged))
	assert.False(t, w.Changed().IsSet())

	world.Mutate(w, func(s *world.State[Quality]) { s.Set(Low) })
	assert.True(t, w.Changed().IsSet())

	require.NoError(t, saver.SaveWorld(IfChanged))
	doc, err := ReadDocument(dir)
	require.NoError(t, err)
	v, _ := doc.Get("graphics_quality")
	assert.Equal(t, String("Low"), v)
	vol, _ := doc.Get("volume")
	assert.Equal(t, Float(0.75), vol)
}

func TestSave_DiagnosticsDoNotAbort(t *testing.T) {
	dir := t.TempDir()
	logger, logs := newCaptureLogger()
	w := newTestWorld(t)
	world.RegisterType[Cursor](w.Registry(), Key{Name: "cursor"})
	w.Insert(Cursor{Custom: "hand"})

	require.NoError(t, NewSaver(w, dir, logger).Save(Always))
	assert.Len(t, logs.warnings(), 1)

	doc, err := ReadDocument(dir)
	require.NoError(t, err)
	assert.False(t, doc.Has("cursor"))
	assert.True(t, doc.Has("volume"))
}

func TestSave_CreateDirFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	w := newTestWorld(t)
	w.Changed().Mark()
	err := NewSaver(w, filepath.Join(blocker, "prefs"), nil).Save(IfChanged)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCreateDir))
	assert.False(t, w.Changed().IsSet(), "flag is cleared before the walk")
}

func TestSave_WriteFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	original := []byte("volume = 0.1\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))
	require.NoError(t, os.Mkdir(path+TempSuffix, 0o755))

	err := NewSaver(newTestWorld(t), dir, nil).Save(Always)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, original, got)
}

func TestSave_RenameFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, FileName)
	require.NoError(t, os.MkdirAll(filepath.Join(target, "occupied"), 0o755))

	err := NewSaver(newTestWorld(t), dir, nil).Save(Always)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRename))

	info, statErr := os.Stat(target)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestSaveMode_String(t *testing.T) {
	assert.Equal(t, "if_changed", IfChanged.String())
	assert.Equal(t, "always", Always.String())

	var zero SaveMode
	assert.Equal(t, IfChanged, zero)
}
