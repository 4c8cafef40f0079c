// ABOUTME: Tests for periodic autosave
// ABOUTME: Validates interval saves, the final flush on Close and shutdown via context

package prefs

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/coven-prefs/internal/world"
)

func TestAutosaver_SavesOnInterval(t *testing.T) {
	dir := t.TempDir()
	w := newTestWorld(t)
	saver := NewSaver(w, dir, nil)

	a := NewAutosaver(saver, 10*time.Millisecond)
	a.Start(context.Background())
	defer a.Close()

	world.Mutate(w, func(v *Volume) { *v = 0.9 })

	require.Eventually(t, func() bool {
		_, err := os.Stat(saver.Path())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAutosaver_CloseFlushesPendingChanges(t *testing.T) {
	dir := t.TempDir()
	w := newTestWorld(t)
	saver := NewSaver(w, dir, nil)

	a := NewAutosaver(saver, time.Hour)
	a.Start(context.Background())

	world.Mutate(w, func(v *Volume) { *v = 0.25 })
	a.Close()
	a.Close()

	doc, err := ReadDocument(dir)
	require.NoError(t, err)
	v, _ := doc.Get("volume")
	assert.Equal(t, Float(0.25), v)
	assert.False(t, w.Changed().IsSet())
}

func TestAutosaver_StopsWithContext(t *testing.T) {
	dir := t.TempDir()
	w := newTestWorld(t)
	saver := NewSaver(w, dir, nil)

	ctx, cancel := context.WithCancel(context.Background())
	a := NewAutosaver(saver, time.Hour)
	a.Start(ctx)

	world.Mutate(w, func(v *Volume) { *v = 0.1 })
	cancel()
	a.Close()

	_, err := os.Stat(saver.Path())
	assert.NoError(t, err)
}

func TestAutosaver_NoChangesNoFile(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(newTestWorld(t), dir, nil)

	a := NewAutosaver(saver, 5*time.Millisecond)
	a.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	a.Close()

	_, err := os.Stat(saver.Path())
	assert.True(t, os.IsNotExist(err))
}
