// ABOUTME: Tests for the coven-prefs sample host and output rendering
// ABOUTME: Saves the sample world end to end and checks the printed document

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/coven-prefs/internal/prefs"
	"github.com/2389/coven-prefs/internal/world"
)

func TestHostWorld_SavesTaggedResources(t *testing.T) {
	dir := t.TempDir()
	w := newHostWorld()

	require.NoError(t, prefs.NewSaver(w, dir, nil).SaveWorld(prefs.Always))

	doc, err := prefs.ReadDocument(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"audio", "graphics_quality", "language", "window"}, doc.Keys())

	q, _ := doc.Get("graphics_quality")
	assert.Equal(t, prefs.String("Medium"), q)

	win, _ := doc.Get("window")
	winTable, ok := win.AsTable()
	require.True(t, ok)
	assert.False(t, winTable.Has("monitor"))
	assert.Equal(t, []string{"height", "scale", "width"}, winTable.Keys())
}

func TestHostWorld_StatsAreNotPersisted(t *testing.T) {
	w := newHostWorld()
	world.Mutate(w, func(s *sessionStats) { s.Frames = 10 })
	assert.False(t, w.Changed().IsSet())
}

func TestParseQuality(t *testing.T) {
	q, err := parseQuality("HIGH")
	require.NoError(t, err)
	assert.Equal(t, QualityHigh, q)

	_, err = parseQuality("ultra")
	assert.Error(t, err)

	assert.Equal(t, "Unknown", GraphicsQuality(7).VariantName())
}

func TestPrintTable(t *testing.T) {
	color.NoColor = true

	doc := prefs.NewTable()
	doc.Set("language", prefs.String("en"))
	audio, _ := doc.Entry("audio")
	audio.Set("master", prefs.Float(0.5))
	audio.Set("channels", prefs.Integer(2))

	var buf bytes.Buffer
	printTable(&buf, "", doc)

	assert.Equal(t, "language = \"en\"\naudio.master = 0.5\naudio.channels = 2\n", buf.String())
}

func TestSaveCommand(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	configPath := filepath.Join(dir, "prefs.yaml")
	prefsDir := filepath.Join(dir, "prefs")
	require.NoError(t, os.WriteFile(configPath, []byte("prefs:\n  dir: \""+prefsDir+"\"\nlogging:\n  level: error\n"), 0o644))

	a := &app{}
	root := a.rootCmd()
	root.SetArgs([]string{"--config", configPath, "save", "--volume", "0.25", "--quality", "high"})
	require.NoError(t, root.Execute())

	doc, err := prefs.ReadDocument(prefsDir)
	require.NoError(t, err)
	q, _ := doc.Get("graphics_quality")
	assert.Equal(t, prefs.String("High"), q)

	audio, _ := doc.Get("audio")
	audioTable, _ := audio.AsTable()
	master, _ := audioTable.Get("master")
	assert.Equal(t, prefs.Float(0.25), master)
}

func TestSaveCommand_NothingChanged(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "prefs.yaml")
	prefsDir := filepath.Join(dir, "prefs")
	require.NoError(t, os.WriteFile(configPath, []byte("prefs:\n  dir: \""+prefsDir+"\"\nlogging:\n  level: error\n"), 0o644))

	a := &app{}
	root := a.rootCmd()
	root.SetArgs([]string{"--config", configPath, "save"})
	require.NoError(t, root.Execute())

	_, err := os.Stat(prefsDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunCommand_RejectsNonPositiveCycle(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "prefs.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("prefs:\n  dir: \""+filepath.Join(dir, "prefs")+"\"\nlogging:\n  level: error\n"), 0o644))

	for _, cycle := range []string{"0s", "-1s"} {
		a := &app{}
		root := a.rootCmd()
		root.SetArgs([]string{"--config", configPath, "run", "--cycle=" + cycle})
		err := root.Execute()
		require.Error(t, err, cycle)
		assert.Contains(t, err.Error(), "--cycle must be positive")
	}
}
