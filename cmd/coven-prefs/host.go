// ABOUTME: Sample host state used by the coven-prefs commands
// ABOUTME: Registers window, audio, language and graphics quality preferences

package main

import (
	"fmt"
	"strings"

	"github.com/2389/coven-prefs/internal/prefs"
	"github.com/2389/coven-prefs/internal/world"
)

// Window is saved as the [window] table.
type Window struct {
	Width   uint32  `toml:"width"`
	Height  uint32  `toml:"height"`
	Scale   float32 `toml:"scale"`
	Monitor *uint8  `toml:"monitor"`
}

// MasterVolume is saved as audio.master.
type MasterVolume float32

// Language is saved as the root key language.
type Language string

// GraphicsQuality is the finite state saved as graphics_quality.
type GraphicsQuality int

const (
	QualityLow GraphicsQuality = iota
	QualityMedium
	QualityHigh
)

var qualityNames = [...]string{"Low", "Medium", "High"}

func (q GraphicsQuality) VariantName() string {
	if int(q) < 0 || int(q) >= len(qualityNames) {
		return "Unknown"
	}
	return qualityNames[q]
}

func (GraphicsQuality) VariantKind() world.VariantKind { return world.VariantUnit }
func (GraphicsQuality) VariantFields() []any           { return nil }

func parseQuality(s string) (GraphicsQuality, error) {
	for i, name := range qualityNames {
		if strings.EqualFold(name, s) {
			return GraphicsQuality(i), nil
		}
	}
	return 0, fmt.Errorf("unknown quality %q (want low, medium or high)", s)
}

// sessionStats is ordinary host state: it has no attributes and is never saved.
type sessionStats struct {
	Frames uint64
}

// newHostWorld builds the sample world with default values.
func newHostWorld() *world.World {
	w := world.New()
	reg := w.Registry()

	world.RegisterType[Window](reg, prefs.Group{Name: "window"})
	world.RegisterType[MasterVolume](reg, prefs.Group{Name: "audio"}, prefs.Key{Name: "master"})
	world.RegisterType[Language](reg, prefs.Key{Name: "language"})
	world.RegisterType[GraphicsQuality](reg, prefs.Key{Name: "graphics_quality"})

	w.Insert(Window{Width: 1280, Height: 720, Scale: 1})
	w.Insert(MasterVolume(0.8))
	w.Insert(Language("en"))
	w.Insert(sessionStats{})
	world.InsertState(w, QualityMedium)

	return w
}
