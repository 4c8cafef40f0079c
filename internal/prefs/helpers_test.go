// ABOUTME: Shared fixtures for preference tests
// ABOUTME: Host types tagged as preferences and a log handler capturing warnings

package prefs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/2389/coven-prefs/internal/world"
)

type Video struct {
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type Volume float32

type Quality int

const (
	Low Quality = iota
	Medium
	High
)

func (q Quality) VariantName() string {
	return [...]string{"Low", "Medium", "High"}[q]
}
func (Quality) VariantKind() world.VariantKind { return world.VariantUnit }
func (Quality) VariantFields() []any           { return nil }

// Cursor is an enum whose Custom variant carries data.
type Cursor struct {
	Custom string
}

func (c Cursor) VariantName() string {
	if c.Custom != "" {
		return "Custom"
	}
	return "Default"
}

func (c Cursor) VariantKind() world.VariantKind {
	if c.Custom != "" {
		return world.VariantTuple
	}
	return world.VariantUnit
}

func (c Cursor) VariantFields() []any {
	if c.Custom != "" {
		return []any{c.Custom}
	}
	return nil
}

// captureHandler records every log record.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }
func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler         { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler              { return h }
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

// warnings returns the "key" attribute of every warn-level record.
func (h *captureHandler) warnings() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var keys []string
	for _, r := range h.records {
		if r.Level != slog.LevelWarn {
			continue
		}
		var key string
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == "key" {
				key = a.Value.String()
				return false
			}
			return true
		})
		keys = append(keys, key)
	}
	return keys
}

func newCaptureLogger() (*slog.Logger, *captureHandler) {
	h := &captureHandler{}
	return slog.New(h), h
}
