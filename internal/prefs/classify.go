// ABOUTME: Entity classifier deciding where each host resource lands in the document
// ABOUTME: Reads Group/Key attributes and dispatches on the registered shape

package prefs

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/2389/coven-prefs/internal/world"
)

// BuildDocument walks every resource of w and assembles a fresh document
// from those tagged with Group and/or Key. The document is always returned;
// the error aggregates the diagnostics of skipped entries. Callers must hold
// exclusive access to w.
func BuildDocument(w *world.World, logger *slog.Logger) (*Table, error) {
	b := &builder{
		registry: w.Registry(),
		enc:      NewEncoder(logger),
		doc:      NewTable(),
	}
	w.Each(func(e world.Entry) bool {
		b.classify(e)
		return true
	})
	return b.doc, b.enc.Err()
}

type builder struct {
	registry *world.Registry
	enc      *Encoder
	doc      *Table
}

func (b *builder) classify(e world.Entry) {
	info, ok := b.registry.Lookup(e.ID)
	if !ok {
		// Ordinary host state without metadata.
		return
	}

	group, hasGroup := world.Attr[Group](info)
	key, hasKey := world.Attr[Key](info)
	if !hasGroup && !hasKey {
		if strings.HasPrefix(info.Path, world.StatePathPrefix) {
			b.classifyState(e, info)
		}
		return
	}

	v := reflect.ValueOf(e.Value)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			b.skip(info, "resource is a nil pointer")
			return
		}
		v = v.Elem()
	}

	switch info.Shape {
	case world.ShapeStruct:
		if hasKey {
			// No convention yet for representing a multi-field struct under one key.
			b.skip(info, "struct tagged with Key has no single-value representation")
			return
		}
		dest, ok := b.group(info, group)
		if !ok {
			return
		}
		b.enc.encodeFields(group.Name, v, dest)

	case world.ShapeWrapper:
		if !hasKey {
			b.skip(info, "wrapper tagged with Group needs a Key")
			return
		}
		dest, ok := b.destination(info, group, hasGroup)
		if !ok || !b.claim(info, dest, key.Name) {
			return
		}
		b.enc.encode(joinPath(groupPath(group, hasGroup), key.Name), v, key.Name, dest)

	case world.ShapeEnum:
		b.classifyEnum(info, v)

	default:
		b.skip(info, fmt.Sprintf("%s resources cannot be preferences", info.Shape))
	}
}

// classifyState unwraps a finite-state wrapper and classifies its current
// selection by the selection type's own attributes.
func (b *builder) classifyState(e world.Entry, info *world.TypeInfo) {
	sel, ok := e.Value.(world.Selection)
	if !ok {
		b.skip(info, "state wrapper does not expose its selection")
		return
	}
	if v := reflect.ValueOf(sel); v.Kind() == reflect.Pointer && v.IsNil() {
		b.skip(info, "state wrapper is a nil pointer")
		return
	}
	current := sel.Selected()
	selInfo, ok := b.registry.Lookup(world.TypeOf(current))
	if !ok {
		return
	}

	switch selInfo.Shape {
	case world.ShapeEnum:
		b.classifyEnum(selInfo, reflect.ValueOf(current))
	case world.ShapeStruct, world.ShapeWrapper:
		if _, hasKey := world.Attr[Key](selInfo); hasKey {
			b.skip(selInfo, fmt.Sprintf("state of %s shape is not supported", selInfo.Shape))
		} else if _, hasGroup := world.Attr[Group](selInfo); hasGroup {
			b.skip(selInfo, fmt.Sprintf("state of %s shape is not supported", selInfo.Shape))
		}
	}
}

func (b *builder) classifyEnum(info *world.TypeInfo, v reflect.Value) {
	group, hasGroup := world.Attr[Group](info)
	key, hasKey := world.Attr[Key](info)
	if !hasKey {
		if hasGroup {
			b.skip(info, "enum tagged with Group needs a Key")
		}
		return
	}
	dest, ok := b.destination(info, group, hasGroup)
	if !ok || !b.claim(info, dest, key.Name) {
		return
	}
	b.enc.encodeEnum(joinPath(groupPath(group, hasGroup), key.Name), v, key.Name, dest)
}

// destination returns the group table when the resource has a Group, or
// the document root otherwise.
func (b *builder) destination(info *world.TypeInfo, group Group, hasGroup bool) (*Table, bool) {
	if !hasGroup {
		return b.doc, true
	}
	return b.group(info, group)
}

func (b *builder) group(info *world.TypeInfo, group Group) (*Table, bool) {
	dest, ok := b.doc.Entry(group.Name)
	if !ok {
		b.enc.record(&Diagnostic{
			Path: info.Path,
			Type: info.Type.String(),
			Err:  fmt.Errorf("%w: %q is not a table", ErrKeyConflict, group.Name),
		})
	}
	return dest, ok
}

// claim reports whether key is still free in dest. The first resource to
// write a key keeps it; later ones are recorded as conflicts.
func (b *builder) claim(info *world.TypeInfo, dest *Table, key string) bool {
	if !dest.Has(key) {
		return true
	}
	b.enc.record(&Diagnostic{
		Path: info.Path,
		Type: info.Type.String(),
		Err:  fmt.Errorf("%w: %q is already written", ErrKeyConflict, key),
	})
	return false
}

func (b *builder) skip(info *world.TypeInfo, detail string) {
	b.enc.record(&Diagnostic{
		Path: info.Path,
		Type: info.Type.String(),
		Err:  fmt.Errorf("%w: %s", ErrUnsupportedShape, detail),
	})
}

func groupPath(group Group, hasGroup bool) string {
	if !hasGroup {
		return ""
	}
	return group.Name
}
