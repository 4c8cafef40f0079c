// ABOUTME: Resource container for host application state
// ABOUTME: Owns the type registry and the process-wide change flag

package world

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// ChangeFlag records whether persisted state changed since the last save.
type ChangeFlag struct {
	set atomic.Bool
}

// Mark flags unsaved changes.
func (f *ChangeFlag) Mark() { f.set.Store(true) }

// IsSet reports whether unsaved changes exist.
func (f *ChangeFlag) IsSet() bool { return f.set.Load() }

// Clear resets the flag.
func (f *ChangeFlag) Clear() { f.set.Store(false) }

// Entry is one resource as seen by Each: its type identifier and a pointer
// to the stored value.
type Entry struct {
	ID    TypeID
	Value any
}

// World stores one resource per type.
type World struct {
	mu        sync.RWMutex
	registry  *Registry
	changed   ChangeFlag
	order     []TypeID
	resources map[TypeID]any
}

// New creates an empty World with its own registry.
func New() *World {
	return &World{
		registry:  NewRegistry(),
		resources: make(map[TypeID]any),
	}
}

// Registry returns the World's type registry.
func (w *World) Registry() *Registry {
	return w.registry
}

// Changed returns the World's change flag.
func (w *World) Changed() *ChangeFlag {
	return &w.changed
}

// Insert stores v as a resource, replacing any resource of the same type.
// Pointers are stored as given; other values are copied into a new pointer.
// Nil values and nil pointers are ignored.
func (w *World) Insert(v any) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return
	}
	if rv.Kind() != reflect.Pointer {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		v = ptr.Interface()
	}

	id := TypeOf(v)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.resources[id]; !exists {
		w.order = append(w.order, id)
	}
	w.resources[id] = v
}

// InsertState stores a State[S] resource and registers its type so the
// finite-state wrapper is visible to introspection.
func InsertState[S any](w *World, initial S) *State[S] {
	st := NewState(initial)
	RegisterType[State[S]](w.registry)
	w.Insert(st)
	return st
}

// Get returns the resource of type T. It does not lock; see Exclusive.
func Get[T any](w *World) (*T, bool) {
	v, ok := w.resources[TypeIDFor(reflect.TypeFor[T]())]
	if !ok {
		return nil, false
	}
	ptr, ok := v.(*T)
	return ptr, ok
}

// Mutate applies fn to the resource of type T under the World's lock and
// marks the change flag when T is persisted. It reports whether the
// resource exists.
func Mutate[T any](w *World, fn func(*T)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	ptr, ok := Get[T](w)
	if !ok {
		return false
	}
	fn(ptr)

	if w.persisted(ptr) {
		w.changed.Mark()
	}
	return true
}

// persisted reports whether v's type, or the selection of a finite-state
// wrapper, carries custom attributes.
func (w *World) persisted(v any) bool {
	if sel, ok := v.(Selection); ok {
		v = sel.Selected()
	}
	info, ok := w.registry.Lookup(TypeOf(v))
	return ok && len(info.Attrs) > 0
}

// Each calls fn for every resource in insertion order until fn returns
// false. It does not lock; call it inside Exclusive.
func (w *World) Each(fn func(Entry) bool) {
	for _, id := range w.order {
		if !fn(Entry{ID: id, Value: w.resources[id]}) {
			return
		}
	}
}

// Len returns the number of stored resources.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.order)
}

// Exclusive runs fn while holding the World's write lock, so no resource
// can be inserted or mutated until fn returns.
func (w *World) Exclusive(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}
