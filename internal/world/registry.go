// ABOUTME: Type registry describing host types and their custom attributes
// ABOUTME: Derives the reflected shape of each Go type for the preference walker

package world

import (
	"reflect"
	"sync"
)

// TypeID is the stable identifier of a Go type: its fully-qualified path.
type TypeID string

// Shape classifies how a type is laid out for encoding purposes.
type Shape int

const (
	ShapeUnsupported Shape = iota
	ShapeStruct
	ShapeWrapper
	ShapeEnum
	ShapeOptional
	ShapeScalar
)

func (s Shape) String() string {
	switch s {
	case ShapeStruct:
		return "struct"
	case ShapeWrapper:
		return "wrapper"
	case ShapeEnum:
		return "enum"
	case ShapeOptional:
		return "optional"
	case ShapeScalar:
		return "scalar"
	default:
		return "unsupported"
	}
}

var enumType = reflect.TypeFor[Enum]()

// PathOf returns the fully-qualified name of t, e.g.
// "github.com/2389/coven-prefs/internal/world.State[...]".
func PathOf(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// TypeIDFor returns the TypeID of t.
func TypeIDFor(t reflect.Type) TypeID {
	return TypeID(PathOf(t))
}

// TypeOf returns the TypeID of the dynamic type of v. Pointers are
// dereferenced once so that a resource and its pointer share an ID.
func TypeOf(v any) TypeID {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return TypeIDFor(t)
}

// ShapeOf derives the Shape of t from Go reflection.
func ShapeOf(t reflect.Type) Shape {
	// Pointers first: *T has T's value methods, so a nil *Enum would
	// otherwise be treated as an enum and dereferenced.
	if t.Kind() == reflect.Pointer {
		return ShapeOptional
	}
	if t.Implements(enumType) {
		return ShapeEnum
	}

	switch t.Kind() {
	case reflect.Struct:
		return ShapeStruct
	case reflect.Interface, reflect.Invalid:
		return ShapeUnsupported
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return ShapeWrapper
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.String, reflect.Bool,
		reflect.Complex64, reflect.Complex128:
		return ShapeScalar
	default:
		return ShapeUnsupported
	}
}

// TypeInfo is the registered metadata of one type.
type TypeInfo struct {
	ID    TypeID
	Path  string
	Type  reflect.Type
	Shape Shape

	// FieldNames lists the named fields of a struct type, in declaration order.
	FieldNames []string

	// Attrs holds the custom attributes attached at registration.
	Attrs []any
}

// FieldCount reports how many fields the type exposes: the number of struct
// fields, one for a wrapper, zero otherwise.
func (ti *TypeInfo) FieldCount() int {
	switch ti.Shape {
	case ShapeStruct:
		return len(ti.FieldNames)
	case ShapeWrapper:
		return 1
	default:
		return 0
	}
}

// Attr returns the first attribute of type T attached to ti.
func Attr[T any](ti *TypeInfo) (T, bool) {
	var zero T
	if ti == nil {
		return zero, false
	}
	for _, a := range ti.Attrs {
		if v, ok := a.(T); ok {
			return v, true
		}
	}
	return zero, false
}

// Registry maps TypeIDs to TypeInfo. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[TypeID]*TypeInfo
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[TypeID]*TypeInfo)}
}

// Register records t with the given attributes, replacing any previous
// registration of the same type.
func (r *Registry) Register(t reflect.Type, attrs ...any) *TypeInfo {
	info := Describe(t)
	info.Attrs = append([]any(nil), attrs...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[info.ID] = info
	return info
}

// RegisterType registers T with the given attributes.
func RegisterType[T any](r *Registry, attrs ...any) *TypeInfo {
	return r.Register(reflect.TypeFor[T](), attrs...)
}

// Lookup returns the metadata registered for id.
func (r *Registry) Lookup(id TypeID) (*TypeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.types[id]
	return info, ok
}

// Describe builds TypeInfo for t without registering it.
func Describe(t reflect.Type) *TypeInfo {
	info := &TypeInfo{
		ID:    TypeIDFor(t),
		Path:  PathOf(t),
		Type:  t,
		Shape: ShapeOf(t),
	}
	if info.Shape == ShapeStruct {
		for i := 0; i < t.NumField(); i++ {
			info.FieldNames = append(info.FieldNames, t.Field(i).Name)
		}
	}
	return info
}
