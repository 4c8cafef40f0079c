// ABOUTME: Recursive value encoder turning reflected Go values into document values
// ABOUTME: Handles structs, optionals, unit enums and scalars; skips and logs the rest

package prefs

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/2389/coven-prefs/internal/world"
)

// Encoder writes reflected values into tables. Values it cannot encode are
// logged, recorded as diagnostics and omitted; encoding never stops early.
type Encoder struct {
	logger      *slog.Logger
	diagnostics []*Diagnostic

	// pointers currently being descended into, to break reference cycles
	visiting map[visit]struct{}
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

// NewEncoder creates an Encoder logging to logger, or slog.Default() if nil.
func NewEncoder(logger *slog.Logger) *Encoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Encoder{logger: logger}
}

// Encode stores v under key in t.
func (e *Encoder) Encode(v any, key string, t *Table) {
	e.encode(key, reflect.ValueOf(v), key, t)
}

// EncodeFields stores every field of the struct v directly in t.
func (e *Encoder) EncodeFields(v any, t *Table) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		e.unsupported("", rv, "not a struct")
		return
	}
	e.encodeFields("", rv, t)
}

// Diagnostics returns everything skipped so far.
func (e *Encoder) Diagnostics() []*Diagnostic {
	return append([]*Diagnostic(nil), e.diagnostics...)
}

// Err aggregates the recorded diagnostics, or returns nil when there are none.
func (e *Encoder) Err() error {
	var merr *multierror.Error
	for _, d := range e.diagnostics {
		merr = multierror.Append(merr, d)
	}
	return merr.ErrorOrNil()
}

func (e *Encoder) encode(path string, v reflect.Value, key string, t *Table) {
	if !v.IsValid() {
		e.unsupported(path, v, "invalid value")
		return
	}

	// Interface-typed fields encode their dynamic value; nil means absent.
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	switch world.ShapeOf(v.Type()) {
	case world.ShapeOptional:
		if v.IsNil() {
			return
		}
		if !e.enter(path, v) {
			return
		}
		e.encode(path, v.Elem(), key, t)
		e.leave(v)

	case world.ShapeEnum:
		e.encodeEnum(path, v, key, t)

	case world.ShapeStruct:
		sub := NewTable()
		e.encodeFields(path, v, sub)
		t.Set(key, TableValue(sub))

	default:
		e.encodeScalar(path, v, key, t)
	}
}

// encodeFields stores each exported field of the struct v in t. Nested
// structs become sub-tables at any depth. Untagged embedded structs are
// flattened, exported or not, so their promoted fields are kept.
func (e *Encoder) encodeFields(path string, v reflect.Value, t *Table) {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		fv := v.Field(i)

		if sf.Anonymous && sf.Tag.Get("toml") == "" {
			if e.flatten(path, fv, t) {
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}
		name := fieldKey(sf)
		if name == "-" {
			continue
		}
		e.encode(joinPath(path, name), fv, name, t)
	}
}

// flatten encodes the fields of an embedded struct, or pointer to one,
// directly into t. It reports false when fv is not an embedded struct.
func (e *Encoder) flatten(path string, fv reflect.Value, t *Table) bool {
	if fv.Kind() == reflect.Pointer {
		if fv.Type().Elem().Kind() != reflect.Struct || world.ShapeOf(fv.Type().Elem()) != world.ShapeStruct {
			return false
		}
		if fv.IsNil() || !e.enter(path, fv) {
			return true
		}
		e.encodeFields(path, fv.Elem(), t)
		e.leave(fv)
		return true
	}
	if fv.Kind() != reflect.Struct || world.ShapeOf(fv.Type()) != world.ShapeStruct {
		return false
	}
	e.encodeFields(path, fv, t)
	return true
}

// enter marks the pointer v as being descended into. It reports false, and
// records a diagnostic, when v is already on the current path.
func (e *Encoder) enter(path string, v reflect.Value) bool {
	seen := visit{ptr: v.Pointer(), typ: v.Type()}
	if _, cyclic := e.visiting[seen]; cyclic {
		e.unsupported(path, v, "cyclic reference")
		return false
	}
	if e.visiting == nil {
		e.visiting = make(map[visit]struct{})
	}
	e.visiting[seen] = struct{}{}
	return true
}

func (e *Encoder) leave(v reflect.Value) {
	delete(e.visiting, visit{ptr: v.Pointer(), typ: v.Type()})
}

func (e *Encoder) encodeEnum(path string, v reflect.Value, key string, t *Table) {
	if !v.CanInterface() {
		e.unsupported(path, v, "enum value is not accessible")
		return
	}
	en, ok := v.Interface().(world.Enum)
	if !ok {
		e.unsupported(path, v, "does not implement world.Enum")
		return
	}
	if kind := en.VariantKind(); kind != world.VariantUnit {
		e.unsupported(path, v, fmt.Sprintf("variant %s carries %s data", en.VariantName(), kind))
		return
	}
	t.Set(key, String(en.VariantName()))
}

func (e *Encoder) encodeScalar(path string, v reflect.Value, key string, t *Table) {
	switch v.Kind() {
	case reflect.Float32:
		// Widen through the shortest decimal form so 0.8 stays 0.8.
		f, _ := strconv.ParseFloat(strconv.FormatFloat(v.Float(), 'g', -1, 32), 64)
		t.Set(key, Float(f))

	case reflect.Float64:
		t.Set(key, Float(v.Float()))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		t.Set(key, Integer(v.Int()))

	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		t.Set(key, Integer(int64(v.Uint())))

	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			e.report(path, v, fmt.Errorf("%w: %s value too large: %d", ErrNumericOverflow, v.Kind(), u))
			return
		}
		t.Set(key, Integer(int64(u)))

	case reflect.String:
		t.Set(key, String(v.String()))

	case reflect.Slice, reflect.Array, reflect.Map:
		// TODO: encode slices and arrays as TOML arrays once loading exists.
		e.unsupported(path, v, fmt.Sprintf("%s containers are not implemented", v.Kind()))

	default:
		e.unsupported(path, v, "")
	}
}

func (e *Encoder) unsupported(path string, v reflect.Value, detail string) {
	err := ErrUnsupportedShape
	if detail != "" {
		err = fmt.Errorf("%w: %s", ErrUnsupportedShape, detail)
	}
	e.report(path, v, err)
}

func (e *Encoder) report(path string, v reflect.Value, err error) {
	d := &Diagnostic{Path: path, Err: err}
	if v.IsValid() {
		d.Type = v.Type().String()
	}
	e.record(d)
}

func (e *Encoder) record(d *Diagnostic) {
	e.diagnostics = append(e.diagnostics, d)
	e.logger.Warn("preferences: skipping entry", "key", d.Path, "type", d.Type, "error", d.Err)
}

// fieldKey resolves the document key of a struct field: the toml tag name
// when present, otherwise the Go field name. "-" disables the field.
func fieldKey(sf reflect.StructField) string {
	if tag := sf.Tag.Get("toml"); tag != "" {
		if i := strings.IndexByte(tag, ','); i >= 0 {
			tag = tag[:i]
		}
		if tag != "" {
			return tag
		}
	}
	return sf.Name
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
