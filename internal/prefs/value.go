// ABOUTME: Value model for the preferences document
// ABOUTME: Tagged values (string, integer, float, table) and an insertion-ordered table

package prefs

import "fmt"

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota + 1
	KindInteger
	KindFloat
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindTable:
		return "table"
	default:
		return "invalid"
	}
}

// Value is one document value. There is no null variant: an absent key is
// how "no value" is represented.
type Value struct {
	kind  Kind
	str   string
	num   int64
	float float64
	table *Table
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Integer returns an integer Value.
func Integer(i int64) Value { return Value{kind: KindInteger, num: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// TableValue returns a Value holding a nested table.
func TableValue(t *Table) Value { return Value{kind: KindTable, table: t} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInteger returns the integer held by v.
func (v Value) AsInteger() (int64, bool) { return v.num, v.kind == KindInteger }

// AsFloat returns the float held by v.
func (v Value) AsFloat() (float64, bool) { return v.float, v.kind == KindFloat }

// AsTable returns the table held by v.
func (v Value) AsTable() (*Table, bool) { return v.table, v.kind == KindTable }

// Interface converts v to the plain Go value the TOML encoder expects.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return v.num
	case KindFloat:
		return v.float
	case KindTable:
		return v.table.ToMap()
	default:
		return nil
	}
}

func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("String(%q)", v.str)
	case KindInteger:
		return fmt.Sprintf("Integer(%d)", v.num)
	case KindFloat:
		return fmt.Sprintf("Float(%g)", v.float)
	case KindTable:
		return fmt.Sprintf("Table(%d keys)", v.table.Len())
	default:
		return "Invalid"
	}
}

// Table is an ordered mapping from key to Value. Keys are unique and keep
// the position of their first insertion.
type Table struct {
	keys    []string
	entries map[string]Value
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]Value)}
}

// Set stores v under key. Replacing an existing key keeps its position.
func (t *Table) Set(key string, v Value) {
	if _, exists := t.entries[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = v
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.entries[key]
	return ok
}

// Delete removes key.
func (t *Table) Delete(key string) {
	if _, ok := t.entries[key]; !ok {
		return
	}
	delete(t.entries, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Entry returns the sub-table stored under key, creating it when key is
// absent. It returns false when key already holds a non-table value.
func (t *Table) Entry(key string) (*Table, bool) {
	if v, ok := t.entries[key]; ok {
		return v.AsTable()
	}
	sub := NewTable()
	t.Set(key, TableValue(sub))
	return sub, true
}

// ToMap converts the table to nested map[string]any values for encoding.
func (t *Table) ToMap() map[string]any {
	out := make(map[string]any, len(t.keys))
	for _, k := range t.keys {
		out[k] = t.entries[k].Interface()
	}
	return out
}
