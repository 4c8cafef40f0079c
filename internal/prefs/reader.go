// ABOUTME: Reads a committed preferences file back into the value model
// ABOUTME: Used for display and verification; does not write into host resources

package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
)

// ReadDocument decodes dir/prefs.toml. Values outside the document model
// (booleans, arrays, datetimes) are skipped and reported in the returned
// error alongside the table.
func ReadDocument(dir string) (*Table, error) {
	path := filepath.Join(dir, FileName)

	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	var merr *multierror.Error
	doc := tableFromMap("", raw, &merr)
	return doc, merr.ErrorOrNil()
}

func tableFromMap(path string, m map[string]any, merr **multierror.Error) *Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := NewTable()
	for _, k := range keys {
		p := joinPath(path, k)
		switch v := m[k].(type) {
		case string:
			t.Set(k, String(v))
		case int64:
			t.Set(k, Integer(v))
		case float64:
			t.Set(k, Float(v))
		case map[string]any:
			t.Set(k, TableValue(tableFromMap(p, v, merr)))
		default:
			*merr = multierror.Append(*merr, &Diagnostic{
				Path: p,
				Type: fmt.Sprintf("%T", v),
				Err:  ErrUnsupportedShape,
			})
		}
	}
	return t
}
