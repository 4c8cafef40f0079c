// ABOUTME: Colorized rendering of a preferences document
// ABOUTME: Prints one dotted key per line in document order

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/2389/coven-prefs/internal/prefs"
)

func printTable(out io.Writer, prefix string, t *prefs.Table) {
	keyColor := color.New(color.FgCyan)
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.AsTable(); ok {
			printTable(out, path, sub)
			continue
		}
		keyColor.Fprint(out, path)
		fmt.Fprintf(out, " = %s\n", formatValue(v))
	}
}

func formatValue(v prefs.Value) string {
	switch v.Kind() {
	case prefs.KindString:
		s, _ := v.AsString()
		return fmt.Sprintf("%q", s)
	case prefs.KindInteger:
		i, _ := v.AsInteger()
		return fmt.Sprintf("%d", i)
	case prefs.KindFloat:
		f, _ := v.AsFloat()
		return fmt.Sprintf("%g", f)
	default:
		return v.Kind().String()
	}
}
