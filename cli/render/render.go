// Package render provides output rendering for the lumen CLI.
//
// Format selection:
//   - If output is a TTY, default to table
//   - If output is not a TTY, default to json
//   - --format flag always overrides defaults
//   - Invalid formats are errors
//
// --no-color affects table output only.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/pithecene-io/lumen/cli/tui"
	"github.com/pithecene-io/lumen/iox"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a format string, returning an error for invalid formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	case "yaml":
		return FormatYAML, nil
	case "":
		return "", nil // Let caller decide default
	default:
		return "", fmt.Errorf("invalid format: %q (must be json, table, or yaml)", s)
	}
}

var keyStyle = lipgloss.NewStyle().Bold(true)

// Renderer handles output formatting.
type Renderer struct {
	format  Format
	noColor bool
	out     io.Writer
}

// NewRenderer creates a renderer from CLI context.
func NewRenderer(c *cli.Context) (*Renderer, error) {
	format, err := ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	tty := isTTY(os.Stdout)
	if format == "" {
		if tty {
			format = FormatTable
		} else {
			format = FormatJSON
		}
	}

	return &Renderer{
		format:  format,
		noColor: c.Bool("no-color") || !tty,
		out:     os.Stdout,
	}, nil
}

// NewRendererWithWriter creates a renderer with a custom writer (for testing).
func NewRendererWithWriter(format Format, noColor bool, out io.Writer) *Renderer {
	return &Renderer{
		format:  format,
		noColor: noColor,
		out:     out,
	}
}

// Format returns the selected format.
func (r *Renderer) Format() Format { return r.format }

// Render outputs the data in the configured format.
func (r *Renderer) Render(data any) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(data)
	case FormatTable:
		return r.renderTable(data)
	case FormatYAML:
		return r.renderYAML(data)
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

// RenderTUI runs the interactive view for viewType.
func (r *Renderer) RenderTUI(viewType string, data any) error {
	if !tui.IsTUISupported(viewType) {
		return fmt.Errorf("--tui is not supported for %s", viewType)
	}
	return tui.Run(viewType, data)
}

func (r *Renderer) renderJSON(data any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (r *Renderer) renderYAML(data any) error {
	enc := yaml.NewEncoder(r.out)
	defer iox.DiscardClose(enc)
	enc.SetIndent(2)
	return enc.Encode(data)
}

func (r *Renderer) renderTable(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice {
		return r.renderSliceTable(v)
	}
	return r.renderKeyValueTable(v)
}

func (r *Renderer) renderSliceTable(v reflect.Value) error {
	if v.Len() == 0 {
		_, err := fmt.Fprintln(r.out, "(no results)")
		return err
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	defer iox.DiscardErr(w.Flush)

	headers := columnNames(indirect(v.Index(0)))
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = r.key(h)
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))

	for i := 0; i < v.Len(); i++ {
		fields := flatten(indirect(v.Index(i)))
		row := make([]string, len(headers))
		for j, h := range headers {
			row[j] = fields[h]
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return nil
}

func (r *Renderer) renderKeyValueTable(v reflect.Value) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	defer iox.DiscardErr(w.Flush)

	v = indirect(v)
	if v.Kind() != reflect.Struct && v.Kind() != reflect.Map {
		fmt.Fprintf(w, "%s\n", formatScalar(v))
		return nil
	}

	fields := flatten(v)
	for _, name := range columnNames(v) {
		fmt.Fprintf(w, "%s:\t%s\n", r.key(name), fields[name])
	}
	return nil
}

func (r *Renderer) key(s string) string {
	if r.noColor {
		return s
	}
	return keyStyle.Render(s)
}

// columnNames lists the flattened field names of v in display order:
// struct fields in declaration order, map keys sorted.
func columnNames(v reflect.Value) []string {
	var names []string
	var walk func(v reflect.Value, prefix string)
	walk = func(v reflect.Value, prefix string) {
		v = indirect(v)
		switch {
		case v.Kind() == reflect.Struct && !isTime(v):
			t := v.Type()
			for i := 0; i < t.NumField(); i++ {
				f := t.Field(i)
				name, ok := fieldName(f)
				if !ok {
					continue
				}
				walk(v.Field(i), prefix+name+".")
			}
		case v.Kind() == reflect.Map && prefix == "":
			keys := make([]string, 0, v.Len())
			for _, k := range v.MapKeys() {
				keys = append(keys, fmt.Sprint(k.Interface()))
			}
			sort.Strings(keys)
			names = append(names, keys...)
		default:
			names = append(names, strings.TrimSuffix(prefix, "."))
		}
	}
	walk(v, "")
	return names
}

// flatten returns field name -> formatted value. Nested structs become
// dotted names ("header.width").
func flatten(v reflect.Value) map[string]string {
	out := make(map[string]string)
	var walk func(v reflect.Value, prefix string)
	walk = func(v reflect.Value, prefix string) {
		v = indirect(v)
		switch {
		case v.Kind() == reflect.Struct && !isTime(v):
			t := v.Type()
			for i := 0; i < t.NumField(); i++ {
				name, ok := fieldName(t.Field(i))
				if !ok {
					continue
				}
				walk(v.Field(i), prefix+name+".")
			}
		case v.Kind() == reflect.Map && prefix == "":
			iter := v.MapRange()
			for iter.Next() {
				out[fmt.Sprint(iter.Key().Interface())] = formatScalar(iter.Value())
			}
		default:
			out[strings.TrimSuffix(prefix, ".")] = formatScalar(v)
		}
	}
	walk(v, "")
	return out
}

// fieldName prefers the json tag name; "-" and unexported fields are skipped.
func fieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	if tag := f.Tag.Get("json"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", false
		}
		if name != "" {
			return name, true
		}
	}
	return strings.ToLower(f.Name), true
}

func formatScalar(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.String {
			parts := make([]string, v.Len())
			for i := range parts {
				parts[i] = v.Index(i).String()
			}
			return strings.Join(parts, ",")
		}
		if v.Len() == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "{}"
		}
		parts := make([]string, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			parts = append(parts, fmt.Sprintf("%v=%v", iter.Key().Interface(), iter.Value().Interface()))
		}
		sort.Strings(parts)
		return strings.Join(parts, " ")
	case reflect.Struct:
		if isTime(v) {
			return v.Interface().(time.Time).Format(time.RFC3339)
		}
		return "{...}"
	default:
		if d, ok := v.Interface().(time.Duration); ok {
			return d.String()
		}
		return fmt.Sprintf("%v", v.Interface())
	}
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isTime(v reflect.Value) bool {
	return v.Type() == reflect.TypeOf(time.Time{})
}

// isTTY returns true if the writer is a TTY.
func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
