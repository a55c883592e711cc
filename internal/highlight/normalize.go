package highlight

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// RecordFormat selects how structured records (maps and structs) are serialized
// into canonical text.
type RecordFormat string

const (
	RecordJSON RecordFormat = "json"
	RecordYAML RecordFormat = "yaml"
)

// Normalize converts v into canonical text, serializing records as indented JSON.
func Normalize(v any) string {
	return normalize(v, RecordJSON)
}

func normalize(v any, format RecordFormat) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	}

	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Invalid:
		return ""
	case reflect.Slice, reflect.Array:
		if isBytes(rv) {
			return string(rv.Bytes())
		}
		return joinElements(rv, "\n", visitSet{})
	case reflect.Map, reflect.Struct:
		return serializeRecord(rv.Interface(), format)
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(rv.Interface())
}

// indirect follows pointers and interfaces. Nil and self-referencing pointer
// chains yield the zero Value.
func indirect(rv reflect.Value) reflect.Value {
	var seen map[uintptr]bool
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		if rv.Kind() == reflect.Pointer {
			if seen[rv.Pointer()] {
				return reflect.Value{}
			}
			if seen == nil {
				seen = make(map[uintptr]bool)
			}
			seen[rv.Pointer()] = true
		}
		rv = rv.Elem()
	}
	return rv
}

// visitKey identifies a pointer, map or slice on the current traversal path.
type visitKey struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

type visitSet map[visitKey]bool

func keyOf(rv reflect.Value) (visitKey, bool) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return visitKey{}, false
		}
		return visitKey{ptr: rv.Pointer(), typ: rv.Type()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return visitKey{}, false
		}
		return visitKey{ptr: rv.Pointer(), typ: rv.Type(), n: rv.Len()}, true
	}
	return visitKey{}, false
}

// cyclic reports whether rv can reach one of its own ancestors.
func cyclic(rv reflect.Value, path visitSet) bool {
	if k, ok := keyOf(rv); ok {
		if path[k] {
			return true
		}
		path[k] = true
		defer delete(path, k)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil() && cyclic(rv.Elem(), path)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if cyclic(rv.Index(i), path) {
				return true
			}
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if cyclic(iter.Key(), path) || cyclic(iter.Value(), path) {
				return true
			}
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if cyclic(rv.Field(i), path) {
				return true
			}
		}
	}
	return false
}

func isBytes(rv reflect.Value) bool {
	return rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8
}

// joinElements stringifies each element of a sequence and joins them with sep.
// Nested sequences are joined with commas; nil elements and sequences that
// contain themselves become empty strings.
func joinElements(rv reflect.Value, sep string, path visitSet) string {
	if k, ok := keyOf(rv); ok {
		if path[k] {
			return ""
		}
		path[k] = true
		defer delete(path, k)
	}

	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = elementString(rv.Index(i), path)
	}
	return strings.Join(parts, sep)
}

func elementString(ev reflect.Value, path visitSet) string {
	ev = indirect(ev)
	switch ev.Kind() {
	case reflect.Invalid:
		return ""
	case reflect.String:
		return ev.String()
	case reflect.Slice, reflect.Array:
		if isBytes(ev) {
			return string(ev.Bytes())
		}
		return joinElements(ev, ",", path)
	}
	if !ev.CanInterface() || cyclic(ev, path) {
		return ""
	}
	return fmt.Sprint(ev.Interface())
}

// serializeRecord renders a record in the requested format. Serialization
// failures fall back to the generic %v form; records that contain themselves
// only name their type.
func serializeRecord(v any, format RecordFormat) string {
	if cyclic(reflect.ValueOf(v), visitSet{}) {
		return fmt.Sprintf("[circular %T]", v)
	}

	var (
		out string
		err error
	)
	switch format {
	case RecordYAML:
		out, err = marshalYAML(v)
	default:
		out, err = marshalJSON(v)
	}
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return out
}

func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func marshalYAML(v any) (out string, err error) {
	// yaml.v3 panics on some unsupported kinds (funcs, channels).
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to marshal yaml: %v", r)
		}
	}()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
