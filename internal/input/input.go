// Package input loads the values to compare from files, stdin or the clipboard
// and decodes them according to an input format.
package input

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/maximbilan/sidediff/internal/clipboard"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format is how raw source text is turned into a value.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	// StdinSource reads the value from standard input.
	StdinSource = "-"
	// ClipboardSource reads the value from the system clipboard.
	ClipboardSource = "@clipboard"
)

// ParseFormat returns the Format named by s. The empty string is FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown input format %q (want text, json or yaml)", s)
}

// Loader reads sources. Stdin can be read at most once per Loader.
type Loader struct {
	Stdin    io.Reader
	Paste    func() (string, error)
	ReadFile func(name string) ([]byte, error)

	stdinUsed bool
}

// NewLoader returns a Loader backed by os.Stdin, the system clipboard and the
// file system.
func NewLoader() *Loader {
	return &Loader{
		Stdin:    os.Stdin,
		Paste:    clipboard.Paste,
		ReadFile: os.ReadFile,
	}
}

// Raw returns the unparsed text of source.
func (l *Loader) Raw(source string) (string, error) {
	switch source {
	case StdinSource:
		if l.stdinUsed {
			return "", fmt.Errorf("stdin can only be read once")
		}
		l.stdinUsed = true
		data, err := io.ReadAll(l.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case ClipboardSource:
		return l.Paste()
	}

	data, err := l.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return string(data), nil
}

// Load reads source and decodes it as format.
func (l *Loader) Load(source string, format Format) (any, error) {
	raw, err := l.Raw(source)
	if err != nil {
		return nil, err
	}
	v, err := Decode(raw, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}
	slog.Debug("loaded source", "source", source, "format", string(format), "bytes", len(raw))
	return v, nil
}

// Decode turns raw into a value. Text is returned unchanged; JSON and YAML
// documents become nil, scalars, []any or maps.
func Decode(raw string, format Format) (any, error) {
	switch format {
	case FormatJSON:
		if !gjson.Valid(raw) {
			return nil, fmt.Errorf("invalid JSON")
		}
		return jsonValue(gjson.Parse(raw)), nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return stringKeys(v), nil
	case FormatText, "":
		return raw, nil
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

// jsonValue converts a parsed document like gjson's Value, but keeps integers
// that a float64 cannot hold exactly.
func jsonValue(r gjson.Result) any {
	switch {
	case r.IsArray():
		items := r.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = jsonValue(item)
		}
		return out
	case r.IsObject():
		out := make(map[string]any)
		r.ForEach(func(key, value gjson.Result) bool {
			out[key.String()] = jsonValue(value)
			return true
		})
		return out
	case r.Type == gjson.Number:
		return jsonNumber(r)
	}
	return r.Value()
}

func jsonNumber(r gjson.Result) any {
	if math.Abs(r.Num) < 1<<53 {
		return r.Num
	}
	raw := strings.TrimSpace(r.Raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return n
	}
	return r.Num
}

// stringKeys rewrites the map[any]any values yaml.v3 produces for mappings
// with non-string keys into map[string]any, so they serialize as records.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	}
	return v
}
