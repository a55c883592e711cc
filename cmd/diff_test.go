package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/maximbilan/sidediff/internal/config"
	"github.com/maximbilan/sidediff/internal/highlight"
	"github.com/maximbilan/sidediff/internal/input"
	"github.com/maximbilan/sidediff/internal/validation"
)

func testLoader(files map[string]string) *input.Loader {
	return &input.Loader{
		ReadFile: func(name string) ([]byte, error) {
			data, ok := files[name]
			if !ok {
				return nil, fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
			}
			return []byte(data), nil
		},
		Paste: func() (string, error) { return "", errors.New("no clipboard") },
	}
}

func testConfig() *config.Config {
	return &config.Config{
		InputFormat:  "text",
		RecordFormat: "json",
		MaxLines:     100,
		Theme:        "dark",
	}
}

func TestLoadTexts(t *testing.T) {
	files := map[string]string{
		"a.txt":  "a\nb\nc",
		"b.txt":  "a\nx\nc",
		"a.json": `[1, 2, 3]`,
		"b.json": `{"k": "v"}`,
		"a.yaml": "k: v\n",
		"big":    strings.Repeat("line\n", 200),
	}

	tests := []struct {
		name       string
		opts       diffOptions
		before     string
		after      string
		wantBefore string
		wantAfter  string
		wantErr    error
	}{
		{name: "text", before: "a.txt", after: "b.txt", wantBefore: "a\nb\nc", wantAfter: "a\nx\nc"},
		{
			name:       "json",
			opts:       diffOptions{format: "json"},
			before:     "a.json",
			after:      "b.json",
			wantBefore: "1\n2\n3",
			wantAfter:  "{\n  \"k\": \"v\"\n}",
		},
		{
			name:       "yaml input with yaml records",
			opts:       diffOptions{format: "yaml", recordFormat: "yaml"},
			before:     "a.yaml",
			after:      "a.yaml",
			wantBefore: "k: v",
			wantAfter:  "k: v",
		},
		{name: "too many lines", before: "big", after: "a.txt", wantErr: validation.ErrTooLarge},
		{name: "flag raises the limit", opts: diffOptions{maxLines: 500}, before: "big", after: "a.txt", wantBefore: strings.Repeat("line\n", 200), wantAfter: "a\nb\nc"},
		{name: "missing file", before: "nope", after: "a.txt", wantErr: fs.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, after, err := loadTexts(testLoader(files), testConfig(), tt.opts, tt.before, tt.after)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("loadTexts() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadTexts() error = %v", err)
			}
			if before != tt.wantBefore || after != tt.wantAfter {
				t.Errorf("loadTexts() = (%q, %q), want (%q, %q)", before, after, tt.wantBefore, tt.wantAfter)
			}
		})
	}
}

func TestLoadTextsRejectsBadOptions(t *testing.T) {
	files := map[string]string{"a": "x", "b": "y"}
	tests := []struct {
		name   string
		opts   diffOptions
		before string
		after  string
	}{
		{name: "unknown input format", opts: diffOptions{format: "csv"}, before: "a", after: "b"},
		{name: "unknown record format", opts: diffOptions{recordFormat: "toml"}, before: "a", after: "b"},
		{name: "stdin twice", before: "-", after: "-"},
		{name: "invalid json", opts: diffOptions{format: "json"}, before: "a", after: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := loadTexts(testLoader(files), testConfig(), tt.opts, tt.before, tt.after); err == nil {
				t.Fatal("loadTexts() error = nil, want error")
			}
		})
	}
}

type memCache struct {
	entries map[string]highlight.RenderedPair
	sets    int
}

func (m *memCache) Hash(parts ...string) string {
	return strings.Join(parts, "\x00")
}

func (m *memCache) Get(hash string) (string, string, bool) {
	p, ok := m.entries[hash]
	return p.Before, p.After, ok
}

func (m *memCache) Set(hash, before, after string) error {
	m.sets++
	m.entries[hash] = highlight.RenderedPair{Before: before, After: after}
	return nil
}

func TestMarkupFor(t *testing.T) {
	want := highlight.HighlightDiff("a\nb", "a\nc")

	if got := markupFor("a\nb", "a\nc", nil); got != want {
		t.Errorf("markupFor() without cache = %+v, want %+v", got, want)
	}

	store := &memCache{entries: map[string]highlight.RenderedPair{}}
	if got := markupFor("a\nb", "a\nc", store); got != want {
		t.Errorf("markupFor() miss = %+v, want %+v", got, want)
	}
	if store.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", store.sets)
	}

	// A hit is served from the cache.
	sentinel := highlight.RenderedPair{Before: "cached-before", After: "cached-after"}
	store.entries[store.Hash("a\nb", "a\nc")] = sentinel
	if got := markupFor("a\nb", "a\nc", store); got != sentinel {
		t.Errorf("markupFor() hit = %+v, want %+v", got, sentinel)
	}
	if store.sets != 1 {
		t.Errorf("cache sets after hit = %d, want 1", store.sets)
	}
}

func TestRunHTML(t *testing.T) {
	files := map[string]string{"before": "a\n<b>\nc", "after": "a\n<i>\nc"}

	var out bytes.Buffer
	if err := runHTML(&out, testLoader(files), testConfig(), diffOptions{}, "before", "after"); err != nil {
		t.Fatalf("runHTML() error = %v", err)
	}

	var got highlight.RenderedPair
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	want := highlight.HighlightDiff(files["before"], files["after"])
	if got != want {
		t.Errorf("runHTML() = %+v, want %+v", got, want)
	}
	if strings.Contains(out.String(), `\u003c`) {
		t.Errorf("markup should not be JSON-escaped: %s", out.String())
	}
}

func TestRunShow(t *testing.T) {
	files := map[string]string{"before": "1\n2\n3", "after": "1\n2"}

	var out bytes.Buffer
	err := runShow(&out, testLoader(files), testConfig(), diffOptions{width: 40}, "before", "after")
	if err != nil {
		t.Fatalf("runShow() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("runShow() printed %d lines, want 4:\n%s", len(lines), out.String())
	}
	if lines[3] != "0 changed, 1 removed, 0 added, 2 unchanged" {
		t.Errorf("summary line = %q", lines[3])
	}
}

func TestResolveWidth(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 120
	if got := resolveWidth(diffOptions{width: 80}, cfg); got != 80 {
		t.Errorf("resolveWidth() with flag = %d, want 80", got)
	}
	if got := resolveWidth(diffOptions{}, cfg); got != 120 {
		t.Errorf("resolveWidth() with config = %d, want 120", got)
	}
}
