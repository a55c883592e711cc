package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/maximbilan/sidediff/internal/cache"
	"github.com/maximbilan/sidediff/internal/clipboard"
	"github.com/maximbilan/sidediff/internal/config"
	"github.com/maximbilan/sidediff/internal/highlight"
	"github.com/maximbilan/sidediff/internal/input"
	"github.com/maximbilan/sidediff/internal/ui"
	"github.com/maximbilan/sidediff/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// defaultWidth is used when the terminal size cannot be detected.
const defaultWidth = 160

type diffOptions struct {
	format       string
	recordFormat string
	maxLines     int
	noCache      bool
	copy         bool
	width        int
	theme        string
}

var opts diffOptions

var htmlCmd = &cobra.Command{
	Use:   "html BEFORE AFTER",
	Short: "Print the highlighted markup for both sides as JSON",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHTML(cmd.OutOrStdout(), input.NewLoader(), cfg, opts, args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show BEFORE AFTER",
	Short: "Print both sides as aligned columns",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runShow(cmd.OutOrStdout(), input.NewLoader(), cfg, opts, args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var viewCmd = &cobra.Command{
	Use:   "view BEFORE AFTER",
	Short: "Browse both sides in an interactive viewer",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := compareSources(input.NewLoader(), cfg, opts, args[0], args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		title := args[0] + " → " + args[1]
		if err := ui.Run(title, c.AlignedRows(), ui.ThemeFor(firstNonEmpty(opts.theme, cfg.Theme))); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// loadTexts reads both sources and normalizes them into canonical text,
// rejecting inputs over the line limit.
func loadTexts(loader *input.Loader, cfg *config.Config, o diffOptions, before, after string) (string, string, error) {
	if err := validation.ValidateSources(before, after); err != nil {
		return "", "", err
	}

	format, err := input.ParseFormat(firstNonEmpty(o.format, cfg.InputFormat))
	if err != nil {
		return "", "", err
	}
	records := highlight.RecordFormat(firstNonEmpty(o.recordFormat, cfg.RecordFormat, string(highlight.RecordJSON)))
	if records != highlight.RecordJSON && records != highlight.RecordYAML {
		return "", "", fmt.Errorf("unknown record format %q (want json or yaml)", records)
	}

	beforeValue, err := loader.Load(before, format)
	if err != nil {
		return "", "", err
	}
	afterValue, err := loader.Load(after, format)
	if err != nil {
		return "", "", err
	}

	h := highlight.New(highlight.Options{RecordFormat: records})
	beforeText, afterText := h.Normalize(beforeValue), h.Normalize(afterValue)

	beforeLines, afterLines := len(highlight.SplitLines(beforeText)), len(highlight.SplitLines(afterText))
	if err := validation.ValidateLineCounts(beforeLines, afterLines, firstPositive(o.maxLines, cfg.MaxLines)); err != nil {
		return "", "", err
	}
	slog.Debug("normalized sources", "before_lines", beforeLines, "after_lines", afterLines, "records", string(records))
	return beforeText, afterText, nil
}

func compareSources(loader *input.Loader, cfg *config.Config, o diffOptions, before, after string) (highlight.Comparison, error) {
	beforeText, afterText, err := loadTexts(loader, cfg, o, before, after)
	if err != nil {
		return highlight.Comparison{}, err
	}
	return highlight.CompareText(beforeText, afterText), nil
}

// pairCache stores rendered markup pairs.
type pairCache interface {
	Hash(parts ...string) string
	Get(hash string) (before, after string, ok bool)
	Set(hash, before, after string) error
}

// markupFor renders the pair for two canonical texts, consulting store when it
// is non-nil. Cache failures only cost a recomputation.
func markupFor(beforeText, afterText string, store pairCache) highlight.RenderedPair {
	if store == nil {
		return highlight.CompareText(beforeText, afterText).Markup()
	}

	hash := store.Hash(beforeText, afterText)
	if before, after, ok := store.Get(hash); ok {
		slog.Debug("cache hit", "hash", hash)
		return highlight.RenderedPair{Before: before, After: after}
	}

	c := highlight.CompareText(beforeText, afterText)
	if c.Identical {
		slog.Debug("identical texts, skipped line diff")
	}
	pair := c.Markup()
	if err := store.Set(hash, pair.Before, pair.After); err != nil {
		slog.Warn("failed to write cache entry", "error", err)
	}
	return pair
}

func openCache(cfg *config.Config, o diffOptions) pairCache {
	if o.noCache || !cfg.CacheEnabled {
		return nil
	}
	c, err := cache.New(cfg.CacheTTLDays)
	if err != nil {
		slog.Warn("cache disabled", "error", err)
		return nil
	}
	return c
}

func runHTML(w io.Writer, loader *input.Loader, cfg *config.Config, o diffOptions, before, after string) error {
	beforeText, afterText, err := loadTexts(loader, cfg, o, before, after)
	if err != nil {
		return err
	}
	pair := markupFor(beforeText, afterText, openCache(cfg, o))

	var out strings.Builder
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pair); err != nil {
		return fmt.Errorf("failed to encode markup: %w", err)
	}

	if o.copy {
		if err := clipboard.Copy(out.String()); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, out.String())
	return err
}

// resolveWidth picks the output width: flag, then config, then the terminal.
func resolveWidth(o diffOptions, cfg *config.Config) int {
	if w := firstPositive(o.width, cfg.Width); w > 0 {
		return w
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func runShow(w io.Writer, loader *input.Loader, cfg *config.Config, o diffOptions, before, after string) error {
	c, err := compareSources(loader, cfg, o, before, after)
	if err != nil {
		return err
	}
	rows := c.AlignedRows()
	theme := ui.ThemeFor(firstNonEmpty(o.theme, cfg.Theme))

	if _, err := fmt.Fprintln(w, ui.RenderRows(rows, resolveWidth(o, cfg), theme)); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, ui.FormatSummary(highlight.Summarize(rows)))
	return err
}

func init() {
	for _, c := range []*cobra.Command{htmlCmd, showCmd, viewCmd} {
		c.Flags().StringVarP(&opts.format, "format", "f", "", "input format: text, json or yaml (default from config)")
		c.Flags().StringVar(&opts.recordFormat, "record-format", "", "record serialization: json or yaml (default from config)")
		c.Flags().IntVar(&opts.maxLines, "max-lines", 0, "maximum lines per side (default from config)")
		rootCmd.AddCommand(c)
	}
	htmlCmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the markup cache")
	htmlCmd.Flags().BoolVar(&opts.copy, "copy", false, "also copy the JSON output to the clipboard")
	for _, c := range []*cobra.Command{showCmd, viewCmd} {
		c.Flags().StringVar(&opts.theme, "theme", "", "color theme: dark or light (default from config)")
	}
	showCmd.Flags().IntVarP(&opts.width, "width", "w", 0, "output width in columns (default: terminal width)")
}
