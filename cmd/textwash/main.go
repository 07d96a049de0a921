// Package main is the entry point for the textwash CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/textwash/internal/config"
	"github.com/dshills/textwash/internal/engine/buffer"
	"github.com/dshills/textwash/internal/engine/clean"
	"github.com/dshills/textwash/internal/session"
	"github.com/dshills/textwash/internal/view"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	output     string
	preset     string

	detect bool
	scan   bool
	stats  bool
	show   bool

	cleaning clean.Config
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	settings, err := config.Load(configPath(opts))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	sess := session.New()
	buf, err := loadInput(sess, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.detect {
		display, st := sess.Detect(buf)
		fmt.Println(display)
		printStats(st.Spaces, st.Tabs, st.Newlines, st.TotalInvisible, st.Details)
		return 0
	}

	if opts.scan {
		res, err := sess.Scan(ctx, buf, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Word entropy: %.3f bits (%d words)\n", res.WordEntropy, res.TotalWords)
		fmt.Printf("AI likelihood: %s\n", res.Likelihood)
		for _, wc := range res.TopWords {
			fmt.Printf("  %4d  %s\n", wc.Count, wc.Word)
		}
		return 0
	}

	cfg, err := resolveConfig(opts, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out := buf
	if cfg.Enabled() {
		out, err = sess.Clean(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.stats {
		st := sess.Stats()
		printStats(st.Spaces, st.Tabs, st.Newlines, st.TotalInvisible, st.Details)
	}

	if opts.show {
		name := "stdin"
		if args := flag.Args(); len(args) > 0 {
			name = args[0]
		}
		st := sess.Stats()
		title := fmt.Sprintf("%s (%d invisible)", name, st.TotalInvisible)
		if err := view.New(out, nil, title).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := writeOutput(sess, out, opts.output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadInput reads the named file, or stdin when no file is given.
func loadInput(sess *session.Session, args []string) (buffer.Buffer, error) {
	if len(args) > 1 {
		return buffer.Buffer{}, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
	if len(args) == 1 {
		return sess.LoadText(args[0])
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return buffer.Buffer{}, fmt.Errorf("reading stdin: %w", err)
	}
	return sess.SetText(string(data)), nil
}

// writeOutput saves to the named file, or prints to stdout.
func writeOutput(sess *session.Session, buf buffer.Buffer, path string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(buf.String())
		return err
	}
	return sess.SaveText(path, buf)
}

// resolveConfig merges settings defaults, a named preset and the
// command-line flags, in increasing precedence.
func resolveConfig(opts options, settings *config.Settings) (clean.Config, error) {
	cfg := settings.Defaults
	if opts.preset != "" {
		p, ok := settings.Preset(opts.preset)
		if !ok {
			return clean.Config{}, fmt.Errorf("unknown preset %q (available: %v)", opts.preset, settings.PresetNames())
		}
		cfg = p
	}

	if opts.cleaning.RemoveExtraSpaces {
		cfg.RemoveExtraSpaces = true
	}
	if opts.cleaning.RemoveExtraTabs {
		cfg.RemoveExtraTabs = true
	}
	if opts.cleaning.RemoveExtraNewlines {
		cfg.RemoveExtraNewlines = true
	}
	if opts.cleaning.TrimLines {
		cfg.TrimLines = true
	}
	if opts.cleaning.RemoveInvisible {
		cfg.RemoveInvisible = true
	}
	if opts.cleaning.TabWidth != 0 {
		cfg.TabWidth = opts.cleaning.TabWidth
	}
	if opts.cleaning.Pattern != "" {
		cfg.Pattern = opts.cleaning.Pattern
		cfg.Replacement = opts.cleaning.Replacement
	}

	return cfg, cfg.Validate()
}

// configPath returns the explicit -config path, or the default under
// the user config directory.
func configPath(opts options) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "textwash.toml"
	}
	return dir + "/textwash/textwash.toml"
}

func printStats(spaces, tabs, newlines, invisible int, details []string) {
	fmt.Fprintf(os.Stderr, "Spaces: %d  Tabs: %d  Newlines: %d  Invisible: %d\n",
		spaces, tabs, newlines, invisible)
	for _, d := range details {
		fmt.Fprintf(os.Stderr, "  %s\n", d)
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool
	var listPresets bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.output, "o", "", "Write output to file instead of stdout")
	flag.StringVar(&opts.preset, "preset", "", "Apply a named cleaning preset")

	flag.BoolVar(&opts.cleaning.RemoveExtraSpaces, "spaces", false, "Collapse runs of spaces to one")
	flag.BoolVar(&opts.cleaning.RemoveExtraTabs, "tabs", false, "Collapse runs of tabs to one")
	flag.BoolVar(&opts.cleaning.RemoveExtraNewlines, "newlines", false, "Collapse runs of newlines to one")
	flag.BoolVar(&opts.cleaning.TrimLines, "trim", false, "Trim trailing spaces and tabs from lines")
	flag.IntVar(&opts.cleaning.TabWidth, "expand-tabs", 0, "Expand tabs to N spaces (2, 4 or 8)")
	flag.BoolVar(&opts.cleaning.RemoveInvisible, "invisible", false, "Remove invisible watermark characters")
	flag.StringVar(&opts.cleaning.Pattern, "pattern", "", "Custom regex pattern to replace")
	flag.StringVar(&opts.cleaning.Replacement, "replace", "", "Replacement for -pattern matches")

	flag.BoolVar(&opts.detect, "detect", false, "Print text with visible whitespace markers and exit")
	flag.BoolVar(&opts.scan, "scan", false, "Run the AI-likelihood entropy scan and exit")
	flag.BoolVar(&opts.stats, "stats", false, "Print whitespace statistics to stderr")
	flag.BoolVar(&opts.show, "view", false, "Open an interactive marker preview of the result")
	flag.BoolVar(&listPresets, "presets", false, "List available presets and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Textwash - whitespace and watermark cleaner\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textwash [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Reads from stdin when no file is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  textwash -detect file.txt             Show invisible characters\n")
		fmt.Fprintf(os.Stderr, "  textwash -spaces -trim file.txt       Clean and print to stdout\n")
		fmt.Fprintf(os.Stderr, "  textwash -preset \"ChatGPT Unicode Watermarks\" -o out.txt in.txt\n")
		fmt.Fprintf(os.Stderr, "  textwash -scan file.txt               Entropy-based AI heuristic\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Textwash %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if listPresets {
		for _, name := range clean.PresetNames() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	return opts
}
