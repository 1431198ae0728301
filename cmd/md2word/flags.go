package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing errors.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds conversion flags shared by convert and serve.
type renderFlags struct {
	highlight string // style, "default" or "none"
	rawHTML   bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	render  renderFlags
	output  string
	workers int
	text    bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	render    renderFlags
	addr      string
	basePath  string
	envFile   string
	assetPath string
	logLevel  string
	logFormat string
	metrics   bool
}

// configFlags holds flags for the config command.
type configFlags struct {
	common commonFlags
	init   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// addRenderFlags adds conversion flags to a FlagSet.
// A bare --highlight enables colouring with the configured style.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.highlight, "highlight", "", "colour fenced code: style name, or none")
	fs.Lookup("highlight").NoOptDefVal = highlightConfigured
	fs.BoolVar(&f.rawHTML, "raw-html", false, "pass raw HTML in the Markdown through")
}

// registerConvertFlags adds the convert command flags to fs.
// Shared by parsing and shell completion.
func registerConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.text, "text", false, "write the plain-text alternative instead of HTML")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
}

// registerServeFlags adds the serve command flags to fs.
func registerServeFlags(fs *flag.FlagSet, f *serveFlags) {
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (host:port)")
	fs.StringVar(&f.basePath, "base-path", "", "mount point of the web interface")
	fs.StringVar(&f.envFile, "env-file", "", ".env file with MD2WORD_* variables")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom web interface directory")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.BoolVar(&f.metrics, "metrics", false, "expose Prometheus metrics")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
}

// registerConfigFlags adds the config command flags to fs.
func registerConfigFlags(fs *flag.FlagSet, f *configFlags) {
	fs.StringVar(&f.init, "init", "", "write a default config file to this path")
	addCommonFlags(fs, &f.common)
}

// newFlagSet creates a FlagSet that reports to w and prints usage on -h.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseArgs parses fs, wrapping errors other than -h in ErrUsage.
func parseArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", stderr, printConvertUsage)
	registerConvertFlags(fs, f)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", stderr, printServeUsage)
	registerServeFlags(fs, f)

	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, stderr io.Writer) (*configFlags, error) {
	f := &configFlags{}
	fs := newFlagSet("config", stderr, printConfigUsage)
	registerConfigFlags(fs, f)

	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: config takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}
