package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"pkt.systems/mdblock"
	"pkt.systems/mdblock/conformance"
)

const defaultThemeName = "default"

func init() {
	version.SetDefaultModule("pkt.systems/mdblock")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	format          string
	themeName       string
	boring          bool
	width           int
	spans           bool
	configPath      string
	envFile         string
	strictHTML      bool
	strictLazy      bool
	frontMatter     bool
	maxItemLines    int
	maxListItems    int
	maxNestingDepth int
	noResolve       bool
	compare         bool
	fingerprint     bool
	metrics         bool
	listThemes      bool
	outPath         string
	logLevel        string
	showVersion     bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("mdblock", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.format, "format", "f", "text", "Output format: text|yaml")
	flags.StringVarP(&opts.themeName, "theme", "t", defaultThemeName, "Theme name for text output")
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.IntVarP(&opts.width, "width", "w", 0, "Truncate lines to this width (0 uses terminal width when writing to one)")
	flags.BoolVar(&opts.spans, "spans", false, "Print byte spans of top-level blocks")
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&opts.envFile, "env-file", "", "Load environment variables from this file before reading the configuration")
	flags.BoolVar(&opts.strictHTML, "strict-html", false, "Run block-tag HTML blocks to the next blank line even when closed on the first line")
	flags.BoolVar(&opts.strictLazy, "strict-lazy", false, "Allow lazy list item continuation only after paragraph text")
	flags.BoolVar(&opts.frontMatter, "front-matter", false, "Strip and decode leading front matter")
	flags.IntVar(&opts.maxItemLines, "max-item-lines", mdblock.DefaultMaxItemLines, "Line ceiling per list item")
	flags.IntVar(&opts.maxListItems, "max-list-items", mdblock.DefaultMaxListItems, "Item ceiling per list")
	flags.IntVar(&opts.maxNestingDepth, "max-nesting-depth", mdblock.DefaultMaxNestingDepth, "Container nesting ceiling")
	flags.BoolVar(&opts.noResolve, "no-resolve", false, "Leave reference links unresolved")
	flags.BoolVar(&opts.compare, "compare", false, "Compare block structure with the CommonMark reference parser")
	flags.BoolVar(&opts.fingerprint, "fingerprint", false, "Print the content fingerprint of each input")
	flags.BoolVar(&opts.metrics, "metrics", false, "Print parser metrics to stderr on exit")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&opts.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.BoolVarP(&opts.showVersion, "version", "V", false, "Print version and exit")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdblock [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if opts.listThemes {
		printThemes(stdout)
		return 0
	}

	level, err := parseLogLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --log-level %q: %v\n", opts.logLevel, err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	reg := prom.NewRegistry()
	parserOpts, err := buildOptions(flags, opts, logger, mdblock.NewPrometheusRecorder(reg))
	if err != nil {
		fmt.Fprintf(stderr, "configuration: %v\n", err)
		return 2
	}

	inputs, err := resolveInputs(flags.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	writer, closeOut, err := resolveOutput(opts.outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	dumpOpts, err := resolveDumpOptions(flags, opts, writer)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n\n", err)
		printThemes(stderr)
		return 2
	}

	parser := mdblock.New(parserOpts...)
	status := 0
	for _, in := range inputs {
		if len(inputs) > 1 {
			fmt.Fprintf(writer, "== %s ==\n", in.name)
		}
		if err := process(parser, parserOpts, in, writer, opts, dumpOpts); err != nil {
			logger.Error("input failed", slog.String("input", in.name), slog.String("error", err.Error()))
			status = 1
		}
	}
	if opts.metrics {
		if err := writeMetrics(stderr, reg); err != nil {
			fmt.Fprintf(stderr, "metrics: %v\n", err)
		}
	}
	return status
}

func process(parser *mdblock.Parser, parserOpts []mdblock.Option, in input, w io.Writer, opts options, dumpOpts mdblock.DumpOptions) error {
	src, err := in.read()
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if err := mdblock.ValidateInput(src); err != nil {
		return err
	}

	if opts.compare {
		report := conformance.Compare(src, parserOpts...)
		fmt.Fprintf(w, "matched %d blocks, %d divergences (%d unknown)\n",
			report.Matched, len(report.Divergences), len(report.Unknown()))
		for _, d := range report.Divergences {
			fmt.Fprintln(w, d.String())
		}
		if !report.Equivalent() {
			return errors.New("block structure differs from the reference parser")
		}
		return nil
	}

	doc := parser.Parse(src)
	if opts.fingerprint {
		fp, err := doc.Fingerprint()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, fp)
		return nil
	}
	doc.CollectDefinitions()
	if !opts.noResolve {
		if err := doc.ResolveReferences(); err != nil {
			return err
		}
	}
	if opts.format == "yaml" {
		return mdblock.DumpYAML(w, doc.Root)
	}
	return mdblock.Dump(w, doc.Root, dumpOpts)
}

// buildOptions layers the configuration file under explicitly set flags.
func buildOptions(flags *pflag.FlagSet, opts options, logger *slog.Logger, recorder mdblock.Recorder) ([]mdblock.Option, error) {
	if opts.envFile != "" {
		if err := godotenv.Load(normalizePath(opts.envFile)); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}
	cfg := &mdblock.Config{}
	if opts.configPath != "" {
		loaded, err := mdblock.LoadConfig(normalizePath(opts.configPath))
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.Changed("strict-html") {
		cfg.StrictHTML = opts.strictHTML
	}
	if flags.Changed("strict-lazy") {
		cfg.StrictLazy = opts.strictLazy
	}
	if flags.Changed("front-matter") || opts.fingerprint {
		cfg.FrontMatter = opts.frontMatter || opts.fingerprint
	}
	if flags.Changed("max-item-lines") {
		cfg.Limits.MaxItemLines = opts.maxItemLines
	}
	if flags.Changed("max-list-items") {
		cfg.Limits.MaxListItems = opts.maxListItems
	}
	if flags.Changed("max-nesting-depth") {
		cfg.Limits.MaxNestingDepth = opts.maxNestingDepth
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.Options(logger, recorder), nil
}

func resolveDumpOptions(flags *pflag.FlagSet, opts options, w io.Writer) (mdblock.DumpOptions, error) {
	switch opts.format {
	case "text", "yaml":
	default:
		return mdblock.DumpOptions{}, fmt.Errorf("unknown format %q", opts.format)
	}
	theme, ok := mdblock.ThemeByName(opts.themeName)
	if !ok {
		return mdblock.DumpOptions{}, fmt.Errorf("unknown theme %q", opts.themeName)
	}
	tty := isTerminal(w)
	if opts.boring || (!tty && !flags.Changed("theme")) {
		theme = mdblock.BoringTheme()
	}
	width := opts.width
	if width == 0 && tty {
		width = terminalWidth(w)
	}
	return mdblock.DumpOptions{Theme: theme, Width: width, Spans: opts.spans}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(s)))
	return level, err
}

func printThemes(w io.Writer) {
	for _, name := range mdblock.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return 0
}

func writeMetrics(w io.Writer, reg *prom.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
