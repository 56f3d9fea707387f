package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"ccjpost/internal/ccdb"
	"ccjpost/internal/logging"
	"ccjpost/internal/model"
	"ccjpost/internal/rewrite"
	"ccjpost/internal/tui"
	"ccjpost/internal/web"
)

// options is the parsed command line.
type options struct {
	Input          string
	Append         []string
	PostConf       string
	Policy         model.DedupPolicy
	SkipNonexisted bool
	DumpList       bool
	FindCommand    []string
	SelectFile     bool
	Web            bool
	Addr           string
	Output         string
	Jobs           int
	Progress       bool
}

// app carries the streams and logger a run writes to.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccjpost -i compile_commands.json [options]\n\n")
		fmt.Fprintf(os.Stderr, "ccjpost post-processes compile_commands.json databases.\n")
		fmt.Fprintf(os.Stderr, "It merges databases, drops duplicate files, rewrites every compiler\n")
		fmt.Fprintf(os.Stderr, "command with the postprocess rules and prints the result.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ccjpost -i build/compile_commands.json > compile_commands.json\n")
		fmt.Fprintf(os.Stderr, "  ccjpost -i a.json -a b.json,c.json -p rules.json -o merged.json\n")
		fmt.Fprintf(os.Stderr, "  ccjpost -i a.json --find_command src/main.cpp\n")
		fmt.Fprintf(os.Stderr, "  ccjpost -i a.json -s        # Pick C++ files interactively\n")
	}

	inputFlag := pflag.StringP("input", "i", "", "Input compile_commands.json file (required)")
	appendFlag := pflag.StringSliceP("append", "a", nil, "Append additional compile_commands.json files (comma-separated or repeated)")
	confFlag := pflag.StringP("post_conf", "p", "", "JSON or YAML file with postprocess rules")
	dupFlag := pflag.String("keep-duplicated", string(model.PolicyRetainFirst), "How to handle duplicate files: keep, retain_first or retain_last")
	skipFlag := pflag.Bool("skip-nonexisted", false, "Skip source files that don't exist on the filesystem")
	listFlag := pflag.Bool("dump_list", false, "List all source files (translation units)")
	findFlag := pflag.StringSlice("find_command", nil, "Print directory and command for the specified files (comma-separated)")
	selectFlag := pflag.BoolP("select_file", "s", false, "Pick C++ source files with an interactive fuzzy finder")
	webFlag := pflag.BoolP("web", "w", false, "Serve the processed database over HTTP")
	addrFlag := pflag.String("addr", ":8080", "Listen address for --web")
	outputFlag := pflag.StringP("output", "o", "", "Write output to the specified file instead of stdout")
	jobsFlag := pflag.IntP("jobs", "j", runtime.NumCPU(), "Number of entries processed concurrently")
	verboseFlag := pflag.CountP("verbose", "v", "Increase verbosity (-v for info, -vv for debug)")
	quietFlag := pflag.BoolP("quiet", "q", false, "Suppress progress and non-error logs")
	noColorFlag := pflag.Bool("no-color", false, "Disable color output")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	stderrTTY := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if *noColorFlag || !stderrTTY {
		color.NoColor = true
	}

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("ccjpost version %s\n", model.Version)
		return
	}

	if *inputFlag == "" {
		fmt.Fprintf(os.Stderr, "%s --input is required\n\n", color.RedString("Error:"))
		pflag.Usage()
		os.Exit(2)
	}

	policy, err := model.ParseDedupPolicy(*dupFlag)
	if err != nil {
		fatal(err)
	}

	logger, err := logging.New(*verboseFlag, *quietFlag)
	if err != nil {
		fatal(err)
	}

	opts := options{
		Input:          *inputFlag,
		Append:         *appendFlag,
		PostConf:       *confFlag,
		Policy:         policy,
		SkipNonexisted: *skipFlag,
		DumpList:       *listFlag,
		FindCommand:    *findFlag,
		SelectFile:     *selectFlag,
		Web:            *webFlag,
		Addr:           *addrFlag,
		Output:         *outputFlag,
		Jobs:           *jobsFlag,
		Progress:       stderrTTY && !*quietFlag,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := &app{stdout: os.Stdout, stderr: os.Stderr, logger: logger}
	err = a.run(ctx, opts)
	stop()
	_ = logger.Sync()
	if err != nil {
		fatal(err)
	}
}

// fatal prints err and exits with status 1.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
	os.Exit(1)
}

// run loads and processes the database, then performs exactly one terminal action.
func (a *app) run(ctx context.Context, opts options) error {
	entries, err := a.loadDatabase(ctx, opts)
	if err != nil {
		return err
	}

	switch {
	case opts.DumpList:
		return a.writeOutput(opts.Output, func(w io.Writer) error {
			return ccdb.ListFiles(w, entries)
		})
	case len(opts.FindCommand) > 0:
		found := ccdb.FindCommands(entries, opts.FindCommand)
		if len(found) == 0 {
			a.logger.Warn("no entry matches", zap.Strings("files", opts.FindCommand))
		}
		return a.writeOutput(opts.Output, func(w io.Writer) error {
			return ccdb.WriteCommands(w, found)
		})
	case opts.SelectFile:
		return a.runSelectMode(entries)
	case opts.Web:
		return web.NewServer(entries, a.logger).ListenAndServe(opts.Addr)
	default:
		return a.writeOutput(opts.Output, func(w io.Writer) error {
			return ccdb.Dump(w, entries)
		})
	}
}

// loadDatabase reads the rules and every input database, reconciles them and
// post-processes the surviving entries.
func (a *app) loadDatabase(ctx context.Context, opts options) ([]model.CompileEntry, error) {
	var rules *model.Rules
	if opts.PostConf != "" {
		var err error
		if rules, err = ccdb.LoadRules(opts.PostConf); err != nil {
			return nil, err
		}
	}
	ruleSet, err := rewrite.Compile(rules)
	if err != nil {
		return nil, err
	}

	entries, err := ccdb.LoadEntries(opts.Input)
	if err != nil {
		return nil, err
	}
	sources := make([][]model.CompileEntry, 0, len(opts.Append))
	for _, path := range opts.Append {
		appended, err := ccdb.LoadEntries(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, appended)
	}
	entries = ccdb.Merge(entries, sources...)
	a.logger.Info("database loaded",
		zap.String("input", opts.Input),
		zap.Int("appended", len(opts.Append)),
		zap.Int("entries", len(entries)),
	)

	before := len(entries)
	entries = ccdb.Deduplicate(entries, opts.Policy)
	a.logger.Info("duplicates reconciled",
		zap.String("policy", string(opts.Policy)),
		zap.Int("dropped", before-len(entries)),
	)

	if ruleSet.HasIgnore() {
		before = len(entries)
		entries = ccdb.FilterIgnored(entries, ruleSet)
		a.logger.Info("ignored files dropped", zap.Int("dropped", before-len(entries)))
	}

	if opts.SkipNonexisted {
		before = len(entries)
		entries = ccdb.FilterExisting(entries)
		a.logger.Info("missing files dropped", zap.Int("dropped", before-len(entries)))
	}

	processor := &ccdb.Processor{Rules: ruleSet, Jobs: opts.Jobs, Logger: a.logger}
	var bar *progressbar.ProgressBar
	if opts.Progress && len(entries) > 0 {
		bar = progressbar.NewOptions(len(entries),
			progressbar.OptionSetWriter(a.stderr),
			progressbar.OptionSetDescription("Postprocessing"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		processor.Progress = bar
	}
	err = processor.Process(ctx, entries)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (a *app) runSelectMode(entries []model.CompileEntry) error {
	candidates := ccdb.CppSources(entries)
	if len(candidates) == 0 {
		fmt.Fprintln(a.stderr, "No C++ files found in compile commands.")
		return nil
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return errors.New("--select_file needs a terminal on stderr")
	}

	selected, err := tui.Run(candidates, os.Stderr)
	if errors.Is(err, tui.ErrCancelled) {
		fmt.Fprintln(a.stderr, "Selection cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Fprintln(a.stderr, "No files selected.")
		return nil
	}
	for _, path := range selected {
		fmt.Fprintln(a.stdout, path)
	}
	return nil
}

// writeOutput renders into memory first, then writes to path or stdout.
func (a *app) writeOutput(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if path == "" {
		_, err := buf.WriteTo(a.stdout)
		return err
	}
	path = model.ExpandTilde(path)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	a.logger.Info("output written", zap.String("path", path))
	return nil
}
