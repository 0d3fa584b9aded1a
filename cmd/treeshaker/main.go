// Command treeshaker removes unused top-level statements from JavaScript.
//
// Usage:
//
//	treeshaker [options] <input.js>
//	cat input.js | treeshaker [options]
//
// Options:
//
//	-o <file>                        Write output to file (default: stdout)
//	--config <file>                  Use specific config file
//	--no-config                      Ignore config files
//	--no-treeshake                   Print the input without removing anything
//	--pure-globals                   Trust known built-ins to be free of effects
//	--no-property-read-side-effects  Treat unknown member reads as pure
//	--no-comments                    Drop comments above kept statements
//	--keep-lines <lines>             Comma-separated lines whose statements are kept
//	--sourcemap                      Write <output>.map, or inline the map on stdout
//	--perf                           Time each phase against <input>.perf.json
//	--report                         Print a JSON report of every statement to stderr
//	-v                               Log debug output to stderr
//	--version                        Print version and exit
//	--help                           Print help and exit
//
// Config file:
//
//	treeshaker looks for treeshaker.json, .treeshakerrc, .treeshakerrc.json,
//	treeshaker.yaml or treeshaker.yml in the input's directory and its
//	parents. Config file options are overridden by CLI flags.
//
// Example treeshaker.yaml:
//
//	pureGlobals: true
//	propertyReadSideEffects: false
//	keepStatements: [1]
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/HugoDaniel/treeshaker/internal/config"
	"github.com/HugoDaniel/treeshaker/internal/shaker"
	"github.com/HugoDaniel/treeshaker/internal/timers"
	"github.com/HugoDaniel/treeshaker/pkg/api"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// stdinPerfFile is the baseline used when reading from stdin.
const stdinPerfFile = "treeshaker.perf.json"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("treeshaker", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	var (
		outputFile                string
		configFile                string
		noConfig                  bool
		noTreeShake               bool
		pureGlobals               bool
		noPropertyReadSideEffects bool
		noComments                bool
		keepLines                 string
		sourceMap                 bool
		perf                      bool
		report                    bool
		verbose                   bool
		showVersion               bool
		showHelp                  bool
	)

	fs.StringVar(&outputFile, "o", "", "Write output to `file`")
	fs.StringVar(&configFile, "config", "", "Use specific config `file`")
	fs.BoolVar(&noConfig, "no-config", false, "Ignore config files")
	fs.BoolVar(&noTreeShake, "no-treeshake", false, "Print the input without removing anything")
	fs.BoolVar(&pureGlobals, "pure-globals", false, "Trust known built-ins to be free of effects")
	fs.BoolVar(&noPropertyReadSideEffects, "no-property-read-side-effects", false, "Treat unknown member reads as pure")
	fs.BoolVar(&noComments, "no-comments", false, "Drop comments above kept statements")
	fs.StringVar(&keepLines, "keep-lines", "", "Comma-separated `lines` whose statements are kept")
	fs.BoolVar(&sourceMap, "sourcemap", false, "Write <output>.map, or inline the map on stdout")
	fs.BoolVar(&perf, "perf", false, "Time each phase against <input>.perf.json")
	fs.BoolVar(&report, "report", false, "Print a JSON report of every statement to stderr")
	fs.BoolVar(&verbose, "v", false, "Log debug output to stderr")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showHelp, "help", false, "Print help and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "treeshaker - JavaScript tree-shaker v%s\n\n", version)
		fmt.Fprintf(stderr, "Usage: treeshaker [options] <input.js>\n")
		fmt.Fprintf(stderr, "       cat input.js | treeshaker [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nConfig file:\n")
		fmt.Fprintf(stderr, "  Searches for treeshaker.json, .treeshakerrc or treeshaker.yaml in the\n")
		fmt.Fprintf(stderr, "  input's directory and its parents. CLI flags override config file settings.\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  treeshaker bundle.js -o bundle.shaken.js\n")
		fmt.Fprintf(stderr, "  cat bundle.js | treeshaker --pure-globals > bundle.shaken.js\n")
		fmt.Fprintf(stderr, "  treeshaker --report bundle.js > /dev/null\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		fs.Usage()
		return nil
	}

	if showVersion {
		fmt.Fprintf(stdout, "treeshaker v%s (%s)\n", version, commit)
		return nil
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Read input
	source, err := readInput(fs, stdin)
	if err != nil {
		return err
	}

	// Load config file
	cfg := &config.Config{}
	if !noConfig {
		loaded, configPath, err := loadConfig(fs, configFile)
		if err != nil {
			return err
		}
		if loaded != nil {
			cfg = loaded
			logger.Debug("using config", "path", configPath)
		}
	}

	// Build CLI overrides - only set if explicitly specified
	lines, err := parseLines(keepLines)
	if err != nil {
		return fmt.Errorf("parsing --keep-lines: %w", err)
	}
	cliOpts := config.MergeOptions{
		NoTreeShaking: noTreeShake,
		NoComments:    noComments,
		Perf:          perf,
		KeepLines:     lines,
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["pure-globals"] {
		cliOpts.PureGlobals = &pureGlobals
	}
	if set["no-property-read-side-effects"] {
		readEffects := !noPropertyReadSideEffects
		cliOpts.PropertyReadSideEffects = &readEffects
	}

	opts := cfg.Merge(cliOpts)
	opts.Logger = logger
	if sourceMap {
		opts.GenerateSourceMap = true
		opts.SourceMapOptions.SourceName = "stdin"
		if fs.NArg() > 0 {
			opts.SourceMapOptions.SourceName = filepath.Base(fs.Arg(0))
		}
		if outputFile != "" {
			opts.SourceMapOptions.File = filepath.Base(outputFile)
		}
	}

	// Shake
	opts.Timers.Start("total")
	result := shaker.New(opts).Shake(string(source))
	opts.Timers.End("total")

	if result.Diagnostics != "" {
		fmt.Fprint(stderr, result.Diagnostics)
	}

	// Check for errors
	if len(result.Errors) > 0 {
		return fmt.Errorf("tree-shaking failed with %d error(s)", len(result.Errors))
	}

	// Write output
	code := result.Code
	if result.SourceMap != nil {
		inline := outputFile == ""
		if !inline {
			mapFile := outputFile + ".map"
			if err := os.WriteFile(mapFile, []byte(result.SourceMap.ToJSON()), 0644); err != nil {
				return fmt.Errorf("writing source map: %w", err)
			}
		}
		code += result.SourceMap.ToComment(inline) + "\n"
	}
	if err := writeOutput(outputFile, stdout, code); err != nil {
		return err
	}

	if report {
		encoder := json.NewEncoder(stderr)
		encoder.SetIndent("", "  ")
		apiResult := api.FromShaker(result)
		apiResult.Code = ""
		apiResult.SourceMap = ""
		if err := encoder.Encode(apiResult); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if opts.Timers.Enabled() {
		perfFile := stdinPerfFile
		if fs.NArg() > 0 {
			perfFile = timers.PerfFile(fs.Arg(0))
		}
		if err := opts.Timers.Flush(stderr, perfFile); err != nil {
			return fmt.Errorf("writing timings: %w", err)
		}
	}

	// Print stats to stderr if output is to file
	if outputFile != "" && result.Stats.OriginalSize > 0 {
		ratio := float64(result.Stats.ShakenSize) / float64(result.Stats.OriginalSize) * 100
		fmt.Fprintf(stderr, "Shaken: %d -> %d bytes (%.1f%%), %d of %d statements removed\n",
			result.Stats.OriginalSize, result.Stats.ShakenSize, ratio,
			result.Stats.StatementsRemoved, result.Stats.StatementsTotal)
	}

	return nil
}

func readInput(fs *flag.FlagSet, stdin io.Reader) ([]byte, error) {
	if fs.NArg() > 0 {
		// Read from file
		source, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return source, nil
	}

	// Refuse to wait on an interactive terminal
	if f, ok := stdin.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fs.Usage()
			return nil, fmt.Errorf("no input file specified")
		}
	}
	source, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return source, nil
}

func loadConfig(fs *flag.FlagSet, configFile string) (*config.Config, string, error) {
	if configFile != "" {
		// Use specified config file
		cfg, err := config.LoadFile(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("loading config file %s: %w", configFile, err)
		}
		return cfg, configFile, nil
	}

	// Search for config file
	startDir, _ := os.Getwd()
	if fs.NArg() > 0 {
		startDir = filepath.Dir(fs.Arg(0))
	}
	cfg, path, err := config.Load(startDir)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, path, nil
}

func writeOutput(outputFile string, stdout io.Writer, code string) error {
	output := stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	if _, err := io.WriteString(output, code); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func parseLines(list string) ([]int, error) {
	if list == "" {
		return nil, nil
	}
	var lines []int
	for _, field := range strings.Split(list, ",") {
		line, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		if line < 1 {
			return nil, fmt.Errorf("line %d out of range", line)
		}
		lines = append(lines, line)
	}
	return lines, nil
}
