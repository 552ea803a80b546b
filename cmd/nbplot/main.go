// Command nbplot renders a plotting notebook template against
// the data files given on the command line. Each file gets its
// field delimiter guessed; "-" reads the data from standard
// input and embeds it in the rendered document.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/byte4ever/nbplot/document"
	"github.com/byte4ever/nbplot/inputs"
	"github.com/byte4ever/nbplot/loader"
	"github.com/byte4ever/nbplot/templates"
	"github.com/byte4ever/nbplot/templating"
)

// userDirName is the user directory, relative to home.
const userDirName = ".nbplot"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	output    string
	template  string
	format    string
	configDir string
	verbose   bool
	debug     bool
	yes       bool
	files     []string
}

func parseFlags() options {
	var opts options

	flag.StringVar(
		&opts.output, "output", "",
		"Output document path (generated in the output directory if empty)",
	)
	flag.StringVar(&opts.output, "o", "", "Shorthand for -output")

	flag.StringVar(
		&opts.template, "template", "",
		"Template name (e.g. numpy or pandas), config default if empty",
	)
	flag.StringVar(&opts.template, "t", "", "Shorthand for -template")

	flag.StringVar(
		&opts.format, "format", "",
		"Output format: yaml or json (from the output extension if empty)",
	)

	flag.StringVar(
		&opts.configDir, "config_dir", "",
		"User config and template directory (~/"+userDirName+" if empty)",
	)

	flag.BoolVar(&opts.verbose, "verbose", false, "Show more logging")
	flag.BoolVar(&opts.verbose, "v", false, "Shorthand for -verbose")
	flag.BoolVar(&opts.debug, "debug", false, "Show even more logging")

	flag.BoolVar(
		&opts.yes, "yes", false,
		"Overwrite an existing output without asking",
	)

	flag.Usage = func() {
		fmt.Fprintf(
			flag.CommandLine.Output(),
			"Usage: %s [flags] FILE... (use - for stdin)\n",
			filepath.Base(os.Args[0]),
		)
		flag.PrintDefaults()
	}

	flag.Parse()

	opts.files = flag.Args()

	return opts
}

func setupLogging(opts options) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelInfo
	}

	if opts.debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr, &slog.HandlerOptions{Level: level},
	)))
}

func run() error {
	const errCtx = "running nbplot"

	opts := parseFlags()
	setupLogging(opts)

	if len(opts.files) == 0 {
		flag.Usage()

		return fmt.Errorf("%s: no file to plot", errCtx)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := generate(opts, home, wd, os.Stdin); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// generate renders the chosen template against the input
// files and writes the document. It returns the written
// path, empty when an existing output was kept.
func generate(
	opts options,
	home string,
	wd string,
	stdin io.Reader,
) (string, error) {
	const errCtx = "generating document"

	if opts.configDir == "" {
		opts.configDir = filepath.Join(home, userDirName)
	}

	ins, err := inputs.Collect(opts.files, stdin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	ca, err := loadCatalog(opts.configDir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	cfg, err := ca.Config.Resolve(home)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	tplName := opts.template
	if tplName == "" {
		tplName = cfg.DefaultTemplate
	}

	fmt.Printf("Chosen template: %s\n", tplName)

	en := templating.Engine{Templates: ca.Templates, WorkingDir: wd}

	blocks, err := en.Expand(tplName, ins)
	if errors.Is(err, templating.ErrTemplateNotFound) {
		return "", fmt.Errorf(
			"%s: %w (available: %s)",
			errCtx, err, strings.Join(ca.Templates.Names(), ", "),
		)
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	outPath, format, err := resolveOutput(
		opts, cfg.OutputDirectory, opts.files[0],
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	ok, err := confirmOverwrite(outPath, opts.yes)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if !ok {
		slog.Warn("output left untouched", "path", outPath)

		return "", nil
	}

	if err := document.Write(outPath, document.Document{
		Template: tplName,
		Cells:    blocks,
	}, format); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	fmt.Printf("%s successfully generated.\n", outPath)

	slog.Info(
		"open it from a notebook server rooted at the working directory",
		"working_directory", cfg.WorkingDirectory,
	)

	return outPath, nil
}

// loadCatalog loads the built-in templates, then the user
// documents of configDir, generating its config first when
// missing.
func loadCatalog(configDir string) (*loader.Catalog, error) {
	const errCtx = "loading templates"

	if _, err := loader.EnsureUserDir(
		configDir, templates.DefaultConfig,
	); err != nil {
		slog.Error(
			"could not create the user config",
			"dir", configDir, "error", err,
		)
	}

	ca := loader.NewCatalog()

	if err := ca.LoadFS(templates.FS, templates.BuiltinDir); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := ca.LoadDir(configDir); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ca, nil
}
