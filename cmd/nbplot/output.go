package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"github.com/byte4ever/nbplot/document"
)

// resolveOutput returns where and how to write the rendered
// document. Without an explicit output path the name is
// generated in outputDir, which is created when missing.
func resolveOutput(
	opts options,
	outputDir string,
	firstArg string,
) (string, document.Format, error) {
	const errCtx = "resolving output"

	if opts.output != "" {
		format := document.FormatFromPath(opts.output)

		if opts.format != "" {
			var err error

			format, err = document.ParseFormat(opts.format)
			if err != nil {
				return "", "", fmt.Errorf("%s: %w", errCtx, err)
			}
		}

		return opts.output, format, nil
	}

	format, err := document.ParseFormat(opts.format)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil { //nolint:gosec // user owned directory
		return "", "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return document.OutputPath(
		outputDir, firstArg, time.Now(), format,
	), format, nil
}

// confirmOverwrite asks before replacing an existing file.
// It only asks on an interactive terminal; otherwise, or
// when yes is set, it agrees.
func confirmOverwrite(path string, yes bool) (bool, error) {
	const errCtx = "confirming overwrite"

	if yes {
		return true, nil
	}

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return true, nil
	}

	ok := false

	if err := survey.AskOne(&survey.Confirm{
		Message: fmt.Sprintf("Overwrite %s?", path),
		Default: true,
	}, &ok); err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ok, nil
}
