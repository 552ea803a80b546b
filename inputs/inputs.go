package inputs

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/byte4ever/nbplot/delim"
	"github.com/byte4ever/nbplot/templating"
)

// StdinArg is the argument standing for standard input.
const StdinArg = "-"

// stdinName labels the standard input.
const stdinName = "stdin"

// maxPrettyLen bounds the display label length, ellipsis
// excluded.
const maxPrettyLen = 32

// ErrInputNotFound is returned for a file argument that
// does not exist.
var ErrInputNotFound = errors.New("input does not exist")

// Collect returns one input per argument, in order. stdin
// is read for the "-" argument.
func Collect(
	args []string,
	stdin io.Reader,
) ([]templating.Input, error) {
	const errCtx = "collecting inputs"

	out := make([]templating.Input, 0, len(args))

	for _, arg := range args {
		var (
			in  templating.Input
			err error
		)

		if arg == StdinArg {
			in, err = FromStdin(stdin)
		} else {
			in, err = FromFile(arg)
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		slog.Info(
			"input",
			"name", in.PrettyName,
			"sep", string(in.GuessedSep),
		)

		out = append(out, in)
	}

	return out, nil
}

// FromFile describes the file at path. The reference is the
// quoted absolute path with symbolic links resolved. The
// file is read as text, any line ending being accepted.
func FromFile(path string) (in templating.Input, retErr error) {
	const errCtx = "reading input"

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return templating.Input{}, fmt.Errorf(
			"%s: %w: %s", errCtx, ErrInputNotFound, path,
		)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return templating.Input{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return templating.Input{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	fi, err := os.Open(path) //nolint:gosec // path from CLI argument
	if err != nil {
		return templating.Input{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	sep, err := delim.GuessText(bufio.NewReader(fi))
	if err != nil {
		return templating.Input{}, fmt.Errorf(
			"%s: %s: %w", errCtx, path, err,
		)
	}

	return templating.Input{
		PrettyName: PrettyName(path),
		RelPath:    path,
		Reference:  `"` + abs + `"`,
		GuessedSep: sep,
	}, nil
}

// FromStdin reads all of stdin and describes it. The
// reference decodes the content embedded as base64, so the
// rendered document does not depend on the stream anymore.
func FromStdin(stdin io.Reader) (templating.Input, error) {
	const errCtx = "reading standard input"

	content, err := io.ReadAll(stdin)
	if err != nil {
		return templating.Input{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	sep, err := delim.Guess(bytes.NewReader(content))
	if err != nil {
		return templating.Input{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return templating.Input{
		PrettyName: stdinName,
		RelPath:    stdinName,
		Reference:  StdinReference(content),
		GuessedSep: sep,
	}, nil
}

// StdinReference returns the Python expression rebuilding
// content as a binary stream.
func StdinReference(content []byte) string {
	return fmt.Sprintf(
		"io.BytesIO(b64decode(b'%s'))",
		base64.StdEncoding.EncodeToString(content),
	)
}

// PrettyName keeps the last 32 characters of long names,
// prefixed with an ellipsis.
func PrettyName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxPrettyLen {
		return name
	}

	return "..." + string(runes[len(runes)-maxPrettyLen:])
}
