package templating

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"unicode"
)

// Engine expands templates from a table. Expand only reads
// the table, so one Engine may serve concurrent expansions.
type Engine struct {
	// Templates holds the templates known by name.
	Templates Table

	// WorkingDir is substituted for $root_path.
	WorkingDir string
}

// Expand renders the template called name against inputs.
// It returns ErrTemplateNotFound for an unknown name and a
// *SyntaxError for a malformed loop, never a partial result.
func (en *Engine) Expand(
	name string,
	inputs []Input,
) ([]Block, error) {
	const errCtx = "expanding template"

	tpl, ok := en.Templates[name]
	if !ok {
		return nil, fmt.Errorf(
			"%s: %w: %q", errCtx, ErrTemplateNotFound, name,
		)
	}

	if tpl.Name == "" {
		tpl.Name = name
	}

	blocks, err := Render(tpl, inputs, en.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"expanded template",
		"name", name,
		"inputs", len(inputs),
		"blocks", len(blocks),
	)

	return blocks, nil
}

// Render renders every block of tpl, in order, against
// inputs. The template is left untouched; rendered blocks
// get their own copy of the block metadata.
func Render(
	tpl Template,
	inputs []Input,
	workingDir string,
) ([]Block, error) {
	out := make([]Block, 0, len(tpl.Blocks))

	for bi, bl := range tpl.Blocks {
		src, err := renderSource(bl.Source, inputs, workingDir)
		if err != nil {
			var se *SyntaxError
			if errors.As(err, &se) {
				se.Template = tpl.Name
				se.Block = bi
			}

			return nil, err
		}

		out = append(out, Block{
			CellType: bl.CellType,
			Metadata: maps.Clone(bl.Metadata),
			Source:   src,
		})
	}

	return out, nil
}

// renderSource substitutes the global placeholders in src,
// then replaces each loop span by the concatenated
// renderings of its body, one per input, separated by a
// blank line. Only nested and unterminated loops are
// errors.
func renderSource(
	src string,
	inputs []Input,
	workingDir string,
) (string, error) {
	var (
		out      strings.Builder
		body     strings.Builder
		inLoop   bool
		loopLine int
	)

	for ln, line := range splitLines(
		Substitute(src, globalVars(workingDir)),
	) {
		switch strings.TrimRightFunc(line, unicode.IsSpace) {
		case LoopStart:
			if inLoop {
				return "", &SyntaxError{
					Line:      ln + 1,
					Construct: LoopStart,
					Reason:    "nested loop",
				}
			}

			inLoop = true
			loopLine = ln + 1

			body.Reset()
		case LoopEnd:
			// A stray end renders the last body again, empty
			// when no loop was opened before.
			inLoop = false

			for i, in := range inputs {
				if i > 0 {
					out.WriteByte('\n')
				}

				out.WriteString(Substitute(
					body.String(), loopVars(workingDir, i, in),
				))
			}
		default:
			if inLoop {
				body.WriteString(line)
			} else {
				out.WriteString(line)
			}
		}
	}

	if inLoop {
		return "", &SyntaxError{
			Line:      loopLine,
			Construct: LoopStart,
			Reason:    "missing " + LoopEnd,
		}
	}

	return out.String(), nil
}

// splitLines splits s after each newline. The last line may
// lack one.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
