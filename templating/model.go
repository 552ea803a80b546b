package templating

import (
	"slices"
)

// Loop markers. A line matches when equal to the marker once
// trailing whitespace is removed.
const (
	LoopStart = "# [[nbplot]] for i,input in enumerate(inputs)"
	LoopEnd   = "# [[nbplot]] endfor"
)

// Input describes one file or stream a template is rendered
// against.
type Input struct {
	// PrettyName is a short display label.
	PrettyName string

	// RelPath is the path as given on the command line.
	RelPath string

	// Reference is a source code expression giving access
	// to the data (a quoted path, a decoding expression).
	// It is substituted verbatim.
	Reference string

	// GuessedSep is the field delimiter guessed for the
	// data.
	GuessedSep rune
}

// Block is one cell of a template or of a rendered
// document. Metadata is opaque and carried over to the
// rendered block.
type Block struct {
	CellType string         `json:"cell_type" yaml:"cell_type"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Source   string         `json:"source" yaml:"source"`
}

// Template is a named, ordered list of blocks.
type Template struct {
	Name     string
	Metadata map[string]any
	Blocks   []Block
}

// Table indexes templates by name.
type Table map[string]Template

// Names returns the template names in lexical order.
func (ta Table) Names() []string {
	names := make([]string, 0, len(ta))
	for name := range ta {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
