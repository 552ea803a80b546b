package templating

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound is returned when expanding a name
	// missing from the table.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateSyntax is matched by every *SyntaxError.
	ErrTemplateSyntax = errors.New("template syntax error")
)

// SyntaxError locates a malformed loop construct.
type SyntaxError struct {
	// Template is the template name.
	Template string

	// Block is the zero-based index of the offending block.
	Block int

	// Line is the one-based line within the block.
	Line int

	// Construct is the marker at fault.
	Construct string

	// Reason says what is wrong with it.
	Reason string
}

func (se *SyntaxError) Error() string {
	return fmt.Sprintf(
		"%s: template %q, block %d, line %d: %s: %q",
		ErrTemplateSyntax, se.Template, se.Block, se.Line,
		se.Reason, se.Construct,
	)
}

// Unwrap makes errors.Is(err, ErrTemplateSyntax) hold.
func (se *SyntaxError) Unwrap() error {
	return ErrTemplateSyntax
}
