package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"
	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/nbplot/templating"
)

// Format selects the encoding of a written document.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// nameTemplate is the pattern of generated output names.
const nameTemplate = "nbplot-{date}-{stem}.{ext}"

// dateLayout formats the date part of generated names.
const dateLayout = "2006-01-02_15-04-05"

// ErrUnknownFormat is returned for a format other than yaml
// or json.
var ErrUnknownFormat = errors.New("unknown document format")

// Document is a rendered template.
type Document struct {
	Template string             `json:"template" yaml:"template"`
	Cells    []templating.Block `json:"cells" yaml:"cells"`
}

// ParseFormat validates a format name. The empty name means
// YAML.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks JSON for ".json" files and YAML
// otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

// OutputPath returns the generated output path in dir for a
// render made at now whose first input argument is
// firstArg. Standard input ("-") is named "stdin".
func OutputPath(
	dir string,
	firstArg string,
	now time.Time,
	format Format,
) string {
	base := filepath.Base(firstArg)

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}

	if firstArg == "-" {
		stem = "stdin"
	}

	name := fasttemplate.ExecuteStringStd(
		nameTemplate, "{", "}",
		map[string]interface{}{
			"date": now.Format(dateLayout),
			"stem": stem,
			"ext":  string(format),
		},
	)

	return filepath.Join(dir, name)
}

// Encode serializes doc in format.
func Encode(doc Document, format Format) ([]byte, error) {
	const errCtx = "encoding document"

	var (
		data []byte
		err  error
	)

	switch format {
	case FormatYAML:
		data, err = yaml.MarshalWithOptions(
			doc, yaml.UseLiteralStyleIfMultiline(true),
		)
	case FormatJSON:
		data, err = json.MarshalIndent(doc, "", " ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return data, nil
}

// Write encodes doc and atomically replaces the file at
// path with it.
func Write(path string, doc Document, format Format) error {
	const errCtx = "writing document"

	data, err := Encode(doc, format)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
