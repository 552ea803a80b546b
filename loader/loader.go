package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/nbplot/templating"
)

// Cell markers, matched against the whole first line.
const (
	TemplateMarker = "# [[nbplot]] template"
	ConfigMarker   = "# [[nbplot]] config"
	IgnoreMarker   = "# [[nbplot]] ignore"
)

// documentPatterns select document files in a directory.
var documentPatterns = []string{"*.yaml", "*.yml"}

// ErrInvalidDocument is returned for documents whose
// annotated cells cannot be used.
var ErrInvalidDocument = errors.New("invalid document")

// document is the on-disk shape of a template or config
// document.
type document struct {
	Cells []templating.Block `yaml:"cells"`
}

// Catalog is the state shared by the loading steps: the
// templates by name and the config. Build it with
// NewCatalog.
type Catalog struct {
	Templates templating.Table
	Config    Config
}

// NewCatalog returns an empty catalog with the default
// config.
func NewCatalog() *Catalog {
	return &Catalog{
		Templates: make(templating.Table),
		Config:    DefaultConfig(),
	}
}

// LoadFiles loads the documents of each file, in order.
func (ca *Catalog) LoadFiles(paths []string) error {
	const errCtx = "loading files"

	for _, pa := range paths {
		if err := ca.loadFile(pa); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return nil
}

func (ca *Catalog) loadFile(pa string) (retErr error) {
	fi, err := os.Open(pa) //nolint:gosec // documents come from known directories
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = closeErr
		}
	}()

	return ca.Load(pa, fi)
}

// LoadDir loads every document file of dir in lexical
// order. A missing dir loads nothing.
func (ca *Catalog) LoadDir(dir string) error {
	const errCtx = "loading directory"

	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	var paths []string

	for _, pattern := range documentPatterns {
		found, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		paths = append(paths, found...)
	}

	slices.Sort(paths)

	if err := ca.LoadFiles(paths); err != nil {
		return fmt.Errorf("%s: %s: %w", errCtx, dir, err)
	}

	return nil
}

// LoadFS loads every document file of dir within fsys in
// lexical order.
func (ca *Catalog) LoadFS(fsys fs.FS, dir string) error {
	const errCtx = "loading embedded documents"

	var names []string

	for _, pattern := range documentPatterns {
		found, err := fs.Glob(fsys, path.Join(dir, pattern))
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		names = append(names, found...)
	}

	slices.Sort(names)

	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if err := ca.Load(name, bytes.NewReader(content)); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return nil
}

// Load applies every document read from in. name only
// labels log lines and errors.
func (ca *Catalog) Load(name string, in io.Reader) error {
	const errCtx = "loading document"

	decoder := yaml.NewDecoder(in)

	for {
		var doc document

		err := decoder.Decode(&doc)
		if err == io.EOF {
			break
		}

		if err != nil {
			return fmt.Errorf(
				"%s: %s: decoding yaml: %w", errCtx, name, err,
			)
		}

		if err := ca.apply(name, doc); err != nil {
			return fmt.Errorf("%s: %s: %w", errCtx, name, err)
		}
	}

	return nil
}

// apply dispatches doc on its first annotated cell.
func (ca *Catalog) apply(name string, doc document) error {
	for ci, cell := range doc.Cells {
		switch firstLine(cell.Source) {
		case TemplateMarker:
			return ca.addTemplate(name, doc.Cells[ci:])
		case ConfigMarker:
			return ca.mergeConfig(name, doc.Cells[ci:])
		}
	}

	slog.Warn(
		"ignoring document without nbplot cell",
		"document", name,
	)

	return nil
}

// addTemplate registers the template whose metadata cell is
// cells[0], replacing any template of the same name.
func (ca *Catalog) addTemplate(
	name string,
	cells []templating.Block,
) error {
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(cells[0].Source), &meta); err != nil {
		return fmt.Errorf(
			"%w: template metadata: %w", ErrInvalidDocument, err,
		)
	}

	tplName, _ := meta["name"].(string)
	if tplName == "" {
		return fmt.Errorf(
			"%w: template metadata has no name", ErrInvalidDocument,
		)
	}

	var blocks []templating.Block

	for _, cell := range cells[1:] {
		if firstLine(cell.Source) != IgnoreMarker {
			blocks = append(blocks, cell)
		}
	}

	if _, ok := ca.Templates[tplName]; ok {
		slog.Info(
			"overriding template",
			"template", tplName,
			"document", name,
		)
	} else {
		slog.Debug(
			"found template",
			"template", tplName,
			"document", name,
		)
	}

	ca.Templates[tplName] = templating.Template{
		Name:     tplName,
		Metadata: meta,
		Blocks:   blocks,
	}

	return nil
}

// mergeConfig merges every config cell of cells onto the
// current config.
func (ca *Catalog) mergeConfig(
	name string,
	cells []templating.Block,
) error {
	for _, cell := range cells {
		if firstLine(cell.Source) != ConfigMarker {
			continue
		}

		var pa configPatch
		if err := yaml.UnmarshalWithOptions(
			[]byte(cell.Source), &pa, yaml.DisallowUnknownField(),
		); err != nil {
			return fmt.Errorf(
				"%w: config: %w", ErrInvalidDocument, err,
			)
		}

		ca.Config.apply(pa)

		slog.Debug("found config", "document", name)
	}

	return nil
}

// firstLine returns src up to its first newline.
func firstLine(src string) string {
	line, _, _ := strings.Cut(src, "\n")

	return line
}
