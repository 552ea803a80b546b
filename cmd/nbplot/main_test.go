package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/nbplot/document"
	"github.com/byte4ever/nbplot/loader"
	"github.com/byte4ever/nbplot/templating"
)

func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.MkdirAll(filepath.Dir(pa), 0o755))
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func readDocument(
	tb testing.TB,
	pa string,
) document.Document {
	tb.Helper()

	raw, err := os.ReadFile(pa) //nolint:gosec // test file
	require.NoError(tb, err)

	var doc document.Document
	require.NoError(tb, yaml.Unmarshal(raw, &doc))

	return doc
}

func TestGenerate_default_template(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	data := writeTemp(t, home, "run.csv", strings.Repeat("1,2,3\n", 10))

	abs, err := filepath.EvalSymlinks(data)
	require.NoError(t, err)

	outPath, err := generate(
		options{files: []string{data}}, home, "/project", strings.NewReader(""),
	)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "nbplots"), filepath.Dir(outPath))
	assert.True(t, strings.HasSuffix(outPath, "-run.yaml"))
	assert.FileExists(t, filepath.Join(home, userDirName, loader.UserConfigName))

	doc := readDocument(t, outPath)
	assert.Equal(t, "numpy", doc.Template)
	require.Len(t, doc.Cells, 3)

	assert.Contains(t, doc.Cells[0].Source, "os.chdir('/project')")
	assert.Contains(t, doc.Cells[1].Source, "sep0 = ','")
	assert.Contains(t, doc.Cells[1].Source, `np.genfromtxt("`+abs+`"`)
	assert.NotContains(t, doc.Cells[2].Source, templating.LoopStart)
}

func TestGenerate_user_template_and_stdin(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	configDir := filepath.Join(home, "conf")

	writeTemp(t, configDir, "mine.yaml", `cells:
  - cell_type: code
    source: |
      # [[nbplot]] template
      name: mine
  - cell_type: code
    source: |
      # [[nbplot]] for i,input in enumerate(inputs)
      $i ${input.pretty_name} '${input.guessed_sep}'
      # [[nbplot]] endfor
`)

	outPath := filepath.Join(home, "out.json")

	got, err := generate(
		options{
			files:     []string{"-"},
			template:  "mine",
			configDir: configDir,
			output:    outPath,
		},
		home, "/project", strings.NewReader("1;2\n3;4\n"),
	)
	require.NoError(t, err)
	assert.Equal(t, outPath, got)

	raw, err := os.ReadFile(outPath) //nolint:gosec // test file
	require.NoError(t, err)

	var doc document.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Cells, 1)
	assert.Equal(t, "0 stdin ';'\n", doc.Cells[0].Source)
}

func TestGenerate_unknown_template(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	data := writeTemp(t, home, "run.csv", "1 2\n")

	_, err := generate(
		options{files: []string{data}, template: "gnuplot"},
		home, "/project", strings.NewReader(""),
	)
	require.ErrorIs(t, err, templating.ErrTemplateNotFound)
	assert.Contains(t, err.Error(), "available: numpy, pandas")
}

func TestGenerate_missing_input(t *testing.T) {
	t.Parallel()

	home := t.TempDir()

	_, err := generate(
		options{files: []string{filepath.Join(home, "nope.csv")}},
		home, "/project", strings.NewReader(""),
	)
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(home, "nbplots"))
}
