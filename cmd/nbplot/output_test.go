package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/nbplot/document"
)

func TestResolveOutput_explicit_path(t *testing.T) {
	t.Parallel()

	got, format, err := resolveOutput(
		options{output: "plots/run.json"}, "/unused", "data.csv",
	)
	require.NoError(t, err)
	assert.Equal(t, "plots/run.json", got)
	assert.Equal(t, document.FormatJSON, format)

	_, format, err = resolveOutput(
		options{output: "run.out", format: "json"}, "/unused", "data.csv",
	)
	require.NoError(t, err)
	assert.Equal(t, document.FormatJSON, format)
}

func TestResolveOutput_generated_path(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nbplots")

	got, format, err := resolveOutput(options{}, dir, "-")
	require.NoError(t, err)
	assert.Equal(t, document.FormatYAML, format)
	assert.Equal(t, dir, filepath.Dir(got))
	assert.True(t, strings.HasPrefix(filepath.Base(got), "nbplot-"))
	assert.True(t, strings.HasSuffix(got, "-stdin.yaml"))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolveOutput_bad_format(t *testing.T) {
	t.Parallel()

	_, _, err := resolveOutput(
		options{format: "ipynb"}, t.TempDir(), "a.csv",
	)
	require.ErrorIs(t, err, document.ErrUnknownFormat)
}

func TestConfirmOverwrite_without_existing_file(t *testing.T) {
	t.Parallel()

	ok, err := confirmOverwrite(
		filepath.Join(t.TempDir(), "new.yaml"), false,
	)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = confirmOverwrite("/any/path", true)
	require.NoError(t, err)
	assert.True(t, ok)
}
