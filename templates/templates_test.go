package templates_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/nbplot/loader"
	"github.com/byte4ever/nbplot/templates"
	"github.com/byte4ever/nbplot/templating"
)

func TestBuiltin_templates_render(t *testing.T) {
	t.Parallel()

	ca := loader.NewCatalog()
	require.NoError(t, ca.LoadFS(templates.FS, templates.BuiltinDir))
	require.Equal(t, []string{"numpy", "pandas"}, ca.Templates.Names())

	en := templating.Engine{Templates: ca.Templates, WorkingDir: "/w"}
	in := []templating.Input{
		{PrettyName: "a.csv", RelPath: "a.csv", Reference: `"/w/a.csv"`, GuessedSep: ','},
		{PrettyName: "b.txt", RelPath: "b.txt", Reference: `"/w/b.txt"`, GuessedSep: ' '},
	}

	for _, name := range ca.Templates.Names() {
		blocks, err := en.Expand(name, in)
		require.NoError(t, err, name)

		for _, bl := range blocks {
			assert.NotContains(t, bl.Source, templating.LoopStart, name)
			assert.NotContains(t, bl.Source, "$root_path", name)
			assert.NotContains(t, bl.Source, "${input.", name)
		}
	}

	pandas := ca.Templates["pandas"]
	for _, bl := range pandas.Blocks {
		assert.NotContains(t, bl.Source, loader.IgnoreMarker)
	}
}

func TestDefaultConfig_is_valid(t *testing.T) {
	t.Parallel()

	ca := loader.NewCatalog()
	require.NoError(t, ca.Load(
		"config.yaml", bytes.NewReader(templates.DefaultConfig),
	))

	cf, err := ca.Config.Resolve("/home/me")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/nbplots", cf.OutputDirectory)
	assert.Equal(t, "numpy", cf.DefaultTemplate)
}
