package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Config placeholder names usable in config values, as in
// "{home}/nbplots".
const (
	HomeTag       = "home"
	WorkingDirTag = "working_directory"
)

// ErrInvalidConfig is returned when the resolved config is
// inconsistent.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the user settings. Values may refer to
// {home} and, except WorkingDirectory itself, to
// {working_directory}.
type Config struct {
	// WorkingDirectory is the root of the notebook server;
	// rendered documents must live below it.
	WorkingDirectory string `json:"working_directory" yaml:"working_directory"`

	// OutputDirectory receives the rendered documents.
	OutputDirectory string `json:"output_directory" yaml:"output_directory"`

	// DefaultTemplate is used when no template is asked
	// for explicitly.
	DefaultTemplate string `json:"default_template" yaml:"default_template"`
}

// configPatch is the shape of a config cell. Absent keys
// leave the current value alone.
type configPatch struct {
	WorkingDirectory *string `yaml:"working_directory"`
	OutputDirectory  *string `yaml:"output_directory"`
	DefaultTemplate  *string `yaml:"default_template"`
}

// DefaultConfig returns the settings used before any config
// document is loaded.
func DefaultConfig() Config {
	return Config{
		WorkingDirectory: "{" + HomeTag + "}",
		OutputDirectory:  "{" + HomeTag + "}/nbplots",
		DefaultTemplate:  "numpy",
	}
}

func (cf *Config) apply(pa configPatch) {
	if pa.WorkingDirectory != nil {
		cf.WorkingDirectory = *pa.WorkingDirectory
	}

	if pa.OutputDirectory != nil {
		cf.OutputDirectory = *pa.OutputDirectory
	}

	if pa.DefaultTemplate != nil {
		cf.DefaultTemplate = *pa.DefaultTemplate
	}
}

// Resolve expands the placeholders of cf against home and
// validates the result.
func (cf Config) Resolve(home string) (Config, error) {
	const errCtx = "resolving config"

	stamps := map[string]interface{}{HomeTag: home}

	cf.WorkingDirectory = filepath.Clean(
		fasttemplate.ExecuteStringStd(
			cf.WorkingDirectory, "{", "}", stamps,
		),
	)

	stamps[WorkingDirTag] = cf.WorkingDirectory

	cf.OutputDirectory = filepath.Clean(
		fasttemplate.ExecuteStringStd(
			cf.OutputDirectory, "{", "}", stamps,
		),
	)

	if err := cf.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cf, nil
}

// Validate checks that the output directory lies inside the
// working directory and that a default template is named.
func (cf Config) Validate() error {
	rel, err := filepath.Rel(cf.WorkingDirectory, cf.OutputDirectory)
	if err != nil || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf(
			"%w: output directory %q must be inside working directory %q",
			ErrInvalidConfig, cf.OutputDirectory, cf.WorkingDirectory,
		)
	}

	if cf.DefaultTemplate == "" {
		return fmt.Errorf(
			"%w: empty default template", ErrInvalidConfig,
		)
	}

	return nil
}
