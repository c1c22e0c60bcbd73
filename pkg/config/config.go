// Package config loads deplift's layered configuration: embedded
// defaults, overridden by a deplift.toml (or .deplift.toml) in the
// project directory. Command-line flags override both.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/deplift/deplift/pkg/errors"
)

// Project file names probed in the project directory, in order.
var projectConfigNames = []string{".deplift.toml", "deplift.toml"}

// Config is the resolved tool configuration.
type Config struct {
	// BuildDir is the build directory, relative paths resolved against
	// the project directory.
	BuildDir string

	// Template is the infrastructure template location.
	Template string

	// StackName seeds generated layer names.
	StackName string

	// OutputTemplate is the patched template's file name under the
	// build directory.
	OutputTemplate string
}

// Load resolves configuration for the given project directory.
func Load(projectDir string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	for _, name := range projectConfigNames {
		path := filepath.Join(projectDir, name)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
			}
			break
		}
	}

	cfg := &Config{
		BuildDir:       k.String("paths.build_dir"),
		Template:       k.String("paths.template"),
		StackName:      k.String("stack.name"),
		OutputTemplate: k.String("output.template"),
	}

	if !filepath.IsAbs(cfg.BuildDir) {
		cfg.BuildDir = filepath.Join(projectDir, cfg.BuildDir)
	}
	if !filepath.IsAbs(cfg.Template) {
		cfg.Template = filepath.Join(projectDir, cfg.Template)
	}

	return cfg, nil
}
