package build

import (
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/deplift/deplift/pkg/errors"
	"github.com/deplift/deplift/pkg/logging"
	"github.com/deplift/deplift/pkg/types"
)

const (
	// GraphFileName is the build graph manifest the build step writes
	// into the build directory.
	GraphFileName = "build.toml"

	// DependenciesDirName is the default directory (under the build
	// directory) dependency outputs are placed in, one subfolder per
	// build definition.
	DependenciesDirName = "deps"
)

// graphFile is the on-disk shape of build.toml.
type graphFile struct {
	Definitions map[string]definitionRecord `toml:"function_build_definitions"`
}

type definitionRecord struct {
	CodeURI         string   `toml:"codeuri"`
	Runtime         string   `toml:"runtime"`
	PackageType     string   `toml:"packagetype"`
	Functions       []string `toml:"functions"`
	DependenciesDir string   `toml:"dependencies_dir"`
}

// LoadResult reads a build session's result from the build directory:
// the build graph from build.toml, and the artifact set from the
// per-function artifact directories the build left behind. A function
// counts as built when it appears in the graph and its artifact
// directory exists.
func LoadResult(fsys types.FS, buildDir string) (*Result, error) {
	logger := logging.GetLogger("build")

	graphPath := filepath.Join(buildDir, GraphFileName)
	data, err := fsys.ReadFile(graphPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBuildGraphLoad, "failed to read build graph %s", graphPath)
	}

	var file graphFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, errors.ErrBuildGraphLoad, "failed to parse build graph %s", graphPath)
	}

	definitions := make([]*types.BuildDefinition, 0, len(file.Definitions))
	artifacts := ArtifactSet{}

	for uuid, record := range file.Definitions {
		def := &types.BuildDefinition{
			UUID:            uuid,
			Functions:       record.Functions,
			Runtime:         record.Runtime,
			DependenciesDir: record.DependenciesDir,
		}
		if def.DependenciesDir == "" {
			// Fall back to the conventional layout when the manifest
			// predates the explicit key.
			candidate := filepath.Join(buildDir, DependenciesDirName, uuid)
			if info, err := fsys.Stat(candidate); err == nil && info.IsDir() {
				def.DependenciesDir = candidate
			}
		}
		definitions = append(definitions, def)

		for _, fn := range record.Functions {
			artifactDir := filepath.Join(buildDir, fn)
			info, err := fsys.Stat(artifactDir)
			if err != nil || !info.IsDir() {
				logger.Debug().Str("function", fn).Msg("No artifact directory found, function not built in this session")
				continue
			}
			artifacts[fn] = artifactDir
		}
	}

	return NewResult(artifacts, NewGraph(definitions)), nil
}
