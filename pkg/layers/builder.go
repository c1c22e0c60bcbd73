// Package layers builds per-function dependency layer folders in the
// build directory, laid out per the owning runtime's layer convention.
package layers

import (
	"fmt"
	"path/filepath"

	"github.com/deplift/deplift/pkg/errors"
	"github.com/deplift/deplift/pkg/filesystem"
	"github.com/deplift/deplift/pkg/logging"
	"github.com/deplift/deplift/pkg/runtimes"
	"github.com/deplift/deplift/pkg/types"
)

const (
	// MarkerFileName is the discoverability marker written at every
	// layer root, naming the function the layer belongs to.
	MarkerFileName = "DEPLIFT_README"

	// dirPermissions is the mode layer directories are created with.
	dirPermissions = 0o755
)

// Build creates (or fully recreates) the dependency layer folder for a
// function under buildDir/layerID and returns the layer root path.
//
// The folder is destroyed and rebuilt on every call: a stale layer from
// a previous run never leaks into the new one. The dependency source
// directory, when it exists, is copied (never moved) into the runtime's
// layer subfolder. A marker file is written at the layer root
// unconditionally, even when there were no dependencies to copy.
//
// An empty runtime is a configuration error: without it there is no way
// to choose the layer's subfolder layout.
func Build(fsys types.FS, buildDir, dependenciesDir, layerID, functionID, runtime string) (string, error) {
	if runtime == "" {
		return "", errors.Newf(errors.ErrMissingRuntime,
			"function %s has no runtime defined, cannot build dependency layer", functionID).
			WithDetail("function", functionID)
	}

	logger := logging.GetLogger("layers")
	layerRoot := filepath.Join(buildDir, layerID)

	if err := fsys.RemoveAll(layerRoot); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to remove stale layer folder %s", layerRoot)
	}

	if err := populate(fsys, layerRoot, dependenciesDir, functionID, runtime); err != nil {
		// Never leave a half-populated layer folder behind; it could be
		// mistaken for a complete one on the next run.
		_ = fsys.RemoveAll(layerRoot)
		return "", err
	}

	logger.Debug().
		Str("function", functionID).
		Str("layerRoot", layerRoot).
		Msg("Built dependency layer folder")

	return layerRoot, nil
}

func populate(fsys types.FS, layerRoot, dependenciesDir, functionID, runtime string) error {
	contentsDir := filepath.Join(layerRoot, runtimes.LayerSubfolder(runtime))
	if err := fsys.MkdirAll(contentsDir, dirPermissions); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create layer folder %s", contentsDir)
	}

	if info, err := fsys.Stat(dependenciesDir); err == nil && info.IsDir() {
		if err := filesystem.CopyTree(fsys, dependenciesDir, contentsDir); err != nil {
			return errors.Wrapf(err, errors.ErrLayerCopy,
				"failed to copy dependencies of %s into layer folder", functionID)
		}
	}

	return writeMarker(fsys, layerRoot, functionID)
}

// writeMarker drops a plain-text README at the layer root so someone
// browsing the build directory can tell where the folder came from.
func writeMarker(fsys types.FS, layerRoot, functionID string) error {
	content := fmt.Sprintf(
		"This layer contains dependencies of function %s and was generated automatically by deplift\n",
		functionID,
	)
	markerPath := filepath.Join(layerRoot, MarkerFileName)
	if err := fsys.WriteFile(markerPath, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write layer marker %s", markerPath)
	}
	return nil
}
