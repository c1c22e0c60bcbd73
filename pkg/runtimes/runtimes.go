// Package runtimes holds the closed set of runtimes deplift can extract
// dependency layers for, and the layout convention each runtime family
// expects inside a layer.
package runtimes

import "strings"

// SupportedPrefixes are the runtime family prefixes eligible for
// dependency layer extraction. Matching is by string prefix, so
// "python3.11" and "python3.12" both match "python".
var SupportedPrefixes = []string{"python", "nodejs", "java"}

// layerSubfolders maps a runtime family prefix to the relative folder a
// layer's dependency contents must live under so the Lambda runtime
// picks them up.
var layerSubfolders = map[string]string{
	"python": "python",
	"nodejs": "nodejs/node_modules",
	"java":   "java/lib",
}

// IsSupported reports whether the given runtime identifier belongs to a
// runtime family deplift can build a dependency layer for. An empty or
// unrecognized runtime is simply unsupported, never an error.
func IsSupported(runtime string) bool {
	if runtime == "" {
		return false
	}
	for _, prefix := range SupportedPrefixes {
		if strings.HasPrefix(runtime, prefix) {
			return true
		}
	}
	return false
}

// LayerSubfolder returns the relative subfolder the given runtime's
// dependencies must be placed under inside a layer folder.
//
// The runtime must belong to a supported family; callers are expected
// to check IsSupported first. An unsupported runtime returns the empty
// string, which would place contents at the layer root and is never a
// valid layout.
func LayerSubfolder(runtime string) string {
	for prefix, subfolder := range layerSubfolders {
		if strings.HasPrefix(runtime, prefix) {
			return subfolder
		}
	}
	return ""
}
