package template

import (
	"path/filepath"
	"strings"

	"github.com/deplift/deplift/pkg/types"
)

// pathProperties lists, per resource type, the properties that may hold
// a local filesystem path relative to the template's own location.
var pathProperties = map[string][]string{
	ResourceTypeServerlessFunction:    {"CodeUri"},
	ResourceTypeLambdaFunction:        {"Code"},
	ResourceTypeServerlessLayer:       {"ContentUri"},
	ResourceTypeLambdaLayer:           {"Content"},
	ResourceTypeServerlessApplication: {"Location"},
	"AWS::Serverless::Api":            {"DefinitionUri"},
	"AWS::Serverless::HttpApi":        {"DefinitionUri"},
	"AWS::Serverless::StateMachine":   {"DefinitionUri"},
}

// Move writes the template to destPath, rebasing every relative local
// path in its resources so it still resolves from the new location.
// The template value itself is not modified; rebasing happens on a
// clone. srcPath is the location the template's relative paths are
// currently anchored at.
func Move(fsys types.FS, srcPath, destPath string, t *Template) error {
	moved := t.Clone()
	srcDir := filepath.Dir(srcPath)
	destDir := filepath.Dir(destPath)

	for _, res := range moved.Resources {
		for _, prop := range pathProperties[res.Type] {
			value, ok := res.Properties[prop].(string)
			if !ok || !isLocalPath(value) {
				continue
			}
			if filepath.IsAbs(value) {
				continue
			}
			rebased, err := filepath.Rel(destDir, filepath.Join(srcDir, value))
			if err != nil {
				// Unrelatable paths (e.g. different roots) are left as-is.
				continue
			}
			res.Properties[prop] = rebased
		}
	}

	return Write(fsys, destPath, moved)
}

// isLocalPath filters out S3 URIs and other remote locations that must
// not be rebased.
func isLocalPath(value string) bool {
	return value != "" && !strings.Contains(value, "://")
}
