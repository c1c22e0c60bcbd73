package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deplift/deplift/internal/cli"
	"github.com/deplift/deplift/pkg/filesystem"
	"github.com/deplift/deplift/pkg/nestedstack"
	"github.com/deplift/deplift/pkg/template"
)

// setupBuiltProject lays out a project the way a build step leaves it:
// template at the root, build dir with build.toml, one artifact dir and
// one dependency dir.
func setupBuiltProject(t *testing.T) string {
	t.Helper()
	projectDir := t.TempDir()
	buildDir := filepath.Join(projectDir, ".aws-sam", "build")
	depsDir := filepath.Join(buildDir, "deps", "u1")

	require.NoError(t, os.MkdirAll(filepath.Join(buildDir, "Fn1"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(depsDir, "requests"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(depsDir, "requests", "__init__.py"), []byte("# requests"), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "template.yaml"), []byte(`
Resources:
  Fn1:
    Type: AWS::Serverless::Function
    Properties:
      CodeUri: Fn1/
      Runtime: python3.11
      Handler: app.handler
`), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "build.toml"), []byte(`
[function_build_definitions]
[function_build_definitions.u1]
codeuri = "Fn1/"
runtime = "python3.11"
functions = ["Fn1"]
`), 0644))

	return projectDir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerate_EndToEnd(t *testing.T) {
	projectDir := setupBuiltProject(t)

	out, err := runCommand(t, "generate", "--project-dir", projectDir, "--stack-name", "my-app")
	require.NoError(t, err)
	assert.Contains(t, out, "layer added")
	assert.Contains(t, out, "1 of 1")

	buildDir := filepath.Join(projectDir, ".aws-sam", "build")

	// Layer folder, nested template and patched template all exist
	_, err = os.Stat(filepath.Join(buildDir, "Fn1DepLayer", "python", "requests", "__init__.py"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(buildDir, nestedstack.NestedTemplateFileName))
	assert.NoError(t, err)

	patched, err := template.Load(filesystem.NewOS(), filepath.Join(buildDir, "template.yaml"))
	require.NoError(t, err)
	assert.Contains(t, patched.Resources, nestedstack.StackName)
	assert.Len(t, patched.Resources["Fn1"].Layers(), 1)
}

func TestGenerate_RequiresStackName(t *testing.T) {
	projectDir := setupBuiltProject(t)

	_, err := runCommand(t, "generate", "--project-dir", projectDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stack name")
}

func TestGenerate_MissingTemplate(t *testing.T) {
	projectDir := t.TempDir()

	_, err := runCommand(t, "generate", "--project-dir", projectDir, "--stack-name", "my-app")
	assert.Error(t, err)
}

func TestDocs_ListsTopics(t *testing.T) {
	out, err := runCommand(t, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "layers")
	assert.Contains(t, out, "eligibility")
}

func TestDocs_UnknownTopic(t *testing.T) {
	_, err := runCommand(t, "docs", "nope")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "deplift")
}
