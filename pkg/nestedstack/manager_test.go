package nestedstack_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deplift/deplift/pkg/build"
	"github.com/deplift/deplift/pkg/filesystem"
	"github.com/deplift/deplift/pkg/nestedstack"
	"github.com/deplift/deplift/pkg/template"
	"github.com/deplift/deplift/pkg/types"
)

// testProject is a minimal built project: a build dir with one artifact
// and one dependency directory for Fn1.
type testProject struct {
	buildDir     string
	templatePath string
	depsDir      string
}

func setupProject(t *testing.T) testProject {
	t.Helper()
	root := t.TempDir()
	buildDir := filepath.Join(root, "build")
	depsDir := filepath.Join(root, "deps", "Fn1")

	require.NoError(t, os.MkdirAll(buildDir, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(depsDir, "requests"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(depsDir, "requests", "__init__.py"), []byte("# requests"), 0644))

	return testProject{
		buildDir:     buildDir,
		templatePath: filepath.Join(root, "template.yaml"),
		depsDir:      depsDir,
	}
}

func parseTemplate(t *testing.T, content string) *template.Template {
	t.Helper()
	tpl, err := template.Parse([]byte(content))
	require.NoError(t, err)
	return tpl
}

func buildResult(artifacts build.ArtifactSet, defs ...*types.BuildDefinition) *build.Result {
	return build.NewResult(artifacts, build.NewGraph(defs))
}

const fn1Template = `
Resources:
  Fn1:
    Type: AWS::Serverless::Function
    Properties:
      CodeUri: Fn1/
      Runtime: python3.11
  Bucket:
    Type: AWS::S3::Bucket
`

func fn1BuildResult(p testProject) *build.Result {
	return buildResult(
		build.ArtifactSet{"Fn1": filepath.Join(p.buildDir, "Fn1")},
		&types.BuildDefinition{UUID: "u1", Functions: []string{"Fn1"}, Runtime: "python3.11", DependenciesDir: p.depsDir},
	)
}

func TestGenerate_SingleQualifyingFunction(t *testing.T) {
	p := setupProject(t)
	tpl := parseTemplate(t, fn1Template)

	m := nestedstack.NewManager(filesystem.NewOS(), "my-stack", p.buildDir, p.templatePath, tpl, fn1BuildResult(p))
	patched, err := m.Generate()
	require.NoError(t, err)

	// Layer folder built with the python layout
	_, err = os.Stat(filepath.Join(p.buildDir, "Fn1DepLayer", "python", "requests", "__init__.py"))
	assert.NoError(t, err)

	// Fn1 gained exactly one layer reference
	layersList := patched.Resources["Fn1"].Layers()
	require.Len(t, layersList, 1)
	ref, ok := layersList[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{nestedstack.StackName, "Outputs.Fn1DepLayer"}, ref["Fn::GetAtt"])

	// Exactly one resource added: the nested stack reference
	assert.Len(t, patched.Resources, len(tpl.Resources)+1)
	nested := patched.Resources[nestedstack.StackName]
	require.NotNil(t, nested)
	assert.Equal(t, template.ResourceTypeServerlessApplication, nested.Type)

	// The nested template was written and declares the layer + output
	location, ok := nested.Properties["Location"].(string)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(p.buildDir, nestedstack.NestedTemplateFileName), location)

	nestedTpl, err := template.Load(filesystem.NewOS(), location)
	require.NoError(t, err)
	require.Contains(t, nestedTpl.Resources, "Fn1DepLayer")
	require.Contains(t, nestedTpl.Outputs, "Fn1DepLayer")
	assert.Equal(t, template.ResourceTypeServerlessLayer, nestedTpl.Resources["Fn1DepLayer"].Type)

	// Unrelated resources are untouched
	assert.Equal(t, "AWS::S3::Bucket", patched.Resources["Bucket"].Type)

	// The input template was never mutated
	assert.Nil(t, tpl.Resources["Fn1"].Layers())
	assert.NotContains(t, tpl.Resources, nestedstack.StackName)

	// Report reflects the outcome
	report := m.Report()
	assert.Equal(t, 1, report.Added())
}

func TestGenerate_UnsupportedRuntime(t *testing.T) {
	p := setupProject(t)
	tpl := parseTemplate(t, `
Resources:
  Fn1:
    Type: AWS::Serverless::Function
    Properties:
      Runtime: ruby3.2
`)
	result := buildResult(
		build.ArtifactSet{"Fn1": filepath.Join(p.buildDir, "Fn1")},
		&types.BuildDefinition{UUID: "u1", Functions: []string{"Fn1"}, DependenciesDir: p.depsDir},
	)

	m := nestedstack.NewManager(filesystem.NewOS(), "my-stack", p.buildDir, p.templatePath, tpl, result)
	patched, err := m.Generate()
	require.NoError(t, err)

	assert.NotContains(t, patched.Resources, nestedstack.StackName)
	assert.Nil(t, patched.Resources["Fn1"].Layers())
	assert.Len(t, patched.Resources, len(tpl.Resources))

	require.Len(t, m.Report(), 1)
	assert.Equal(t, nestedstack.OutcomeSkippedRuntime, m.Report()[0].Outcome)
}

func TestGenerate_FunctionNotBuilt(t *testing.T) {
	p := setupProject(t)
	tpl := parseTemplate(t, fn1Template)
	result := buildResult(
		build.ArtifactSet{}, // nothing built this session
		&types.BuildDefinition{UUID: "u1", Functions: []string{"Fn1"}, DependenciesDir: p.depsDir},
	)

	m := nestedstack.NewManager(filesystem.NewOS(), "my-stack", p.buildDir, p.templatePath, tpl, result)
	patched, err := m.Generate()
	require.NoError(t, err)

	assert.NotContains(t, patched.Resources, nestedstack.StackName)
	_, statErr := os.Stat(filepath.Join(p.buildDir, "Fn1DepLayer"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_NoDependencyDirectory(t *testing.T) {
	p := setupProject(t)
	tpl := parseTemplate(t, fn1Template)
	result := buildResult(
		build.ArtifactSet{"Fn1": filepath.Join(p.buildDir, "Fn1")},
		&types.BuildDefinition{UUID: "u1", Functions: []string{"Fn1"}}, // deps built in place
	)

	m := nestedstack.NewManager(filesystem.NewOS(), "my-stack", p.buildDir, p.templatePath, tpl, result)
	patched, err := m.Generate()
	require.NoError(t, err)

	assert.NotContains(t, patched.Resources, nestedstack.StackName)
	require.Len(t, m.Report(), 1)
	assert.Equal(t, nestedstack.OutcomeSkippedNoDependencies, m.Report()[0].Outcome)
}

func TestGenerate_ImageFunctionSkipped(t *testing.T) {
	p := setupProject(t)
	tpl := parseTemplate(t, `
Resources:
  Fn1:
    Type: AWS::Serverless::Function
    Properties:
      PackageType: Image
`)

	m := nestedstack.NewManager(filesystem.NewOS(), "my-stack", p.buildDir, p.templatePath, tpl, fn1BuildResult(p))
	patched, err := m.Generate()
	require.NoError(t, err)

	assert.NotContains(t, patched.Resources, nestedstack.StackName)
	require.Len(t, m.Report(), 1)
	assert.Equal(t, nestedstack.OutcomeSkippedPackageType, m.Report()[0].Outcome)
}

func TestGenerate_MultipleFunctions(t *testing.T) {
	p := setupProject(t)

	nodeDeps := filepath.Join(t.TempDir(), "node-deps")
	require.NoError(t, os.MkdirAll(filepath.Join(nodeDeps, "lodash"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(nodeDeps, "lodash", "index.js"), []byte("{}"), 0644))

	tpl := parseTemplate(t, `
Resources:
  PyFn:
    Type: AWS::Serverless::Function
    Properties:
      Runtime: python3.11
  NodeFn:
    Type: AWS::Lambda::Function
    Properties:
      Runtime: nodejs18.x
  RubyFn:
    Type: AWS::Serverless::Function
    Properties:
      Runtime: ruby3.2
`)
	result := buildResult(
		build.ArtifactSet{
			"PyFn":   filepath.Join(p.buildDir, "PyFn"),
			"NodeFn": filepath.Join(p.buildDir, "NodeFn"),
			"RubyFn": filepath.Join(p.buildDir, "RubyFn"),
		},
		&types.BuildDefinition{UUID: "u1", Functions: []string{"PyFn"}, DependenciesDir: p.depsDir},
		&types.BuildDefinition{UUID: "u2", Functions: []string{"NodeFn"}, DependenciesDir: nodeDeps},
		&types.BuildDefinition{UUID: "u3", Functions: []string{"RubyFn"}, DependenciesDir: p.depsDir},
	)

	m := nestedstack.NewManager(filesystem.NewOS(), "my-stack", p.buildDir, p.templatePath, tpl, result)
	patched, err := m.Generate()
	require.NoError(t, err)

	// Two qualifying functions, each patched exactly once
	assert.Len(t, patched.Resources["PyFn"].Layers(), 1)
	assert.Len(t, patched.Resources["NodeFn"].Layers(), 1)
	assert.Nil(t, patched.Resources["RubyFn"].Layers())

	nestedTpl, err := template.Load(filesystem.NewOS(), filepath.Join(p.buildDir, nestedstack.NestedTemplateFileName))
	require.NoError(t, err)
	assert.Len(t, nestedTpl.Resources, 2)
	assert.Len(t, nestedTpl.Outputs, 2)

	assert.Equal(t, 2, m.Report().Added())
}
