package template

import (
	"gopkg.in/yaml.v3"

	"github.com/deplift/deplift/pkg/errors"
	"github.com/deplift/deplift/pkg/types"
)

// CloudFormation resource types deplift knows about.
const (
	ResourceTypeServerlessFunction    = "AWS::Serverless::Function"
	ResourceTypeLambdaFunction        = "AWS::Lambda::Function"
	ResourceTypeServerlessLayer       = "AWS::Serverless::LayerVersion"
	ResourceTypeLambdaLayer           = "AWS::Lambda::LayerVersion"
	ResourceTypeServerlessApplication = "AWS::Serverless::Application"
)

// Property names read from function resources.
const (
	propertyRuntime     = "Runtime"
	propertyPackageType = "PackageType"
	propertyLayers      = "Layers"
)

// Template is a SAM/CloudFormation template. Only the sections deplift
// reads or patches are typed; everything else rides along untouched in
// Extra so an unmodified template round-trips structurally intact.
type Template struct {
	AWSTemplateFormatVersion string               `yaml:"AWSTemplateFormatVersion,omitempty"`
	Transform                any                  `yaml:"Transform,omitempty"`
	Description              string               `yaml:"Description,omitempty"`
	Globals                  map[string]any       `yaml:"Globals,omitempty"`
	Parameters               map[string]any       `yaml:"Parameters,omitempty"`
	Resources                map[string]*Resource `yaml:"Resources"`
	Outputs                  map[string]*Output   `yaml:"Outputs,omitempty"`
	Extra                    map[string]any       `yaml:",inline"`
}

// Resource is a single resource declaration.
type Resource struct {
	Type       string         `yaml:"Type"`
	Properties map[string]any `yaml:"Properties,omitempty"`
	Extra      map[string]any `yaml:",inline"`
}

// Output is a single output declaration.
type Output struct {
	Description string         `yaml:"Description,omitempty"`
	Value       any            `yaml:"Value"`
	Extra       map[string]any `yaml:",inline"`
}

// Parse decodes a YAML (or JSON) template.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplateParse, "failed to parse template")
	}
	if t.Resources == nil {
		t.Resources = map[string]*Resource{}
	}
	return &t, nil
}

// Load reads and parses a template file.
func Load(fsys types.FS, path string) (*Template, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateLoad, "failed to read template %s", path)
	}
	return Parse(data)
}

// Write serializes the template as YAML to the given path.
func Write(fsys types.FS, path string, t *Template) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return errors.Wrap(err, errors.ErrTemplateWrite, "failed to serialize template")
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrTemplateWrite, "failed to write template %s", path)
	}
	return nil
}

// Layers returns the function resource's Layers list, or nil.
func (r *Resource) Layers() []any {
	layers, _ := r.Properties[propertyLayers].([]any)
	return layers
}

// AppendLayer appends a layer reference to the resource's Layers list,
// creating the list and the property map as needed.
func (r *Resource) AppendLayer(ref any) {
	if r.Properties == nil {
		r.Properties = map[string]any{}
	}
	r.Properties[propertyLayers] = append(r.Layers(), ref)
}
