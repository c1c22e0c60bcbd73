package nestedstack

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/deplift/deplift/pkg/template"
	"github.com/deplift/deplift/pkg/types"
)

const (
	// StackName is the reserved logical ID the nested stack resource is
	// inserted under in the parent template.
	StackName = "AwsSamAutoDependencyLayerNestedStack"

	templateFormatVersion = "2010-09-09"
	serverlessTransform   = "AWS::Serverless-2016-10-31"
	stackDescription      = "Nested stack for automatic dependency layers, generated by deplift"

	layerIDSuffix = "DepLayer"

	// CloudFormation caps logical IDs well above this, but layer names
	// derived from them are capped at 64 characters.
	maxLogicalIDLength = 64
	logicalIDHashLen   = 8
)

// Builder accumulates layer resources and outputs for the nested
// sub-template, one AddFunction call per qualifying function. It only
// grows; the orchestrator's single pass guarantees at most one call per
// function.
type Builder struct {
	resources map[string]*template.Resource
	outputs   map[string]*template.Output
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		resources: map[string]*template.Resource{},
		outputs:   map[string]*template.Output{},
	}
}

// LayerLogicalID derives the layer's logical ID from its owning
// function's logical ID. Derivation is deterministic, so re-runs and
// distinct functions never collide. Overlong IDs are truncated with a
// checksum fragment to stay unique.
func LayerLogicalID(functionID string) string {
	id := functionID + layerIDSuffix
	if len(id) <= maxLogicalIDLength {
		return id
	}
	sum := sha256.Sum256([]byte(functionID))
	checksum := hex.EncodeToString(sum[:])[:logicalIDHashLen]
	keep := maxLogicalIDLength - len(layerIDSuffix) - logicalIDHashLen
	return functionID[:keep] + checksum + layerIDSuffix
}

// layerName is the human-facing LayerName property value.
func layerName(stackName, functionID string) string {
	return fmt.Sprintf("%s-%s-%s", stackName, functionID, layerIDSuffix)
}

// AddFunction registers a layer resource and a matching output for the
// function and returns the output key the caller wires back into the
// function's Layers list. Calling it twice for the same function
// appends twice; callers must call at most once per function per run.
func (b *Builder) AddFunction(stackName, layerRootPath string, fn types.Function) string {
	layerLogicalID := LayerLogicalID(fn.LogicalID)

	b.resources[layerLogicalID] = &template.Resource{
		Type: template.ResourceTypeServerlessLayer,
		Properties: map[string]any{
			"LayerName":          layerName(stackName, fn.LogicalID),
			"Description":        fmt.Sprintf("Dependency layer for %s", fn.LogicalID),
			"ContentUri":         layerRootPath,
			"CompatibleRuntimes": []any{fn.Runtime},
			"RetentionPolicy":    "Delete",
		},
	}

	b.outputs[layerLogicalID] = &template.Output{
		Description: fmt.Sprintf("Reference to the dependency layer of %s", fn.LogicalID),
		Value:       map[string]any{"Ref": layerLogicalID},
	}

	return layerLogicalID
}

// IsAnyFunctionAdded reports whether at least one function has been
// registered since construction.
func (b *Builder) IsAnyFunctionAdded() bool {
	return len(b.resources) > 0
}

// Template returns a snapshot of the nested sub-template accumulated so
// far. It is side-effect free and callable repeatedly; the snapshot is
// detached from the builder's internal state.
func (b *Builder) Template() *template.Template {
	t := &template.Template{
		AWSTemplateFormatVersion: templateFormatVersion,
		Transform:                serverlessTransform,
		Description:              stackDescription,
		Resources:                b.resources,
		Outputs:                  b.outputs,
	}
	return t.Clone()
}

// NestedStackReferenceResource returns the resource declaration that
// embeds the written nested template into the parent template.
func (b *Builder) NestedStackReferenceResource(templateLocation string) *template.Resource {
	return &template.Resource{
		Type: template.ResourceTypeServerlessApplication,
		Properties: map[string]any{
			"Location": templateLocation,
		},
	}
}
