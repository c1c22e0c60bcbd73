package build

import (
	"github.com/deplift/deplift/pkg/types"
)

// ArtifactSet maps a function's logical ID to its built artifact
// directory. Membership answers "was this function built in this
// session".
type ArtifactSet map[string]string

// Contains reports whether the function was built.
func (a ArtifactSet) Contains(functionID string) bool {
	_, ok := a[functionID]
	return ok
}

// Graph is the build graph: function identity to build definition.
// Several functions may share one definition when the build step
// deduplicated identical sources.
type Graph struct {
	byFunction map[string]*types.BuildDefinition
}

// NewGraph indexes the given definitions by function logical ID.
func NewGraph(definitions []*types.BuildDefinition) *Graph {
	g := &Graph{byFunction: map[string]*types.BuildDefinition{}}
	for _, def := range definitions {
		for _, fn := range def.Functions {
			g.byFunction[fn] = def
		}
	}
	return g
}

// DefinitionFor returns the build definition that produced the given
// function, or nil if the function is not in the graph.
func (g *Graph) DefinitionFor(functionID string) *types.BuildDefinition {
	if g == nil {
		return nil
	}
	return g.byFunction[functionID]
}

// DependenciesDirFor returns the dependency directory recorded for the
// function, or empty when the function is unknown or its dependencies
// were built in place.
func (g *Graph) DependenciesDirFor(functionID string) string {
	def := g.DefinitionFor(functionID)
	if def == nil {
		return ""
	}
	return def.DependenciesDir
}

// Result is a complete build session result.
type Result struct {
	Artifacts ArtifactSet
	Graph     *Graph
}

// NewResult bundles an artifact set and a graph.
func NewResult(artifacts ArtifactSet, graph *Graph) *Result {
	return &Result{Artifacts: artifacts, Graph: graph}
}
