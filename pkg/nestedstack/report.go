package nestedstack

// Outcome classifies what the generator did with one function.
type Outcome string

const (
	// OutcomeLayerAdded means a dependency layer was built and wired in.
	OutcomeLayerAdded Outcome = "layer-added"

	// OutcomeSkippedPackageType means the function is not archive-packaged.
	OutcomeSkippedPackageType Outcome = "skipped-package-type"

	// OutcomeSkippedResourceType means the resource kind is not supported.
	OutcomeSkippedResourceType Outcome = "skipped-resource-type"

	// OutcomeSkippedNotBuilt means the function was not built in this session.
	OutcomeSkippedNotBuilt Outcome = "skipped-not-built"

	// OutcomeSkippedRuntime means the runtime family is not supported.
	OutcomeSkippedRuntime Outcome = "skipped-runtime"

	// OutcomeSkippedNoDependencies means no dependency directory was
	// recorded for the function in the build graph.
	OutcomeSkippedNoDependencies Outcome = "skipped-no-dependencies"
)

// FunctionReport records the outcome for one function in a run.
type FunctionReport struct {
	Function       string
	Runtime        string
	Outcome        Outcome
	LayerLogicalID string
}

// Report is the per-function outcome list of a whole run, in
// processing order.
type Report []FunctionReport

// Added counts the functions that received a dependency layer.
func (r Report) Added() int {
	n := 0
	for _, fr := range r {
		if fr.Outcome == OutcomeLayerAdded {
			n++
		}
	}
	return n
}
