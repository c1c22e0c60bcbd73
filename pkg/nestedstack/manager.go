package nestedstack

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/deplift/deplift/pkg/build"
	"github.com/deplift/deplift/pkg/layers"
	"github.com/deplift/deplift/pkg/logging"
	"github.com/deplift/deplift/pkg/runtimes"
	"github.com/deplift/deplift/pkg/template"
	"github.com/deplift/deplift/pkg/types"
)

// NestedTemplateFileName is where the serialized sub-template is written
// under the build directory.
const NestedTemplateFileName = "nested_template.yaml"

// Manager runs the dependency layer extraction: it decides which
// functions qualify, builds their layer folders, accumulates the nested
// sub-template and returns a patched copy of the parent template. The
// input template is never mutated.
type Manager struct {
	fsys          types.FS
	stackName     string
	buildDir      string
	stackLocation string
	current       *template.Template
	buildResult   *build.Result
	builder       *Builder
	logger        zerolog.Logger
	report        Report
}

// NewManager creates a Manager for one generation run.
//
// stackName seeds layer names; buildDir is where layer folders and the
// nested template are written; stackLocation is the parent template's
// location, used to rebase the nested template's relative paths.
func NewManager(
	fsys types.FS,
	stackName string,
	buildDir string,
	stackLocation string,
	current *template.Template,
	buildResult *build.Result,
) *Manager {
	return &Manager{
		fsys:          fsys,
		stackName:     stackName,
		buildDir:      buildDir,
		stackLocation: stackLocation,
		current:       current,
		buildResult:   buildResult,
		builder:       NewBuilder(),
		logger:        logging.GetLogger("nestedstack"),
	}
}

// Generate performs a single deterministic pass over the template's
// functions and returns the patched template copy.
//
// When no function qualifies the copy is returned unchanged and no
// nested stack resource is added; that is a normal outcome, not an
// error. Configuration errors (a qualifying function with no runtime)
// and filesystem failures abort the run.
func (m *Manager) Generate() (*template.Template, error) {
	patched := m.current.Clone()

	for _, fn := range template.ResolveFunctions(patched) {
		if fn.PackageType != types.PackageTypeZip {
			m.skip(fn, OutcomeSkippedPackageType, "not an archive-packaged function")
			continue
		}
		if !template.IsFunctionResource(fn.ResourceType) {
			m.skip(fn, OutcomeSkippedResourceType, "resource type not supported")
			continue
		}
		if !m.buildResult.Artifacts.Contains(fn.LogicalID) {
			m.skip(fn, OutcomeSkippedNotBuilt, "function not built in this session")
			continue
		}
		if !runtimes.IsSupported(fn.Runtime) {
			m.skip(fn, OutcomeSkippedRuntime, "runtime not supported")
			continue
		}

		dependenciesDir := m.buildResult.Graph.DependenciesDirFor(fn.LogicalID)
		if dependenciesDir == "" {
			m.skip(fn, OutcomeSkippedNoDependencies, "no dependency directory recorded in build graph")
			continue
		}

		if err := m.addLayer(dependenciesDir, fn, patched); err != nil {
			return nil, err
		}
	}

	if !m.builder.IsAnyFunctionAdded() {
		m.logger.Debug().Msg("No function qualified for dependency layer extraction")
		return patched, nil
	}

	nestedTemplateLocation := filepath.Join(m.buildDir, NestedTemplateFileName)
	if err := template.Move(m.fsys, m.stackLocation, nestedTemplateLocation, m.builder.Template()); err != nil {
		return nil, err
	}

	patched.Resources[StackName] = m.builder.NestedStackReferenceResource(nestedTemplateLocation)
	return patched, nil
}

// Report returns the per-function outcomes of the last Generate call.
func (m *Manager) Report() Report {
	return m.report
}

func (m *Manager) addLayer(dependenciesDir string, fn types.Function, patched *template.Template) error {
	layerLogicalID := LayerLogicalID(fn.LogicalID)

	layerRoot, err := layers.Build(m.fsys, m.buildDir, dependenciesDir, layerLogicalID, fn.LogicalID, fn.Runtime)
	if err != nil {
		return err
	}

	outputKey := m.builder.AddFunction(m.stackName, layerRoot, fn)

	// Wire the layer back into the function through the nested stack's
	// output. The nested stack resource itself is inserted only after
	// the pass completes.
	patched.Resources[fn.LogicalID].AppendLayer(map[string]any{
		"Fn::GetAtt": []any{StackName, "Outputs." + outputKey},
	})

	m.report = append(m.report, FunctionReport{
		Function:       fn.LogicalID,
		Runtime:        fn.Runtime,
		Outcome:        OutcomeLayerAdded,
		LayerLogicalID: layerLogicalID,
	})

	return nil
}

func (m *Manager) skip(fn types.Function, outcome Outcome, reason string) {
	m.logger.Debug().
		Str("function", fn.LogicalID).
		Str("runtime", fn.Runtime).
		Str("reason", reason).
		Msg("Skipping function for dependency layer extraction")
	m.report = append(m.report, FunctionReport{
		Function: fn.LogicalID,
		Runtime:  fn.Runtime,
		Outcome:  outcome,
	})
}
