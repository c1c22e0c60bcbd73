package types

// PackageType describes how a function's code is packaged for deployment.
type PackageType string

const (
	// PackageTypeZip marks a function deployed as a zip archive.
	PackageTypeZip PackageType = "Zip"

	// PackageTypeImage marks a function deployed as a container image.
	// Image functions carry their dependencies inside the image and are
	// never eligible for dependency layer extraction.
	PackageTypeImage PackageType = "Image"
)

// Function is a deployable function resolved from an infrastructure
// template. It is read-only to the rest of the codebase; the template
// package owns its construction.
type Function struct {
	// LogicalID is the function's logical resource name in the template.
	LogicalID string

	// ResourceType is the declared CloudFormation resource type,
	// e.g. "AWS::Serverless::Function".
	ResourceType string

	// Runtime is the declared runtime identifier (e.g. "python3.11").
	// Empty when the template does not declare one.
	Runtime string

	// PackageType is the declared package format, defaulting to Zip.
	PackageType PackageType
}

// BuildDefinition is the per-function record carried by the build graph.
// One definition may be shared by several functions when the build step
// deduplicates identical sources; deplift only reads the dependency
// directory for a given function.
type BuildDefinition struct {
	// UUID identifies the definition within the build graph.
	UUID string

	// Functions lists the logical IDs of the functions built from this
	// definition.
	Functions []string

	// Runtime is the runtime the definition was built for.
	Runtime string

	// DependenciesDir is the directory the build step placed third-party
	// dependencies in. Empty when dependencies were built in place.
	DependenciesDir string
}
