package template

import (
	"sort"

	"github.com/deplift/deplift/pkg/types"
)

// functionResourceTypes are the resource kinds that declare deployable
// functions.
var functionResourceTypes = map[string]bool{
	ResourceTypeServerlessFunction: true,
	ResourceTypeLambdaFunction:     true,
}

// IsFunctionResource reports whether the resource type declares a
// deployable function.
func IsFunctionResource(resourceType string) bool {
	return functionResourceTypes[resourceType]
}

// ResolveFunctions returns the function inventory declared in the
// template, in deterministic (logical ID) order. Runtime and package
// type fall back to Globals.Function when a function resource does not
// declare them; package type defaults to Zip, matching CloudFormation.
func ResolveFunctions(t *Template) []types.Function {
	var functions []types.Function

	for logicalID, res := range t.Resources {
		if res == nil || !IsFunctionResource(res.Type) {
			continue
		}

		functions = append(functions, types.Function{
			LogicalID:    logicalID,
			ResourceType: res.Type,
			Runtime:      t.functionRuntime(res),
			PackageType:  t.functionPackageType(res),
		})
	}

	sort.Slice(functions, func(i, j int) bool {
		return functions[i].LogicalID < functions[j].LogicalID
	})

	return functions
}

func (t *Template) functionRuntime(res *Resource) string {
	if rt, ok := res.Properties[propertyRuntime].(string); ok && rt != "" {
		return rt
	}
	if rt, ok := t.globalFunctionProperty(propertyRuntime).(string); ok {
		return rt
	}
	return ""
}

func (t *Template) functionPackageType(res *Resource) types.PackageType {
	if pt, ok := res.Properties[propertyPackageType].(string); ok && pt != "" {
		return types.PackageType(pt)
	}
	if pt, ok := t.globalFunctionProperty(propertyPackageType).(string); ok && pt != "" {
		return types.PackageType(pt)
	}
	return types.PackageTypeZip
}

func (t *Template) globalFunctionProperty(name string) any {
	globals, ok := t.Globals["Function"].(map[string]any)
	if !ok {
		return nil
	}
	return globals[name]
}
