// Package types defines the core types and interfaces used throughout
// deplift. This includes the FS filesystem abstraction, the Function
// record resolved from a template, and the build-result types shared
// between the build loader and the nested-stack generator.
package types
