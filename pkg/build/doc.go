// Package build models the output of an upstream build session: which
// functions were built (artifact set) and the per-function build
// definitions (build graph), including where each function's third-party
// dependencies were placed. deplift never runs builds itself; it only
// reads what the build step left in the build directory.
package build
