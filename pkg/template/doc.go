// Package template models SAM/CloudFormation templates as typed records
// with pass-through for content deplift does not interpret. It provides
// loading and writing (YAML), deep copies for safe mutation, resolution
// of the function inventory, and relocation of templates whose resources
// carry relative paths.
package template
