// Package filesystem provides the OS-backed implementation of the
// types.FS interface plus tree-copy helpers used by the layer folder
// builder.
package filesystem
