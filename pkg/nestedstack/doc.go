// Package nestedstack generates the auto dependency layer nested stack:
// it accumulates one layer resource and output per qualifying function
// in a sub-template, and patches a copy of the parent template so each
// function references its layer through the nested stack's outputs.
package nestedstack
