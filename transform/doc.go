// Package transform rewrites the strings held in an [objectchecker.Value]
// tree, for normalizing input before it is checked.
package transform
