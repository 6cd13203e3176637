// Package fsutil provides the small set of filesystem primitives the
// fridge, scratch, and oven packages build on: recursive mkdir,
// symlink replacement, file copy, recursive remove, and filtered tree
// copy.
package fsutil
