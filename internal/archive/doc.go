// Package archive implements the content-archive interface the fridge
// package unpacks ingredients through: open a tar+zstd archive, report
// its file/directory/symlink counts, and unpack it into a destination
// directory while reporting progress.
package archive
