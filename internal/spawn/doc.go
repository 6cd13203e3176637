// Package spawn starts a child process with an optional working
// directory and streams its stdout/stderr to a callback line by line.
//
// Arguments are given as a single string using the same quoting rules
// as a shell command line: whitespace separates arguments, and a
// double-quoted span is a single argument with the quotes stripped.
package spawn
