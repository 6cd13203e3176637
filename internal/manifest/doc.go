// Package manifest defines the on-disk recipe format and the identity,
// version, and package types shared by the fridge, scratch, and oven
// packages.
//
// A recipe is loaded from a TOML file describing a project, the
// ingredients it consumes, and the ordered steps that build it:
//
//	[project]
//	name = "demo"
//	toolchain = "gnu/gcc"
//	confined = true
//
//	[[ingredients]]
//	name = "acme/libfoo"
//	channel = "stable"
//	version = "1.2.3"
//
//	[[steps]]
//	name = "configure"
//	type = "configure"
//	system = "cmake"
//
// Parsing is the only responsibility of this package; nothing here
// drives a build.
package manifest
