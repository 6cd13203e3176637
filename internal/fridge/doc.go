// Package fridge implements the content-addressed ingredient store and
// cache: it ensures a requested (publisher/package, platform,
// architecture, channel, version) tuple is present on disk as a raw
// archive, unpacked at most once, with unpack state tracked across
// runs.
//
// Fridge is the only entry point for "I need ingredient X; give me a
// local copy." It delegates resolution and download of the raw
// archive to a [Registry] implementation and delegates archive
// extraction to the archive package.
package fridge
