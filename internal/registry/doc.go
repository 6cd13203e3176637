// Package registry adapts an OCI registry into the fridge.Registry
// collaborator: each (publisher/package, platform, architecture,
// channel, version) tuple maps to a tag under the
// "<registry host>/<publisher>/<package>" repository, and the
// ingredient's raw archive travels as a single OCI layer blob.
//
// A channel name alone (no pinned version) is a moving tag, re-pushed
// on every publish to that channel; a pinned version is additionally
// tagged immutably so an exact match never changes underfoot.
package registry
