// Package scratch builds and manages a recipe's scratch tree: the
// per-recipe working directory under .oven/<name> that a build's
// configure/build/script steps run against, optionally chroot-confined.
//
// Layout mirrors the host/target split a cross-built recipe needs:
//
//	.oven/<name>/                         host_chroot
//	.oven/<name>/target/ingredients       host_target_ingredients_path
//	.oven/<name>/chef/build               host_build_path
//	.oven/<name>/chef/install  -> install path   (symlink)
//	.oven/<name>/chef/project  -> project path   (symlink)
//	.oven/<name>/chef/.hash               setup fingerprint
//
// Inside a confined recipe these host paths are reached via the
// fixed in-chroot aliases /target/ingredients, /chef/build,
// /chef/install, /chef/project.
package scratch
