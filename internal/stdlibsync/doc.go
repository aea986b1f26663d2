// Package stdlibsync synchronizes the vendored Mojo standard library and
// documentation from the modular submodule, packages the standard library as
// a zip archive, and records the result as a git commit.
package stdlibsync
