// Package archive packages a directory tree into a zip file whose top-level
// entry is the directory's own base name, so extracting next to the parent
// directory reproduces the tree.
package archive
