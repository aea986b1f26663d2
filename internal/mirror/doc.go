// Package mirror replaces a destination directory with a full copy of a source directory.
package mirror
