// Package filesystem adapts afero filesystems to the operations the sync
// orchestrator performs: existence checks, recursive removal, directory
// creation, and a lexical tree walk that follows symbolic links.
package filesystem
