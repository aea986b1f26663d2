// Package gitrepo contains helpers for manipulating the Git repository that hosts the vendored tree.
//
// RepositoryManager issues the submodule update, staging, porcelain status,
// and commit invocations used by the sync orchestrator, all routed through a
// GitExecutor so tests can substitute a recording fake.
package gitrepo
