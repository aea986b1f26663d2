package stdlibsync

// Stage names a state of the sync run.
type Stage string

// Stages traversed by a sync run.
const (
	StageStart                  Stage = "start"
	StageSubmoduleUpdated       Stage = "submodule_updated"
	StageSubmoduleUpdateSkipped Stage = "submodule_update_skipped"
	StageMirrored               Stage = "mirrored"
	StageArchived               Stage = "archived"
	StageCommitted              Stage = "committed"
	StageNoChanges              Stage = "no_changes"
	StageCommitSkipped          Stage = "commit_skipped"
	StageDone                   Stage = "done"
	StageFailed                 Stage = "failed"
)
