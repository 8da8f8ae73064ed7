// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset

const (
	// TaskCompleteTopic is published with a CommandEvent each time the
	// environment calls back for a command.
	TaskCompleteTopic = "taskComplete"

	// CommitTopic is published with a CommandEvent after Commit hands a
	// command to the environment. The command is the one read before
	// dispatch, so Executed is false even when the environment has
	// already called back; TaskCompleteTopic carries the completed state.
	CommitTopic = "commit"

	// ModifiedTopic is published with a ModifiedEvent whenever records
	// are added, extended or cleared.
	ModifiedTopic = "changeSetModified"
)

// CommandEvent is the payload of TaskCompleteTopic and CommitTopic.
type CommandEvent struct {
	Ref     CommandRef
	Command Command
}

// Change describes a modification of the change set.
type Change string

const (
	RecordCreated   Change = "created"
	CommandEnqueued Change = "enqueued"
	Cleared         Change = "cleared"
)

// ModifiedEvent is the payload of ModifiedTopic. Key is empty for
// Cleared.
type ModifiedEvent struct {
	Change Change
	Key    string
}
