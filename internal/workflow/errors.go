package workflow

import "fmt"

// NotFoundError reports a session, phase, or question lookup that failed.
// Mutation operations return it alongside the unmodified model so callers can
// surface "nothing happened" instead of a silent no-op.
type NotFoundError struct {
	Entity string // "session", "phase", or "question"
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// PhaseCompletedError reports an attempt to complete a phase twice.
// Completion is monotonic; a completed phase never reverts or re-records.
type PhaseCompletedError struct {
	Phase string
}

func (e *PhaseCompletedError) Error() string {
	return fmt.Sprintf("phase already completed: %s", e.Phase)
}
