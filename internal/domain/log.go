package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnknownUserEmail is rendered for log entries whose actor does not resolve.
const UnknownUserEmail = "Unknown user"

// LogEntry is an immutable record of one action taken on a story.
type LogEntry struct {
	ID        uuid.UUID
	Seq       int64
	StoryID   uuid.UUID
	Actor     Actor
	Action    LogAction
	Timestamp time.Time
}

// LogView is a log entry enriched with the actor's display identity.
type LogView struct {
	LogEntry
	Email string
}

// LogPage is one page of a story's history, most recent first.
type LogPage struct {
	Entries []LogView
	Total   int
	Page    int
	Limit   int
}

// TotalPages returns ceil(Total / Limit).
func (p LogPage) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}
