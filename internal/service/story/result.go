package story

import (
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

// Result is a mutated story together with the history entry it produced.
// Log is nil when the entry could not be written.
type Result struct {
	Story *domain.Story
	Log   *domain.LogEntry
}

// ViewResult is a story with resolved file payloads.
type ViewResult struct {
	View *domain.StoryView
	Log  *domain.LogEntry
}

// LogsResult is a page of a story's history with the story header.
type LogsResult struct {
	Story *domain.Story
	Page  domain.LogPage
}
