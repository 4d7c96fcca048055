package story

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/internal/service/audit"
)

// ListByTags returns summaries of stories carrying any of tags. No tags
// lists every story.
func (s *Service) ListByTags(ctx context.Context, tags []string) ([]domain.StorySummary, error) {
	out, err := s.stories.ListByTags(ctx, domain.NormalizeTags(tags))
	if err != nil {
		return nil, fmt.Errorf("story.ListByTags: %w", err)
	}
	return out, nil
}

// SearchByTitle returns stories whose title contains pattern,
// case-insensitively. An empty result is domain.ErrNoResults.
func (s *Service) SearchByTitle(ctx context.Context, pattern string) ([]domain.Story, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, domain.NewValidationError("pattern", "required")
	}

	found, err := s.stories.SearchByTitle(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("story.SearchByTitle: %w", err)
	}
	if len(found) == 0 {
		return nil, domain.ErrNoResults
	}
	for i := range found {
		s.normalizeLock(&found[i])
	}
	return found, nil
}

// Logs returns one page of the story's history with the story header.
func (s *Service) Logs(ctx context.Context, id uuid.UUID, page, limit int) (*LogsResult, error) {
	st, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("story.Logs: %w", err)
	}
	s.normalizeLock(st)

	p, err := s.audit.Page(ctx, audit.PageInput{StoryID: id, Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("story.Logs: %w", err)
	}
	return &LogsResult{Story: st, Page: p}, nil
}
