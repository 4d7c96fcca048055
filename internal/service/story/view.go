package story

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/pkg/ctxutil"
)

// View returns the story with its file payloads and records VIEWED on every
// call.
func (s *Service) View(ctx context.Context, id uuid.UUID) (*ViewResult, error) {
	st, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("story.View: %w", err)
	}
	s.normalizeLock(st)

	snaps, err := s.loadFiles(ctx, st.Snapshots)
	if err != nil {
		return nil, fmt.Errorf("story.View: %w", err)
	}

	entry := s.record(ctx, st.ID, ctxutil.ActorFromCtx(ctx), domain.LogActionViewed)
	return &ViewResult{
		View: &domain.StoryView{Story: st, Snapshots: snaps},
		Log:  entry,
	}, nil
}
