package story

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/pkg/ctxutil"
)

// Delete removes the story. Its history and blobs are kept; blobs may be
// shared with other stories.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.stories.Delete(ctx, id); err != nil {
		return fmt.Errorf("story.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "story deleted",
		slog.String("story_id", id.String()),
		slog.String("actor", ctxutil.ActorFromCtx(ctx).String()),
	)
	return nil
}
