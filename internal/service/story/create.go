package story

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/pkg/ctxutil"
)

// Create persists a new unlocked story authored by the caller and records
// CREATED.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Result, error) {
	actor := ctxutil.ActorFromCtx(ctx)
	authorID, ok := actor.UserID()
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.normalize()
	if err := s.validateCreate(input); err != nil {
		return nil, err
	}

	snapshots, err := s.storeFiles(ctx, input.Snapshots)
	if err != nil {
		return nil, fmt.Errorf("story.Create: %w", err)
	}

	now := s.now().UTC()
	created, err := s.stories.Create(ctx, &domain.Story{
		ID:        uuid.New(),
		Title:     input.Title,
		Tags:      input.Tags,
		AuthorID:  authorID,
		Snapshots: snapshots,
		Lock:      domain.Unlocked(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("story.Create: %w", err)
	}

	entry := s.record(ctx, created.ID, actor, domain.LogActionCreated)

	s.log.InfoContext(ctx, "story created",
		slog.String("story_id", created.ID.String()),
		slog.String("author_id", authorID.String()),
		slog.Int("snapshots", len(created.Snapshots)),
	)
	return &Result{Story: created, Log: entry}, nil
}
