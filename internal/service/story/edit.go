package story

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/pkg/ctxutil"
)

// Edit replaces the story content and clears its lock in one transaction,
// then records EDITED. A live lock held by another user rejects the edit
// with domain.ErrLockedByOther.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, input EditInput) (*Result, error) {
	actor := ctxutil.ActorFromCtx(ctx)
	if actor.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	input.normalize()
	if err := s.validateEdit(input); err != nil {
		return nil, err
	}

	// Blobs are content addressed, so uploading before the transaction
	// leaves at most unreferenced objects behind.
	snapshots, err := s.storeFiles(ctx, input.Snapshots)
	if err != nil {
		return nil, fmt.Errorf("story.Edit: %w", err)
	}

	var updated *domain.Story
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.locks.CheckEditable(txCtx, id, actor); err != nil {
			return err
		}

		title, tags := input.Title, input.Tags
		if title == nil || !input.TagsSet {
			current, err := s.stories.GetByID(txCtx, id)
			if err != nil {
				return err
			}
			if title == nil {
				title = &current.Title
			}
			if !input.TagsSet {
				tags = current.Tags
			}
		}

		var err error
		updated, err = s.stories.UpdateContent(txCtx, id, *title, tags, snapshots, s.now().UTC())
		if err != nil {
			return fmt.Errorf("update content: %w", err)
		}

		if err := s.locks.ForceReleaseOnEditCommit(txCtx, id); err != nil {
			return err
		}
		updated.Lock = domain.Unlocked()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("story.Edit: %w", err)
	}

	entry := s.record(ctx, id, actor, domain.LogActionEdited)

	s.log.InfoContext(ctx, "story edited",
		slog.String("story_id", id.String()),
		slog.String("editor", actor.String()),
	)
	return &Result{Story: updated, Log: entry}, nil
}
