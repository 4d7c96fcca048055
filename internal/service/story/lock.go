package story

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/internal/service/lock"
	"github.com/heartmarshall/storyline-backend/pkg/ctxutil"
)

// Lock acquires the edit lock for the caller and returns the locked story.
func (s *Service) Lock(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	if _, err := s.locks.Acquire(ctx, id, ctxutil.ActorFromCtx(ctx)); err != nil {
		return nil, fmt.Errorf("story.Lock: %w", err)
	}

	st, err := s.stories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("story.Lock: %w", err)
	}
	return st, nil
}

// Unlock releases the edit lock. Any authenticated user may release it.
func (s *Service) Unlock(ctx context.Context, id uuid.UUID) error {
	if err := s.locks.Release(ctx, id); err != nil {
		return fmt.Errorf("story.Unlock: %w", err)
	}
	return nil
}

// LockState reports the current lock of the story.
func (s *Service) LockState(ctx context.Context, id uuid.UUID) (lock.State, error) {
	st, err := s.locks.State(ctx, id)
	if err != nil {
		return lock.State{}, fmt.Errorf("story.LockState: %w", err)
	}
	return st, nil
}
