// Package lock owns the exclusive-edit state of stories.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/config"
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

// lockRepo is the persistence the manager drives. Every write is a single
// conditional update on the story row.
type lockRepo interface {
	TryAcquireLock(ctx context.Context, id, holder uuid.UUID, now time.Time, staleBefore *time.Time) (domain.Lock, error)
	ReleaseLock(ctx context.Context, id uuid.UUID, staleBefore *time.Time) error
	ClearLock(ctx context.Context, id uuid.UUID) error
	GetLock(ctx context.Context, id uuid.UUID, forUpdate bool) (domain.Lock, error)
	ReleaseStaleLocks(ctx context.Context, before time.Time) (int64, error)
}

// Manager applies the UNLOCKED / LOCKED(holder) transition rules.
type Manager struct {
	log  *slog.Logger
	repo lockRepo
	ttl  time.Duration
	now  func() time.Time
}

// NewManager creates a lock manager. cfg.TTL of zero disables expiry.
func NewManager(logger *slog.Logger, repo lockRepo, cfg config.LockConfig) *Manager {
	return &Manager{
		log:  logger.With("service", "lock"),
		repo: repo,
		ttl:  cfg.TTL,
		now:  time.Now,
	}
}

// State is the lock of a story as reported to callers.
type State struct {
	Locked    bool
	Holder    *uuid.UUID
	LockedAt  *time.Time
	ExpiresAt *time.Time
}

// staleBefore returns the cutoff below which a lock counts as expired.
func (m *Manager) staleBefore(now time.Time) *time.Time {
	if m.ttl <= 0 {
		return nil
	}
	t := now.Add(-m.ttl)
	return &t
}

// Acquire moves the story from UNLOCKED to LOCKED(actor). A stale lock is
// taken over.
func (m *Manager) Acquire(ctx context.Context, storyID uuid.UUID, actor domain.Actor) (State, error) {
	holder, ok := actor.UserID()
	if !ok {
		return State{}, fmt.Errorf("lock.Acquire: %w", domain.ErrUnauthorized)
	}

	now := m.now().UTC()
	l, err := m.repo.TryAcquireLock(ctx, storyID, holder, now, m.staleBefore(now))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyLocked) {
			conflictsTotal.WithLabelValues(opAcquire).Inc()
		}
		return State{}, fmt.Errorf("lock.Acquire: %w", err)
	}

	acquiredTotal.Inc()
	m.log.InfoContext(ctx, "story locked",
		slog.String("story_id", storyID.String()),
		slog.String("holder", holder.String()),
	)
	return m.state(l), nil
}

// Release moves the story from LOCKED(any holder) to UNLOCKED. A stale lock
// already reads as unlocked and fails with domain.ErrAlreadyUnlocked.
func (m *Manager) Release(ctx context.Context, storyID uuid.UUID) error {
	if err := m.repo.ReleaseLock(ctx, storyID, m.staleBefore(m.now().UTC())); err != nil {
		if errors.Is(err, domain.ErrAlreadyUnlocked) {
			conflictsTotal.WithLabelValues(opRelease).Inc()
		}
		return fmt.Errorf("lock.Release: %w", err)
	}

	releasedTotal.WithLabelValues(reasonUnlock).Inc()
	m.log.InfoContext(ctx, "story unlocked", slog.String("story_id", storyID.String()))
	return nil
}

// ForceReleaseOnEditCommit clears the lock whatever its state. It runs inside
// the edit transaction.
func (m *Manager) ForceReleaseOnEditCommit(ctx context.Context, storyID uuid.UUID) error {
	if err := m.repo.ClearLock(ctx, storyID); err != nil {
		return fmt.Errorf("lock.ForceReleaseOnEditCommit: %w", err)
	}
	releasedTotal.WithLabelValues(reasonEdit).Inc()
	return nil
}

// CheckEditable row-locks the story for the rest of the transaction and
// fails with domain.ErrLockedByOther when a live lock belongs to someone
// other than actor.
func (m *Manager) CheckEditable(ctx context.Context, storyID uuid.UUID, actor domain.Actor) error {
	l, err := m.repo.GetLock(ctx, storyID, true)
	if err != nil {
		return fmt.Errorf("lock.CheckEditable: %w", err)
	}
	if l.Live(m.now(), m.ttl) && !l.HeldBy(actor) {
		conflictsTotal.WithLabelValues(opEdit).Inc()
		return fmt.Errorf("lock.CheckEditable: story %s: %w", storyID, domain.ErrLockedByOther)
	}
	return nil
}

// State returns the current lock. Stale locks are reported as unlocked.
func (m *Manager) State(ctx context.Context, storyID uuid.UUID) (State, error) {
	l, err := m.repo.GetLock(ctx, storyID, false)
	if err != nil {
		return State{}, fmt.Errorf("lock.State: %w", err)
	}
	if !l.Live(m.now(), m.ttl) {
		return State{}, nil
	}
	return m.state(l), nil
}

// IsLocked reports whether the story holds a live lock.
func (m *Manager) IsLocked(ctx context.Context, storyID uuid.UUID) (bool, error) {
	s, err := m.State(ctx, storyID)
	if err != nil {
		return false, err
	}
	return s.Locked, nil
}

// Holder returns the live lock holder, or nil.
func (m *Manager) Holder(ctx context.Context, storyID uuid.UUID) (*uuid.UUID, error) {
	s, err := m.State(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return s.Holder, nil
}

// Live reports whether l is a live lock under the manager's TTL.
func (m *Manager) Live(l domain.Lock) bool {
	return l.Live(m.now(), m.ttl)
}

// ReleaseStale clears every expired lock. It is a no-op when expiry is
// disabled.
func (m *Manager) ReleaseStale(ctx context.Context) (int64, error) {
	before := m.staleBefore(m.now().UTC())
	if before == nil {
		return 0, nil
	}

	n, err := m.repo.ReleaseStaleLocks(ctx, *before)
	if err != nil {
		return 0, fmt.Errorf("lock.ReleaseStale: %w", err)
	}
	if n > 0 {
		releasedTotal.WithLabelValues(reasonStale).Add(float64(n))
	}
	m.log.InfoContext(ctx, "stale locks released",
		slog.Int64("count", n),
		slog.Time("before", *before),
	)
	return n, nil
}

func (m *Manager) state(l domain.Lock) State {
	return State{
		Locked:    l.Locked,
		Holder:    l.Holder,
		LockedAt:  l.LockedAt,
		ExpiresAt: l.ExpiresAt(m.ttl),
	}
}
