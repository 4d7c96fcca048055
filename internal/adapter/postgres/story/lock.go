package story

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

type lockRow struct {
	IsLocked bool       `db:"is_locked"`
	LockedBy *uuid.UUID `db:"locked_by"`
	LockedAt *time.Time `db:"locked_at"`
}

func (l lockRow) toDomain() domain.Lock {
	return domain.Lock{Locked: l.IsLocked, Holder: l.LockedBy, LockedAt: l.LockedAt}
}

const lockReturning = "RETURNING is_locked, locked_by, locked_at"

func clearLock(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
	return b.Set("is_locked", false).Set("locked_by", nil).Set("locked_at", nil)
}

// TryAcquireLock sets the lock to holder when the story is unlocked, or when
// staleBefore is non-nil and the current lock was taken before it.
// Returns domain.ErrAlreadyLocked when the CAS loses.
func (r *Repo) TryAcquireLock(ctx context.Context, id, holder uuid.UUID, now time.Time, staleBefore *time.Time) (domain.Lock, error) {
	free := squirrel.Or{squirrel.Eq{"is_locked": false}}
	if staleBefore != nil {
		free = append(free, squirrel.Lt{"locked_at": *staleBefore})
	}

	sql, args, err := postgres.Builder().
		Update(table).
		Set("is_locked", true).
		Set("locked_by", holder).
		Set("locked_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(free).
		Suffix(lockReturning).
		ToSql()
	if err != nil {
		return domain.Lock{}, fmt.Errorf("build acquire lock: %w", err)
	}

	lock, won, err := r.lockCAS(ctx, id, sql, args)
	if err != nil || won {
		return lock, err
	}
	return domain.Lock{}, r.casMiss(ctx, id, domain.ErrAlreadyLocked)
}

// ReleaseLock clears a held lock. Returns domain.ErrAlreadyUnlocked when the
// story is not locked, or when staleBefore is non-nil and the lock was taken
// before it.
func (r *Repo) ReleaseLock(ctx context.Context, id uuid.UUID, staleBefore *time.Time) error {
	q := clearLock(postgres.Builder().Update(table)).
		Where(squirrel.Eq{"id": id, "is_locked": true})
	if staleBefore != nil {
		q = q.Where(squirrel.GtOrEq{"locked_at": *staleBefore})
	}
	sql, args, err := q.Suffix(lockReturning).ToSql()
	if err != nil {
		return fmt.Errorf("build release lock: %w", err)
	}

	_, won, err := r.lockCAS(ctx, id, sql, args)
	if err != nil || won {
		return err
	}
	return r.casMiss(ctx, id, domain.ErrAlreadyUnlocked)
}

// ClearLock unconditionally resets the lock columns.
func (r *Repo) ClearLock(ctx context.Context, id uuid.UUID) error {
	sql, args, err := clearLock(postgres.Builder().Update(table)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear lock: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "story", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// GetLock reads the lock columns. With forUpdate the row stays locked until
// the surrounding transaction ends.
func (r *Repo) GetLock(ctx context.Context, id uuid.UUID, forUpdate bool) (domain.Lock, error) {
	q := postgres.Builder().
		Select("is_locked", "locked_by", "locked_at").
		From(table).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.Lock{}, fmt.Errorf("build get lock: %w", err)
	}

	var l lockRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &l, sql, args...); err != nil {
		return domain.Lock{}, postgres.MapError(err, "story", id)
	}
	return l.toDomain(), nil
}

// ReleaseStaleLocks clears every lock taken before the cutoff and returns
// the number of stories released.
func (r *Repo) ReleaseStaleLocks(ctx context.Context, before time.Time) (int64, error) {
	sql, args, err := clearLock(postgres.Builder().Update(table)).
		Where(squirrel.Eq{"is_locked": true}).
		Where(squirrel.Lt{"locked_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build release stale locks: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("release stale locks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// lockCAS runs a conditional UPDATE ... RETURNING and reports whether a row
// matched.
func (r *Repo) lockCAS(ctx context.Context, id uuid.UUID, sql string, args []any) (domain.Lock, bool, error) {
	var rows []lockRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return domain.Lock{}, false, postgres.MapError(err, "story", id)
	}
	if len(rows) == 0 {
		return domain.Lock{}, false, nil
	}
	return rows[0].toDomain(), true, nil
}

// casMiss distinguishes a missing story from a lost compare-and-set.
func (r *Repo) casMiss(ctx context.Context, id uuid.UUID, conflict error) error {
	ok, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("story %s: %w", id, domain.ErrNotFound)
	}
	return fmt.Errorf("story %s: %w", id, conflict)
}
