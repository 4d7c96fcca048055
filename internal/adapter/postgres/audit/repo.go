// Package audit implements the story history repository using PostgreSQL.
// Records are append-only: there is no update or delete path.
package audit

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

const table = "story_logs"

// Repo provides story log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID       uuid.UUID  `db:"id"`
	Seq      int64      `db:"seq"`
	StoryID  uuid.UUID  `db:"story_id"`
	UserID   *uuid.UUID `db:"user_id"`
	Action   string     `db:"action"`
	LoggedAt time.Time  `db:"logged_at"`
	Email    *string    `db:"email"`
}

func (r row) toDomain() domain.LogView {
	email := domain.UnknownUserEmail
	if r.Email != nil {
		email = *r.Email
	}
	return domain.LogView{
		LogEntry: domain.LogEntry{
			ID:        r.ID,
			Seq:       r.Seq,
			StoryID:   r.StoryID,
			Actor:     domain.ActorFromRef(r.UserID),
			Action:    domain.LogAction(r.Action),
			Timestamp: r.LoggedAt,
		},
		Email: email,
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append inserts e and returns it with its assigned sequence number.
// Anonymous actors are stored as NULL user_id.
func (r *Repo) Append(ctx context.Context, e domain.LogEntry) (domain.LogEntry, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "story_id", "user_id", "action", "logged_at").
		Values(e.ID, e.StoryID, e.Actor.Ref(), string(e.Action), e.Timestamp).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("build insert story_log: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&e.Seq); err != nil {
		return domain.LogEntry{}, postgres.MapError(err, "story_log", e.ID)
	}
	return e, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Page returns up to limit entries for storyID, most recent first with ties
// in insertion order, skipping offset entries, plus the total count.
// Actor emails are resolved against users; unresolved actors render as
// domain.UnknownUserEmail.
func (r *Repo) Page(ctx context.Context, storyID uuid.UUID, limit, offset int) ([]domain.LogView, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := postgres.Builder().
		Select("count(*)").From(table).Where(squirrel.Eq{"story_id": storyID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count story_logs: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count story_logs: %w", err)
	}

	pageSQL, pageArgs, err := postgres.Builder().
		Select("l.id", "l.seq", "l.story_id", "l.user_id", "l.action", "l.logged_at", "u.email").
		From(table+" l").
		LeftJoin("users u ON u.id = l.user_id").
		Where(squirrel.Eq{"l.story_id": storyID}).
		OrderBy("l.logged_at DESC", "l.seq ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build page story_logs: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, pageSQL, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("page story_logs: %w", err)
	}

	out := make([]domain.LogView, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, total, nil
}

// CountByAction returns how many entries of action exist for storyID.
func (r *Repo) CountByAction(ctx context.Context, storyID uuid.UUID, action domain.LogAction) (int, error) {
	sql, args, err := postgres.Builder().
		Select("count(*)").From(table).
		Where(squirrel.Eq{"story_id": storyID, "action": string(action)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count by action: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count story_logs by action: %w", err)
	}
	return n, nil
}
