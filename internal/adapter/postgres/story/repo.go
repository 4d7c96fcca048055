// Package story implements the Story repository using PostgreSQL, including
// the compare-and-set lock transitions on the story row.
package story

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

const table = "stories"

var columns = []string{
	"id", "title", "tags", "author_id", "snapshots",
	"is_locked", "locked_by", "locked_at", "created_at", "updated_at",
}

var summaryColumns = []string{"id", "title", "tags", "is_locked"}

// Repo provides story persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new story repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID  `db:"id"`
	Title     string     `db:"title"`
	Tags      []string   `db:"tags"`
	AuthorID  uuid.UUID  `db:"author_id"`
	Snapshots []byte     `db:"snapshots"`
	IsLocked  bool       `db:"is_locked"`
	LockedBy  *uuid.UUID `db:"locked_by"`
	LockedAt  *time.Time `db:"locked_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

func (r row) toDomain() (*domain.Story, error) {
	var snapshots []domain.Snapshot
	if len(r.Snapshots) > 0 {
		if err := json.Unmarshal(r.Snapshots, &snapshots); err != nil {
			return nil, fmt.Errorf("story %s unmarshal snapshots: %w", r.ID, err)
		}
	}
	if snapshots == nil {
		snapshots = []domain.Snapshot{}
	}
	for i := range snapshots {
		if snapshots[i].Files == nil {
			snapshots[i].Files = []domain.File{}
		}
	}

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return &domain.Story{
		ID:        r.ID,
		Title:     r.Title,
		Tags:      tags,
		AuthorID:  r.AuthorID,
		Snapshots: snapshots,
		Lock:      domain.Lock{Locked: r.IsLocked, Holder: r.LockedBy, LockedAt: r.LockedAt},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func marshalSnapshots(s []domain.Snapshot) ([]byte, error) {
	if s == nil {
		s = []domain.Snapshot{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshots: %w", err)
	}
	return b, nil
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// ---------------------------------------------------------------------------
// Story CRUD
// ---------------------------------------------------------------------------

// Create inserts s as an unlocked story.
func (r *Repo) Create(ctx context.Context, s *domain.Story) (*domain.Story, error) {
	snapshots, err := marshalSnapshots(s.Snapshots)
	if err != nil {
		return nil, err
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "title", "tags", "author_id", "snapshots", "created_at", "updated_at").
		Values(s.ID, s.Title, s.Tags, s.AuthorID, snapshots, s.CreatedAt, s.UpdatedAt).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert story: %w", err)
	}

	return r.getWith(ctx, s.ID, sql, args)
}

// GetByID returns the story with id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).From(table).Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get story: %w", err)
	}
	return r.getWith(ctx, id, sql, args)
}

// UpdateContent replaces title, tags and snapshots and refreshes updated_at.
// Lock columns are not touched.
func (r *Repo) UpdateContent(ctx context.Context, id uuid.UUID, title string, tags []string, snapshots []domain.Snapshot, at time.Time) (*domain.Story, error) {
	raw, err := marshalSnapshots(snapshots)
	if err != nil {
		return nil, err
	}

	sql, args, err := postgres.Builder().
		Update(table).
		Set("title", title).
		Set("tags", tags).
		Set("snapshots", raw).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update story: %w", err)
	}
	return r.getWith(ctx, id, sql, args)
}

// Delete removes the story row. Its history rows are left in place.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete story: %w", err)
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

// Exists reports whether a story with id exists.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM stories WHERE id = $1)", id).
		Scan(&ok)
	if err != nil {
		return false, postgres.MapError(err, "story", id)
	}
	return ok, nil
}

func (r *Repo) getWith(ctx context.Context, id uuid.UUID, sql string, args []any) (*domain.Story, error) {
	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "story", id)
	}
	return out.toDomain()
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// ListByTags returns summaries of stories carrying any of tags, newest
// first. An empty tags list returns every story.
func (r *Repo) ListByTags(ctx context.Context, tags []string) ([]domain.StorySummary, error) {
	q := postgres.Builder().Select(summaryColumns...).From(table).OrderBy("created_at DESC", "id")
	if len(tags) > 0 {
		q = q.Where("tags && ?", tags)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list stories: %w", err)
	}

	out := []domain.StorySummary{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list stories by tags: %w", err)
	}
	for i := range out {
		if out[i].Tags == nil {
			out[i].Tags = []string{}
		}
	}
	return out, nil
}

// SearchByTitle returns stories whose title contains pattern,
// case-insensitively. pattern is matched literally.
func (r *Repo) SearchByTitle(ctx context.Context, pattern string) ([]domain.Story, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).From(table).
		Where(squirrel.ILike{"title": "%" + EscapeLike(pattern) + "%"}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search stories: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("search stories by title: %w", err)
	}

	out := make([]domain.Story, 0, len(rows))
	for _, rw := range rows {
		s, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

// EscapeLike escapes LIKE metacharacters so s matches literally.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
