// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

const table = "users"

var columns = []string{"id", "name", "email", "password_hash", "last_login_at", "created_at", "updated_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID  `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	LastLoginAt  *time.Time `db:"last_login_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (r row) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		LastLoginAt:  r.LastLoginAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, email)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, key any) (*domain.User, error) {
	sql, args, err := postgres.Builder().Select(columns...).From(table).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var u row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &u, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	return u.toDomain(), nil
}

// ExistsByEmail reports whether a user with the email is registered.
func (r *Repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"email": email})
}

// ExistsByName reports whether the user name is taken.
func (r *Repo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"name": name})
}

func (r *Repo) exists(ctx context.Context, where squirrel.Sqlizer) (bool, error) {
	sub, args, err := postgres.Builder().Select("1").From(table).Where(where).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var ok bool
	err = postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).
		Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return ok, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts u. Unique violations on name or email surface as
// domain.ErrNameTaken or domain.ErrEmailTaken.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "name", "email", "password_hash", "created_at", "updated_at").
		Values(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		switch postgres.ConstraintName(err) {
		case "users_email_key":
			return nil, fmt.Errorf("user %s: %w", u.Email, domain.ErrEmailTaken)
		case "users_name_key":
			return nil, fmt.Errorf("user %s: %w", u.Name, domain.ErrNameTaken)
		}
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return out.toDomain(), nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string, at time.Time) error {
	return r.update(ctx, id, map[string]any{"password_hash": hash, "updated_at": at})
}

// TouchLastLogin records a successful login.
func (r *Repo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.update(ctx, id, map[string]any{"last_login_at": at})
}

func (r *Repo) update(ctx context.Context, id uuid.UUID, set map[string]any) error {
	sql, args, err := postgres.Builder().Update(table).SetMap(set).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update user: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
