package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/storyline-backend/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with a unique name and email.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Name:         "writer-" + suffix,
		Email:        "writer-" + suffix + "@example.com",
		PasswordHash: "$2a$04$not.a.real.hash.for.tests.only.................",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// SeedStory inserts an unlocked story by author with one text-only snapshot.
func SeedStory(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, title string, tags ...string) domain.Story {
	t.Helper()

	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	story := domain.Story{
		ID:       uuid.New(),
		Title:    title,
		Tags:     tags,
		AuthorID: authorID,
		Snapshots: []domain.Snapshot{
			{Heading: "Chapter 1", Content: "It was a dark and stormy night.", Files: []domain.File{}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	snapshots, err := json.Marshal(story.Snapshots)
	if err != nil {
		t.Fatalf("testhelper: SeedStory marshal: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO stories (id, title, tags, author_id, snapshots, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		story.ID, story.Title, story.Tags, story.AuthorID, snapshots, story.CreatedAt, story.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStory: %v", err)
	}
	return story
}
