package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxFilesPerSnapshot is the upper bound on images attached to one snapshot.
const MaxFilesPerSnapshot = 5

// Story is a titled, tagged collection of ordered snapshots authored by one user.
type Story struct {
	ID        uuid.UUID
	Title     string
	Tags      []string
	AuthorID  uuid.UUID
	Snapshots []Snapshot
	Lock      Lock
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot is one section of a story. Order within Story.Snapshots is the
// narrative order.
type Snapshot struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
	Files   []File `json:"files"`
}

// File references an image held in the blob store by content address.
type File struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
}

// Lock is the exclusive-edit state of a story.
// Invariant: Holder != nil iff Locked.
type Lock struct {
	Locked   bool
	Holder   *uuid.UUID
	LockedAt *time.Time
}

// Unlocked returns the initial lock state.
func Unlocked() Lock { return Lock{} }

// ExpiresAt returns when the lock becomes stale. A zero ttl means locks never
// expire and nil is returned.
func (l Lock) ExpiresAt(ttl time.Duration) *time.Time {
	if !l.Locked || l.LockedAt == nil || ttl <= 0 {
		return nil
	}
	t := l.LockedAt.Add(ttl)
	return &t
}

// Live reports whether the lock is held and not yet stale at now.
func (l Lock) Live(now time.Time, ttl time.Duration) bool {
	if !l.Locked {
		return false
	}
	exp := l.ExpiresAt(ttl)
	return exp == nil || now.Before(*exp)
}

// HeldBy reports whether the lock holder is the given actor.
func (l Lock) HeldBy(actor Actor) bool {
	id, ok := actor.UserID()
	return ok && l.Holder != nil && *l.Holder == id
}

// StorySummary is the list projection of a story.
type StorySummary struct {
	ID       uuid.UUID `db:"id"`
	Title    string    `db:"title"`
	Tags     []string  `db:"tags"`
	IsLocked bool      `db:"is_locked"`
}

// FilePayload is a file reference together with its decoded bytes.
// Data is nil when the blob could not be found.
type FilePayload struct {
	File
	Data []byte
}

// SnapshotView is a snapshot with its file payloads resolved.
type SnapshotView struct {
	Heading string
	Content string
	Files   []FilePayload
}

// StoryView is a story as returned to a reader.
type StoryView struct {
	Story     *Story
	Snapshots []SnapshotView
}
