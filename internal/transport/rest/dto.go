package rest

import (
	"encoding/base64"
	"time"

	"github.com/heartmarshall/storyline-backend/internal/domain"
)

type summaryResponse struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	IsLocked bool     `json:"isLocked"`
}

type storyListResponse struct {
	Story []summaryResponse `json:"story"`
}

type fileResponse struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
}

type snapshotResponse struct {
	Heading string         `json:"heading"`
	Content string         `json:"content"`
	Files   []fileResponse `json:"files"`
}

type storyResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Tags      []string           `json:"tags"`
	AuthorID  string             `json:"authorId"`
	Snapshots []snapshotResponse `json:"snapshots"`
	IsLocked  bool               `json:"isLocked"`
	LockedBy  *string            `json:"lockedBy"`
	LockedAt  *time.Time         `json:"lockedAt,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// viewFileResponse carries the image bytes base64-encoded. ImageData is
// null when the blob is missing.
type viewFileResponse struct {
	fileResponse
	ImageData *string `json:"imageData"`
}

type viewSnapshotResponse struct {
	Heading string             `json:"heading"`
	Content string             `json:"content"`
	Files   []viewFileResponse `json:"files"`
}

type viewStoryResponse struct {
	storyResponse
	Snapshots []viewSnapshotResponse `json:"snapshots"`
}

type logResponse struct {
	ID        string    `json:"id"`
	StoryID   string    `json:"storyId"`
	UserID    *string   `json:"userId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type storyEnvelope struct {
	Message string        `json:"message"`
	Story   storyResponse `json:"story"`
	Log     *logResponse  `json:"log"`
}

type lockEnvelope struct {
	Message string        `json:"message"`
	Story   storyResponse `json:"story"`
}

type viewEnvelope struct {
	Message string            `json:"message"`
	Story   viewStoryResponse `json:"story"`
	Log     *logResponse      `json:"log"`
}

type lockStateResponse struct {
	IsLocked  bool       `json:"isLocked"`
	LockedBy  *string    `json:"lockedBy"`
	LockedAt  *time.Time `json:"lockedAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func toSummaryResponse(s domain.StorySummary) summaryResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return summaryResponse{ID: s.ID.String(), Title: s.Title, Tags: tags, IsLocked: s.IsLocked}
}

func toFileResponse(f domain.File) fileResponse {
	return fileResponse{Name: f.Name, MimeType: f.MimeType, Key: f.Key, Size: f.Size}
}

func toStoryResponse(s *domain.Story) storyResponse {
	resp := storyResponse{
		ID:        s.ID.String(),
		Title:     s.Title,
		Tags:      s.Tags,
		AuthorID:  s.AuthorID.String(),
		Snapshots: make([]snapshotResponse, 0, len(s.Snapshots)),
		IsLocked:  s.Lock.Locked,
		LockedBy:  idString(s.Lock.Holder),
		LockedAt:  s.Lock.LockedAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	for _, snap := range s.Snapshots {
		sr := snapshotResponse{Heading: snap.Heading, Content: snap.Content, Files: make([]fileResponse, 0, len(snap.Files))}
		for _, f := range snap.Files {
			sr.Files = append(sr.Files, toFileResponse(f))
		}
		resp.Snapshots = append(resp.Snapshots, sr)
	}
	return resp
}

func toViewResponse(v *domain.StoryView) viewStoryResponse {
	resp := viewStoryResponse{
		storyResponse: toStoryResponse(v.Story),
		Snapshots:     make([]viewSnapshotResponse, 0, len(v.Snapshots)),
	}
	for _, snap := range v.Snapshots {
		sr := viewSnapshotResponse{Heading: snap.Heading, Content: snap.Content, Files: make([]viewFileResponse, 0, len(snap.Files))}
		for _, f := range snap.Files {
			fr := viewFileResponse{fileResponse: toFileResponse(f.File)}
			if f.Data != nil {
				enc := base64.StdEncoding.EncodeToString(f.Data)
				fr.ImageData = &enc
			}
			sr.Files = append(sr.Files, fr)
		}
		resp.Snapshots = append(resp.Snapshots, sr)
	}
	return resp
}

func toLogResponse(e *domain.LogEntry) *logResponse {
	if e == nil {
		return nil
	}
	return &logResponse{
		ID:        e.ID.String(),
		StoryID:   e.StoryID.String(),
		UserID:    idString(e.Actor.Ref()),
		Action:    e.Action.String(),
		Timestamp: e.Timestamp,
	}
}
