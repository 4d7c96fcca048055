package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/internal/service/lock"
	"github.com/heartmarshall/storyline-backend/internal/service/story"
)

type storyService interface {
	Create(ctx context.Context, input story.CreateInput) (*story.Result, error)
	View(ctx context.Context, id uuid.UUID) (*story.ViewResult, error)
	Edit(ctx context.Context, id uuid.UUID, input story.EditInput) (*story.Result, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Lock(ctx context.Context, id uuid.UUID) (*domain.Story, error)
	Unlock(ctx context.Context, id uuid.UUID) error
	LockState(ctx context.Context, id uuid.UUID) (lock.State, error)
	ListByTags(ctx context.Context, tags []string) ([]domain.StorySummary, error)
	SearchByTitle(ctx context.Context, pattern string) ([]domain.Story, error)
	Logs(ctx context.Context, id uuid.UUID, page, limit int) (*story.LogsResult, error)
}

// StoryHandler serves story endpoints.
type StoryHandler struct {
	svc             storyService
	log             *slog.Logger
	maxRequestBytes int64
}

// NewStoryHandler creates a StoryHandler. Create and edit bodies larger than
// maxRequestBytes are rejected with 413.
func NewStoryHandler(svc storyService, logger *slog.Logger, maxRequestBytes int64) *StoryHandler {
	return &StoryHandler{svc: svc, log: logger.With("handler", "story"), maxRequestBytes: maxRequestBytes}
}

// List handles GET /stories?tags=a,b.
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	tags := splitTags(r.URL.Query()["tags"])

	summaries, err := h.svc.ListByTags(r.Context(), tags)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := storyListResponse{Story: make([]summaryResponse, 0, len(summaries))}
	for _, s := range summaries {
		resp.Story = append(resp.Story, toSummaryResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// SearchByTitle handles GET /search/title/{pattern}.
func (h *StoryHandler) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	stories, err := h.svc.SearchByTitle(r.Context(), chi.URLParam(r, "pattern"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]storyResponse, 0, len(stories))
	for i := range stories {
		resp = append(resp, toStoryResponse(&stories[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// View handles GET /viewStory/{id}.
func (h *StoryHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.svc.View(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewEnvelope{
		Message: "Story retrieved successfully",
		Story:   toViewResponse(result.View),
		Log:     toLogResponse(result.Log),
	})
}

// Create handles POST /create.
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)

	form, err := parseStoryForm(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.Create(r.Context(), form.createInput())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, storyEnvelope{
		Message: "Story created successfully",
		Story:   toStoryResponse(result.Story),
		Log:     toLogResponse(result.Log),
	})
}

// Edit handles PUT /edit/{id}.
func (h *StoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)

	form, err := parseStoryForm(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.Edit(r.Context(), id, form.editInput())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, storyEnvelope{
		Message: "Story updated successfully",
		Story:   toStoryResponse(result.Story),
		Log:     toLogResponse(result.Log),
	})
}

// Lock handles PUT /lockStory/{id}.
func (h *StoryHandler) Lock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	st, err := h.svc.Lock(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lockEnvelope{Message: "Story locked successfully", Story: toStoryResponse(st)})
}

// LockState handles GET /lockStory/{id}.
func (h *StoryHandler) LockState(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	st, err := h.svc.LockState(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lockStateResponse{
		IsLocked:  st.Locked,
		LockedBy:  idString(st.Holder),
		LockedAt:  st.LockedAt,
		ExpiresAt: st.ExpiresAt,
	})
}

// Unlock handles PUT /unlockStory/{id}.
func (h *StoryHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Unlock(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Story unlocked successfully"})
}

// Delete handles DELETE /delete/{id}.
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Story deleted successfully"})
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func trimmedQuery(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
