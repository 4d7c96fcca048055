package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/storyline-backend/internal/domain"
)

type logLineResponse struct {
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type paginationResponse struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type logsResponse struct {
	StoryTitle string             `json:"storyTitle"`
	StoryTag   []string           `json:"storyTag"`
	IsLocked   bool               `json:"isLocked"`
	Logs       []logLineResponse  `json:"logs"`
	Pagination paginationResponse `json:"pagination"`
}

// Logs handles GET /logs/{storyId}?page=&limit=. Missing paging parameters
// fall back to the configured defaults.
func (h *StoryHandler) Logs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "storyId")
	if !ok {
		return
	}

	page, err := queryInt(r, "page")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.Logs(r.Context(), id, page, limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := logsResponse{
		StoryTitle: result.Story.Title,
		StoryTag:   result.Story.Tags,
		IsLocked:   result.Story.Lock.Locked,
		Logs:       make([]logLineResponse, 0, len(result.Page.Entries)),
		Pagination: paginationResponse{
			Total:      result.Page.Total,
			Page:       result.Page.Page,
			Limit:      result.Page.Limit,
			TotalPages: result.Page.TotalPages(),
		},
	}
	if resp.StoryTag == nil {
		resp.StoryTag = []string{}
	}
	for _, e := range result.Page.Entries {
		resp.Logs = append(resp.Logs, logLineResponse{Email: e.Email, Action: e.Action.String(), Timestamp: e.Timestamp})
	}
	writeJSON(w, http.StatusOK, resp)
}

// queryInt parses an optional integer query parameter; absent yields 0.
func queryInt(r *http.Request, key string) (int, error) {
	raw := trimmedQuery(r, key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(key, "must be an integer")
	}
	return n, nil
}
