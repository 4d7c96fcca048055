// Package audit records and pages the immutable history of story actions.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/config"
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

type logRepo interface {
	Append(ctx context.Context, e domain.LogEntry) (domain.LogEntry, error)
	Page(ctx context.Context, storyID uuid.UUID, limit, offset int) ([]domain.LogView, int, error)
	CountByAction(ctx context.Context, storyID uuid.UUID, action domain.LogAction) (int, error)
}

// Service is the append-only audit logger.
type Service struct {
	log  *slog.Logger
	repo logRepo
	cfg  config.AuditConfig
	now  func() time.Time
}

// NewService creates an audit logger.
func NewService(logger *slog.Logger, repo logRepo, cfg config.AuditConfig) *Service {
	return &Service{
		log:  logger.With("service", "audit"),
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

// Append records that actor performed action on storyID.
func (s *Service) Append(ctx context.Context, storyID uuid.UUID, actor domain.Actor, action domain.LogAction) (domain.LogEntry, error) {
	var errs []domain.FieldError
	if storyID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "storyId", Message: "required"})
	}
	if !action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "must be one of CREATED, VIEWED, EDITED"})
	}
	if len(errs) > 0 {
		return domain.LogEntry{}, domain.NewValidationErrors(errs)
	}

	entry, err := s.repo.Append(ctx, domain.LogEntry{
		ID:        uuid.New(),
		StoryID:   storyID,
		Actor:     actor,
		Action:    action,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("audit.Append: %w", err)
	}

	s.log.DebugContext(ctx, "story action logged",
		slog.String("story_id", storyID.String()),
		slog.String("action", action.String()),
		slog.String("actor", actor.String()),
	)
	return entry, nil
}

// PageInput selects one page of a story's history. Zero values take the
// configured defaults.
type PageInput struct {
	StoryID uuid.UUID
	Page    int
	Limit   int
}

// Page returns entries most recent first; equal timestamps keep insertion
// order.
func (s *Service) Page(ctx context.Context, in PageInput) (domain.LogPage, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = s.cfg.DefaultPageSize
	}

	var errs []domain.FieldError
	switch {
	case in.Limit < 1:
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be at least 1"})
	case s.cfg.MaxPageSize > 0 && in.Limit > s.cfg.MaxPageSize:
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be at most %d", s.cfg.MaxPageSize)})
	}
	switch {
	case in.Page < 1:
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be at least 1"})
	case in.Limit >= 1 && in.Page-1 > math.MaxInt/in.Limit:
		// The skip count (page-1)*limit must fit in an int.
		errs = append(errs, domain.FieldError{Field: "page", Message: "out of range"})
	}
	if len(errs) > 0 {
		return domain.LogPage{}, domain.NewValidationErrors(errs)
	}

	entries, total, err := s.repo.Page(ctx, in.StoryID, in.Limit, (in.Page-1)*in.Limit)
	if err != nil {
		return domain.LogPage{}, fmt.Errorf("audit.Page: %w", err)
	}

	return domain.LogPage{
		Entries: entries,
		Total:   total,
		Page:    in.Page,
		Limit:   in.Limit,
	}, nil
}

// Count returns how many entries of action exist for storyID.
func (s *Service) Count(ctx context.Context, storyID uuid.UUID, action domain.LogAction) (int, error) {
	n, err := s.repo.CountByAction(ctx, storyID, action)
	if err != nil {
		return 0, fmt.Errorf("audit.Count: %w", err)
	}
	return n, nil
}
