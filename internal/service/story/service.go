// Package story coordinates the story lifecycle around the lock manager,
// the audit log, the story store and the blob store.
package story

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/adapter/blob"
	"github.com/heartmarshall/storyline-backend/internal/config"
	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/internal/service/audit"
	"github.com/heartmarshall/storyline-backend/internal/service/lock"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type storyRepo interface {
	Create(ctx context.Context, s *domain.Story) (*domain.Story, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error)
	UpdateContent(ctx context.Context, id uuid.UUID, title string, tags []string, snapshots []domain.Snapshot, at time.Time) (*domain.Story, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTags(ctx context.Context, tags []string) ([]domain.StorySummary, error)
	SearchByTitle(ctx context.Context, pattern string) ([]domain.Story, error)
}

type lockManager interface {
	Acquire(ctx context.Context, storyID uuid.UUID, actor domain.Actor) (lock.State, error)
	Release(ctx context.Context, storyID uuid.UUID) error
	ForceReleaseOnEditCommit(ctx context.Context, storyID uuid.UUID) error
	CheckEditable(ctx context.Context, storyID uuid.UUID, actor domain.Actor) error
	State(ctx context.Context, storyID uuid.UUID) (lock.State, error)
	Live(l domain.Lock) bool
}

type auditLogger interface {
	Append(ctx context.Context, storyID uuid.UUID, actor domain.Actor, action domain.LogAction) (domain.LogEntry, error)
	Page(ctx context.Context, in audit.PageInput) (domain.LogPage, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the story lifecycle.
type Service struct {
	log     *slog.Logger
	stories storyRepo
	locks   lockManager
	audit   auditLogger
	blobs   blob.Store
	tx      txManager
	cfg     config.UploadConfig
	allowed map[string]struct{}
	now     func() time.Time
}

// NewService creates the story coordinator.
func NewService(
	logger *slog.Logger,
	stories storyRepo,
	locks lockManager,
	audit auditLogger,
	blobs blob.Store,
	tx txManager,
	cfg config.UploadConfig,
) *Service {
	allowed := make(map[string]struct{})
	for _, mt := range cfg.AllowedMIMETypes() {
		allowed[mt] = struct{}{}
	}
	return &Service{
		log:     logger.With("service", "story"),
		stories: stories,
		locks:   locks,
		audit:   audit,
		blobs:   blobs,
		tx:      tx,
		cfg:     cfg,
		allowed: allowed,
		now:     time.Now,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// record appends an audit entry. A failure is logged and reported as nil so
// the completed mutation stands.
func (s *Service) record(ctx context.Context, storyID uuid.UUID, actor domain.Actor, action domain.LogAction) *domain.LogEntry {
	entry, err := s.audit.Append(ctx, storyID, actor, action)
	if err != nil {
		s.log.ErrorContext(ctx, "audit append failed",
			slog.String("story_id", storyID.String()),
			slog.String("action", action.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return &entry
}

// normalizeLock hides stale locks from readers.
func (s *Service) normalizeLock(st *domain.Story) {
	if st != nil && !s.locks.Live(st.Lock) {
		st.Lock = domain.Unlocked()
	}
}
