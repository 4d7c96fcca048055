package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/config"
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string, at time.Time) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// jwtManager defines the access token interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// passwordHasher hashes and verifies passwords.
type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Service implements account operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	jwt    jwtManager
	hasher passwordHasher
	cfg    config.AuthConfig
	now    func() time.Time
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	jwt jwtManager,
	hasher passwordHasher,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		jwt:    jwt,
		hasher: hasher,
		cfg:    cfg,
		now:    time.Now,
	}
}

// issueToken generates an access token for user.
func (s *Service) issueToken(user *domain.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &AuthResult{AccessToken: token, User: user}, nil
}
