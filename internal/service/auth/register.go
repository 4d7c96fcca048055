package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
)

// Register creates an account and returns an access token for it.
// The email is checked before the name, so a request colliding on both
// reports domain.ErrEmailTaken. The unique constraints back up the checks
// under concurrent registration.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.normalize()
	if err := input.Validate(s.cfg.MinPasswordLen); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.Register check email: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	taken, err = s.users.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("auth.Register check name: %w", err)
	}
	if taken {
		return nil, domain.ErrNameTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	now := s.now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	result, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))
	return result, nil
}
