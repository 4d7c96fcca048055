package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
)

// GetProfile returns the user with id. Callers must not expose PasswordHash.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("auth.GetProfile: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the password of user id.
func (s *Service) UpdatePassword(ctx context.Context, id uuid.UUID, input UpdatePasswordInput) error {
	if err := input.Validate(s.cfg.MinPasswordLen); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return fmt.Errorf("auth.UpdatePassword: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, id, hash, s.now().UTC()); err != nil {
		return fmt.Errorf("auth.UpdatePassword: %w", err)
	}

	s.log.InfoContext(ctx, "password updated", slog.String("user_id", id.String()))
	return nil
}
