package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/storyline-backend/internal/auth"
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

// Login authenticates with email + password and records the login time.
// Unknown emails and wrong passwords both return domain.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	now := s.now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("auth.Login touch last login: %w", err)
	}
	user.LastLoginAt = &now

	result, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))
	return result, nil
}
