package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/pkg/ctxutil"
)

// Logout acknowledges a client-side logout. Access tokens are stateless and
// stay valid until they expire.
func (s *Service) Logout(ctx context.Context) {
	s.log.InfoContext(ctx, "user logged out", slog.String("actor", ctxutil.ActorFromCtx(ctx).String()))
}

// ValidateToken validates an access token and returns the user ID.
// Returns ErrUnauthorized if the token is invalid or expired.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("auth.ValidateToken: %w: %w", domain.ErrUnauthorized, err)
	}
	return userID, nil
}
