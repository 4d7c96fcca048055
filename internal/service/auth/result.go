package auth

import "github.com/heartmarshall/storyline-backend/internal/domain"

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}
