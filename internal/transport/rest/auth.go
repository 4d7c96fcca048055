package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/domain"
	"github.com/heartmarshall/storyline-backend/internal/service/auth"
	"github.com/heartmarshall/storyline-backend/pkg/ctxutil"
)

type authService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	Logout(ctx context.Context)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, input auth.UpdatePasswordInput) error
}

// AuthHandler serves account endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userEnvelope struct {
	User userResponse `json:"user"`
}

// userResponse never carries password material.
type userResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		LastLogin: u.LastLoginAt,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: result.AccessToken, User: toUserResponse(result.User)})
}

// Login handles POST /login. Unknown email and wrong password are both
// reported as 400 invalid credentials.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid credentials")
			return
		}
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: result.AccessToken, User: toUserResponse(result.User)})
}

// Logout handles POST /logout. Tokens are stateless; the client discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Context())
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// UpdatePassword handles POST /updatepwd.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Unauthorized")
		return
	}

	var req updatePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.UpdatePassword(r.Context(), userID, auth.UpdatePasswordInput{Password: req.Password}); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

// GetUser handles GET /getUser.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Unauthorized")
		return
	}

	user, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userEnvelope{User: toUserResponse(user)})
}
