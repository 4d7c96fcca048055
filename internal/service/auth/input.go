package auth

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/storyline-backend/internal/domain"
)

const (
	maxNameLen     = 50
	maxEmailLen    = 254
	maxPasswordLen = 72 // bcrypt input limit
)

// RegisterInput holds parameters for account creation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (i *RegisterInput) normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
}

// Validate validates the register input.
func (i RegisterInput) Validate(minPassword int) error {
	var errs []domain.FieldError

	switch {
	case i.Name == "":
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	case utf8.RuneCountInString(i.Name) > maxNameLen:
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	errs = append(errs, validateEmail(i.Email)...)
	errs = append(errs, validatePassword(i.Password, minPassword)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for email + password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdatePasswordInput holds the new password.
type UpdatePasswordInput struct {
	Password string
}

// Validate validates the password change input.
func (i UpdatePasswordInput) Validate(minPassword int) error {
	if errs := validatePassword(i.Password, minPassword); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateEmail(email string) []domain.FieldError {
	switch {
	case email == "":
		return []domain.FieldError{{Field: "email", Message: "required"}}
	case len(email) > maxEmailLen:
		return []domain.FieldError{{Field: "email", Message: "too long"}}
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return []domain.FieldError{{Field: "email", Message: "invalid format"}}
	}
	return nil
}

func validatePassword(password string, minLen int) []domain.FieldError {
	switch {
	case password == "":
		return []domain.FieldError{{Field: "password", Message: "required"}}
	case len(password) < minLen:
		return []domain.FieldError{{Field: "password", Message: "too short"}}
	case len(password) > maxPasswordLen:
		return []domain.FieldError{{Field: "password", Message: "too long"}}
	}
	return nil
}
