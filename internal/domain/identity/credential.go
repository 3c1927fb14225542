package identity

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/shared"
)

// MinPasswordLength is the shortest accepted sign-up password
const MinPasswordLength = 6

// Credential binds an email/password login to a principal
type Credential struct {
	PrincipalID  uuid.UUID
	Email        string
	PasswordHash string
}

// NormalizeEmail lowercases and trims an email address, rejecting malformed input
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewDomainError(shared.CodeValidation, "Email cannot be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", shared.NewDomainError(shared.CodeValidation, "Email is not a valid address")
	}
	return email, nil
}

// ValidatePassword checks sign-up password rules
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return shared.NewDomainError(shared.CodeValidation, "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError(shared.CodeValidation, "Password cannot exceed 72 bytes")
	}
	return nil
}
