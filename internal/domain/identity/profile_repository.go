package identity

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	// FindByID finds the profile of a principal, returning shared.ErrNotFound when absent
	FindByID(ctx context.Context, principalID uuid.UUID) (*Profile, error)

	// FindAll returns every profile, used to resolve event authors
	FindAll(ctx context.Context) ([]Profile, error)
}

// CredentialRepository stores sign-in credentials
type CredentialRepository interface {
	// FindByEmail finds a credential by normalized email, returning shared.ErrNotFound when absent
	FindByEmail(ctx context.Context, email string) (*Credential, error)

	// Register stores a credential and its profile atomically.
	// Returns shared.ErrAlreadyExists when the email is taken.
	Register(ctx context.Context, credential *Credential, profile *Profile) error
}
