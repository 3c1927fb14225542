package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
)

// ProfileModel maps the profiles table
type ProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Role      string    `gorm:"type:varchar(20);not null;default:'associate'"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the row to a profile. Unlike sign-up input, a stored
// empty role is malformed rather than defaulted.
func (m *ProfileModel) ToDomain() (*identity.Profile, error) {
	role := identity.Role(m.Role)
	if !role.IsValid() {
		return nil, shared.NewSchemaError("profile", "unknown role "+m.Role)
	}
	p, err := identity.NewProfile(m.ID, m.Name, role)
	if err != nil {
		return nil, shared.NewSchemaError("profile", err.Error())
	}
	p.CreatedAt = m.CreatedAt
	return p, nil
}

// ProfileModelFromDomain converts a profile to its row
func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	return &ProfileModel{
		ID:        p.ID,
		Name:      p.Name,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
	}
}

// CredentialModel maps the credentials table
type CredentialModel struct {
	PrincipalID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CredentialModel) TableName() string {
	return "credentials"
}

// ToDomain converts the row to a credential
func (m *CredentialModel) ToDomain() *identity.Credential {
	return &identity.Credential{
		PrincipalID:  m.PrincipalID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
	}
}

// CredentialModelFromDomain converts a credential to its row
func CredentialModelFromDomain(c *identity.Credential) *CredentialModel {
	return &CredentialModel{
		PrincipalID:  c.PrincipalID,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
	}
}
