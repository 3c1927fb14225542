package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/shared"
)

// Role determines which views and aggregations a profile may use
type Role string

const (
	RoleAssociate Role = "associate"
	RoleManager   Role = "manager"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleAssociate || r == RoleManager
}

// ParseRole parses a stored or submitted role. An empty value defaults to associate.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleAssociate, nil
	}
	r := Role(s)
	if !r.IsValid() {
		return "", shared.NewDomainError(shared.CodeValidation, "Role must be associate or manager")
	}
	return r, nil
}

// Profile is the application-side identity of an authenticated principal.
// Its ID equals the principal's ID and its role is fixed for the session.
type Profile struct {
	shared.BaseEntity
	Name string
	Role Role
}

// NewProfile creates a profile for the given principal
func NewProfile(principalID uuid.UUID, name string, role Role) (*Profile, error) {
	if principalID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Profile id cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Profile name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Profile name cannot exceed 100 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Role must be associate or manager")
	}

	return &Profile{
		BaseEntity: shared.NewBaseEntityWithID(principalID),
		Name:       name,
		Role:       role,
	}, nil
}

// IsManager reports whether the profile may see store-wide views
func (p *Profile) IsManager() bool {
	return p.Role == RoleManager
}
