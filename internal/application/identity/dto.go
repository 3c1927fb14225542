package identity

import (
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/infrastructure/auth"
)

// SignUpInput contains the input for creating an account
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     string // empty defaults to associate
}

// SignInInput contains the input for email/password sign-in
type SignInInput struct {
	Email    string
	Password string
}

// RefreshInput contains the input for token refresh
type RefreshInput struct {
	RefreshToken string
}

// SignOutInput identifies the tokens to revoke. RefreshToken is optional.
type SignOutInput struct {
	AccessClaims *auth.Claims
	RefreshToken string
}

// AuthResult is returned by every operation that issues tokens
type AuthResult struct {
	Tokens  *auth.TokenPair
	Profile *identity.Profile
}
