package handler

import (
	"time"

	appidentity "github.com/shelflog/backend/internal/application/identity"
)

// =====================
// Auth Request DTOs
// =====================

// SignUpRequest represents the request body for account creation
type SignUpRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,shelf_role"`
}

// SignInRequest represents the request body for email/password sign-in
type SignInRequest struct {
	Email    string `json:"email" binding:"required,max=254"`
	Password string `json:"password" binding:"required,max=72"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SignOutRequest optionally names the refresh token to revoke with the access token
type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// =====================
// Auth Response DTOs
// =====================

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthResponse represents the response body of sign-up, sign-in and refresh
type AuthResponse struct {
	Token   TokenResponse   `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

func toAuthResponse(r *appidentity.AuthResult) AuthResponse {
	return AuthResponse{
		Token: TokenResponse{
			AccessToken:           r.Tokens.AccessToken,
			RefreshToken:          r.Tokens.RefreshToken,
			AccessTokenExpiresAt:  r.Tokens.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: r.Tokens.RefreshTokenExpiresAt,
			TokenType:             "Bearer",
		},
		Profile: toProfileResponse(r.Profile),
	}
}
