package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/infrastructure/auth"
	"github.com/shelflog/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Auth error codes
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeTokenRevoked       = "TOKEN_REVOKED"
	CodeTokenMaxRefresh    = "TOKEN_MAX_REFRESH"
	CodeEmailTaken         = "EMAIL_TAKEN"
)

var errInvalidCredentials = shared.NewDomainError(CodeInvalidCredentials, "Invalid email or password")

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	BcryptCost int
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		BcryptCost: bcrypt.DefaultCost,
	}
}

// AuthService handles sign-up, sign-in and token lifecycle
type AuthService struct {
	credentials identity.CredentialRepository
	profiles    identity.ProfileRepository
	jwtService  *auth.JWTService
	revocations auth.RevocationStore
	config      AuthServiceConfig
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	credentials identity.CredentialRepository,
	profiles identity.ProfileRepository,
	jwtService *auth.JWTService,
	revocations auth.RevocationStore,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		profiles:    profiles,
		jwtService:  jwtService,
		revocations: revocations,
		config:      config,
		logger:      logger,
	}
}

// SignUp registers a credential and its profile, then signs the new account in
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error) {
	log := logger.Enrich(ctx, s.logger)

	email, err := identity.NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := identity.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	profile, err := identity.NewProfile(uuid.New(), input.Name, role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.config.BcryptCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	credential := &identity.Credential{
		PrincipalID:  profile.ID,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.credentials.Register(ctx, credential, profile); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			log.Info("Sign-up with registered email")
			return nil, shared.NewDomainError(CodeEmailTaken, "An account with this email already exists")
		}
		log.Error("Failed to register account", zap.Error(err))
		return nil, err
	}

	log.Info("Account created",
		zap.String("profile_id", profile.ID.String()),
		zap.String("role", string(profile.Role)))

	return s.issue(profile)
}

// SignIn verifies an email/password pair
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*AuthResult, error) {
	log := logger.Enrich(ctx, s.logger)

	email, err := identity.NormalizeEmail(input.Email)
	if err != nil {
		return nil, errInvalidCredentials
	}

	credential, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Info("Sign-in for unknown email")
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(input.Password)); err != nil {
		log.Info("Sign-in with wrong password", zap.String("profile_id", credential.PrincipalID.String()))
		return nil, errInvalidCredentials
	}

	profile, err := s.profiles.FindByID(ctx, credential.PrincipalID)
	if err != nil {
		log.Error("Credential without profile", zap.String("profile_id", credential.PrincipalID.String()), zap.Error(err))
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	log.Info("Signed in", zap.String("profile_id", profile.ID.String()))
	return s.issue(profile)
}

// Refresh exchanges a refresh token for a new pair. The consumed refresh
// token is claimed atomically so it is accepted at most once.
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	log := logger.Enrich(ctx, s.logger)

	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		log.Info("Refresh token rejected", zap.Error(err))
		return nil, tokenError(err)
	}
	if err := s.ensureNotRevoked(ctx, claims); err != nil {
		return nil, err
	}

	profile, err := s.profileFor(ctx, claims)
	if err != nil {
		return nil, err
	}

	pair, consumed, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		log.Info("Token refresh failed", zap.Error(err))
		return nil, tokenError(err)
	}

	// The pair is only handed out once this caller owns the consumed JTI,
	// so concurrent replays of one refresh token yield a single new pair.
	claimed, err := s.revocations.Claim(ctx, consumed.ID, consumed.RemainingTTL())
	if err != nil {
		log.Error("Failed to claim refresh token", zap.Error(err))
		return nil, shared.NewPersistenceError("claim refresh token", err)
	}
	if !claimed {
		log.Info("Refresh token replayed", zap.String("jti", consumed.ID))
		return nil, shared.NewDomainError(CodeTokenRevoked, "Token has been revoked")
	}

	log.Debug("Tokens refreshed", zap.String("profile_id", profile.ID.String()))
	return &AuthResult{Tokens: pair, Profile: profile}, nil
}

// SignOut revokes the presented access token and, if given, the refresh token
func (s *AuthService) SignOut(ctx context.Context, input SignOutInput) error {
	log := logger.Enrich(ctx, s.logger)

	if input.AccessClaims != nil {
		if err := s.revocations.Revoke(ctx, input.AccessClaims.ID, input.AccessClaims.RemainingTTL()); err != nil {
			log.Error("Failed to revoke access token", zap.Error(err))
			return shared.NewPersistenceError("revoke access token", err)
		}
	}

	if input.RefreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err != nil {
			// an unusable refresh token needs no revocation
			log.Debug("Ignoring invalid refresh token on sign-out", zap.Error(err))
		} else if err := s.revocations.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
			log.Error("Failed to revoke refresh token", zap.Error(err))
			return shared.NewPersistenceError("revoke refresh token", err)
		}
	}

	log.Info("Signed out")
	return nil
}

// Authenticate resolves a bearer access token into the stored profile. The
// profile, not the token, is the authority on the role.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*identity.Profile, *auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, nil, tokenError(err)
	}
	if err := s.ensureNotRevoked(ctx, claims); err != nil {
		return nil, nil, err
	}
	profile, err := s.profileFor(ctx, claims)
	if err != nil {
		return nil, nil, err
	}
	return profile, claims, nil
}

func (s *AuthService) ensureNotRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return shared.NewPersistenceError("check token revocation", err)
	}
	if revoked {
		return shared.NewDomainError(CodeTokenRevoked, "Token has been revoked")
	}
	return nil
}

func (s *AuthService) profileFor(ctx context.Context, claims *auth.Claims) (*identity.Profile, error) {
	id, err := claims.ProfileUUID()
	if err != nil {
		return nil, shared.NewDomainError(CodeTokenInvalid, "Invalid profile in token")
	}
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(CodeTokenInvalid, "Profile no longer exists")
		}
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) issue(profile *identity.Profile) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(profile.ID, string(profile.Role))
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate tokens")
	}
	return &AuthResult{Tokens: pair, Profile: profile}, nil
}

// tokenError maps JWT validation errors to domain errors
func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError(CodeTokenExpired, "Token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError(CodeTokenMaxRefresh, "Maximum token refresh count exceeded. Please sign in again")
	default:
		return shared.NewDomainError(CodeTokenInvalid, "Invalid token")
	}
}
