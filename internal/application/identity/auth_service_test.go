package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/infrastructure/auth"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockCredentialRepository is a mock implementation of identity.CredentialRepository
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) FindByEmail(ctx context.Context, email string) (*identity.Credential, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Credential), args.Error(1)
}

func (m *MockCredentialRepository) Register(ctx context.Context, credential *identity.Credential, profile *identity.Profile) error {
	args := m.Called(ctx, credential, profile)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of identity.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context) ([]identity.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.Profile), args.Error(1)
}

func testJWTService(maxRefresh int) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "shelflog-test",
		MaxRefreshCount:        maxRefresh,
	})
}

type authFixture struct {
	credentials *MockCredentialRepository
	profiles    *MockProfileRepository
	revocations *auth.InMemoryRevocationStore
	jwt         *auth.JWTService
	service     *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		credentials: new(MockCredentialRepository),
		profiles:    new(MockProfileRepository),
		revocations: auth.NewInMemoryRevocationStore(),
		jwt:         testJWTService(3),
	}
	f.service = NewAuthService(f.credentials, f.profiles, f.jwt, f.revocations,
		AuthServiceConfig{BcryptCost: bcrypt.MinCost}, zap.NewNop())
	return f
}

// registered stubs a stored account and returns its profile
func (f *authFixture) registered(t *testing.T, email, password string, role identity.Role) *identity.Profile {
	t.Helper()
	profile, err := identity.NewProfile(uuid.New(), "Riley", role)
	require.NoError(t, err)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	f.credentials.On("FindByEmail", mock.Anything, email).Return(&identity.Credential{
		PrincipalID:  profile.ID,
		Email:        email,
		PasswordHash: string(hash),
	}, nil)
	f.profiles.On("FindByID", mock.Anything, profile.ID).Return(profile, nil)
	return profile
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected domain error, got %v", err)
	return de.Code
}

func TestAuthService_SignUp(t *testing.T) {
	t.Run("creates an associate by default", func(t *testing.T) {
		f := newAuthFixture(t)
		f.credentials.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.SignUp(context.Background(), SignUpInput{
			Name:     "  Jordan ",
			Email:    "Jordan@Example.com",
			Password: "secret1",
		})
		require.NoError(t, err)

		assert.Equal(t, "Jordan", result.Profile.Name)
		assert.Equal(t, identity.RoleAssociate, result.Profile.Role)
		assert.NotEmpty(t, result.Tokens.AccessToken)

		cred := f.credentials.Calls[0].Arguments.Get(1).(*identity.Credential)
		assert.Equal(t, "jordan@example.com", cred.Email)
		assert.Equal(t, result.Profile.ID, cred.PrincipalID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte("secret1")))

		claims, err := f.jwt.ValidateAccessToken(result.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, result.Profile.ID.String(), claims.ProfileID)
		assert.Equal(t, "associate", claims.Role)
	})

	t.Run("rejects invalid input before touching the store", func(t *testing.T) {
		tests := []SignUpInput{
			{Name: "A", Email: "not-an-email", Password: "secret1"},
			{Name: "A", Email: "a@b.co", Password: "123"},
			{Name: "A", Email: "a@b.co", Password: "secret1", Role: "owner"},
			{Name: " ", Email: "a@b.co", Password: "secret1"},
		}
		for _, input := range tests {
			f := newAuthFixture(t)
			_, err := f.service.SignUp(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, shared.CodeValidation, domainCode(t, err))
			f.credentials.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("taken email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.credentials.On("Register", mock.Anything, mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := f.service.SignUp(context.Background(), SignUpInput{Name: "A", Email: "a@b.co", Password: "secret1"})
		assert.Equal(t, CodeEmailTaken, domainCode(t, err))
	})
}

func TestAuthService_SignIn(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthFixture(t)
		profile := f.registered(t, "kim@example.com", "secret1", identity.RoleManager)

		result, err := f.service.SignIn(context.Background(), SignInInput{Email: " KIM@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, profile.ID, result.Profile.ID)
		assert.Equal(t, "Bearer", result.Tokens.TokenType)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.registered(t, "kim@example.com", "secret1", identity.RoleAssociate)

		_, err := f.service.SignIn(context.Background(), SignInInput{Email: "kim@example.com", Password: "nope-nope"})
		assert.Equal(t, CodeInvalidCredentials, domainCode(t, err))
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.credentials.On("FindByEmail", mock.Anything, "who@example.com").Return(nil, shared.ErrNotFound)

		_, err := f.service.SignIn(context.Background(), SignInInput{Email: "who@example.com", Password: "secret1"})
		assert.Equal(t, CodeInvalidCredentials, domainCode(t, err))
	})

	t.Run("store failure is not disguised", func(t *testing.T) {
		f := newAuthFixture(t)
		f.credentials.On("FindByEmail", mock.Anything, mock.Anything).
			Return(nil, shared.NewPersistenceError("find credential", errors.New("down")))

		_, err := f.service.SignIn(context.Background(), SignInInput{Email: "kim@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, shared.ErrPersistence)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the stored profile", func(t *testing.T) {
		f := newAuthFixture(t)
		profile := f.registered(t, "kim@example.com", "secret1", identity.RoleManager)
		signedIn, err := f.service.SignIn(ctx, SignInInput{Email: "kim@example.com", Password: "secret1"})
		require.NoError(t, err)

		got, claims, err := f.service.Authenticate(ctx, signedIn.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, got.ID)
		assert.True(t, got.IsManager())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		f := newAuthFixture(t)
		_, _, err := f.service.Authenticate(ctx, "not-a-token")
		assert.Equal(t, CodeTokenInvalid, domainCode(t, err))
	})

	t.Run("rejects refresh tokens", func(t *testing.T) {
		f := newAuthFixture(t)
		pair, err := f.jwt.GenerateTokenPair(uuid.New(), "associate")
		require.NoError(t, err)
		_, _, err = f.service.Authenticate(ctx, pair.RefreshToken)
		assert.Equal(t, CodeTokenInvalid, domainCode(t, err))
	})

	t.Run("rejects tokens of deleted profiles", func(t *testing.T) {
		f := newAuthFixture(t)
		id := uuid.New()
		f.profiles.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)
		pair, err := f.jwt.GenerateTokenPair(id, "associate")
		require.NoError(t, err)

		_, _, err = f.service.Authenticate(ctx, pair.AccessToken)
		assert.Equal(t, CodeTokenInvalid, domainCode(t, err))
	})
}

func TestAuthService_SignOut(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.registered(t, "kim@example.com", "secret1", identity.RoleAssociate)
	signedIn, err := f.service.SignIn(ctx, SignInInput{Email: "kim@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, claims, err := f.service.Authenticate(ctx, signedIn.Tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.service.SignOut(ctx, SignOutInput{
		AccessClaims: claims,
		RefreshToken: signedIn.Tokens.RefreshToken,
	}))

	_, _, err = f.service.Authenticate(ctx, signedIn.Tokens.AccessToken)
	assert.Equal(t, CodeTokenRevoked, domainCode(t, err))

	_, err = f.service.Refresh(ctx, RefreshInput{RefreshToken: signedIn.Tokens.RefreshToken})
	assert.Equal(t, CodeTokenRevoked, domainCode(t, err))

	// an invalid refresh token is ignored
	assert.NoError(t, f.service.SignOut(ctx, SignOutInput{RefreshToken: "garbage"}))
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the pair and revokes the consumed token", func(t *testing.T) {
		f := newAuthFixture(t)
		profile := f.registered(t, "kim@example.com", "secret1", identity.RoleAssociate)
		signedIn, err := f.service.SignIn(ctx, SignInInput{Email: "kim@example.com", Password: "secret1"})
		require.NoError(t, err)

		refreshed, err := f.service.Refresh(ctx, RefreshInput{RefreshToken: signedIn.Tokens.RefreshToken})
		require.NoError(t, err)
		assert.Equal(t, profile.ID, refreshed.Profile.ID)
		assert.NotEqual(t, signedIn.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)

		_, err = f.service.Refresh(ctx, RefreshInput{RefreshToken: signedIn.Tokens.RefreshToken})
		assert.Equal(t, CodeTokenRevoked, domainCode(t, err))
	})

	t.Run("concurrent replays yield one pair", func(t *testing.T) {
		f := newAuthFixture(t)
		f.registered(t, "kim@example.com", "secret1", identity.RoleAssociate)
		signedIn, err := f.service.SignIn(ctx, SignInInput{Email: "kim@example.com", Password: "secret1"})
		require.NoError(t, err)

		const callers = 16
		var wg sync.WaitGroup
		results := make([]error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = f.service.Refresh(ctx, RefreshInput{RefreshToken: signedIn.Tokens.RefreshToken})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
				continue
			}
			assert.Equal(t, CodeTokenRevoked, domainCode(t, err))
		}
		assert.Equal(t, 1, succeeded)
	})

	t.Run("stops at the refresh limit", func(t *testing.T) {
		f := newAuthFixture(t)
		f.jwt = testJWTService(0)
		f.service = NewAuthService(f.credentials, f.profiles, f.jwt, f.revocations,
			AuthServiceConfig{BcryptCost: bcrypt.MinCost}, zap.NewNop())
		f.registered(t, "kim@example.com", "secret1", identity.RoleAssociate)
		signedIn, err := f.service.SignIn(ctx, SignInInput{Email: "kim@example.com", Password: "secret1"})
		require.NoError(t, err)

		_, err = f.service.Refresh(ctx, RefreshInput{RefreshToken: signedIn.Tokens.RefreshToken})
		assert.Equal(t, CodeTokenMaxRefresh, domainCode(t, err))
	})

	t.Run("rejects access tokens", func(t *testing.T) {
		f := newAuthFixture(t)
		pair, err := f.jwt.GenerateTokenPair(uuid.New(), "associate")
		require.NoError(t, err)
		_, err = f.service.Refresh(ctx, RefreshInput{RefreshToken: pair.AccessToken})
		assert.Equal(t, CodeTokenInvalid, domainCode(t, err))
	})
}

func TestDefaultAuthServiceConfig(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, DefaultAuthServiceConfig().BcryptCost)
}
