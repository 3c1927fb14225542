package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/infrastructure/auth"
	"github.com/shelflog/backend/internal/infrastructure/logger"
	"github.com/shelflog/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	JWTClaimsKey  = "jwt_claims"
	ProfileKey    = "profile"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator resolves a bearer token into the stored profile
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*identity.Profile, *auth.Claims, error)
}

// JWTAuth rejects requests without a valid, unrevoked access token. On
// success the resolved profile and the claims are stored on the gin context
// and the profile is attached to the request logger.
func JWTAuth(authenticator Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, log, dto.ErrCodeUnauthorized, "Missing or malformed authorization header", nil)
			return
		}

		profile, claims, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			code, message := dto.ErrCodeUnauthorized, "Authentication required"
			var de *shared.DomainError
			if errors.As(err, &de) {
				code, message = dto.NormalizeErrorCode(de.Code), de.Message
			}
			if dto.GetHTTPStatus(code) != http.StatusUnauthorized {
				// Store failures are not the caller's fault
				c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
					dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
				return
			}
			abortUnauthorized(c, log, code, message, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(ProfileKey, profile)

		ctx := logger.WithProfile(c.Request.Context(), profile.ID.String(), string(profile.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireManager rejects profiles without the manager role. It must run after JWTAuth.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := GetProfile(c)
		if profile == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}
		if !profile.IsManager() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Manager role required", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, code, message string, err error) {
	if log != nil {
		logger.Enrich(c.Request.Context(), log).Warn("Authentication failed",
			zap.String("code", code),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetProfile retrieves the authenticated profile from gin.Context
func GetProfile(c *gin.Context) *identity.Profile {
	if v, exists := c.Get(ProfileKey); exists {
		if p, ok := v.(*identity.Profile); ok {
			return p
		}
	}
	return nil
}
