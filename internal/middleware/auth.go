package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tradeyard/internal/caching"
	"tradeyard/internal/common"
	"tradeyard/internal/models"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie used by the session-based auth variant.
const SessionCookieName = "tradeyard_session"

// Identity is the authenticated caller.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// TokenVerifier turns a bearer credential into an identity. Implementations
// cover local HMAC tokens, an external JWKS issuer and redis-backed sessions.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// HMACVerifier verifies HS256 tokens issued by the auth service.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", common.ErrUnauthorized)
	}
	return identityFromClaims(parsed.Claims)
}

// JWKSVerifier verifies RS256 tokens against a remote JWKS endpoint, for
// deployments that delegate login to an external identity provider.
type JWKSVerifier struct {
	jwks *keyfunc.JWKS
}

func NewJWKSVerifier(jwksURL string) (*JWKSVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks from %s: %w", jwksURL, err)
	}
	return &JWKSVerifier{jwks: jwks}, nil
}

func (v *JWKSVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	parsed, err := jwt.Parse(token, v.jwks.Keyfunc)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", common.ErrUnauthorized)
	}
	return identityFromClaims(parsed.Claims)
}

// SessionVerifier resolves opaque session IDs stored in redis.
type SessionVerifier struct {
	cache caching.CacheService
}

func NewSessionVerifier(cache caching.CacheService) *SessionVerifier {
	return &SessionVerifier{cache: cache}
}

func (v *SessionVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	userID, role, err := v.cache.GetSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: session expired", common.ErrUnauthorized)
	}
	return &Identity{UserID: userID, Role: role}, nil
}

func identityFromClaims(claims jwt.Claims) (*Identity, error) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: malformed claims", common.ErrUnauthorized)
	}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: token has no subject", common.ErrUnauthorized)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: token subject is not a user id", common.ErrUnauthorized)
	}

	role, _ := mapClaims["role"].(string)
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: token has no valid role", common.ErrUnauthorized)
	}
	return &Identity{UserID: userID, Role: role}, nil
}

// Authenticate extracts the bearer token (or session cookie) from the request,
// verifies it and injects the caller's identity into the request context.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				if cookie, err := c.Cookie(SessionCookieName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			identity, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return common.HTTPError(err)
			}

			ctx := common.WithIdentity(c.Request().Context(), identity.UserID, identity.Role)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
