package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"tradeyard/internal/caching"
	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour

	tokenIssuer = "tradeyard"
)

// SessionTTL bounds the lifetime of cookie-based sessions.
const SessionTTL = 24 * time.Hour

type AuthService interface {
	Signup(ctx context.Context, user *models.User, password string) (*models.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	// Refresh rotates the refresh token: the presented token is revoked and a
	// fresh pair is issued.
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	// StartSession authenticates the same credentials as Login but issues an
	// opaque redis-backed session ID for the cookie auth variant.
	StartSession(ctx context.Context, email, password string) (string, *models.User, error)
	EndSession(ctx context.Context, sessionID string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error

	// Admin operations.
	ListUsers(ctx context.Context, role string, limit, offset int) ([]*models.User, error)
	SetUserVerified(ctx context.Context, userID uuid.UUID, verified bool) error
}

type authService struct {
	userRepo  repositories.UserRepository
	cache     caching.CacheService
	jwtSecret []byte
}

func NewAuthService(userRepo repositories.UserRepository, cache caching.CacheService, jwtSecret string) AuthService {
	return &authService{
		userRepo:  userRepo,
		cache:     cache,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *authService) Signup(ctx context.Context, user *models.User, password string) (*models.TokenResponse, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := common.ValidateRequiredString(user.Email, "email"); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if !strings.Contains(user.Email, "@") {
		return nil, common.Invalidf("email has invalid format")
	}
	if len(password) < 8 {
		return nil, common.Invalidf("password must be at least 8 characters")
	}
	if !models.ValidRole(user.Role) || user.Role == models.RoleAdmin {
		return nil, common.Invalidf("role must be corporate, dealer or agency")
	}
	if err := common.ValidateRequiredString(user.CompanyName, "company name"); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateRequiredString(user.ContactName, "contact name"); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateGSTIN(common.SafeString(user.GSTIN)); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", common.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.ID = uuid.New()
	user.PasswordHash = string(hash)
	user.Status = "active"
	user.Verified = false

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) StartSession(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	sessionID := random.String(48)
	if err := s.cache.SetSession(ctx, sessionID, user.ID, user.Role, SessionTTL); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	return sessionID, user, nil
}

func (s *authService) EndSession(ctx context.Context, sessionID string) error {
	return s.cache.DeleteSession(ctx, sessionID)
}

func (s *authService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
	}
	if user.Status != "active" {
		return nil, fmt.Errorf("%w: account is %s", common.ErrForbidden, user.Status)
	}
	return user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	key := refreshKey(refreshToken)
	val, err := s.cache.GetString(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if val == "" {
		return nil, fmt.Errorf("%w: refresh token is invalid or expired", common.ErrUnauthorized)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token is invalid", common.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account no longer exists", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user.Status != "active" {
		return nil, fmt.Errorf("%w: account is %s", common.ErrForbidden, user.Status)
	}

	// One-time use: revoke before reissuing.
	if err := s.cache.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.cache.Delete(ctx, refreshKey(refreshToken))
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", common.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, user *models.User) error {
	if err := common.ValidateRequiredString(user.CompanyName, "company name"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateRequiredString(user.ContactName, "contact name"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateGSTIN(common.SafeString(user.GSTIN)); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	return s.userRepo.Update(ctx, user)
}

func (s *authService) ListUsers(ctx context.Context, role string, limit, offset int) ([]*models.User, error) {
	if role != "" && !models.ValidRole(role) {
		return nil, common.Invalidf("unknown role %s", role)
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.userRepo.List(ctx, role, limit, offset)
}

func (s *authService) SetUserVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: user", common.ErrNotFound)
		}
		return fmt.Errorf("load user: %w", err)
	}
	return s.userRepo.SetVerified(ctx, userID, verified)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iss":  tokenIssuer,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := random.String(48)
	if err := s.cache.SetString(ctx, refreshKey(refreshToken), user.ID.String(), refreshTokenTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(accessTokenTTL.Seconds()),
		RefreshToken: refreshToken,
		UserID:       user.ID.String(),
		Role:         user.Role,
		IssuedAt:     now,
	}, nil
}

// refreshKey stores only a digest of the refresh token so a cache dump cannot
// be replayed directly.
func refreshKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "tradeyard:refresh:" + hex.EncodeToString(sum[:])
}
