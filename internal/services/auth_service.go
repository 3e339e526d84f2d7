package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"esatalim/internal/caching"
	"esatalim/internal/common"
	"esatalim/internal/models"
	"esatalim/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer = "esatalim-api"

	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

// AuthService handles registration, login and JWT issuance
type AuthService interface {
	Register(ctx context.Context, input *models.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, input *models.LoginInput) (*models.User, string, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}

// TokenClaims are the claims of an access token
type TokenClaims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo  repositories.UserRepository
	cache     caching.CacheService
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepository, cache caching.CacheService, jwtSecret string,
	tokenTTL time.Duration, log *zap.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		cache:     cache,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *authService) Register(ctx context.Context, input *models.RegisterInput) (*models.User, string, error) {
	input.Email = normalizeEmail(input.Email)
	if verr := validateStruct(input); verr.HasErrors() {
		return nil, "", verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if input.Phone != nil {
		user.Phone = optionalString(*input.Phone)
	}
	if input.Location != nil {
		user.Location = models.UserLocation{
			City:     strings.TrimSpace(input.Location.City),
			District: strings.TrimSpace(input.Location.District),
			Address:  strings.TrimSpace(input.Location.Address),
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("User registered", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// Login verifies credentials. Attempts are counted per email; when the
// counter store is unavailable the attempt is let through.
func (s *authService) Login(ctx context.Context, input *models.LoginInput) (*models.User, string, error) {
	input.Email = normalizeEmail(input.Email)
	if verr := validateStruct(input); verr.HasErrors() {
		return nil, "", verr
	}
	email := input.Email
	limitKey := "login:" + email

	limited, err := s.cache.IsRateLimited(ctx, limitKey, loginAttemptLimit, loginAttemptWindow)
	if err != nil {
		s.log.Warn("Login rate limit check failed", zap.Error(err))
	}
	if limited {
		return nil, "", common.RateLimited("Too many login attempts, please try again later")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, "", common.Unauthorized("Invalid credentials")
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", common.Unauthorized("Invalid credentials")
	}

	if err := s.cache.ResetRateLimit(ctx, limitKey); err != nil {
		s.log.Warn("Failed to reset login rate limit", zap.Error(err))
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID.String(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
