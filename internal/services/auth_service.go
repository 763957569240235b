package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/niley1nov/LMS/internal/config"
	"github.com/niley1nov/LMS/internal/models"
	"github.com/niley1nov/LMS/internal/store"
	"gorm.io/gorm"
)

// AuthService turns verified Google identities into local users and issues
// the signed session tokens carried in the access_token cookie.
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	users    *store.Store[models.User]
	verifier IdentityVerifier
}

func NewAuthService(db *gorm.DB, cfg *config.Config, verifier IdentityVerifier) *AuthService {
	return &AuthService{
		db:       db,
		cfg:      cfg,
		users:    store.New[models.User](db),
		verifier: verifier,
	}
}

// AuthenticateGoogle verifies the identity token, upserts the local user and
// issues a session token for them.
func (s *AuthService) AuthenticateGoogle(ctx context.Context, identityToken string) (*models.User, string, error) {
	claims, err := s.verifier.Verify(ctx, identityToken)
	if err != nil {
		slog.Error("google token verification failed", "error", err)
		return nil, "", err
	}

	if claims.Sub == "" || claims.Email == "" {
		return nil, "", ErrIdentityIncomplete
	}

	user, err := s.UpsertFromIdentity(ctx, claims.Sub, claims.Email, claims.Name)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueSessionToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// UpsertFromIdentity looks up a user by the external subject id, creating the
// row on first sight and updating email/name in place only when they differ.
// Repeated calls with identical claims perform no additional writes.
func (s *AuthService) UpsertFromIdentity(ctx context.Context, sub, email, name string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("google_sub = ?", sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			GoogleSub: sub,
			Email:     email,
			Name:      name,
		}
		if err := s.users.Create(ctx, &user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	updates := map[string]any{}
	if user.Email != email {
		updates["email"] = email
	}
	if name != "" && user.Name != name {
		updates["name"] = name
	}
	if len(updates) == 0 {
		return &user, nil
	}

	updated, err := s.users.Update(ctx, &user, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// IssueSessionToken produces a signed, time-limited token with the user id as
// subject. Expiry comes from configuration (default 7 days).
func (s *AuthService) IssueSessionToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
