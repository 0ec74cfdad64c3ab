package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/localboost/internal/server/auth"
	"github.com/google/uuid"
)

// Tokens issues and resolves access tokens.
type Tokens interface {
	GenerateToken(userID string) (string, error)
	GetUserIDFromToken(token string) (string, error)
}

// Registration is a validated sign-up request.
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type Service struct {
	repo   Repository
	tokens Tokens
	google auth.GoogleVerifier
	now    func() time.Time
}

// NewService builds the account service. google may be nil, in which case
// every Google sign-in is rejected.
func NewService(repo Repository, tokens Tokens, google auth.GoogleVerifier) *Service {
	return &Service{repo: repo, tokens: tokens, google: google, now: time.Now}
}

// Register creates a password account and returns an access token for it.
func (s *Service) Register(ctx context.Context, reg Registration) (string, error) {
	email := normalizeEmail(reg.Email)

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return "", ErrEmailTaken
	case !errors.Is(err, ErrNotFound):
		return "", err
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Phone:        &reg.Phone,
		PasswordHash: &hash,
		Name:         &reg.Name,
		CreatedAt:    s.now().UTC(),
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}

	return s.tokens.GenerateToken(user.ID)
}

// Login checks email and password. Unknown emails, Google-only accounts and
// wrong passwords all return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if user.PasswordHash == nil || !auth.CheckPassword(*user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(user.ID)
}

// LoginWithGoogle verifies idToken, then signs in the account linked to the
// Google subject or owning the same email. The Google subject is linked to
// an existing account on first use; otherwise a new account is created.
func (s *Service) LoginWithGoogle(ctx context.Context, idToken string) (string, error) {
	if s.google == nil {
		return "", fmt.Errorf("%w: %w", ErrGoogleRejected, auth.ErrGoogleNotConfigured)
	}

	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGoogleRejected, err)
	}
	email := normalizeEmail(identity.Email)

	user, err := s.repo.GetByGoogleIDOrEmail(ctx, identity.Subject, email)
	switch {
	case err == nil:
		if user.GoogleID == nil {
			if err := s.repo.LinkGoogleID(ctx, user.ID, identity.Subject); err != nil {
				return "", err
			}
		}
	case errors.Is(err, ErrNotFound):
		name := identity.Name
		user = &User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      &name,
			GoogleID:  &identity.Subject,
			CreatedAt: s.now().UTC(),
		}
		if _, err := s.repo.Create(ctx, user); err != nil {
			return "", err
		}
	default:
		return "", err
	}

	return s.tokens.GenerateToken(user.ID)
}

// CurrentUser resolves a bearer token to its account.
func (s *Service) CurrentUser(ctx context.Context, token string) (*User, error) {
	userID, err := s.tokens.GetUserIDFromToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
