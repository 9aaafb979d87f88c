package services

import (
	"context"
	"time"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade handles issuing and validating access and refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a JWT access token for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a new opaque refresh token and its expiry.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken checks a presented refresh token against
	// the user's stored hash and returns the user when valid.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// GoogleOAuthSvcFacade wraps the Google OAuth code-exchange flow.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken exchanges an authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken validates a Google ID token and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
