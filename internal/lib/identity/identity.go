// Package identity verifies bearer tokens issued by the external identity provider.
//
// The provider only proves who the caller is (uid + email); roles and the
// fired flag live in the Employetica user collection and are resolved by the
// auth middleware afterwards.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/employetica/server/internal/config"
)

var (
	// ErrMissingToken means no bearer token was presented.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken means the provider rejected the token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNoEmail means the token is valid but carries no email address.
	ErrNoEmail = errors.New("token has no email")
)

// Identity is the verified caller.
type Identity struct {
	UID      string
	Email    string
	Provider string
}

// Verifier verifies a raw bearer token.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// New builds the verifier selected by auth.provider.
func New(ctx context.Context, cfg *config.AuthConfig) (Verifier, error) {
	switch cfg.Provider {
	case config.AuthProviderFirebase, "":
		return NewFirebaseVerifier(ctx, cfg)
	case config.AuthProviderClerk:
		return NewClerkVerifier(cfg), nil
	default:
		return nil, fmt.Errorf("unknown auth provider: %s", cfg.Provider)
	}
}

// TokenFromHeader extracts the token from an Authorization header value.
//
// The scheme is not checked: the token is the second space separated part.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) < 2 {
		return "", ErrMissingToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}
