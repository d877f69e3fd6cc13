package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/employetica/server/internal/config"
)

// ClerkVerifier verifies Clerk session tokens and resolves the primary email
// through the Clerk users API.
type ClerkVerifier struct{}

// NewClerkVerifier sets the Clerk secret key used by the SDK.
func NewClerkVerifier(cfg *config.AuthConfig) *ClerkVerifier {
	clerk.SetKey(cfg.ClerkSecretKey)
	return &ClerkVerifier{}
}

// Verify decodes the token to find its key id, fetches the matching JSON web
// key and verifies the session claims.
func (v *ClerkVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	unsafeClaims, err := jwt.Decode(ctx, &jwt.DecodeParams{Token: token})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	jwk, err := jwt.GetJSONWebKey(ctx, &jwt.GetJSONWebKeyParams{KeyID: unsafeClaims.KeyID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{Token: token, JWK: jwk})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	usr, err := user.Get(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clerk user: %w", err)
	}

	email := primaryEmail(usr)
	if email == "" {
		return nil, ErrNoEmail
	}

	return &Identity{
		UID:      claims.Subject,
		Email:    strings.ToLower(email),
		Provider: config.AuthProviderClerk,
	}, nil
}

func primaryEmail(usr *clerk.User) string {
	if usr == nil {
		return ""
	}
	for _, address := range usr.EmailAddresses {
		if address == nil {
			continue
		}
		if usr.PrimaryEmailAddressID != nil && address.ID == *usr.PrimaryEmailAddressID {
			return address.EmailAddress
		}
	}
	if len(usr.EmailAddresses) > 0 && usr.EmailAddresses[0] != nil {
		return usr.EmailAddresses[0].EmailAddress
	}
	return ""
}
