package service

import (
	"context"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/lib/identity"
	"github.com/employetica/server/internal/lib/utils"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/repository"
	"github.com/rs/zerolog"
)

// Messages returned by the auth gate. Clients match on them.
const (
	MsgUnauthorized = "unauthorized access"
	MsgForbidden    = "forbidden access"
	MsgFired        = "You have been fired. Access denied."
)

// Caller is the authenticated identity plus its Employetica user, if any.
type Caller struct {
	Identity *identity.Identity
	User     *model.User
}

// Email is the normalized email of the caller.
func (c *Caller) Email() string {
	return utils.NormalizeEmail(c.Identity.Email)
}

type AuthService struct {
	verifier identity.Verifier
	users    repository.IUserRepository
}

func NewAuthService(verifier identity.Verifier, users repository.IUserRepository) *AuthService {
	return &AuthService{
		verifier: verifier,
		users:    users,
	}
}

// Authenticate verifies the Authorization header value and loads the caller.
//
//   - no header or no token: 401
//   - token rejected: 403
//   - user is fired: 403 with a sign-out action
//
// A valid token without a matching user is not an error here; role checks reject it.
// A failed user lookup is answered with 403 like a rejected token.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*Caller, error) {
	token, err := identity.TokenFromHeader(header)
	if err != nil {
		return nil, errs.NewUnauthorizedError(MsgUnauthorized, true)
	}

	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("token verification failed")
		return nil, errs.NewForbiddenError(MsgForbidden, true)
	}

	caller := &Caller{Identity: id}

	user, err := s.users.FindByEmail(ctx, caller.Email())
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("email", caller.Email()).Msg("failed to load caller")
		return nil, errs.NewForbiddenError(MsgForbidden, true)
	}

	if user != nil && user.Fired {
		return nil, errs.NewForbiddenError(MsgFired, true).WithAction(&errs.Action{
			Type:    errs.ActionTypeSignOut,
			Message: MsgFired,
		})
	}

	caller.User = user
	return caller, nil
}

// Authorize checks that the caller holds role.
func (s *AuthService) Authorize(caller *Caller, role model.Role) error {
	if caller == nil || !caller.User.HasRole(role) {
		return errs.NewForbiddenError(MsgForbidden, true)
	}
	return nil
}

