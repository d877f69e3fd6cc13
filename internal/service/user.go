package service

import (
	"context"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/lib/job"
	"github.com/employetica/server/internal/lib/utils"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/repository"
)

const (
	MsgUserNotFound         = "User not found"
	MsgUserAlreadyExists    = "User already exists"
	MsgCannotDecreaseSalary = "Cannot decrease salary"
)

// RegisterResult is either the insert result or an "already exists" message.
type RegisterResult struct {
	*model.InsertResult
	Message string `json:"message,omitempty"`
}

type UserService struct {
	users    repository.IUserRepository
	notifier *notifier
}

func NewUserService(users repository.IUserRepository, n *notifier) *UserService {
	return &UserService{
		users:    users,
		notifier: n,
	}
}

// IsFired reports the fired flag of the user with email; unknown users are not fired.
func (s *UserService) IsFired(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return false, err
	}
	return user != nil && user.Fired, nil
}

func (s *UserService) GetRole(ctx context.Context, email string) (model.Role, error) {
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errs.NewNotFoundError(MsgUserNotFound, true, nil)
	}
	return user.Role, nil
}

// GetByEmail returns the user with email, or nil.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
}

// Register inserts a new user unless the email is taken, then queues a welcome email.
//
// New users always start unverified and not fired.
func (s *UserService) Register(ctx context.Context, user *model.User) (*RegisterResult, error) {
	user.Email = utils.NormalizeEmail(user.Email)

	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &RegisterResult{Message: MsgUserAlreadyExists}, nil
	}

	user.IsVerified = false
	user.Fired = false

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	task, err := job.NewWelcomeEmailTask(user.Email, user.Name, user.Role.String())
	s.notifier.enqueue(ctx, task, err)

	return &RegisterResult{InsertResult: &model.InsertResult{Acknowledged: true, InsertedID: id}}, nil
}

func (s *UserService) ListEmployees(ctx context.Context) ([]model.User, error) {
	return s.users.ListByRole(ctx, model.RoleEmployee)
}

func (s *UserService) ListVerified(ctx context.Context) ([]model.User, error) {
	return s.users.ListVerified(ctx)
}

func (s *UserService) SetVerified(ctx context.Context, id string, verified bool) (*model.UpdateResult, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.users.SetVerified(ctx, oid, verified)
	if err != nil {
		return nil, err
	}
	return model.NewUpdateResult(res), nil
}

func (s *UserService) MakeHR(ctx context.Context, id string) (*model.UpdateResult, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.users.SetRole(ctx, oid, model.RoleHR)
	if err != nil {
		return nil, err
	}
	return model.NewUpdateResult(res), nil
}

func (s *UserService) Fire(ctx context.Context, id string) (*model.UpdateResult, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.users.SetFired(ctx, oid)
	if err != nil {
		return nil, err
	}
	return model.NewUpdateResult(res), nil
}

// AdjustSalary raises the salary of a user. Salaries never go down or stay equal.
func (s *UserService) AdjustSalary(ctx context.Context, id string, newSalary float64) (*model.UpdateResult, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFoundError(MsgUserNotFound, true, nil)
	}

	if newSalary <= user.Salary {
		return nil, errs.NewBadRequestError(MsgCannotDecreaseSalary, true, nil, nil, nil)
	}

	res, err := s.users.SetSalary(ctx, oid, newSalary)
	if err != nil {
		return nil, err
	}
	return model.NewUpdateResult(res), nil
}
