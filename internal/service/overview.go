package service

import (
	"context"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/repository"
)

const MsgHROverview = "HR overview data"

type OverviewService struct {
	users      repository.IUserRepository
	worksheets repository.IWorksheetRepository
	payments   repository.IPaymentRepository
}

func NewOverviewService(users repository.IUserRepository, worksheets repository.IWorksheetRepository, payments repository.IPaymentRepository) *OverviewService {
	return &OverviewService{
		users:      users,
		worksheets: worksheets,
		payments:   payments,
	}
}

// Employee summarizes the dashboard of the employee with email.
func (s *OverviewService) Employee(ctx context.Context, email string) (*model.EmployeeOverview, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewNotFoundError(MsgUserNotFound, true, nil)
	}

	tasks, err := s.worksheets.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	paid, err := s.payments.CountPaidByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	overview := &model.EmployeeOverview{
		Name:         user.Name,
		Role:         user.Role,
		TotalTasks:   tasks,
		Salary:       user.Salary,
		PaidPayments: paid,
		IsVerified:   user.IsVerified,
	}

	if paid > 0 {
		latest, err := s.payments.LatestPaidByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			overview.LastPaymentDate = latest.PaymentDate
		}
	}

	return overview, nil
}

func (s *OverviewService) HR(ctx context.Context) (*model.HROverview, error) {
	employees, err := s.users.CountByRole(ctx, model.RoleEmployee)
	if err != nil {
		return nil, err
	}

	verified, err := s.users.CountVerifiedByRole(ctx, model.RoleEmployee)
	if err != nil {
		return nil, err
	}

	pending, err := s.payments.CountByStatus(ctx, model.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	return &model.HROverview{
		TotalEmployees:    employees,
		VerifiedEmployees: verified,
		PendingPayments:   pending,
		Message:           MsgHROverview,
	}, nil
}

func (s *OverviewService) Admin(ctx context.Context) (*model.AdminOverview, error) {
	var (
		out model.AdminOverview
		err error
	)

	if out.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if out.TotalEmployees, err = s.users.CountByRole(ctx, model.RoleEmployee); err != nil {
		return nil, err
	}
	if out.TotalHRs, err = s.users.CountByRole(ctx, model.RoleHR); err != nil {
		return nil, err
	}
	if out.TotalPayments, err = s.payments.Count(ctx); err != nil {
		return nil, err
	}
	if out.TotalSalaryBudget, err = s.users.SumSalaryByRole(ctx, model.RoleEmployee); err != nil {
		return nil, err
	}

	return &out, nil
}
