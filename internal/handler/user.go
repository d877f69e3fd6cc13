package handler

import (
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
	"github.com/employetica/server/internal/validation"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

type FiredResponse struct {
	Fired bool `json:"fired"`
}

type RoleResponse struct {
	Role model.Role `json:"role"`
}

// RegisterUserRequest is the self-registration payload. Admins are never
// created through this endpoint.
type RegisterUserRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	Email         string  `json:"email" validate:"required,email"`
	Role          string  `json:"role" validate:"required,oneof=Employee HR"`
	Salary        float64 `json:"salary" validate:"gte=0"`
	BankAccountNo string  `json:"bank_account_no" validate:"max=64"`
	Designation   string  `json:"designation" validate:"max=120"`
	Photo         string  `json:"photo" validate:"omitempty,url"`
}

func (r *RegisterUserRequest) Validate() error {
	return validation.Struct(r)
}

func (r *RegisterUserRequest) toModel() *model.User {
	return &model.User{
		Name:          r.Name,
		Email:         r.Email,
		Role:          model.Role(r.Role),
		Salary:        r.Salary,
		BankAccountNo: r.BankAccountNo,
		Designation:   r.Designation,
		Photo:         r.Photo,
	}
}

type VerifyUserRequest struct {
	ID         string `param:"id" json:"-" validate:"required,objectid"`
	IsVerified *bool  `json:"isVerified" validate:"required"`
}

func (r *VerifyUserRequest) Validate() error {
	return validation.Struct(r)
}

type SalaryRequest struct {
	ID        string  `param:"id" json:"-" validate:"required,objectid"`
	NewSalary float64 `json:"newSalary" validate:"gt=0"`
}

func (r *SalaryRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) IsFired(c echo.Context, req *EmailParam) (*FiredResponse, error) {
	fired, err := h.users.IsFired(c.Request().Context(), req.Email)
	if err != nil {
		return nil, err
	}
	return &FiredResponse{Fired: fired}, nil
}

func (h *UserHandler) GetRole(c echo.Context, req *EmailParam) (*RoleResponse, error) {
	role, err := h.users.GetRole(c.Request().Context(), req.Email)
	if err != nil {
		return nil, err
	}
	return &RoleResponse{Role: role}, nil
}

func (h *UserHandler) Register(c echo.Context, req *RegisterUserRequest) (*service.RegisterResult, error) {
	return h.users.Register(c.Request().Context(), req.toModel())
}

func (h *UserHandler) ListEmployees(c echo.Context, _ *NoRequest) ([]model.User, error) {
	return h.users.ListEmployees(c.Request().Context())
}

// GetByEmail responds with null when no user matches.
func (h *UserHandler) GetByEmail(c echo.Context, req *SlugParam) (*model.User, error) {
	return h.users.GetByEmail(c.Request().Context(), req.Slug)
}

func (h *UserHandler) SetVerified(c echo.Context, req *VerifyUserRequest) (*model.UpdateResult, error) {
	return h.users.SetVerified(c.Request().Context(), req.ID, *req.IsVerified)
}

func (h *UserHandler) ListVerified(c echo.Context, _ *NoRequest) ([]model.User, error) {
	return h.users.ListVerified(c.Request().Context())
}

func (h *UserHandler) MakeHR(c echo.Context, req *IDParam) (*model.UpdateResult, error) {
	return h.users.MakeHR(c.Request().Context(), req.ID)
}

func (h *UserHandler) Fire(c echo.Context, req *IDParam) (*model.UpdateResult, error) {
	return h.users.Fire(c.Request().Context(), req.ID)
}

func (h *UserHandler) AdjustSalary(c echo.Context, req *SalaryRequest) (*model.UpdateResult, error) {
	return h.users.AdjustSalary(c.Request().Context(), req.ID, req.NewSalary)
}
