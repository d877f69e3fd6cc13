package handler

import (
	"time"

	"github.com/employetica/server/internal/middleware"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
	"github.com/employetica/server/internal/validation"
	"github.com/labstack/echo/v4"
)

type WorksheetHandler struct {
	Handler
	worksheets *service.WorksheetService
}

func NewWorksheetHandler(s *server.Server, worksheets *service.WorksheetService) *WorksheetHandler {
	return &WorksheetHandler{
		Handler:    NewHandler(s),
		worksheets: worksheets,
	}
}

// WorksheetQuery leaves email unchecked so the service can answer with its own message.
type WorksheetQuery struct {
	Email string `query:"email"`
}

func (r *WorksheetQuery) Validate() error {
	return nil
}

type CreateWorksheetRequest struct {
	Name  string    `json:"name" validate:"max=120"`
	Task  string    `json:"task" validate:"required,max=200"`
	Hours float64   `json:"hours" validate:"gt=0,lte=24"`
	Date  time.Time `json:"date" validate:"required"`
}

func (r *CreateWorksheetRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateTaskRequest carries optional fields; absent fields stay unchanged.
type UpdateTaskRequest struct {
	ID    string     `param:"id" json:"-" validate:"required,objectid"`
	Task  *string    `json:"task" validate:"omitempty,min=1,max=200"`
	Hours *float64   `json:"hours" validate:"omitempty,gt=0,lte=24"`
	Date  *time.Time `json:"date"`
}

func (r *UpdateTaskRequest) Validate() error {
	return validation.Struct(r)
}

func (h *WorksheetHandler) List(c echo.Context, req *WorksheetQuery) ([]model.Worksheet, error) {
	return h.worksheets.ListForEmployee(c.Request().Context(), middleware.GetUserEmail(c), req.Email)
}

func (h *WorksheetHandler) Create(c echo.Context, req *CreateWorksheetRequest) (*model.InsertResult, error) {
	return h.worksheets.Create(c.Request().Context(), middleware.GetUserEmail(c), &model.Worksheet{
		Name:  req.Name,
		Task:  req.Task,
		Hours: req.Hours,
		Date:  req.Date,
	})
}

func (h *WorksheetHandler) Update(c echo.Context, req *UpdateTaskRequest) (*model.MessageResponse, error) {
	return h.worksheets.Update(c.Request().Context(), middleware.GetUserEmail(c), req.ID, model.WorksheetUpdate{
		Task:  req.Task,
		Hours: req.Hours,
		Date:  req.Date,
	})
}

func (h *WorksheetHandler) Delete(c echo.Context, req *IDParam) (*model.MessageResponse, error) {
	return h.worksheets.Delete(c.Request().Context(), middleware.GetUserEmail(c), req.ID)
}

// ListAll returns every worksheet for HR review.
func (h *WorksheetHandler) ListAll(c echo.Context, _ *NoRequest) ([]model.Worksheet, error) {
	return h.worksheets.ListAll(c.Request().Context())
}
