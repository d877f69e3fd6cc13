package handler

import (
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
	"github.com/employetica/server/internal/validation"
	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	Handler
	contacts *service.ContactService
}

func NewContactHandler(s *server.Server, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:  NewHandler(s),
		contacts: contacts,
	}
}

// ContactRequest only bounds sizes; presence is reported by the service
// as a single "All fields are required" error.
type ContactRequest struct {
	Name    string `json:"name" validate:"max=120"`
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	Message string `json:"message" validate:"max=5000"`
}

func (r *ContactRequest) Validate() error {
	return validation.Struct(r)
}

func (h *ContactHandler) Submit(c echo.Context, req *ContactRequest) (*service.ContactResponse, error) {
	return h.contacts.Submit(c.Request().Context(), &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
}

func (h *ContactHandler) List(c echo.Context, _ *NoRequest) ([]model.ContactMessage, error) {
	return h.contacts.List(c.Request().Context())
}
