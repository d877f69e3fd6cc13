package handler

import (
	"github.com/employetica/server/internal/middleware"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
	"github.com/labstack/echo/v4"
)

// OverviewHandler serves the per-role dashboard summaries.
type OverviewHandler struct {
	Handler
	overview *service.OverviewService
}

func NewOverviewHandler(s *server.Server, overview *service.OverviewService) *OverviewHandler {
	return &OverviewHandler{
		Handler:  NewHandler(s),
		overview: overview,
	}
}

// Employee summarizes the caller's own records.
func (h *OverviewHandler) Employee(c echo.Context, _ *NoRequest) (*model.EmployeeOverview, error) {
	return h.overview.Employee(c.Request().Context(), middleware.GetUserEmail(c))
}

func (h *OverviewHandler) HR(c echo.Context, _ *NoRequest) (*model.HROverview, error) {
	return h.overview.HR(c.Request().Context())
}

func (h *OverviewHandler) Admin(c echo.Context, _ *NoRequest) (*model.AdminOverview, error) {
	return h.overview.Admin(c.Request().Context())
}
