// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Users      *UserHandler
	Worksheets *WorksheetHandler
	Payments   *PaymentHandler
	Contacts   *ContactHandler
	Overview   *OverviewHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Users:      NewUserHandler(s, services.Users),
		Worksheets: NewWorksheetHandler(s, services.Worksheets),
		Payments:   NewPaymentHandler(s, services.Payments),
		Contacts:   NewContactHandler(s, services.Contacts),
		Overview:   NewOverviewHandler(s, services.Overview),
	}
}
