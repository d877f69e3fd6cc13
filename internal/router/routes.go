package router

import (
	"net/http"

	"github.com/employetica/server/internal/handler"
	"github.com/employetica/server/internal/model"
	"github.com/labstack/echo/v4"
)

func (r *routeSet) registerUserRoutes() {
	users := r.handlers.Users
	base := users.Handler

	r.router.GET("/is-fired-user/:email", handler.Handle(base, users.IsFired, http.StatusOK, &handler.EmailParam{}))
	r.router.GET("/users/:email/role", handler.Handle(base, users.GetRole, http.StatusOK, &handler.EmailParam{}))
	r.router.POST("/users", handler.Handle(base, users.Register, http.StatusOK, &handler.RegisterUserRequest{}))

	hr := r.as(model.RoleHR)
	r.router.GET("/users/employee", handler.Handle(base, users.ListEmployees, http.StatusOK, &handler.NoRequest{}), hr...)
	r.router.GET("/users/:slug", handler.Handle(base, users.GetByEmail, http.StatusOK, &handler.SlugParam{}), hr...)
	r.router.PATCH("/users/verify/:id", handler.Handle(base, users.SetVerified, http.StatusOK, &handler.VerifyUserRequest{}), hr...)

	admin := r.as(model.RoleAdmin)
	r.router.GET("/users-verified", handler.Handle(base, users.ListVerified, http.StatusOK, &handler.NoRequest{}), admin...)
	r.router.PATCH("/users/make-hr/:id", handler.Handle(base, users.MakeHR, http.StatusOK, &handler.IDParam{}), admin...)
	r.router.PATCH("/users/fire/:id", handler.Handle(base, users.Fire, http.StatusOK, &handler.IDParam{}), admin...)
	r.router.PATCH("/users/salary/:id", handler.Handle(base, users.AdjustSalary, http.StatusOK, &handler.SalaryRequest{}), admin...)
}

func (r *routeSet) registerWorksheetRoutes() {
	worksheets := r.handlers.Worksheets
	base := worksheets.Handler

	employee := r.as(model.RoleEmployee)
	r.router.GET("/worksheets", handler.Handle(base, worksheets.List, http.StatusOK, &handler.WorksheetQuery{}), employee...)
	r.router.POST("/worksheets", handler.Handle(base, worksheets.Create, http.StatusOK, &handler.CreateWorksheetRequest{}), employee...)
	r.router.PUT("/task/:id", handler.Handle(base, worksheets.Update, http.StatusOK, &handler.UpdateTaskRequest{}), employee...)
	r.router.DELETE("/task/:id", handler.Handle(base, worksheets.Delete, http.StatusOK, &handler.IDParam{}), employee...)

	r.router.GET("/work-records", handler.Handle(base, worksheets.ListAll, http.StatusOK, &handler.NoRequest{}), r.as(model.RoleHR)...)
}

// registerPaymentRoutes registers the payment endpoints. The Stripe webhook
// exists only when a signing secret is configured.
func (r *routeSet) registerPaymentRoutes(webhookEnabled bool) {
	payments := r.handlers.Payments
	base := payments.Handler

	r.router.GET("/payment-history", handler.Handle(base, payments.History, http.StatusOK, &handler.PaymentHistoryQuery{}), r.as(model.RoleEmployee)...)

	hr := r.as(model.RoleHR)
	r.router.GET("/payments/employee", handler.Handle(base, payments.ListByEmployee, http.StatusOK, &handler.EmployeePaymentsQuery{}), hr...)
	r.router.POST("/payments", handler.Handle(base, payments.Create, http.StatusOK, &handler.CreatePaymentRequest{}), hr...)

	admin := r.as(model.RoleAdmin)
	r.router.GET("/payments", handler.Handle(base, payments.ListAll, http.StatusOK, &handler.NoRequest{}), admin...)
	r.router.GET("/payments/:id", handler.Handle(base, payments.Get, http.StatusOK, &handler.IDParam{}), admin...)
	r.router.PATCH("/payments/:id", handler.Handle(base, payments.Settle, http.StatusOK, &handler.SettlePaymentRequest{}), admin...)
	r.router.POST("/create-payment-intent", handler.Handle(base, payments.CreateIntent, http.StatusOK, &handler.PaymentIntentRequest{}), admin...)

	if webhookEnabled {
		r.router.POST("/webhooks/stripe", payments.StripeWebhook)
	}
}

func (r *routeSet) registerOverviewRoutes() {
	overview := r.handlers.Overview
	base := overview.Handler

	r.router.GET("/overview/employee", handler.Handle(base, overview.Employee, http.StatusOK, &handler.NoRequest{}), r.as(model.RoleEmployee)...)
	r.router.GET("/overview/hr", handler.Handle(base, overview.HR, http.StatusOK, &handler.NoRequest{}), r.as(model.RoleHR)...)
	r.router.GET("/overview/admin", handler.Handle(base, overview.Admin, http.StatusOK, &handler.NoRequest{}), r.as(model.RoleAdmin)...)
}

func (r *routeSet) registerContactRoutes(limiter echo.MiddlewareFunc) {
	contacts := r.handlers.Contacts
	base := contacts.Handler

	r.router.POST("/contact-us", handler.Handle(base, contacts.Submit, http.StatusCreated, &handler.ContactRequest{}), limiter)
	r.router.GET("/contact-messages", handler.Handle(base, contacts.List, http.StatusOK, &handler.NoRequest{}), r.as(model.RoleAdmin)...)
}
