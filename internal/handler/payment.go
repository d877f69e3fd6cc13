package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/middleware"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
	"github.com/employetica/server/internal/validation"
	"github.com/labstack/echo/v4"
)

// maxWebhookBodyBytes caps the Stripe event payload read into memory.
const maxWebhookBodyBytes = 65536

type PaymentHandler struct {
	Handler
	payments *service.PaymentService
}

func NewPaymentHandler(s *server.Server, payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		Handler:  NewHandler(s),
		payments: payments,
	}
}

// PaymentHistoryQuery pages through the caller's paid payments.
// Zero page or limit fall back to the service defaults; larger limits are capped by the service.
type PaymentHistoryQuery struct {
	Email string `query:"email"`
	Page  int64  `query:"page" validate:"gte=0"`
	Limit int64  `query:"limit" validate:"gte=0"`
}

func (r *PaymentHistoryQuery) Validate() error {
	return validation.Struct(r)
}

type EmployeePaymentsQuery struct {
	Email string `query:"email" validate:"required"`
}

func (r *EmployeePaymentsQuery) Validate() error {
	return validation.Struct(r)
}

type CreatePaymentRequest struct {
	EmployeeID    string  `json:"employeeId" validate:"required"`
	EmployeeName  string  `json:"employeeName" validate:"required"`
	EmployeeEmail string  `json:"employeeEmail" validate:"required,email"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	Month         string  `json:"month" validate:"required"`
	Year          int     `json:"year" validate:"gte=2000,lte=2100"`
}

func (r *CreatePaymentRequest) Validate() error {
	return validation.Struct(r)
}

// PaymentIntentRequest takes either an amount in the smallest currency unit
// or the id of a stored payment request to charge.
type PaymentIntentRequest struct {
	Amount    int64  `json:"amount" validate:"gte=0"`
	PaymentID string `json:"paymentId" validate:"omitempty,objectid"`
}

func (r *PaymentIntentRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Amount == 0 && r.PaymentID == "" {
		return validation.CustomValidationErrors{
			{Field: "amount", Message: "is required unless paymentId is given"},
		}
	}
	return nil
}

type SettlePaymentRequest struct {
	ID            string     `param:"id" json:"-" validate:"required,objectid"`
	TransactionID string     `json:"transactionId" validate:"max=255"`
	PaymentDate   *time.Time `json:"paymentDate"`
	Status        string     `json:"status" validate:"omitempty,oneof=pending paid"`
	ApprovedBy    string     `json:"approvedBy" validate:"max=120"`
}

func (r *SettlePaymentRequest) Validate() error {
	return validation.Struct(r)
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

func (h *PaymentHandler) History(c echo.Context, req *PaymentHistoryQuery) (*model.PaymentHistory, error) {
	return h.payments.History(c.Request().Context(), middleware.GetUserEmail(c), req.Email, req.Page, req.Limit)
}

func (h *PaymentHandler) ListByEmployee(c echo.Context, req *EmployeePaymentsQuery) ([]model.Payment, error) {
	return h.payments.ListByEmail(c.Request().Context(), req.Email)
}

func (h *PaymentHandler) Create(c echo.Context, req *CreatePaymentRequest) (*service.CreatePaymentResponse, error) {
	return h.payments.Request(c.Request().Context(), &model.Payment{
		EmployeeID:    req.EmployeeID,
		EmployeeName:  req.EmployeeName,
		EmployeeEmail: req.EmployeeEmail,
		Amount:        req.Amount,
		Month:         req.Month,
		Year:          req.Year,
	})
}

func (h *PaymentHandler) ListAll(c echo.Context, _ *NoRequest) ([]model.Payment, error) {
	return h.payments.ListAll(c.Request().Context())
}

func (h *PaymentHandler) Get(c echo.Context, req *IDParam) (*model.Payment, error) {
	return h.payments.Get(c.Request().Context(), req.ID)
}

func (h *PaymentHandler) CreateIntent(c echo.Context, req *PaymentIntentRequest) (*service.PaymentIntentResponse, error) {
	return h.payments.CreateIntent(c.Request().Context(), req.Amount, req.PaymentID)
}

func (h *PaymentHandler) Settle(c echo.Context, req *SettlePaymentRequest) (*service.SettlePaymentResponse, error) {
	return h.payments.Settle(c.Request().Context(), req.ID, service.SettleInput{
		TransactionID: req.TransactionID,
		PaymentDate:   req.PaymentDate,
		Status:        model.PaymentStatus(req.Status),
		ApprovedBy:    req.ApprovedBy,
	})
}

// StripeWebhook receives Stripe events. The signature covers the raw body,
// so this route bypasses the binding pipeline.
func (h *PaymentHandler) StripeWebhook(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "stripe_webhook").
		Logger()

	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBodyBytes+1))
	if err != nil {
		return errs.NewBadRequestError("Unable to read request body", true, nil, nil, nil)
	}
	if len(payload) > maxWebhookBodyBytes {
		return errs.NewBadRequestError("Request body too large", true, nil, nil, nil)
	}

	if err := h.payments.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get("Stripe-Signature")); err != nil {
		logger.Warn().Err(err).Msg("stripe webhook rejected")
		return err
	}

	logger.Info().Int("payload_bytes", len(payload)).Msg("stripe webhook processed")

	return c.JSON(http.StatusOK, WebhookResponse{Received: true})
}
