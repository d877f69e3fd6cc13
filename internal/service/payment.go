package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/lib/billing"
	"github.com/employetica/server/internal/lib/job"
	"github.com/employetica/server/internal/lib/utils"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v75"
)

const (
	MsgEmailIsRequired    = "Email is required"
	MsgPaymentExists      = "Payment request for this month already exists"
	MsgPaymentCreated     = "Payment request created"
	MsgPaymentNotFound    = "Payment not found"
	MsgInvalidAmount      = "Amount must be a positive number"
	MsgPaymentProviderErr = "Payment provider request failed"
	MsgInvalidSignature   = "Invalid webhook signature"
)

// Payment history paging.
const (
	DefaultHistoryPage  = 1
	DefaultHistoryLimit = 5
	MaxHistoryLimit     = 100
)

// PaymentMetadataKey links a PaymentIntent back to its payment request.
const PaymentMetadataKey = "paymentId"

const eventPaymentIntentSucceeded = "payment_intent.succeeded"

type CreatePaymentResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Result  *model.InsertResult `json:"result"`
}

type SettlePaymentResponse struct {
	Success bool                `json:"success"`
	Result  *model.UpdateResult `json:"result"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// SettleInput carries the optional settlement fields; blanks get defaults.
type SettleInput struct {
	TransactionID string
	PaymentDate   *time.Time
	Status        model.PaymentStatus
	ApprovedBy    string
}

type PaymentService struct {
	payments repository.IPaymentRepository
	gateway  PaymentGateway
	notifier *notifier
	now      func() time.Time
}

func NewPaymentService(payments repository.IPaymentRepository, gateway PaymentGateway, n *notifier) *PaymentService {
	return &PaymentService{
		payments: payments,
		gateway:  gateway,
		notifier: n,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// History returns one page of the caller's paid payments, latest payment first.
func (s *PaymentService) History(ctx context.Context, caller, email string, page, limit int64) (*model.PaymentHistory, error) {
	if email == "" {
		return nil, errs.NewBadRequestError(MsgEmailIsRequired, true, nil, nil, nil)
	}
	if err := ensureOwner(caller, email); err != nil {
		return nil, err
	}

	if page < 1 {
		page = DefaultHistoryPage
	}
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	email = utils.NormalizeEmail(email)

	payments, err := s.payments.ListPaidByEmail(ctx, email, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.payments.CountPaidByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return &model.PaymentHistory{Payments: payments, TotalCount: total}, nil
}

func (s *PaymentService) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	return s.payments.ListByEmail(ctx, utils.NormalizeEmail(email))
}

func (s *PaymentService) ListAll(ctx context.Context) ([]model.Payment, error) {
	return s.payments.ListAll(ctx)
}

func (s *PaymentService) Get(ctx context.Context, id string) (*model.Payment, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errs.NewNotFoundError(MsgPaymentNotFound, true, nil)
	}
	return payment, nil
}

// Request creates a pending payment request. There is at most one request
// per employee per month; the unique index covers concurrent requests.
func (s *PaymentService) Request(ctx context.Context, p *model.Payment) (*CreatePaymentResponse, error) {
	exists, err := s.payments.ExistsForPeriod(ctx, p.EmployeeID, p.Month, p.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewBadRequestError(MsgPaymentExists, true, nil, nil, nil)
	}

	p.EmployeeEmail = utils.NormalizeEmail(p.EmployeeEmail)
	p.Status = model.PaymentStatusPending
	p.Timestamp = s.now()
	p.ApprovedBy = nil
	p.PaymentDate = nil

	id, err := s.payments.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	return &CreatePaymentResponse{
		Success: true,
		Message: MsgPaymentCreated,
		Result:  &model.InsertResult{Acknowledged: true, InsertedID: id},
	}, nil
}

// CreateIntent creates a PaymentIntent for amount (smallest currency unit).
//
// With a paymentID the amount comes from the stored request instead, and the
// request id is attached as metadata and reused as idempotency key.
func (s *PaymentService) CreateIntent(ctx context.Context, amount int64, paymentID string) (*PaymentIntentResponse, error) {
	req := billing.IntentRequest{Amount: amount, Currency: s.gateway.Currency()}

	if paymentID != "" {
		payment, err := s.Get(ctx, paymentID)
		if err != nil {
			return nil, err
		}

		cents, err := billing.ToMinorUnits(payment.Amount)
		if err != nil {
			return nil, errs.NewBadRequestError(MsgInvalidAmount, true, nil, nil, nil)
		}

		id := payment.ID.Hex()
		req.Amount = cents
		req.Metadata = map[string]string{PaymentMetadataKey: id}
		req.IdempotencyKey = "payment-" + id + "-" + strconv.FormatInt(cents, 10)
	}

	if req.Amount <= 0 {
		return nil, errs.NewBadRequestError(MsgInvalidAmount, true, nil, nil, nil)
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("amount", req.Amount).Msg("payment intent creation failed")
		return nil, errs.NewBadGatewayError(MsgPaymentProviderErr)
	}

	return &PaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

// Settle records the outcome of a payment. Missing fields default to
// now, "paid" and the automatic approver. The receipt email is queued only
// when the payment moves into "paid", so repeated settlements send one email.
func (s *PaymentService) Settle(ctx context.Context, id string, in SettleInput) (*SettlePaymentResponse, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	settlement := model.PaymentSettlement{
		TransactionID: in.TransactionID,
		PaymentDate:   s.now(),
		Status:        model.PaymentStatusPaid,
		ApprovedBy:    model.DefaultApprover,
	}
	if in.PaymentDate != nil && !in.PaymentDate.IsZero() {
		settlement.PaymentDate = in.PaymentDate.UTC()
	}
	if in.Status != "" {
		settlement.Status = in.Status
	}
	if in.ApprovedBy != "" {
		settlement.ApprovedBy = in.ApprovedBy
	}

	previous, err := s.payments.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	wasPaid := previous != nil && previous.Status == model.PaymentStatusPaid

	res, err := s.payments.Settle(ctx, oid, settlement)
	if err != nil {
		return nil, err
	}

	if settlement.Status == model.PaymentStatusPaid && res.MatchedCount > 0 && !wasPaid {
		s.notifyPaid(ctx, oid.Hex(), settlement)
	}

	return &SettlePaymentResponse{Success: true, Result: model.NewUpdateResult(res)}, nil
}

func (s *PaymentService) notifyPaid(ctx context.Context, id string, settlement model.PaymentSettlement) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("payment_id", id).Msg("could not load settled payment for receipt")
		return
	}

	task, err := job.NewPaymentPaidEmailTask(job.PaymentPaidEmailPayload{
		To:            payment.EmployeeEmail,
		Name:          payment.EmployeeName,
		Period:        fmt.Sprintf("%s %d", payment.Month, payment.Year),
		Amount:        strconv.FormatFloat(payment.Amount, 'f', 2, 64),
		TransactionID: settlement.TransactionID,
	})
	s.notifier.enqueue(ctx, task, err)
}

// WebhookEnabled reports whether Stripe webhooks can be verified.
func (s *PaymentService) WebhookEnabled() bool {
	return s.gateway != nil && s.gateway.WebhookEnabled()
}

// HandleWebhook verifies a Stripe event and settles the linked payment
// request when its PaymentIntent succeeded. Other events are ignored.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ConstructEvent(payload, signature)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("stripe webhook verification failed")
		return errs.NewBadRequestError(MsgInvalidSignature, true, nil, nil, nil)
	}

	log := zerolog.Ctx(ctx).With().Str("event_id", event.ID).Str("event_type", string(event.Type)).Logger()

	if event.Type != eventPaymentIntentSucceeded {
		log.Debug().Msg("ignoring stripe event")
		return nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return errs.NewBadRequestError("Malformed payment intent", true, nil, nil, nil)
	}

	paymentID := intent.Metadata[PaymentMetadataKey]
	if paymentID == "" {
		log.Debug().Str("intent_id", intent.ID).Msg("payment intent not linked to a payment request")
		return nil
	}

	payment, err := s.Get(ctx, paymentID)
	if err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			log.Warn().Str("payment_id", paymentID).Msg("webhook references unknown payment")
			return nil
		}
		return err
	}

	if payment.Status == model.PaymentStatusPaid {
		log.Info().Str("payment_id", paymentID).Msg("payment already settled")
		return nil
	}

	_, err = s.Settle(ctx, paymentID, SettleInput{TransactionID: intent.ID})
	if err != nil {
		return err
	}

	log.Info().
		Str("payment_id", paymentID).
		Str("intent_id", intent.ID).
		Float64("amount_received", billing.FromMinorUnits(intent.AmountReceived)).
		Msg("payment settled from webhook")
	return nil
}
