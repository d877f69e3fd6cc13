// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"context"

	"github.com/employetica/server/internal/lib/billing"
	"github.com/employetica/server/internal/lib/identity"
	"github.com/employetica/server/internal/lib/job"
	"github.com/employetica/server/internal/repository"
	"github.com/employetica/server/internal/server"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v75"
)

// PaymentGateway is the payment provider surface the services use.
// *billing.Client satisfies it.
type PaymentGateway interface {
	Currency() string
	CreatePaymentIntent(ctx context.Context, req billing.IntentRequest) (*stripe.PaymentIntent, error)
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
	WebhookEnabled() bool
}

type Services struct {
	Auth       *AuthService
	Users      *UserService
	Worksheets *WorksheetService
	Payments   *PaymentService
	Contacts   *ContactService
	Overview   *OverviewService
	Job        *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories, verifier identity.Verifier, gateway PaymentGateway) (*Services, error) {
	var jobs job.Enqueuer
	if s.Job != nil {
		jobs = s.Job.Client
	}

	notifier := newNotifier(jobs, s.Logger)

	return &Services{
		Auth:       NewAuthService(verifier, repos.Users),
		Users:      NewUserService(repos.Users, notifier),
		Worksheets: NewWorksheetService(repos.Worksheets),
		Payments:   NewPaymentService(repos.Payments, gateway, notifier),
		Contacts:   NewContactService(repos.Contacts, notifier, s.Config.Integration.AdminEmail),
		Overview:   NewOverviewService(repos.Users, repos.Worksheets, repos.Payments),
		Job:        s.Job,
	}, nil
}

// notifier enqueues email tasks. Enqueue failures are logged and never fail
// the request that triggered them.
type notifier struct {
	jobs   job.Enqueuer
	logger *zerolog.Logger
}

func newNotifier(jobs job.Enqueuer, logger *zerolog.Logger) *notifier {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &notifier{jobs: jobs, logger: logger}
}

func (n *notifier) enqueue(ctx context.Context, task *asynq.Task, err error) {
	log := zerolog.Ctx(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = n.logger
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to build background task")
		return
	}
	if n.jobs == nil {
		log.Warn().Str("task", task.Type()).Msg("job queue unavailable, dropping task")
		return
	}

	info, err := n.jobs.Enqueue(task)
	if err != nil {
		log.Error().Err(err).Str("task", task.Type()).Msg("failed to enqueue task")
		return
	}

	log.Debug().Str("task", task.Type()).Str("task_id", info.ID).Str("queue", info.Queue).Msg("task enqueued")
}
