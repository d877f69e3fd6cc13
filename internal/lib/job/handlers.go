package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask processes TaskWelcome.
//
// Returning an error makes Asynq mark the task failed and schedule a retry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.Name, p.Role); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

func (j *JobService) handlePaymentPaidEmailTask(ctx context.Context, t *asynq.Task) error {
	var p PaymentPaidEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal payment paid email payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", "payment_paid").
		Str("to", p.To).
		Str("period", p.Period).
		Logger()

	log.Info().Msg("Processing payment paid email task")

	if err := j.mailer.SendPaymentPaidEmail(p.To, p.Name, p.Period, p.Amount, p.TransactionID); err != nil {
		log.Error().Err(err).Msg("Failed to send payment paid email")
		return err
	}

	log.Info().Msg("Successfully sent payment paid email")
	return nil
}

func (j *JobService) handleContactReceivedEmailTask(ctx context.Context, t *asynq.Task) error {
	var p ContactReceivedEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal contact email payload: %w: %w", err, asynq.SkipRetry)
	}

	if p.To == "" {
		j.logger.Warn().Str("from", p.From).Msg("No admin inbox configured, dropping contact email")
		return nil
	}

	if err := j.mailer.SendContactReceivedEmail(p.To, p.Name, p.From, p.Message); err != nil {
		j.logger.Error().
			Str("type", "contact_received").
			Str("from", p.From).
			Err(err).
			Msg("Failed to forward contact message")
		return err
	}

	j.logger.Info().
		Str("type", "contact_received").
		Str("from", p.From).
		Msg("Successfully forwarded contact message")

	return nil
}
