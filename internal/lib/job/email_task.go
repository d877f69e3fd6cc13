package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names stored in Redis. Asynq routes on these strings.
const (
	TaskWelcome         = "email:welcome"
	TaskPaymentPaid     = "email:payment_paid"
	TaskContactReceived = "email:contact_received"
)

// WelcomeEmailPayload is the payload of TaskWelcome.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PaymentPaidEmailPayload is the payload of TaskPaymentPaid.
type PaymentPaidEmailPayload struct {
	To            string `json:"to"`
	Name          string `json:"name"`
	Period        string `json:"period"`
	Amount        string `json:"amount"`
	TransactionID string `json:"transaction_id"`
}

// ContactReceivedEmailPayload is the payload of TaskContactReceived.
type ContactReceivedEmailPayload struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	From    string `json:"from"`
	Message string `json:"message"`
}

// NewWelcomeEmailTask constructs a task that greets a newly registered user.
//
// It retries up to 3 times in the "default" queue and is killed after 30s.
func NewWelcomeEmailTask(to, name, role string) (*asynq.Task, error) {
	return newTask(TaskWelcome, WelcomeEmailPayload{To: to, Name: name, Role: role}, QueueDefault)
}

// NewPaymentPaidEmailTask constructs a task that notifies an employee of a paid salary.
// Payment notices go through the "critical" queue.
func NewPaymentPaidEmailTask(p PaymentPaidEmailPayload) (*asynq.Task, error) {
	return newTask(TaskPaymentPaid, p, QueueCritical)
}

// NewContactReceivedEmailTask constructs a task that forwards a contact message.
func NewContactReceivedEmailTask(p ContactReceivedEmailPayload) (*asynq.Task, error) {
	return newTask(TaskContactReceived, p, QueueLow)
}

func newTask(taskType string, payload any, queue string) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}

	return asynq.NewTask(
		taskType,
		data,
		asynq.MaxRetry(3),
		asynq.Queue(queue),
		asynq.Timeout(30*time.Second),
	), nil
}
