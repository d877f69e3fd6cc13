package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWelcomeEmail(to, name, role string) error {
	return m.Called(to, name, role).Error(0)
}

func (m *mockMailer) SendPaymentPaidEmail(to, name, period, amount, transactionID string) error {
	return m.Called(to, name, period, amount, transactionID).Error(0)
}

func (m *mockMailer) SendContactReceivedEmail(to, name, from, message string) error {
	return m.Called(to, name, from, message).Error(0)
}

func newTestService(m Mailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{mailer: m, logger: &logger}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("jane@employetica.com", "Jane", "Employee")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "jane@employetica.com", Name: "Jane", Role: "Employee"}, p)
}

func TestMux_RoutesWelcome(t *testing.T) {
	m := &mockMailer{}
	m.On("SendWelcomeEmail", "jane@employetica.com", "Jane", "HR").Return(nil)

	task, err := NewWelcomeEmailTask("jane@employetica.com", "Jane", "HR")
	require.NoError(t, err)

	require.NoError(t, newTestService(m).Mux().ProcessTask(context.Background(), task))
	m.AssertExpectations(t)
}

func TestMux_RoutesPaymentPaid(t *testing.T) {
	payload := PaymentPaidEmailPayload{
		To:            "jane@employetica.com",
		Name:          "Jane",
		Period:        "January 2025",
		Amount:        "1200.00",
		TransactionID: "pi_1",
	}

	m := &mockMailer{}
	m.On("SendPaymentPaidEmail", payload.To, payload.Name, payload.Period, payload.Amount, payload.TransactionID).Return(nil)

	task, err := NewPaymentPaidEmailTask(payload)
	require.NoError(t, err)

	require.NoError(t, newTestService(m).Mux().ProcessTask(context.Background(), task))
	m.AssertExpectations(t)
}

func TestHandler_MailerErrorIsReturned(t *testing.T) {
	m := &mockMailer{}
	m.On("SendContactReceivedEmail", "admin@employetica.com", "John", "john@example.com", "hi").
		Return(errors.New("provider down"))

	task, err := NewContactReceivedEmailTask(ContactReceivedEmailPayload{
		To:      "admin@employetica.com",
		Name:    "John",
		From:    "john@example.com",
		Message: "hi",
	})
	require.NoError(t, err)

	err = newTestService(m).handleContactReceivedEmailTask(context.Background(), task)
	assert.EqualError(t, err, "provider down")
}

func TestHandler_ContactWithoutInboxIsDropped(t *testing.T) {
	m := &mockMailer{}

	task, err := NewContactReceivedEmailTask(ContactReceivedEmailPayload{Name: "John", From: "john@example.com"})
	require.NoError(t, err)

	assert.NoError(t, newTestService(m).handleContactReceivedEmailTask(context.Background(), task))
	m.AssertNotCalled(t, "SendContactReceivedEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_MalformedPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask(TaskWelcome, []byte("{not json"))

	err := newTestService(&mockMailer{}).handleWelcomeEmailTask(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
