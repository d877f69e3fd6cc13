package service

import (
	"context"
	"strings"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/lib/job"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/repository"
)

const (
	MsgAllFieldsRequired = "All fields are required"
	MsgMessageReceived   = "Message received"
)

type ContactResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *model.InsertResult `json:"data"`
}

type ContactService struct {
	contacts   repository.IContactRepository
	notifier   *notifier
	adminEmail string
}

func NewContactService(contacts repository.IContactRepository, n *notifier, adminEmail string) *ContactService {
	return &ContactService{
		contacts:   contacts,
		notifier:   n,
		adminEmail: adminEmail,
	}
}

// Submit stores a contact message and forwards it to the admin inbox.
func (s *ContactService) Submit(ctx context.Context, msg *model.ContactMessage) (*ContactResponse, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return nil, errs.NewBadRequestError(MsgAllFieldsRequired, true, nil, nil, nil)
	}

	id, err := s.contacts.Create(ctx, msg)
	if err != nil {
		return nil, err
	}

	task, err := job.NewContactReceivedEmailTask(job.ContactReceivedEmailPayload{
		To:      s.adminEmail,
		Name:    msg.Name,
		From:    msg.Email,
		Message: msg.Message,
	})
	s.notifier.enqueue(ctx, task, err)

	return &ContactResponse{
		Success: true,
		Message: MsgMessageReceived,
		Data:    &model.InsertResult{Acknowledged: true, InsertedID: id},
	}, nil
}

func (s *ContactService) List(ctx context.Context) ([]model.ContactMessage, error) {
	return s.contacts.ListAll(ctx)
}
