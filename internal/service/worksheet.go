package service

import (
	"context"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/lib/utils"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/repository"
)

const (
	MsgEmailRequired = "Email required"
	MsgTaskUpdated   = "Task updated successfully"
	MsgTaskUnchanged = "No changes made to the task"
	MsgTaskDeleted   = "Task deleted successfully"
	MsgTaskNotFound  = "Task not found"
	MsgNotOwnRecords = "You can only access your own records"
)

type WorksheetService struct {
	worksheets repository.IWorksheetRepository
}

func NewWorksheetService(worksheets repository.IWorksheetRepository) *WorksheetService {
	return &WorksheetService{worksheets: worksheets}
}

// ensureOwner rejects access to another employee's records.
func ensureOwner(caller, requested string) error {
	if utils.NormalizeEmail(caller) != utils.NormalizeEmail(requested) {
		return errs.NewForbiddenError(MsgNotOwnRecords, true)
	}
	return nil
}

// ListForEmployee returns the caller's worksheets, newest first.
func (s *WorksheetService) ListForEmployee(ctx context.Context, caller, email string) ([]model.Worksheet, error) {
	if email == "" {
		return nil, errs.NewBadRequestError(MsgEmailRequired, true, nil, nil, nil)
	}
	if err := ensureOwner(caller, email); err != nil {
		return nil, err
	}

	return s.worksheets.ListByEmail(ctx, utils.NormalizeEmail(email))
}

func (s *WorksheetService) ListAll(ctx context.Context) ([]model.Worksheet, error) {
	return s.worksheets.ListAll(ctx)
}

// Create stores a worksheet owned by caller.
func (s *WorksheetService) Create(ctx context.Context, caller string, ws *model.Worksheet) (*model.InsertResult, error) {
	ws.Email = utils.NormalizeEmail(caller)

	id, err := s.worksheets.Create(ctx, ws)
	if err != nil {
		return nil, err
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// Update applies the supplied fields to one of the caller's tasks.
// Unless a document was modified the answer is "No changes made to the task",
// whether the body was empty or the task is missing or owned by someone else.
func (s *WorksheetService) Update(ctx context.Context, caller, id string, update model.WorksheetUpdate) (*model.MessageResponse, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	if update.IsEmpty() {
		return &model.MessageResponse{Message: MsgTaskUnchanged}, nil
	}

	res, err := s.worksheets.Update(ctx, oid, utils.NormalizeEmail(caller), update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return &model.MessageResponse{Message: MsgTaskUnchanged}, nil
	}

	return &model.MessageResponse{Message: MsgTaskUpdated}, nil
}

// Delete removes one of the caller's tasks.
func (s *WorksheetService) Delete(ctx context.Context, caller, id string) (*model.MessageResponse, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.worksheets.Delete(ctx, oid, utils.NormalizeEmail(caller))
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, errs.NewNotFoundError(MsgTaskNotFound, true, nil)
	}

	return &model.MessageResponse{Message: MsgTaskDeleted}, nil
}
