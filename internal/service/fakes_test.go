package service

import (
	"context"
	"sort"
	"sync"

	"github.com/employetica/server/internal/lib/billing"
	"github.com/employetica/server/internal/lib/identity"
	"github.com/employetica/server/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v75"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memUsers is an in-memory IUserRepository.
type memUsers struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*model.User
}

func newMemUsers(users ...*model.User) *memUsers {
	r := &memUsers{items: map[primitive.ObjectID]*model.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.items[u.ID] = u
	}
	return r
}

func (r *memUsers) Create(_ context.Context, user *model.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = primitive.NewObjectID()
	r.items[user.ID] = user
	return user.ID, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.items[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUsers) filter(keep func(*model.User) bool) []model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0)
	for _, u := range r.items {
		if keep(u) {
			out = append(out, *u)
		}
	}
	return out
}

func (r *memUsers) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	return r.filter(func(u *model.User) bool { return u.Role == role }), nil
}

func (r *memUsers) ListVerified(_ context.Context) ([]model.User, error) {
	return r.filter(func(u *model.User) bool { return u.IsVerified }), nil
}

func (r *memUsers) update(id primitive.ObjectID, apply func(*model.User) bool) *mongo.UpdateResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return &mongo.UpdateResult{}
	}
	res := &mongo.UpdateResult{MatchedCount: 1}
	if apply(u) {
		res.ModifiedCount = 1
	}
	return res
}

func (r *memUsers) SetVerified(_ context.Context, id primitive.ObjectID, verified bool) (*mongo.UpdateResult, error) {
	return r.update(id, func(u *model.User) bool {
		changed := u.IsVerified != verified
		u.IsVerified = verified
		return changed
	}), nil
}

func (r *memUsers) SetRole(_ context.Context, id primitive.ObjectID, role model.Role) (*mongo.UpdateResult, error) {
	return r.update(id, func(u *model.User) bool {
		changed := u.Role != role
		u.Role = role
		return changed
	}), nil
}

func (r *memUsers) SetFired(_ context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	return r.update(id, func(u *model.User) bool {
		changed := !u.Fired
		u.Fired = true
		return changed
	}), nil
}

func (r *memUsers) SetSalary(_ context.Context, id primitive.ObjectID, salary float64) (*mongo.UpdateResult, error) {
	return r.update(id, func(u *model.User) bool {
		changed := u.Salary != salary
		u.Salary = salary
		return changed
	}), nil
}

func (r *memUsers) Count(_ context.Context) (int64, error) {
	return int64(len(r.filter(func(*model.User) bool { return true }))), nil
}

func (r *memUsers) CountByRole(_ context.Context, role model.Role) (int64, error) {
	return int64(len(r.filter(func(u *model.User) bool { return u.Role == role }))), nil
}

func (r *memUsers) CountVerifiedByRole(_ context.Context, role model.Role) (int64, error) {
	return int64(len(r.filter(func(u *model.User) bool { return u.Role == role && u.IsVerified }))), nil
}

func (r *memUsers) SumSalaryByRole(_ context.Context, role model.Role) (float64, error) {
	var total float64
	for _, u := range r.filter(func(u *model.User) bool { return u.Role == role }) {
		total += u.Salary
	}
	return total, nil
}

// memWorksheets is an in-memory IWorksheetRepository.
type memWorksheets struct {
	items []*model.Worksheet
}

func (r *memWorksheets) Create(_ context.Context, ws *model.Worksheet) (primitive.ObjectID, error) {
	ws.ID = primitive.NewObjectID()
	r.items = append(r.items, ws)
	return ws.ID, nil
}

func (r *memWorksheets) ListByEmail(_ context.Context, email string) ([]model.Worksheet, error) {
	out := make([]model.Worksheet, 0)
	for _, ws := range r.items {
		if ws.Email == email {
			out = append(out, *ws)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memWorksheets) ListAll(_ context.Context) ([]model.Worksheet, error) {
	out := make([]model.Worksheet, 0, len(r.items))
	for _, ws := range r.items {
		out = append(out, *ws)
	}
	return out, nil
}

func (r *memWorksheets) find(id primitive.ObjectID, owner string) (int, *model.Worksheet) {
	for i, ws := range r.items {
		if ws.ID == id && (owner == "" || ws.Email == owner) {
			return i, ws
		}
	}
	return -1, nil
}

func (r *memWorksheets) Update(_ context.Context, id primitive.ObjectID, owner string, update model.WorksheetUpdate) (*mongo.UpdateResult, error) {
	_, ws := r.find(id, owner)
	if ws == nil {
		return &mongo.UpdateResult{}, nil
	}

	modified := false
	if update.Task != nil && *update.Task != ws.Task {
		ws.Task, modified = *update.Task, true
	}
	if update.Hours != nil && *update.Hours != ws.Hours {
		ws.Hours, modified = *update.Hours, true
	}
	if update.Date != nil && !update.Date.Equal(ws.Date) {
		ws.Date, modified = *update.Date, true
	}

	res := &mongo.UpdateResult{MatchedCount: 1}
	if modified {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *memWorksheets) Delete(_ context.Context, id primitive.ObjectID, owner string) (int64, error) {
	i, ws := r.find(id, owner)
	if ws == nil {
		return 0, nil
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return 1, nil
}

func (r *memWorksheets) CountByEmail(ctx context.Context, email string) (int64, error) {
	items, _ := r.ListByEmail(ctx, email)
	return int64(len(items)), nil
}

// memPayments is an in-memory IPaymentRepository.
type memPayments struct {
	items []*model.Payment
}

func (r *memPayments) Create(_ context.Context, p *model.Payment) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	r.items = append(r.items, p)
	return p.ID, nil
}

func (r *memPayments) FindByID(_ context.Context, id primitive.ObjectID) (*model.Payment, error) {
	for _, p := range r.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPayments) ExistsForPeriod(_ context.Context, employeeID, month string, year int) (bool, error) {
	for _, p := range r.items {
		if p.EmployeeID == employeeID && p.Month == month && p.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPayments) filter(keep func(*model.Payment) bool) []model.Payment {
	out := make([]model.Payment, 0)
	for _, p := range r.items {
		if keep(p) {
			out = append(out, *p)
		}
	}
	return out
}

func (r *memPayments) ListAll(_ context.Context) ([]model.Payment, error) {
	return r.filter(func(*model.Payment) bool { return true }), nil
}

func (r *memPayments) ListByEmail(_ context.Context, email string) ([]model.Payment, error) {
	return r.filter(func(p *model.Payment) bool { return p.EmployeeEmail == email }), nil
}

func (r *memPayments) paid(email string) []model.Payment {
	out := r.filter(func(p *model.Payment) bool {
		return p.EmployeeEmail == email && p.Status == model.PaymentStatusPaid
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].PaymentDate == nil || out[j].PaymentDate == nil {
			return out[j].PaymentDate == nil
		}
		return out[i].PaymentDate.After(*out[j].PaymentDate)
	})
	return out
}

func (r *memPayments) ListPaidByEmail(_ context.Context, email string, skip, limit int64) ([]model.Payment, error) {
	all := r.paid(email)
	if skip >= int64(len(all)) {
		return []model.Payment{}, nil
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

func (r *memPayments) CountPaidByEmail(_ context.Context, email string) (int64, error) {
	return int64(len(r.paid(email))), nil
}

func (r *memPayments) LatestPaidByEmail(_ context.Context, email string) (*model.Payment, error) {
	all := r.paid(email)
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

func (r *memPayments) Settle(_ context.Context, id primitive.ObjectID, s model.PaymentSettlement) (*mongo.UpdateResult, error) {
	for _, p := range r.items {
		if p.ID == id {
			date := s.PaymentDate
			approver := s.ApprovedBy
			p.TransactionID = s.TransactionID
			p.PaymentDate = &date
			p.Status = s.Status
			p.ApprovedBy = &approver
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (r *memPayments) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memPayments) CountByStatus(_ context.Context, status model.PaymentStatus) (int64, error) {
	return int64(len(r.filter(func(p *model.Payment) bool { return p.Status == status }))), nil
}

// memContacts is an in-memory IContactRepository.
type memContacts struct {
	items []model.ContactMessage
}

func (r *memContacts) Create(_ context.Context, msg *model.ContactMessage) (primitive.ObjectID, error) {
	msg.ID = primitive.NewObjectID()
	r.items = append(r.items, *msg)
	return msg.ID, nil
}

func (r *memContacts) ListAll(_ context.Context) ([]model.ContactMessage, error) {
	return append([]model.ContactMessage{}, r.items...), nil
}

// recordingQueue captures enqueued tasks.
type recordingQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *recordingQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default", Type: task.Type()}, nil
}

func (q *recordingQueue) types() []string {
	out := make([]string, 0, len(q.tasks))
	for _, t := range q.tasks {
		out = append(out, t.Type())
	}
	return out
}

func newTestNotifier(q *recordingQueue) *notifier {
	logger := zerolog.Nop()
	return newNotifier(q, &logger)
}

// stubVerifier maps tokens to identities.
type stubVerifier map[string]*identity.Identity

func (v stubVerifier) Verify(_ context.Context, token string) (*identity.Identity, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return nil, identity.ErrInvalidToken
}

// mockGateway is a testify mock of PaymentGateway.
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Currency() string {
	return "usd"
}

func (m *mockGateway) CreatePaymentIntent(ctx context.Context, req billing.IntentRequest) (*stripe.PaymentIntent, error) {
	args := m.Called(ctx, req)
	intent, _ := args.Get(0).(*stripe.PaymentIntent)
	return intent, args.Error(1)
}

func (m *mockGateway) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(stripe.Event), args.Error(1)
}

func (m *mockGateway) WebhookEnabled() bool {
	return true
}
