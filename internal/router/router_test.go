package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/employetica/server/internal/config"
	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/handler"
	"github.com/employetica/server/internal/lib/identity"
	"github.com/employetica/server/internal/model"
	"github.com/employetica/server/internal/repository"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type users struct {
	repository.IUserRepository
	byEmail map[string]*model.User
}

func (u users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return u.byEmail[email], nil
}

type worksheets struct {
	repository.IWorksheetRepository
	byEmail map[string][]model.Worksheet
}

func (w worksheets) ListByEmail(_ context.Context, email string) ([]model.Worksheet, error) {
	return w.byEmail[email], nil
}

type payments struct {
	repository.IPaymentRepository
	lastLimit int64
}

func (p *payments) ListPaidByEmail(_ context.Context, email string, skip, limit int64) ([]model.Payment, error) {
	p.lastLimit = limit
	return []model.Payment{{EmployeeEmail: email, Status: model.PaymentStatusPaid}}, nil
}

func (p *payments) CountPaidByEmail(_ context.Context, _ string) (int64, error) {
	return 1, nil
}

type tokens map[string]string

func (v tokens) Verify(_ context.Context, token string) (*identity.Identity, error) {
	if email, ok := v[token]; ok {
		return &identity.Identity{UID: token, Email: email}, nil
	}
	return nil, identity.ErrInvalidToken
}

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	e, _ := newTestRouterWithPayments(t)
	return e
}

func newTestRouterWithPayments(t *testing.T) (*echo.Echo, *payments) {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				ContactRateLimit:   1,
			},
			Integration:   &config.IntegrationConfig{AdminEmail: "admin@employetica.com"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	paymentRepo := &payments{}
	repos := &repository.Repositories{
		Users: users{byEmail: map[string]*model.User{
			"ann@employetica.com": {Name: "Ann", Email: "ann@employetica.com", Role: model.RoleEmployee},
			"hal@employetica.com": {Name: "Hal", Email: "hal@employetica.com", Role: model.RoleHR},
		}},
		Worksheets: worksheets{byEmail: map[string][]model.Worksheet{
			"ann@employetica.com": {{Email: "ann@employetica.com", Task: "Sales", Hours: 4}},
		}},
		Payments: paymentRepo,
	}

	verifier := tokens{"ann": "ann@employetica.com", "hal": "hal@employetica.com"}

	services, err := service.NewServices(s, repos, verifier, nil)
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services), services), paymentRepo
}

func call(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestRouter_SystemRoutes(t *testing.T) {
	e := newTestRouter(t)

	rec := call(e, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handler.IndexMessage, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = call(e, http.MethodGet, "/status", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_PublicUserRoutes(t *testing.T) {
	e := newTestRouter(t)

	rec := call(e, http.MethodGet, "/is-fired-user/ANN@employetica.com", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"fired": false}`, rec.Body.String())

	rec = call(e, http.MethodGet, "/users/hal@employetica.com/role", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role": "HR"}`, rec.Body.String())

	rec = call(e, http.MethodGet, "/users/nobody@employetica.com/role", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.MsgUserNotFound, errorMessage(t, rec))
}

func TestRouter_RoleGates(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"no token", http.MethodGet, "/users/employee", "", http.StatusUnauthorized},
		{"unknown token", http.MethodGet, "/users/employee", "nope", http.StatusForbidden},
		{"employee on HR route", http.MethodGet, "/users/employee", "ann", http.StatusForbidden},
		{"HR on employee route", http.MethodGet, "/worksheets?email=hal@employetica.com", "hal", http.StatusForbidden},
		{"HR on admin route", http.MethodGet, "/payments", "hal", http.StatusForbidden},
		{"employee on admin overview", http.MethodGet, "/overview/admin", "ann", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.method, tt.path, tt.token, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRouter_EmployeeWorksheets(t *testing.T) {
	e := newTestRouter(t)

	rec := call(e, http.MethodGet, "/worksheets?email=ann@employetica.com", "ann", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Worksheet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Sales", got[0].Task)

	rec = call(e, http.MethodGet, "/worksheets", "ann", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgEmailRequired, errorMessage(t, rec))

	rec = call(e, http.MethodGet, "/worksheets?email=hal@employetica.com", "ann", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, service.MsgNotOwnRecords, errorMessage(t, rec))
}

func TestRouter_ContactRequiresAllFields(t *testing.T) {
	e := newTestRouter(t)

	rec := call(e, http.MethodPost, "/contact-us", "", `{"name":"Ann","email":"","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgAllFieldsRequired, errorMessage(t, rec))
}

func TestRouter_WebhookNotRegisteredWithoutSecret(t *testing.T) {
	e := newTestRouter(t)

	rec := call(e, http.MethodPost, "/webhooks/stripe", "", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PaymentHistoryCapsLargeLimit(t *testing.T) {
	e, repo := newTestRouterWithPayments(t)

	rec := call(e, http.MethodGet, "/payment-history?email=ann@employetica.com&page=1&limit=200", "ann", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.PaymentHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.TotalCount)
	assert.Equal(t, int64(service.MaxHistoryLimit), repo.lastLimit)
}
