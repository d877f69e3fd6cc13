package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/employetica/server/internal/config"
	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/middleware"
	"github.com/employetica/server/internal/server"
	"github.com/employetica/server/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRequest struct {
	Title string  `json:"title" validate:"required"`
	Tag   *string `json:"tag"`
}

func (r *noteRequest) Validate() error {
	return validation.Struct(r)
}

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

func send(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandle_BindsFreshRequestPerCall(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)

	var seen []*noteRequest
	e.POST("/notes", Handle(NewHandler(s), func(c echo.Context, req *noteRequest) (*noteRequest, error) {
		seen = append(seen, req)
		return req, nil
	}, http.StatusCreated, &noteRequest{}))

	first := send(e, http.MethodPost, "/notes", `{"title":"first","tag":"urgent"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := send(e, http.MethodPost, "/notes", `{"title":"second"}`)
	require.Equal(t, http.StatusCreated, second.Code)

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	assert.Nil(t, seen[1].Tag, "fields of an earlier request must not leak")
	assert.JSONEq(t, `{"title":"second","tag":null}`, second.Body.String())
}

func TestHandle_ValidationFailure(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)

	called := false
	e.POST("/notes", Handle(NewHandler(s), func(c echo.Context, req *noteRequest) (*noteRequest, error) {
		called = true
		return req, nil
	}, http.StatusCreated, &noteRequest{}))

	rec := send(e, http.MethodPost, "/notes", `{"tag":"x"}`)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "title", body.Errors[0].Field)
	assert.Equal(t, "is required", body.Errors[0].Error)
}

func TestHandle_HandlerErrorReachesErrorHandler(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)

	e.GET("/things/:id", Handle(NewHandler(s), func(c echo.Context, req *IDParam) (*IDParam, error) {
		return nil, errs.NewNotFoundError("Thing not found", true, nil)
	}, http.StatusOK, &IDParam{}))

	rec := send(e, http.MethodGet, "/things/64b7f1a2c9e77a0012345678", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Thing not found", decodeError(t, rec).Message)

	rec = send(e, http.MethodGet, "/things/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "id", decodeError(t, rec).Errors[0].Field)
}

func TestHandle_NilResultIsNull(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)

	e.GET("/users/:slug", Handle(NewHandler(s), func(c echo.Context, req *SlugParam) (*noteRequest, error) {
		return nil, nil
	}, http.StatusOK, &SlugParam{}))

	rec := send(e, http.MethodGet, "/users/nobody@employetica.com", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestPaymentIntentRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PaymentIntentRequest
		wantErr bool
	}{
		{name: "amount only", req: PaymentIntentRequest{Amount: 4200}},
		{name: "payment id only", req: PaymentIntentRequest{PaymentID: "64b7f1a2c9e77a0012345678"}},
		{name: "neither", req: PaymentIntentRequest{}, wantErr: true},
		{name: "negative amount", req: PaymentIntentRequest{Amount: -1}, wantErr: true},
		{name: "malformed payment id", req: PaymentIntentRequest{PaymentID: "42"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterUserRequest_RejectsAdminRole(t *testing.T) {
	req := RegisterUserRequest{Name: "Root", Email: "root@employetica.com", Role: "Admin"}
	assert.Error(t, req.Validate())

	req.Role = "HR"
	assert.NoError(t, req.Validate())
}

func TestIndex(t *testing.T) {
	e := echo.New()
	e.GET("/", Index)

	rec := send(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, IndexMessage, rec.Body.String())
}

func TestCheckHealth_NoDependencies(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)
	e.GET("/status", NewHealthHandler(s).CheckHealth)

	rec := send(e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "test", body.Environment)
	assert.Empty(t, body.Checks)
}

func TestStripeWebhook_RejectsOversizedBody(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)
	e.POST("/webhooks/stripe", NewPaymentHandler(s, nil).StripeWebhook)

	rec := send(e, http.MethodPost, "/webhooks/stripe", strings.Repeat("a", maxWebhookBodyBytes+1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request body too large", decodeError(t, rec).Message)
}

func TestPaymentHistoryQuery_AcceptsLargeLimit(t *testing.T) {
	assert.NoError(t, (&PaymentHistoryQuery{Email: "ann@employetica.com", Limit: 200}).Validate())
	assert.Error(t, (&PaymentHistoryQuery{Email: "ann@employetica.com", Limit: -1}).Validate())
}
