package mongoerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/lib/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func duplicateKeyError(namespace, index string) error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Index:   0,
			Code:    11000,
			Message: fmt.Sprintf(`E11000 duplicate key error collection: %s index: %s dup key: { email: "a@b.c" }`, namespace, index),
		}},
	}
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_DuplicateUserEmail(t *testing.T) {
	err := HandleError(duplicateKeyError("Employetica.user", "email_1"))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A user with this email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_DuplicatePaymentRequest(t *testing.T) {
	err := HandleError(duplicateKeyError("Employetica.payments", "employeeId_1_month_1_year_1"))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PAYMENT_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "Payment request for this month already exists", httpErr.Message)
}

func TestHandleError_NoDocuments(t *testing.T) {
	err := HandleError(fmt.Errorf("find payment: %w", mongo.ErrNoDocuments))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_InvalidObjectID(t *testing.T) {
	_, parseErr := utils.ParseObjectID("nope")
	require.Error(t, parseErr)

	httpErr := asHTTPError(t, HandleError(parseErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "RECORD_INVALID_ID", httpErr.Code)
}

func TestHandleError_Timeout(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("count: %w", context.DeadlineExceeded)))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
}

func TestHandleError_PassThroughAndFallback(t *testing.T) {
	original := errs.NewForbiddenError("forbidden access", false)
	assert.Same(t, original, HandleError(original))

	httpErr := asHTTPError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	assert.NoError(t, HandleError(nil))
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, DuplicateKey, ErrCode(duplicateKeyError("Employetica.user", "email_1")))
	assert.Equal(t, NoDocuments, ErrCode(mongo.ErrNoDocuments))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestParseDuplicateKey(t *testing.T) {
	collection, index := parseDuplicateKey(`E11000 duplicate key error collection: Employetica.worksheets index: email_1_createdAt_-1 dup key: {}`)
	assert.Equal(t, "worksheets", collection)
	assert.Equal(t, "email_1_createdAt_-1", index)

	collection, index = parseDuplicateKey("something else")
	assert.Empty(t, collection)
	assert.Empty(t, index)
}
