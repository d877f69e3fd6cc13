package mongoerr

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/employetica/server/internal/errs"
	"github.com/employetica/server/internal/lib/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// duplicateKeyRe extracts namespace and index name from an E11000 message:
//
//	E11000 duplicate key error collection: Employetica.user index: email_1 dup key: { email: "a@b.c" }
var duplicateKeyRe = regexp.MustCompile(`collection: (\S+) index: (\S+)`)

// indexMessages are messages for unique indexes whose generic wording would be unclear.
var indexMessages = map[string]string{
	"employeeId_1_month_1_year_1": "Payment request for this month already exists",
}

// ErrCode reports the Code of err, or Other when it is not classified.
func ErrCode(err error) Code {
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr.Code
	}
	return Classify(err).Code
}

// Classify converts a driver error into an *Error.
func Classify(err error) *Error {
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return &Error{Code: NoDocuments, Message: err.Error(), driverErr: err}

	case errors.Is(err, utils.ErrInvalidObjectID):
		return &Error{Code: InvalidID, Message: err.Error(), driverErr: err}

	case mongo.IsDuplicateKeyError(err):
		collection, index := parseDuplicateKey(err.Error())
		return &Error{
			Code:       DuplicateKey,
			Collection: collection,
			Index:      index,
			Message:    err.Error(),
			driverErr:  err,
		}

	case mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return &Error{Code: Timeout, Message: err.Error(), driverErr: err}
	}

	return &Error{Code: Other, Message: err.Error(), driverErr: err}
}

// parseDuplicateKey returns the bare collection name and index name of a duplicate key error.
func parseDuplicateKey(msg string) (collection, index string) {
	matches := duplicateKeyRe.FindStringSubmatch(msg)
	if len(matches) != 3 {
		return "", ""
	}

	namespace := matches[1]
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}

	return namespace, matches[2]
}

// generateErrorCode creates codes like USER_ALREADY_EXISTS or PAYMENT_NOT_FOUND.
func generateErrorCode(collection string, code Code) string {
	domain := strings.ToUpper(singular(collection))
	if domain == "" {
		domain = "RECORD"
	}

	action := "ERROR"
	switch code {
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	case NoDocuments:
		action = "NOT_FOUND"
	case InvalidID:
		action = "INVALID_ID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// fieldFromIndex returns the first key of an index name ("email_1" -> "email").
func fieldFromIndex(index string) string {
	if index == "" {
		return ""
	}
	parts := strings.Split(index, "_")
	return parts[0]
}

func singular(name string) string {
	if strings.HasSuffix(name, "s") && len(name) > 1 {
		return name[:len(name)-1]
	}
	return name
}

// humanizeText converts "bank_account_no" to "Bank Account No".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

func entityName(collection string) string {
	if collection == "" {
		return "record"
	}
	return strings.ToLower(humanizeText(singular(collection)))
}

// HandleError converts a driver error into an application error.
//
//   - *errs.HTTPError: returned unchanged
//   - duplicate key: 400 with <ENTITY>_ALREADY_EXISTS
//   - no documents: 404
//   - malformed ObjectID: 400
//   - timeouts: 503
//   - anything else: 500
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	mErr := Classify(err)

	switch mErr.Code {
	case DuplicateKey:
		code := generateErrorCode(mErr.Collection, DuplicateKey)
		message, ok := indexMessages[mErr.Index]
		if !ok {
			field := fieldFromIndex(mErr.Index)
			if field == "" {
				field = "identifier"
			}
			message = fmt.Sprintf("A %s with this %s already exists", entityName(mErr.Collection), field)
		}
		return errs.NewBadRequestError(message, true, &code, nil, nil)

	case NoDocuments:
		return errs.NewNotFoundError("Resource not found", false, nil)

	case InvalidID:
		code := generateErrorCode("", InvalidID)
		return errs.NewBadRequestError("Invalid id", true, &code, nil, nil)

	case Timeout:
		return errs.NewServiceUnavailableError("Database temporarily unavailable")
	}

	return errs.NewInternalServerError()
}
