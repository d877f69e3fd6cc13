// Package mongoerr specifically handles MongoDB driver errors.
//
// It classifies driver failures (duplicate keys, missing documents,
// malformed ObjectIDs, timeouts) and converts them into user-friendly
// errs.HTTPError values (e.g. a duplicate key becomes a "Bad Request").
package mongoerr

import "fmt"

// Code is the category of a driver error.
type Code string

const (
	Other        Code = "other"
	DuplicateKey Code = "duplicate_key"
	NoDocuments  Code = "no_documents"
	InvalidID    Code = "invalid_id"
	Timeout      Code = "timeout"
)

// Error is a classified driver error.
type Error struct {
	Code       Code
	Collection string
	Index      string
	Message    string
	driverErr  error
}

func (e *Error) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("%s on %s: %s", e.Code, e.Collection, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
