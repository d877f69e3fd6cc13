package handler

import (
	"github.com/employetica/server/internal/validation"
)

// NoRequest is the payload of endpoints that take no input.
type NoRequest struct{}

func (NoRequest) Validate() error { return nil }

// EmailParam binds the :email path segment.
type EmailParam struct {
	Email string `param:"email" json:"-" validate:"required"`
}

func (r *EmailParam) Validate() error {
	return validation.Struct(r)
}

// SlugParam binds the :slug path segment (an email).
type SlugParam struct {
	Slug string `param:"slug" json:"-" validate:"required"`
}

func (r *SlugParam) Validate() error {
	return validation.Struct(r)
}

// IDParam binds the :id path segment as a document id.
type IDParam struct {
	ID string `param:"id" json:"-" validate:"required,objectid"`
}

func (r *IDParam) Validate() error {
	return validation.Struct(r)
}
