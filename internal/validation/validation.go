// Package validation binds request data and checks it against
// go-playground/validator struct tags, turning failures into field-level
// errors the client can render next to its inputs.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/employetica/server/internal/lib/utils"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the custom tags registered:
//
//	objectid: a 24 character hex MongoDB ObjectID
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json names ("isVerified") instead of Go field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "param", "query"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		_ = validate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return utils.IsValidObjectID(fl.Field().String())
		})
	})
	return validate
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return Validator().Struct(s)
}
