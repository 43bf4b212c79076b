package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vnkhanh/wild-series-backend/models"
)

// FormField is the key used for errors that belong to no single field.
const FormField = "_form"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports validation errors under the submitted field name
// rather than the Go struct field.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Errors collects field-level messages.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Err returns nil when no message was added.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &ValidationError{Fields: e}
}

// ValidationError carries the field messages of a rejected submission.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return models.ErrValidation
}

// FromBinding turns a gin binding error into a *ValidationError.
func FromBinding(err error) error {
	if err == nil {
		return nil
	}
	fields := Errors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields.Add(fe.Field(), message(fe))
		}
		return fields.Err()
	}
	fields.Add(FormField, err.Error())
	return fields.Err()
}

// FieldErrors returns the field messages carried by err, or nil.
func FieldErrors(err error) Errors {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

// MsgNotBlank is reported for required values that are empty once trimmed.
const MsgNotBlank = "This value should not be blank."

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgNotBlank
	case "max":
		return fmt.Sprintf("This value is too long. It should have %s characters or less.", fe.Param())
	case "min":
		return fmt.Sprintf("This value should be %s or more.", fe.Param())
	case "gte":
		return fmt.Sprintf("This value should be greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("This value should be less than or equal to %s.", fe.Param())
	case "email":
		return "This value is not a valid email address."
	default:
		return fmt.Sprintf("This value is not valid (%s).", fe.Tag())
	}
}
