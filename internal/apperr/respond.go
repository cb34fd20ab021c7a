package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var registerOnce sync.Once

// UseJSONFieldNames makes gin's validator report fields by their json tag so
// binding errors line up with the request payload keys
func UseJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// From classifies any error into an *Error. gorm sentinels are mapped onto
// their client-facing kinds, anything unknown becomes an internal error
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("Object")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Validation("non_field_errors", "An object with these values already exists")
	}

	return Internal(err)
}

// FromBinding turns a request binding failure into a validation error with
// one message per offending field
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return ValidationFields(fields)
	}

	var sizeErr *http.MaxBytesError
	if errors.As(err, &sizeErr) {
		return BadRequest("Request body size exceeds limit")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Validation(typeErr.Field, "Invalid value type")
	}

	return BadRequest("Malformed or invalid JSON request body")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters"
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}

// Respond writes err as a JSON error response and aborts the chain.
// Field messages are written both under "fields" and as top level keys,
// except where a field name collides with a reserved key.
// Internal errors are logged and never leak their cause to the client.
func Respond(c *gin.Context, err error) {
	requestID := c.GetString("requestID")
	e := From(err)

	if e.Kind == KindInternal {
		zap.L().Error("Request failed",
			zap.Error(e.Err),
			zap.String("requestID", requestID),
			zap.String("path", c.FullPath()),
		)
	}

	body := gin.H{
		"error":     e.Message,
		"requestID": requestID,
	}
	if len(e.Fields) > 0 {
		for field, msg := range e.Fields {
			if _, reserved := body[field]; !reserved && field != "fields" {
				body[field] = msg
			}
		}
		body["fields"] = e.Fields
	}

	c.AbortWithStatusJSON(e.Status(), body)
}
