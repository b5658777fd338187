package dto

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// The `binding` tags on the request DTOs are the only validation schema.
// gin applies them when binding, services apply them again through Validate
// before any write. Both go through gin's validator engine, so the custom
// rules below are registered once on that engine.

var registerOnce sync.Once

// bcrypt rejects passwords longer than this many bytes.
const maxPasswordBytes = 72

// RegisterValidations installs the custom rules and JSON field naming on
// gin's validator engine. Safe to call more than once.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("password", validPassword)
		_ = v.RegisterValidation("httpurl", validHTTPURL)
		_ = v.RegisterValidation("bcryptlen", validBcryptLength)
		v.RegisterAlias("yumfactor", "min=1,max=5")
	})
}

// Validate checks obj against its binding tags.
func Validate(obj any) error {
	RegisterValidations()
	return binding.Validator.ValidateStruct(obj)
}

// FieldErrors flattens validator errors into field -> message. It returns nil
// when err carries no field-level detail.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "password":
		return fmt.Sprintf("%s must contain at least one uppercase letter and one number", field)
	case "bcryptlen":
		return fmt.Sprintf("%s must not exceed %d bytes", field, maxPasswordBytes)
	case "yumfactor":
		return fmt.Sprintf("%s must be between 1 and 5", field)
	case "httpurl":
		return fmt.Sprintf("%s must be a valid http or https URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
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

func validPassword(fl validator.FieldLevel) bool {
	var hasUpper, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

func validBcryptLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= maxPasswordBytes
}

func validHTTPURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
