package bind

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

const passwordRuleMessage = "password must be at least 8 characters and contain a digit and an uppercase letter"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "params", "query"} {
			if name, _, _ := strings.Cut(f.Tag.Get(key), ","); name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return auth.PasswordMeetsPolicy(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("bind: register password rule: %v", err))
	}
	return v
}

// Validate runs `validate` struct tags and reports the first failure as a validation error.
func Validate(target any) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errorutil.NewValidationError("invalid input")
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "password":
		return errorutil.NewValidationError(passwordRuleMessage)
	case "required":
		return errorutil.NewValidationError(fmt.Sprintf("%s is required", fe.Field()))
	default:
		return errorutil.NewValidationError(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
	}
}
