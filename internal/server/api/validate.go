package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"required,len=10,number"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

// validationErrors turns a validator error into 422 detail entries.
func validationErrors(err error) []fieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []fieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}

	out := make([]fieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fieldError{
			Loc:  []string{"body", fe.Field()},
			Msg:  fieldMessage(fe),
			Type: "value_error",
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	if fe.Field() == "phone" && fe.Tag() != "required" {
		return "Phone must be exactly 10 digits"
	}
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("String should have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("String should have at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
