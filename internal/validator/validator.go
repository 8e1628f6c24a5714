// Package validator validates the storefront's form payloads before any
// backend call is made.
package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type LoginPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (p LoginPayload) Validate() error {
	return validate.Struct(p)
}

type RegisterPayload struct {
	Name     string `validate:"required,min=2,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (p RegisterPayload) Validate() error {
	return validate.Struct(p)
}

type AddToCartPayload struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"required,min=1"`
}

func (p AddToCartPayload) Validate() error {
	return validate.Struct(p)
}

// Message flattens validation failures into one user-facing sentence.
func Message(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "email":
			parts = append(parts, "email address is invalid")
		case "min":
			parts = append(parts, fmt.Sprintf("%s is too short", strings.ToLower(fe.Field())))
		case "max":
			parts = append(parts, fmt.Sprintf("%s is too long", strings.ToLower(fe.Field())))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return strings.Join(parts, "; ")
}
