package utils

import (
	"github.com/go-playground/validator/v10"
)

// EchoValidator adapts go-playground/validator to echo's Validator interface.
type EchoValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *EchoValidator {
	return &EchoValidator{validator: v}
}

func (ev *EchoValidator) Validate(i interface{}) error {
	return ev.validator.Struct(i)
}
