package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type LoginRequest struct {
	Identifier string `validate:"required,email"`
	Secret     string `validate:"required"`
}

func ValidateLogin(req LoginRequest) error {
	return validate.Struct(req)
}
