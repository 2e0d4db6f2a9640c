package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo.Validator so
// handlers can call c.Validate on bound DTOs.
type RequestValidator struct {
	validate *validator.Validate
}

var _ echo.Validator = (*RequestValidator)(nil)

// New builds the request validator used by the API server
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks the struct tags of a bound request
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}
