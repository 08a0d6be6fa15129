// Package validator bundles request DTOs, struct-tag validation and the quiz
// file structure rules.
package validator

import "github.com/go-playground/validator/v10"

// Validator wraps go-playground/validator together with the business rules.
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

// New creates a Validator with all rules registered.
func New() *Validator {
	return &Validator{
		validate: validator.New(),
		business: NewBusinessValidator(),
	}
}

// Validate validates struct tags on a request and returns ValidationErrors on
// failure.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// GetBusinessValidator returns the business rule validator.
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}
