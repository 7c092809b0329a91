package validate

import (
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with a single shared instance.
type Validator struct {
	v *validator.Validate
}

// New creates a new validator
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct validates a struct based on its `validate` tags
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag expression
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}
