package form

import (
	"github.com/go-playground/validator/v10"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/dates"
)

// Validator wraps the go-playground validator with the trip-specific rules
// registered.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("tripdate", func(fl validator.FieldLevel) bool {
		return dates.Valid(fl.Field().String())
	})
	return &Validator{v: v}
}

func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

var defaultValidator = NewValidator()
