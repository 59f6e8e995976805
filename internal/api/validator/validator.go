package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Error struct {
	FailedField string
	Tag         string
}

type XValidator interface {
	Validate(data any) error
}

type xValidator struct {
	validator *validator.Validate
}

func NewXValidator(v *validator.Validate) XValidator {
	for key, function := range valid {
		v.RegisterValidation(key, function)
	}

	return &xValidator{validator: v}
}

// Validate returns a single error naming every failed field.
func (x *xValidator) Validate(data any) error {
	errs := x.validator.Struct(data)
	if errs == nil {
		return nil
	}

	var failed []string
	for _, err := range errs.(validator.ValidationErrors) {
		failed = append(failed, fmt.Sprintf("%s is invalid", err.Field()))
	}

	return fmt.Errorf("%s", strings.Join(failed, " and "))
}
