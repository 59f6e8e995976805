package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	amountRegex = `^\d+(\.\d{1,2})?$`
	phoneRegex  = `^\d{10}$`
)

const (
	AmountTag = "amount"
	PhoneTag  = "phone"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	AmountTag: ValidateAmount,
	PhoneTag:  ValidatePhone,
}

// ValidateAmount accepts whole COP values with up to two decimals.
func ValidateAmount(fl validator.FieldLevel) bool {
	return regexp.MustCompile(amountRegex).MatchString(fl.Field().String())
}

// ValidatePhone accepts the ten digit Colombian mobile format Nequi expects.
func ValidatePhone(fl validator.FieldLevel) bool {
	return regexp.MustCompile(phoneRegex).MatchString(fl.Field().String())
}
