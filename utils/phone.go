package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	phoneStrip   = regexp.MustCompile(`[^0-9+]`)
	phonePattern = regexp.MustCompile(`^(\+63|0)?[0-9]{10}$`)
)

// ValidPhone accepts a 10-digit local number, optionally prefixed with +63
// or 0. Separators and spaces are stripped before matching.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phoneStrip.ReplaceAllString(phone, ""))
}

// PhoneValidator adapts ValidPhone for gin binding tags (phone_ph).
func PhoneValidator(fl validator.FieldLevel) bool {
	return ValidPhone(fl.Field().String())
}
