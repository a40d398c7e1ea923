package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// The email pattern is deliberately unanchored: any text containing a
// valid-looking address passes. Tightening it to a full-string match is a
// behavior change and needs a product decision first.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.(com|in|edu|net)`)

// Accepts +1234567890 (10-15 digits) or 123-456-7890.
var phonePattern = regexp.MustCompile(`^(\+\d{10,15}|\d{3}-\d{3}-\d{4})$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether phone is acceptable. The empty string is valid
// because phone is an optional field.
func ValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

func NonNegativeInt(n int) bool {
	return n >= 0
}

func NonNegativeDecimal(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// New returns a validator with the crm_email and crm_phone tags registered
// over the predicates above, for use on request row structs.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	_ = v.RegisterValidation("crm_email", func(fl validatorv10.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("crm_phone", func(fl validatorv10.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	return v
}
