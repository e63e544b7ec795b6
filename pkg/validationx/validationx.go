package validationx

import (
	"errors"
	"reflect"
	"regexp"
	"unicode"

	"github.com/ARUMANDESU/validation"
)

var ErrInvalidPasswordFormat = validation.NewError(
	"validation_is_password",
	"must be at least 8 characters long, contain at least one uppercase letter, one lowercase letter, one digit, and one special character",
)

var ErrInvalidPhoneFormat = validation.NewError(
	"validation_is_e164",
	"must be a valid phone number in international format",
)

var ErrInvalidCurrencyCode = validation.NewError(
	"validation_is_currency_code",
	"must be a valid three-letter currency code",
)

var (
	PasswordFormat = PasswordFormatRule{}
	// Required is a validation rule that checks if a value is not empty. Use it for uuid verification, otherwise use validation.Required.
	Required = RequiredRule{}
)

var (
	// Allow Unicode letters, spaces, hyphens, apostrophes, periods
	nameRegex = regexp.MustCompile(`^[\p{L}\p{M}\s'\-\.]+$`)
	// E.164: optional '+', leading non-zero digit, 8 to 15 digits total
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)
	// ISO 4217 alpha code shape; actual currency support is decided elsewhere
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

var IsPersonName = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Let Required handle emptiness
	}

	if !nameRegex.MatchString(s) {
		return errors.New("must be a valid name")
	}
	return nil
})

var IsPhone = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Let Required handle emptiness
	}

	if !phoneRegex.MatchString(s) {
		return ErrInvalidPhoneFormat
	}
	return nil
})

var IsCurrencyCode = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Let Required handle emptiness
	}

	if !currencyRegex.MatchString(s) {
		return ErrInvalidCurrencyCode
	}
	return nil
})

type PasswordFormatRule struct{}

// Validate validates a password string against the defined rules.
// It checks for minimum length, presence of uppercase, lowercase, digit, and special character.
func (r PasswordFormatRule) Validate(value any) error {
	password, ok := value.(string)
	if !ok {
		return errors.New("value is not a string")
	}

	if len(password) < 8 {
		return ErrInvalidPasswordFormat
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool

	for _, char := range password {
		switch {
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= '0' && char <= '9':
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		default:
			// Invalid character found
			return ErrInvalidPasswordFormat
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return ErrInvalidPasswordFormat
	}

	return nil
}

type RequiredRule struct{}

func (r RequiredRule) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil || isEmpty(value) {
		return validation.ErrRequired
	}

	return nil
}

func isEmpty(value any) bool {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Array:
		return v.Equal(reflect.Zero(v.Type())) || v.Len() == 0
	case reflect.String:
		return v.Len() == 0 || v.String() == "00000000-0000-0000-0000-000000000000" // uuid zero string
	case reflect.Map, reflect.Slice:
		return v.Equal(reflect.Zero(v.Type())) || v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Invalid:
		return true
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	default:
		return false
	}
}
