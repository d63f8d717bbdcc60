package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrInvalidSKU      = errors.New("invalid SKU format")
)

// Validation constants
const (
	MaxNameLength     = 255
	MinNameLength     = 1
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxInvoiceAmount  = "1000000" // one million per line
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	skuRegex   = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-]{1,31}$`)
)

// ValidateName validates a display name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return ErrPasswordTooWeak
	}

	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return ErrPasswordTooWeak
	}
	return nil
}

// ValidateAmount validates a monetary amount is within bounds
func ValidateAmount(amount decimal.Decimal) error {
	max, _ := decimal.NewFromString(MaxInvoiceAmount)
	if amount.GreaterThan(max) {
		return ErrAmountTooLarge
	}
	return nil
}

// ValidateSKU validates an inventory SKU
func ValidateSKU(sku string) error {
	if !skuRegex.MatchString(sku) {
		return ErrInvalidSKU
	}
	return nil
}

// ValidatePagination clamps limit and offset to sane values
func ValidatePagination(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}
