// Package phone validates numbers against the accepted numbering plan and
// derives their store keys.
//
// The plan is deliberately loose: a number must start with "+7" and be exactly
// 12 characters long. The remaining characters are not checked for digits.
package phone

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	// Prefix is the required country-code prefix.
	Prefix = "+7"
	// Length is the required total number of characters, prefix included.
	Length = 12
	// KeyPrefix namespaces phone records in the key-value store.
	KeyPrefix = "phone:"
	// Tag is the struct tag name registered by NewValidator.
	Tag = "phone"
)

var (
	ErrWrongPrefix = errors.New("wrong prefix")
	ErrWrongLength = errors.New("wrong length")
)

// ValidationError reports why Phone was rejected. Reason is ErrWrongPrefix or
// ErrWrongLength.
type ValidationError struct {
	Phone  string
	Reason error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Reason, ErrWrongPrefix) {
		return fmt.Sprintf("%s is not a russian number format", e.Phone)
	}
	return fmt.Sprintf("%s has incorrect length", e.Phone)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// Validate returns nil for an acceptable number and a *ValidationError
// otherwise. The prefix is checked before the length.
func Validate(p string) error {
	if !strings.HasPrefix(p, Prefix) {
		return &ValidationError{Phone: p, Reason: ErrWrongPrefix}
	}
	if utf8.RuneCountInString(p) != Length {
		return &ValidationError{Phone: p, Reason: ErrWrongLength}
	}
	return nil
}

// Key returns the store key for p.
func Key(p string) string {
	return KeyPrefix + p
}

// NewValidator returns a validator with the "phone" tag registered for
// request schemas.
func NewValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation(Tag, func(fl validator.FieldLevel) bool {
		return Validate(fl.Field().String()) == nil
	})
	if err != nil {
		return nil, fmt.Errorf("register %q validation: %w", Tag, err)
	}
	return v, nil
}
