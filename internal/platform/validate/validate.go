// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError], plus struct-tag
// validation of request payloads with Portuguese messages.
//
// # Architecture
//
// Struct tags check shape (required, lengths, formats) at the handler
// boundary. The fluent [Validator] carries the business rules in services.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/johnvilela/motolink/internal/platform/apperr"
)

var (
	// uuidRegex matches a UUIDv4 or UUIDv7 string.
	uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Corpo da requisição inválido")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// BirthDateLayout is the accepted birth date format (DD/MM/YYYY).
const BirthDateLayout = "02/01/2006"

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "Campo obrigatório")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Máximo de %d caracteres", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Mínimo de %d caracteres", min))
	}
	return v
}

// LenBetween fails if the Unicode character count is outside [min, max].
func (v *Validator) LenBetween(field, value string, min, max int) *Validator {
	count := utf8.RuneCountInString(value)
	if count < min || count > max {
		v.add(field, fmt.Sprintf("Deve ter entre %d e %d caracteres", min, max))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Deve estar entre %d e %d", min, max))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "E-mail inválido")
	}
	return v
}

// UUID fails if the value is not a valid UUID string (case-insensitive).
func (v *Validator) UUID(field, value string) *Validator {
	lower := strings.ToLower(value)
	if !uuidRegex.MatchString(lower) {
		v.add(field, "Identificador inválido")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Deve ser um de: %s", strings.Join(allowed, ", ")))
	return v
}

// StrongPassword requires at least [MinPasswordLength] characters with a
// lowercase letter, an uppercase letter, a digit and a special character.
func (v *Validator) StrongPassword(field, value string) *Validator {
	if !IsStrongPassword(value) {
		v.add(field, "A senha deve ter no mínimo 8 caracteres, com letra maiúscula, minúscula, número e caractere especial")
	}
	return v
}

// Date fails if value does not parse with layout.
func (v *Validator) Date(field, value, layout string) *Validator {
	if _, err := time.Parse(layout, value); err != nil {
		v.add(field, "Data inválida")
	}
	return v
}

// NotEmpty fails if the slice has no elements.
func (v *Validator) NotEmpty(field string, size int) *Validator {
	if size == 0 {
		v.add(field, "Informe ao menos um item")
	}
	return v
}

// CNPJ fails if value is not 14 digits with valid check digits. Masks must
// be stripped beforehand.
func (v *Validator) CNPJ(field, value string) *Validator {
	if !IsCNPJ(value) {
		v.add(field, "CNPJ inválido")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("branches", len(branches) == 0, "Informe ao menos uma filial")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method, call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Dados inválidos", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Dados inválidos", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}

// IsStrongPassword reports whether value satisfies the password policy.
func IsStrongPassword(value string) bool {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range value {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	return hasLower && hasUpper && hasDigit && hasSpecial
}

// IsCNPJ reports whether digits is a well-formed CNPJ.
func IsCNPJ(digits string) bool {
	if len(digits) != 14 || strings.Count(digits, digits[:1]) == 14 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}

	checkDigit := func(length int) byte {
		weight, sum := length-7, 0
		for i := 0; i < length; i++ {
			sum += int(digits[i]-'0') * weight
			weight--
			if weight < 2 {
				weight = 9
			}
		}
		remainder := sum % 11
		if remainder < 2 {
			return '0'
		}
		return byte('0' + 11 - remainder)
	}

	return digits[12] == checkDigit(12) && digits[13] == checkDigit(13)
}
